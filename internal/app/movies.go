package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/movie-favorites/api"
	"github.com/metinatakli/movie-favorites/internal/domain"
	"github.com/metinatakli/movie-favorites/internal/favorites"
)

type movieIdParam struct {
	Id string `json:"id" validate:"required,imdb_id"`
}

func (app *Application) SearchMovies(w http.ResponseWriter, r *http.Request, params api.SearchMoviesParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	app.rememberSearch(r, params)

	filters := domain.SearchFilters{Term: *params.S}
	if params.Type != nil {
		filters.Type = *params.Type
	}

	result, err := app.catalog.Search(r.Context(), filters)
	if err != nil {
		if !errors.Is(err, domain.ErrNoResults) {
			app.serverErrorResponse(w, r, err)
			return
		}

		app.contextGetLogger(r).Debug("catalog search without results", "term", filters.Term, "error", err)

		message := MsgNoResults
		resp := api.MovieListResponse{
			Movies:  []api.Movie{},
			Message: &message,
		}

		err = app.writeJSON(w, http.StatusOK, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.MovieListResponse{
		Movies:       toApiMovies(result.Movies, app.favorites.State()),
		TotalResults: result.TotalResults,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request, id string, params api.GetMovieParams) {
	err := app.validator.Struct(movieIdParam{Id: id})
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	detail, err := app.catalog.GetById(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.errorResponse(w, r, http.StatusNotFound, ErrCatalogNotFound)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	target := app.config.Translate.Target
	if params.Lang != nil {
		target = *params.Lang
	}

	movie := toApiMovieDetail(detail, app.favorites.State().Contains(detail.ID))
	movie.PlotLanguage = app.config.Translate.Source

	if detail.HasPlot() && target != app.config.Translate.Source {
		plot, err := app.translator.Translate(r.Context(), detail.Plot, app.config.Translate.Source, target)
		if err != nil {
			app.contextGetLogger(r).Error("failed to translate plot", "movie_id", id, "target", target, "error", err)
		} else {
			movie.Plot = plot
			movie.PlotLanguage = target
			movie.PlotTranslated = true
		}
	}

	resp := api.MovieDetailResponse{
		Movie: movie,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiMovies(movies []domain.Movie, state favorites.State) []api.Movie {
	result := make([]api.Movie, len(movies))

	for i, movie := range movies {
		result[i] = toApiMovie(movie, state.Contains(movie.ID))
	}

	return result
}

func toApiMovie(movie domain.Movie, liked bool) api.Movie {
	return api.Movie{
		Id:        movie.ID,
		Title:     movie.Title,
		Year:      movie.Year,
		Type:      movie.Type,
		PosterUrl: movie.PosterURL(),
		Liked:     liked,
	}
}

func toApiMovieDetail(detail *domain.MovieDetail, liked bool) api.MovieDetail {
	return api.MovieDetail{
		Id:         detail.ID,
		Title:      detail.Title,
		Year:       detail.Year,
		Type:       detail.Type,
		PosterUrl:  detail.PosterURL(),
		Liked:      liked,
		Released:   detail.Released,
		Runtime:    detail.Runtime,
		Genre:      detail.Genre,
		Director:   detail.Director,
		Actors:     detail.Actors,
		Language:   detail.Language,
		ImdbRating: detail.Rating,
		Plot:       detail.Plot,
	}
}
