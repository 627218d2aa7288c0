package app

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/metinatakli/movie-favorites/api"
	"github.com/metinatakli/movie-favorites/internal/domain"
	"github.com/metinatakli/movie-favorites/internal/favorites"
)

const errLikeBody = "body must be a JSON object with a string id or imdbID"

// movieRecordParam checks the fields of a catalog record the store relies on.
type movieRecordParam struct {
	Id    string `json:"imdbID" validate:"required,imdb_id"`
	Title string `json:"Title" validate:"required,max=250"`
}

func (app *Application) ListFavorites(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, toFavoritesResponse(app.favorites.State()), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) LikeMovie(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage

	err := app.readJSON(w, r, &body)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, ok := app.likedMovie(w, r, body)
	if !ok {
		return
	}

	state := app.dispatch(r.Context(), favorites.LikeMovie(movie))

	app.contextGetLogger(r).Info("movie liked", "movie_id", movie.ID)

	err = app.writeJSON(w, http.StatusOK, toFavoritesResponse(state), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// likedMovie resolves the movie a like body names. A catalog record is taken
// as sent, unknown fields included. Any other object is looked up in the
// catalog by its id, so display fields such as posterUrl are never stored.
// It writes the error response itself and reports false on failure.
func (app *Application) likedMovie(w http.ResponseWriter, r *http.Request, body json.RawMessage) (domain.Movie, bool) {
	var input api.LikeMovieRequest

	err := json.Unmarshal(body, &input)
	if err != nil {
		app.badRequestResponse(w, r, errors.New(errLikeBody))
		return domain.Movie{}, false
	}

	if input.ImdbID != nil {
		var movie domain.Movie

		err = json.Unmarshal(body, &movie)
		if err != nil {
			app.badRequestResponse(w, r, errors.New(errLikeBody))
			return domain.Movie{}, false
		}

		err = app.validator.Struct(movieRecordParam{Id: movie.ID, Title: movie.Title})
		if err != nil {
			app.failedValidationResponse(w, r, err)
			return domain.Movie{}, false
		}

		return movie, true
	}

	var id string
	if input.Id != nil {
		id = *input.Id
	}

	err = app.validator.Struct(movieIdParam{Id: id})
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return domain.Movie{}, false
	}

	detail, err := app.catalog.GetById(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.errorResponse(w, r, http.StatusNotFound, ErrCatalogNotFound)
			return domain.Movie{}, false
		}

		app.serverErrorResponse(w, r, err)
		return domain.Movie{}, false
	}

	return detail.Movie, true
}

func (app *Application) UnlikeMovie(w http.ResponseWriter, r *http.Request, id string) {
	err := app.validator.Struct(movieIdParam{Id: id})
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	app.dispatch(r.Context(), favorites.UnlikeMovie(domain.Movie{ID: id}))

	app.contextGetLogger(r).Info("movie unliked", "movie_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func toFavoritesResponse(state favorites.State) api.FavoritesResponse {
	movies := make([]api.Movie, len(state.LikedMovies))

	for i, movie := range state.LikedMovies {
		movies[i] = toApiMovie(movie, true)
	}

	return api.FavoritesResponse{
		Movies: movies,
		Count:  len(movies),
	}
}
