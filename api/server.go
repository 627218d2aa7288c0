package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Service status
	// (GET /healthcheck)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// Search the catalog by title
	// (GET /movies)
	SearchMovies(w http.ResponseWriter, r *http.Request, params SearchMoviesParams)
	// Movie detail with translated plot
	// (GET /movies/{id})
	GetMovie(w http.ResponseWriter, r *http.Request, id string, params GetMovieParams)
	// Last search of the current session
	// (GET /searches/last)
	GetLastSearch(w http.ResponseWriter, r *http.Request)
	// Liked movies in the order they were liked
	// (GET /favorites)
	ListFavorites(w http.ResponseWriter, r *http.Request)
	// Like a movie
	// (POST /favorites)
	LikeMovie(w http.ResponseWriter, r *http.Request)
	// Unlike a movie
	// (DELETE /favorites/{id})
	UnlikeMovie(w http.ResponseWriter, r *http.Request, id string)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// SearchMovies operation middleware
func (siw *ServerInterfaceWrapper) SearchMovies(w http.ResponseWriter, r *http.Request) {
	var err error

	var params SearchMoviesParams

	err = runtime.BindQueryParameter("form", true, false, "s", r.URL.Query(), &params.S)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "s", Err: err})
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "type", r.URL.Query(), &params.Type)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "type", Err: err})
		return
	}

	siw.Handler.SearchMovies(w, r, params)
}

// GetMovie operation middleware
func (siw *ServerInterfaceWrapper) GetMovie(w http.ResponseWriter, r *http.Request) {
	var err error

	var id string

	err = runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	var params GetMovieParams

	err = runtime.BindQueryParameter("form", true, false, "lang", r.URL.Query(), &params.Lang)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "lang", Err: err})
		return
	}

	siw.Handler.GetMovie(w, r, id, params)
}

// UnlikeMovie operation middleware
func (siw *ServerInterfaceWrapper) UnlikeMovie(w http.ResponseWriter, r *http.Request) {
	var err error

	var id string

	err = runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.Handler.UnlikeMovie(w, r, id)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing matching the OpenAPI document based on the provided mux.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get("/healthcheck", si.GetHealth)
	})
	r.Group(func(r chi.Router) {
		r.Get("/movies", wrapper.SearchMovies)
	})
	r.Group(func(r chi.Router) {
		r.Get("/movies/{id}", wrapper.GetMovie)
	})
	r.Group(func(r chi.Router) {
		r.Get("/searches/last", si.GetLastSearch)
	})
	r.Group(func(r chi.Router) {
		r.Get("/favorites", si.ListFavorites)
	})
	r.Group(func(r chi.Router) {
		r.Post("/favorites", si.LikeMovie)
	})
	r.Group(func(r chi.Router) {
		r.Delete("/favorites/{id}", wrapper.UnlikeMovie)
	})

	return r
}
