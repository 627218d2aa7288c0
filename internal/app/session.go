package app

import (
	"net/http"

	"github.com/metinatakli/movie-favorites/api"
)

type sessionKey string

const (
	SessionKeyLastSearchTerm = sessionKey("lastSearch.s")
	SessionKeyLastSearchType = sessionKey("lastSearch.type")
)

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) rememberSearch(r *http.Request, params api.SearchMoviesParams) {
	app.sessionManager.Put(r.Context(), SessionKeyLastSearchTerm.String(), *params.S)

	if params.Type != nil {
		app.sessionManager.Put(r.Context(), SessionKeyLastSearchType.String(), *params.Type)
	} else {
		app.sessionManager.Remove(r.Context(), SessionKeyLastSearchType.String())
	}
}

// GetLastSearch returns the parameters of the session's previous search so a
// client can restore its search form.
func (app *Application) GetLastSearch(w http.ResponseWriter, r *http.Request) {
	term := app.sessionManager.GetString(r.Context(), SessionKeyLastSearchTerm.String())
	if term == "" {
		app.errorResponse(w, r, http.StatusNotFound, ErrNoSearchInSession)
		return
	}

	resp := api.LastSearchResponse{
		S: term,
	}

	if searchType := app.sessionManager.GetString(r.Context(), SessionKeyLastSearchType.String()); searchType != "" {
		resp.Type = &searchType
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
