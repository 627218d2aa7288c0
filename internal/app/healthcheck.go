package app

import (
	"net/http"

	"github.com/metinatakli/movie-favorites/api"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	systemInfo := api.SystemInfo{
		Version:     version,
		Environment: app.config.Env,
		Storage:     app.config.Storage.Backend,
	}

	resp := api.HealthcheckResponse{
		Status:      status,
		SystemInfo:  systemInfo,
		LikedMovies: len(app.favorites.State().LikedMovies),
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
