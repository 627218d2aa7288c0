package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/movie-favorites/api"
	"github.com/metinatakli/movie-favorites/internal/favorites"
)

func TestGetHealth(t *testing.T) {
	app := newTestApplication(t)
	app.favorites.Dispatch(context.Background(), favorites.LikeMovie(testMovie("tt0133093")))

	w, r := executeRequest(t, http.MethodGet, "/healthcheck", nil)
	app.GetHealth(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("GetHealth() status = %v, want %v", w.Code, http.StatusOK)
	}

	var response api.HealthcheckResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	want := api.HealthcheckResponse{
		Status: "UP",
		SystemInfo: api.SystemInfo{
			Version:     version,
			Environment: "test",
			Storage:     StorageMemory,
		},
		LikedMovies: 1,
	}

	if diff := cmp.Diff(want, response); diff != "" {
		t.Errorf("GetHealth() response mismatch (-want +got):\n%s", diff)
	}
}
