package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/movie-favorites/api"
	"github.com/metinatakli/movie-favorites/internal/domain"
	"github.com/metinatakli/movie-favorites/internal/favorites"
	"github.com/metinatakli/movie-favorites/internal/mocks"
	"github.com/metinatakli/movie-favorites/internal/repository"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Env: "test",
		Storage: StorageConfig{
			Backend: StorageMemory,
			Key:     favorites.DefaultStorageKey,
		},
		Translate: TranslateConfig{
			Source: "en",
			Target: "pt",
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApplication(t *testing.T, opts ...func(*Application)) *Application {
	t.Helper()

	app, err := NewApp(testConfig(), Dependencies{
		Logger:         discardLogger(),
		SessionManager: scs.New(),
		Catalog:        &mocks.MockCatalog{},
		Translator:     &mocks.MockTranslator{},
		Favorites:      newFavoritesStore(repository.NewMemorySlotStore()),
	})
	require.NoError(t, err)

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func newFavoritesStore(slots domain.SlotStore) *favorites.Store {
	return favorites.Initialize(context.Background(), favorites.NewStorage(slots, "", discardLogger()))
}

func testMovie(id string) domain.Movie {
	return domain.Movie{ID: id, Title: "Title " + id, Year: "1999", Type: "movie", Poster: "https://example.com/" + id + ".jpg"}
}

// withSession runs h inside the session middleware, as the router does.
func withSession(app *Application, h http.HandlerFunc) http.Handler {
	return app.sessionManager.LoadAndSave(h)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	switch b := body.(type) {
	case nil:
		reader = http.NoBody
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func storedMovies(t *testing.T, slots domain.SlotStore) []domain.Movie {
	t.Helper()

	raw, err := slots.Get(context.Background(), favorites.DefaultStorageKey)
	require.NoError(t, err)

	var items []domain.Movie
	require.NoError(t, json.Unmarshal([]byte(raw), &items))

	return items
}

func ptr[T any](v T) *T {
	return &v
}
