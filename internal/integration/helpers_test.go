package integration_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// newFakeOMDb answers like the OMDb API for a single title.
func newFakeOMDb() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")

		if q.Get("apikey") != TestApiKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"Response":"False","Error":"Invalid API key!"}`)
			return
		}

		switch {
		case q.Get("s") == "matrix":
			_, _ = io.WriteString(w, `{
				"Search": [
					{"Title":"`+TestMovieTitle+`","Year":"`+TestMovieYear+`","imdbID":"`+TestMovieId+`","Type":"movie","Poster":"`+TestMoviePoster+`"},
					{"Title":"`+TestOtherMovieTitle+`","Year":"2003","imdbID":"`+TestOtherMovieId+`","Type":"movie","Poster":"N/A"}
				],
				"totalResults":"2",
				"Response":"True"
			}`)
		case q.Get("i") == TestMovieId:
			_, _ = io.WriteString(w, `{
				"Title":"`+TestMovieTitle+`","Year":"`+TestMovieYear+`","imdbID":"`+TestMovieId+`","Type":"movie",
				"Poster":"`+TestMoviePoster+`","Released":"31 Mar 1999","Runtime":"136 min","Genre":"Action, Sci-Fi",
				"Director":"Lana Wachowski, Lilly Wachowski","Actors":"Keanu Reeves","Language":"English",
				"Plot":"`+TestMoviePlot+`","imdbRating":"8.7","Response":"True"
			}`)
		case q.Has("s"):
			_, _ = io.WriteString(w, `{"Response":"False","Error":"Movie not found!"}`)
		default:
			_, _ = io.WriteString(w, `{"Response":"False","Error":"Incorrect IMDb ID."}`)
		}
	}))
}

// newFakeTranslator prefixes the text with the target language.
func newFakeTranslator() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Q      string `json:"q"`
			Target string `json:"target"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"translatedText": req.Target + ": " + req.Q,
		})
	}))
}
