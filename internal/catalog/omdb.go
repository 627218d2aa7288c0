// Package catalog talks to the OMDb movie catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/metinatakli/movie-favorites/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultBaseUrl    = "https://www.omdbapi.com/"
	defaultAttempts   = 3
	defaultRetryDelay = 200 * time.Millisecond
)

type Config struct {
	BaseUrl    string
	ApiKey     string
	Timeout    time.Duration
	Attempts   uint
	RetryDelay time.Duration
}

type OMDbClient struct {
	baseUrl    string
	apiKey     string
	httpClient *http.Client
	attempts   uint
	retryDelay time.Duration
}

type searchResponse struct {
	Search       []domain.Movie `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error"`
}

type detailResponse struct {
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Language   string `json:"Language"`
	Plot       string `json:"Plot"`
	ImdbRating string `json:"imdbRating"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// statusError is returned for non-2xx responses.
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("omdb: unexpected status %d: %s", e.StatusCode, e.Body)
}

func NewOMDbClient(cfg Config) *OMDbClient {
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = DefaultBaseUrl
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = defaultAttempts
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	return &OMDbClient{
		baseUrl:    cfg.BaseUrl,
		apiKey:     cfg.ApiKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		attempts:   cfg.Attempts,
		retryDelay: cfg.RetryDelay,
	}
}

func (c *OMDbClient) Search(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	params := url.Values{}
	params.Set("s", filters.Term)
	if filters.Type != "" {
		params.Set("type", filters.Type)
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp searchResponse

	err = json.Unmarshal(body, &resp)
	if err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if resp.Response != "True" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoResults, resp.Error)
	}

	total, err := strconv.Atoi(resp.TotalResults)
	if err != nil {
		total = len(resp.Search)
	}

	movies := resp.Search
	if movies == nil {
		movies = []domain.Movie{}
	}

	return &domain.SearchResult{
		Movies:       movies,
		TotalResults: total,
	}, nil
}

func (c *OMDbClient) GetById(ctx context.Context, id string) (*domain.MovieDetail, error) {
	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "full")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp detailResponse

	err = json.Unmarshal(body, &resp)
	if err != nil {
		return nil, fmt.Errorf("decode detail response: %w", err)
	}

	if resp.Response != "True" {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, resp.Error)
	}

	var movie domain.Movie

	err = json.Unmarshal(body, &movie)
	if err != nil {
		return nil, fmt.Errorf("decode detail response: %w", err)
	}

	delete(movie.Extra, "Response")

	return &domain.MovieDetail{
		Movie:    movie,
		Released: resp.Released,
		Runtime:  resp.Runtime,
		Genre:    resp.Genre,
		Director: resp.Director,
		Actors:   resp.Actors,
		Language: resp.Language,
		Plot:     resp.Plot,
		Rating:   parseRating(resp.ImdbRating),
	}, nil
}

func parseRating(s string) decimal.NullDecimal {
	if s == "" || s == domain.NotAvailable {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(d)
}

// get performs the request, retrying network errors and 5xx responses.
func (c *OMDbClient) get(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", c.apiKey)
	target := c.baseUrl + "?" + params.Encode()

	return retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
			if err != nil {
				return nil, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, fmt.Errorf("http request: %w", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("read response: %w", err)
			}

			if resp.StatusCode >= http.StatusInternalServerError {
				return nil, &statusError{StatusCode: resp.StatusCode, Body: string(body)}
			}

			// Lookup failures come back as 200 with Response "False".
			if resp.StatusCode != http.StatusOK {
				return nil, retry.Unrecoverable(&statusError{StatusCode: resp.StatusCode, Body: string(body)})
			}

			return body, nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
	)
}
