// Package api holds the HTTP contract described by api.yaml: request and
// response types, parameter binding and the route table.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationError defines model for ValidationError.
type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ValidationErrorResponse defines model for ValidationErrorResponse.
type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

// SystemInfo defines model for SystemInfo.
type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Storage     string `json:"storage"`
}

// HealthcheckResponse defines model for HealthcheckResponse.
type HealthcheckResponse struct {
	Status      string     `json:"status"`
	SystemInfo  SystemInfo `json:"systemInfo"`
	LikedMovies int        `json:"likedMovies"`
}

// Movie defines model for Movie.
type Movie struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Year      string `json:"year"`
	Type      string `json:"type"`
	PosterUrl string `json:"posterUrl"`
	Liked     bool   `json:"liked"`
}

// MovieListResponse defines model for MovieListResponse.
type MovieListResponse struct {
	Movies       []Movie `json:"movies"`
	TotalResults int     `json:"totalResults"`
	Message      *string `json:"message,omitempty"`
}

// MovieDetail defines model for MovieDetail.
type MovieDetail struct {
	Id             string              `json:"id"`
	Title          string              `json:"title"`
	Year           string              `json:"year"`
	Type           string              `json:"type"`
	PosterUrl      string              `json:"posterUrl"`
	Liked          bool                `json:"liked"`
	Released       string              `json:"released,omitempty"`
	Runtime        string              `json:"runtime,omitempty"`
	Genre          string              `json:"genre,omitempty"`
	Director       string              `json:"director,omitempty"`
	Actors         string              `json:"actors,omitempty"`
	Language       string              `json:"language,omitempty"`
	ImdbRating     decimal.NullDecimal `json:"imdbRating"`
	Plot           string              `json:"plot"`
	PlotLanguage   string              `json:"plotLanguage"`
	PlotTranslated bool                `json:"plotTranslated"`
}

// MovieDetailResponse defines model for MovieDetailResponse.
type MovieDetailResponse struct {
	Movie MovieDetail `json:"movie"`
}

// LastSearchResponse defines model for LastSearchResponse.
type LastSearchResponse struct {
	S    string  `json:"s"`
	Type *string `json:"type,omitempty"`
}

// FavoritesResponse defines model for FavoritesResponse.
type FavoritesResponse struct {
	Movies []Movie `json:"movies"`
	Count  int     `json:"count"`
}

// LikeMovieRequest defines model for LikeMovieRequest.
type LikeMovieRequest struct {
	Id     *string `json:"id,omitempty"`
	ImdbID *string `json:"imdbID,omitempty"`
}

// SearchMoviesParams defines parameters for SearchMovies.
type SearchMoviesParams struct {
	S    *string `form:"s,omitempty" json:"s,omitempty" validate:"required,max=100"`
	Type *string `form:"type,omitempty" json:"type,omitempty" validate:"omitempty,oneof=movie series episode"`
}

// GetMovieParams defines parameters for GetMovie.
type GetMovieParams struct {
	Lang *string `form:"lang,omitempty" json:"lang,omitempty" validate:"omitempty,language"`
}
