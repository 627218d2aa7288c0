package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// NotAvailable is the catalog's sentinel for missing values.
	NotAvailable = "N/A"

	PosterPlaceholderUrl = "https://placehold.co/600x900?text=No+Poster"
)

var movieKeys = []string{"imdbID", "Title", "Year", "Type", "Poster"}

// Movie is a single catalog record. ID is the only field used for equality.
// Fields the catalog sends beyond the known ones are kept in Extra and written
// back unchanged.
type Movie struct {
	ID     string
	Title  string
	Year   string
	Type   string
	Poster string
	Extra  map[string]json.RawMessage
}

// PosterURL returns the poster, or a placeholder when the catalog has none.
func (m Movie) PosterURL() string {
	if m.Poster == "" || m.Poster == NotAvailable {
		return PosterPlaceholderUrl
	}

	return m.Poster
}

func (m Movie) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(m.Extra)+len(movieKeys))
	for k, v := range m.Extra {
		obj[k] = v
	}

	obj["imdbID"] = m.ID
	obj["Title"] = m.Title
	obj["Year"] = m.Year
	obj["Type"] = m.Type
	obj["Poster"] = m.Poster

	return json.Marshal(obj)
}

func (m *Movie) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage

	err := json.Unmarshal(data, &obj)
	if err != nil {
		return err
	}

	if obj == nil {
		return fmt.Errorf("movie record must be a JSON object")
	}

	var movie Movie
	fields := []*string{&movie.ID, &movie.Title, &movie.Year, &movie.Type, &movie.Poster}

	for i, key := range movieKeys {
		raw, ok := obj[key]
		if !ok {
			continue
		}

		err = json.Unmarshal(raw, fields[i])
		if err != nil {
			return fmt.Errorf("movie field %s: %w", key, err)
		}

		delete(obj, key)
	}

	if len(obj) > 0 {
		movie.Extra = obj
	}

	*m = movie

	return nil
}

type MovieDetail struct {
	Movie
	Released string
	Runtime  string
	Genre    string
	Director string
	Actors   string
	Language string
	Plot     string
	Rating   decimal.NullDecimal
}

// HasPlot reports whether the catalog returned a synopsis worth translating.
func (d MovieDetail) HasPlot() bool {
	return d.Plot != "" && d.Plot != NotAvailable
}

type SearchFilters struct {
	Term string
	Type string
}

type SearchResult struct {
	Movies       []Movie
	TotalResults int
}

type Catalog interface {
	Search(ctx context.Context, filters SearchFilters) (*SearchResult, error)
	GetById(ctx context.Context, id string) (*MovieDetail, error)
}

type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}
