package mocks

import (
	"context"

	"github.com/metinatakli/movie-favorites/internal/domain"
)

type MockCatalog struct {
	domain.Catalog
	SearchFunc  func(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error)
	GetByIdFunc func(ctx context.Context, id string) (*domain.MovieDetail, error)
}

func (m *MockCatalog) Search(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	return m.SearchFunc(ctx, filters)
}

func (m *MockCatalog) GetById(ctx context.Context, id string) (*domain.MovieDetail, error) {
	return m.GetByIdFunc(ctx, id)
}
