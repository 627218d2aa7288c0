package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/metinatakli/movie-favorites/internal/domain"
)

const DefaultStorageKey = "likedMovies:v1"

// Storage keeps the liked movies in a single slot of durable storage as a
// JSON array.
type Storage struct {
	slots  domain.SlotStore
	key    string
	logger *slog.Logger
}

func NewStorage(slots domain.SlotStore, key string, logger *slog.Logger) *Storage {
	if key == "" {
		key = DefaultStorageKey
	}

	return &Storage{
		slots:  slots,
		key:    key,
		logger: logger.With("storage_key", key),
	}
}

func (s *Storage) Key() string {
	return s.key
}

// Load returns the stored movies. Missing, unreadable or malformed data all
// load as an empty list.
func (s *Storage) Load(ctx context.Context) []domain.Movie {
	raw, err := s.slots.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrSlotEmpty) {
			s.logger.Warn("failed to read liked movies, starting empty", "error", err)
		}

		return []domain.Movie{}
	}

	if raw == "" {
		return []domain.Movie{}
	}

	var items []domain.Movie

	err = json.Unmarshal([]byte(raw), &items)
	if err != nil {
		s.logger.Warn("stored liked movies are malformed, starting empty", "error", err)
		return []domain.Movie{}
	}

	return dedupe(items)
}

// Save replaces the stored movies with items. A failed write is logged and
// returned; the caller decides whether it matters.
func (s *Storage) Save(ctx context.Context, items []domain.Movie) error {
	if items == nil {
		items = []domain.Movie{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("failed to encode liked movies", "error", err)
		return fmt.Errorf("encode liked movies: %w", err)
	}

	err = s.slots.Set(ctx, s.key, string(data))
	if err != nil {
		s.logger.Error("failed to save liked movies", "error", err, "count", len(items))
		return fmt.Errorf("save liked movies: %w", err)
	}

	return nil
}

func dedupe(items []domain.Movie) []domain.Movie {
	seen := make(map[string]struct{}, len(items))
	unique := make([]domain.Movie, 0, len(items))

	for _, m := range items {
		if _, ok := seen[m.ID]; ok {
			continue
		}

		seen[m.ID] = struct{}{}
		unique = append(unique, m)
	}

	return unique
}
