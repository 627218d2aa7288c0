package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-favorites/internal/domain"
)

type PostgresSlotStore struct {
	db *pgxpool.Pool
}

func NewPostgresSlotStore(db *pgxpool.Pool) *PostgresSlotStore {
	return &PostgresSlotStore{
		db: db,
	}
}

func (p *PostgresSlotStore) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM storage_slots WHERE key = $1`

	var value string

	err := p.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrSlotEmpty
		}

		return "", wrapSlotError(err)
	}

	return value, nil
}

func (p *PostgresSlotStore) Set(ctx context.Context, key string, value string) error {
	query := `INSERT INTO storage_slots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()`

	_, err := p.db.Exec(ctx, query, key, value)
	if err != nil {
		return wrapSlotError(err)
	}

	return nil
}

func wrapSlotError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("storage_slots table is missing, migrations have not run: %w", err)
	}

	return err
}
