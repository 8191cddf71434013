package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"yesno-quiz/internal/domain"
	"yesno-quiz/internal/history"
)

// Store keeps profile key-value slots in the kv_store table.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ForProfile returns a KV view scoped to profile.
func (s *Store) ForProfile(profile string) history.KV {
	return &KV{pool: s.pool, profile: profile}
}

// KV is one profile's rows in kv_store.
type KV struct {
	pool    *pgxpool.Pool
	profile string
}

func (k *KV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := k.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE profile=$1 AND key=$2`, k.profile, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrHistoryNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (k *KV) Put(ctx context.Context, key, value string) error {
	_, err := k.pool.Exec(ctx, `
		INSERT INTO kv_store (profile, key, value, updated_at) VALUES ($1, $2, $3, now())
		ON CONFLICT (profile, key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at`,
		k.profile, key, value)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}
