package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore stores entries in the kv_entries table created by the migrations.
func NewPostgresStore(pool *pgxpool.Pool) KeyValueStore {
	return &postgresStore{pool: pool}
}

func (p *postgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM kv_entries WHERE key=$1`
	var value string
	if err := p.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (p *postgresStore) Set(ctx context.Context, key, value string) error {
	const query = `
        INSERT INTO kv_entries (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`
	_, err := p.pool.Exec(ctx, query, key, value)
	return err
}

func (p *postgresStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_entries WHERE key=$1`
	_, err := p.pool.Exec(ctx, query, key)
	return err
}

func (p *postgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
