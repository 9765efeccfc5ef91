package snapshotstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the snapshot blob as a single row in a
// one-row table, the way the teacher's internal/store/postgres.go
// wraps a *pgxpool.Pool for its account/transfer/ledger-entry tables.
// Unlike the teacher, this store never participates in the engine's
// own transaction logic — the engine has none — it is strictly a
// durability sink for save_state/load_state bytes (spec.md §1).
type PostgresStore struct {
	pool *pgxpool.Pool
	slot string
}

// NewPostgresStore opens a pool against connString and ensures the
// backing table exists. slot identifies this engine instance's row,
// letting multiple engines share one database.
func NewPostgresStore(ctx context.Context, connString, slot string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("postgresstore: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgresstore: ping: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ledgerops_snapshots (
			slot TEXT PRIMARY KEY,
			state BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgresstore: ensure table: %w", err)
	}

	return &PostgresStore{pool: pool, slot: slot}, nil
}

// Close releases the pool.
func (p *PostgresStore) Close() { p.pool.Close() }

// Load fetches the most recently saved snapshot blob for this slot.
func (p *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := p.pool.QueryRow(ctx,
		"SELECT state FROM ledgerops_snapshots WHERE slot = $1", p.slot,
	).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("postgresstore: load: %w", err)
	}
	return data, nil
}

// Save upserts data as the snapshot blob for this slot.
func (p *PostgresStore) Save(ctx context.Context, data []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO ledgerops_snapshots (slot, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE SET state = $2, updated_at = now()`,
		p.slot, data,
	)
	if err != nil {
		return fmt.Errorf("postgresstore: save: %w", err)
	}
	return nil
}
