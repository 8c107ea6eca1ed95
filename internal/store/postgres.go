// Package store is the pgx-backed client for the job board's managed
// Postgres. It owns all SQL the migration tools run: batched conflict-
// absorbing inserts, paginated full-table reads, and the targeted updates
// the reconciler applies.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"osteojob/migration-service/internal/identity"
)

// Postgres wraps a pgxpool connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// New returns a configured Postgres store.
func New(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// DetectPosterAlias reports whether the jobs table carries the optional
// posted_by alias column. Probed once at startup so the reconciler never
// has to discover the schema by failing writes.
func (s *Postgres) DetectPosterAlias(ctx context.Context) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM information_schema.columns
		   WHERE table_name = 'jobs' AND column_name = 'posted_by'
		 )`,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("detect posted_by column: %w", err)
	}
	return exists, nil
}

// CountProfiles returns the number of persisted profiles. The reconciler
// refuses to run against an empty store.
func (s *Postgres) CountProfiles(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}

// EnsureUnknownEmployer inserts the sentinel employer profile if it is not
// already present, so every job's employer reference has a row to point at.
// Idempotent.
func (s *Postgres) EnsureUnknownEmployer(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (id, email, display_name, role, created_at)
		 VALUES ($1, 'unknown-employer@osteojob.invalid', 'Unknown employer', 'employer', NOW())
		 ON CONFLICT (id) DO NOTHING`,
		identity.UnknownEmployer,
	)
	if err != nil {
		return fmt.Errorf("ensure unknown employer: %w", err)
	}
	return nil
}
