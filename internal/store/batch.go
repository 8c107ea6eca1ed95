package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"osteojob/migration-service/internal/identity"
	"osteojob/migration-service/internal/loader"
	"osteojob/migration-service/internal/model"
)

const insertProfileSQL = `
	INSERT INTO profiles (id, email, display_name, role, bio, company_name, wp_user_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	ON CONFLICT (email) DO NOTHING`

// The employer reference is preliminary: the direct id mapping when that
// profile exists, the unknown-employer sentinel otherwise. Resolved in SQL
// so one unmigrated employer cannot abort a whole batch on its foreign key.
const insertJobSQL = `
	INSERT INTO jobs (id, employer_id, title, description, excerpt, country, city,
	                  salary_text, status, views, wp_post_id, posted_at, created_at, updated_at)
	VALUES ($1, COALESCE((SELECT id FROM profiles WHERE id = $2), $3),
	        $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	ON CONFLICT (wp_post_id) DO NOTHING`

// WriteProfiles upserts one batch of profiles in a single round trip.
// A row already present under its email counts as a duplicate. A statement
// error aborts the rest of the batch; those rows count as errored and the
// caller moves on to the next batch.
func (s *Postgres) WriteProfiles(ctx context.Context, batch []model.Profile) (loader.BatchCounts, error) {
	b := &pgx.Batch{}
	for _, p := range batch {
		b.Queue(insertProfileSQL,
			p.ID, p.Email, p.DisplayName, p.Role, p.Bio,
			nullStr(p.CompanyName), nullID(p.WPUserID), p.CreatedAt,
		)
	}
	return s.sendBatch(ctx, b, len(batch))
}

// WriteJobs upserts one batch of jobs in a single round trip, keyed on the
// legacy post id back-reference.
func (s *Postgres) WriteJobs(ctx context.Context, batch []model.Job) (loader.BatchCounts, error) {
	b := &pgx.Batch{}
	for _, j := range batch {
		b.Queue(insertJobSQL,
			j.ID, j.EmployerID, identity.UnknownEmployer,
			j.Title, j.Description, j.Excerpt,
			nullStr(j.Country), nullStr(j.City), nullStr(j.SalaryText),
			j.Status, j.Views, j.WPPostID, nullTime(j.PostedAt),
		)
	}
	return s.sendBatch(ctx, b, len(batch))
}

// sendBatch reads per-statement results, counting inserts and duplicates.
// pgx runs a batch in one implicit transaction, so a failed statement rolls
// the whole batch back — the caller counts every row as errored then.
func (s *Postgres) sendBatch(ctx context.Context, b *pgx.Batch, size int) (loader.BatchCounts, error) {
	counts := loader.BatchCounts{Attempted: size}

	br := s.pool.SendBatch(ctx, b)
	defer br.Close()

	for i := 0; i < size; i++ {
		tag, err := br.Exec()
		if err != nil {
			return loader.BatchCounts{}, fmt.Errorf("batch statement %d: %w", i+1, err)
		}
		if tag.RowsAffected() == 0 {
			counts.Duplicate++
		} else {
			counts.Inserted++
		}
	}
	return counts, nil
}
