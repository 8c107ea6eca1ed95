package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"osteojob/migration-service/internal/model"
)

// listPageSize is the fixed page size for full-table reads.
const listPageSize = 1000

// ListProfiles reads every profile into memory via keyset pagination,
// ordered by id.
func (s *Postgres) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	var out []model.Profile
	last := uuid.Nil

	for {
		rows, err := s.pool.Query(ctx,
			`SELECT id, email, display_name, role, COALESCE(wp_user_id, 0)
			 FROM profiles
			 WHERE id > $1
			 ORDER BY id
			 LIMIT $2`,
			last, listPageSize,
		)
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}

		n := 0
		for rows.Next() {
			var p model.Profile
			if err := rows.Scan(&p.ID, &p.Email, &p.DisplayName, &p.Role, &p.WPUserID); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan profile: %w", err)
			}
			out = append(out, p)
			last = p.ID
			n++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		if n < listPageSize {
			return out, nil
		}
	}
}

// ListJobs reads every persisted job into memory via keyset pagination,
// ordered by id. That order is what makes the fuzzy matcher's first-match
// tie-break deterministic.
func (s *Postgres) ListJobs(ctx context.Context) ([]model.Job, error) {
	var out []model.Job
	last := uuid.Nil

	for {
		rows, err := s.pool.Query(ctx,
			`SELECT id, employer_id, title,
			        COALESCE(country, ''), COALESCE(city, ''),
			        COALESCE(wp_post_id, 0), posted_at
			 FROM jobs
			 WHERE id > $1
			 ORDER BY id
			 LIMIT $2`,
			last, listPageSize,
		)
		if err != nil {
			return nil, fmt.Errorf("list jobs: %w", err)
		}

		n := 0
		for rows.Next() {
			var (
				j      model.Job
				posted *time.Time
			)
			if err := rows.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Country, &j.City, &j.WPPostID, &posted); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan job: %w", err)
			}
			if posted != nil {
				j.PostedAt = *posted
			}
			out = append(out, j)
			last = j.ID
			n++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("list jobs: %w", err)
		}
		if n < listPageSize {
			return out, nil
		}
	}
}

// UpdateJobEmployer writes the resolved employer reference onto a job.
// When includeAlias is set, the redundant posted_by alias column is kept in
// step as well.
func (s *Postgres) UpdateJobEmployer(ctx context.Context, jobID, employerID uuid.UUID, includeAlias bool) error {
	var err error
	if includeAlias {
		_, err = s.pool.Exec(ctx,
			`UPDATE jobs SET employer_id = $1, posted_by = $1, updated_at = NOW() WHERE id = $2`,
			employerID, jobID,
		)
	} else {
		_, err = s.pool.Exec(ctx,
			`UPDATE jobs SET employer_id = $1, updated_at = NOW() WHERE id = $2`,
			employerID, jobID,
		)
	}
	if err != nil {
		return fmt.Errorf("update job %s employer: %w", jobID, err)
	}
	return nil
}

// BackfillProfileLegacyID fills a profile's missing legacy back-reference.
// Profiles that already carry one are left untouched.
func (s *Postgres) BackfillProfileLegacyID(ctx context.Context, profileID uuid.UUID, legacyID int64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE profiles SET wp_user_id = $1, updated_at = NOW()
		 WHERE id = $2 AND wp_user_id IS NULL`,
		legacyID, profileID,
	)
	if err != nil {
		return fmt.Errorf("backfill profile %s legacy id: %w", profileID, err)
	}
	return nil
}
