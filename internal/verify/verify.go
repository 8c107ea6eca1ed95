// Package verify runs post-migration integrity checks against the target
// store: the invariants the board's UI depends on after a run.
package verify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"osteojob/migration-service/internal/identity"
)

// Result holds one pass of integrity checks. Orphans and duplicate emails
// are defects; sentinel usage and missing back-references are informational.
type Result struct {
	Profiles         int64
	Jobs             int64
	SentinelJobs     int64 // jobs owned by the unknown-employer placeholder
	OrphanJobs       int64 // employer reference matching no profile
	DuplicateEmails  int64
	UnlinkedProfiles int64 // profiles without a legacy back-reference
}

// Failed reports whether any check found a genuine defect.
func (r Result) Failed() bool {
	return r.OrphanJobs > 0 || r.DuplicateEmails > 0
}

// Summary renders the human-readable check report.
func (r Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "─── integrity checks ───\n")
	fmt.Fprintf(&b, "  profiles:            %d\n", r.Profiles)
	fmt.Fprintf(&b, "  jobs:                %d\n", r.Jobs)
	fmt.Fprintf(&b, "  sentinel-owned jobs: %d\n", r.SentinelJobs)
	fmt.Fprintf(&b, "  orphan jobs:         %d\n", r.OrphanJobs)
	fmt.Fprintf(&b, "  duplicate emails:    %d\n", r.DuplicateEmails)
	fmt.Fprintf(&b, "  unlinked profiles:   %d", r.UnlinkedProfiles)
	return b.String()
}

// Run executes every check once.
func Run(ctx context.Context, pool *pgxpool.Pool) (Result, error) {
	var r Result

	checks := []struct {
		dst  *int64
		name string
		sql  string
		args []any
	}{
		{&r.Profiles, "profiles", `SELECT COUNT(*) FROM profiles`, nil},
		{&r.Jobs, "jobs", `SELECT COUNT(*) FROM jobs`, nil},
		{&r.SentinelJobs, "sentinel jobs",
			`SELECT COUNT(*) FROM jobs WHERE employer_id = $1`,
			[]any{identity.UnknownEmployer}},
		{&r.OrphanJobs, "orphan jobs",
			`SELECT COUNT(*) FROM jobs j
			 WHERE NOT EXISTS (SELECT 1 FROM profiles p WHERE p.id = j.employer_id)`, nil},
		{&r.DuplicateEmails, "duplicate emails",
			`SELECT COUNT(*) FROM (
			   SELECT LOWER(email) FROM profiles GROUP BY LOWER(email) HAVING COUNT(*) > 1
			 ) d`, nil},
		{&r.UnlinkedProfiles, "unlinked profiles",
			`SELECT COUNT(*) FROM profiles WHERE wp_user_id IS NULL AND id <> $1`,
			[]any{identity.UnknownEmployer}},
	}

	for _, c := range checks {
		if err := pool.QueryRow(ctx, c.sql, c.args...).Scan(c.dst); err != nil {
			return r, fmt.Errorf("check %s: %w", c.name, err)
		}
		log.Printf("[verify] %s = %d", c.name, *c.dst)
	}
	return r, nil
}
