// Package reconcile repairs job→employer cross-references after bulk load.
//
// It runs once both profiles and jobs are persisted, loads both sides into
// memory, and applies one of three matching strategies per run: direct legacy
// id mapping, an external email mapping, or fuzzy multi-field matching.
// Whatever the strategy, no job is ever left without an employer reference —
// the unknown-employer sentinel is the fallback, and falling back is success.
package reconcile

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"osteojob/migration-service/internal/config"
	"osteojob/migration-service/internal/identity"
	"osteojob/migration-service/internal/legacy"
	"osteojob/migration-service/internal/model"
	"osteojob/migration-service/internal/report"
	"osteojob/migration-service/internal/transform"
)

const (
	// paceEvery / paceDelay throttle update writes against the managed
	// store's rate limits.
	paceEvery = 200
	paceDelay = 250 * time.Millisecond
)

// TargetStore is the slice of the store client the reconciler needs.
type TargetStore interface {
	ListProfiles(ctx context.Context) ([]model.Profile, error)
	ListJobs(ctx context.Context) ([]model.Job, error)
	UpdateJobEmployer(ctx context.Context, jobID, employerID uuid.UUID, includeAlias bool) error
	BackfillProfileLegacyID(ctx context.Context, profileID uuid.UUID, legacyID int64) error
}

// Options configure one reconciliation run.
type Options struct {
	Strategy config.MatchStrategy
	// PosterAlias reports whether the jobs table carries the redundant
	// posted_by column, detected once at startup.
	PosterAlias bool
}

// Reconciler holds the in-memory indexes for one run.
type Reconciler struct {
	store TargetStore
	opts  Options

	profileByLegacyID map[int64]uuid.UUID
	profileByEmail    map[string]model.Profile
	jobByLegacyID     map[int64]uuid.UUID
	jobsByTitle       map[string][]model.Job

	sincePause int
}

// New returns a Reconciler for one run.
func New(store TargetStore, opts Options) *Reconciler {
	return &Reconciler{store: store, opts: opts}
}

// Run loads the persisted profiles and jobs, then applies the configured
// strategy over the legacy inputs. Per-record failures degrade into counters;
// only an unusable target store fails the run outright.
func (r *Reconciler) Run(ctx context.Context, legacyJobs []legacy.Job, emails []legacy.JobEmail) (report.Stats, error) {
	start := time.Now()
	var stats report.Stats

	if err := r.loadIndexes(ctx); err != nil {
		return stats, err
	}

	log.Printf("[reconcile] strategy=%s profiles=%d jobs=%d",
		r.opts.Strategy, len(r.profileByEmail), len(r.jobsByTitle))

	switch r.opts.Strategy {
	case config.StrategyEmail:
		for i, row := range emails {
			r.reconcileByEmail(ctx, row, &stats)
			r.progress(i+1, len(emails), &stats)
		}
	case config.StrategyFuzzy:
		for i, j := range legacyJobs {
			r.reconcileFuzzy(ctx, j, &stats)
			r.progress(i+1, len(legacyJobs), &stats)
		}
	default:
		for i, j := range legacyJobs {
			r.reconcileDirect(ctx, j, &stats)
			r.progress(i+1, len(legacyJobs), &stats)
		}
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// loadIndexes reads both tables once (paginated inside the store) and builds
// the lookup maps. An empty profile table means reconciling is meaningless.
func (r *Reconciler) loadIndexes(ctx context.Context) error {
	profiles, err := r.store.ListProfiles(ctx)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return fmt.Errorf("target store has no profiles — run migrate-users first")
	}

	jobs, err := r.store.ListJobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("target store has no jobs — run migrate-jobs first")
	}

	// Candidate order is id-ascending so the fuzzy first-match tie-break is
	// deterministic regardless of how the store returned the rows.
	sort.Slice(jobs, func(a, b int) bool {
		return bytes.Compare(jobs[a].ID[:], jobs[b].ID[:]) < 0
	})

	r.profileByLegacyID = make(map[int64]uuid.UUID, len(profiles))
	r.profileByEmail = make(map[string]model.Profile, len(profiles))
	for _, p := range profiles {
		if p.WPUserID > 0 {
			r.profileByLegacyID[p.WPUserID] = p.ID
		}
		if email := NormalizeEmail(p.Email); email != "" {
			r.profileByEmail[email] = p
		}
	}

	r.jobByLegacyID = make(map[int64]uuid.UUID, len(jobs))
	r.jobsByTitle = make(map[string][]model.Job, len(jobs))
	for _, j := range jobs {
		if j.WPPostID > 0 {
			r.jobByLegacyID[j.WPPostID] = j.ID
		}
		title := NormalizeTitle(j.Title)
		r.jobsByTitle[title] = append(r.jobsByTitle[title], j)
	}
	return nil
}

// reconcileDirect resolves the employer through the legacy employer id the
// job's meta carries (falling back to the post author).
func (r *Reconciler) reconcileDirect(ctx context.Context, j legacy.Job, stats *report.Stats) {
	jobID, ok := r.jobByLegacyID[j.ID]
	if !ok {
		stats.JobNotFound++
		return
	}
	employer := r.resolveEmployer(j, stats)
	r.writeEmployer(ctx, jobID, employer, stats)
}

// reconcileByEmail resolves the employer through the external mapping row's
// email, normalized case-insensitively. A matched profile missing its legacy
// back-reference gets it backfilled when the row carries one.
func (r *Reconciler) reconcileByEmail(ctx context.Context, row legacy.JobEmail, stats *report.Stats) {
	jobID, ok := r.jobByLegacyID[row.JobID]
	if !ok {
		stats.JobNotFound++
		return
	}

	employer := identity.UnknownEmployer
	if p, found := r.profileByEmail[NormalizeEmail(row.EmployerEmail)]; found {
		employer = p.ID
		if p.WPUserID == 0 && row.EmployerID > 0 {
			if err := r.store.BackfillProfileLegacyID(ctx, p.ID, row.EmployerID); err != nil {
				slog.Warn("backfill legacy id failed", "profileId", p.ID, "err", err)
				stats.Errored++
			}
		}
	} else {
		stats.PlaceholderUsed++
	}

	r.writeEmployer(ctx, jobID, employer, stats)
}

// reconcileFuzzy locates the persisted job by multi-field matching, then
// resolves the employer as in the direct strategy.
func (r *Reconciler) reconcileFuzzy(ctx context.Context, j legacy.Job, stats *report.Stats) {
	jobID, ok := r.matchJob(j, stats)
	if !ok {
		stats.JobNotFound++
		return
	}
	employer := r.resolveEmployer(j, stats)
	r.writeEmployer(ctx, jobID, employer, stats)
}

// resolveEmployer maps the job's legacy employer linkage to a profile id,
// falling back to the sentinel.
func (r *Reconciler) resolveEmployer(j legacy.Job, stats *report.Stats) uuid.UUID {
	if legacyID := transform.EmployerLegacyID(j); legacyID > 0 {
		if id, ok := r.profileByLegacyID[legacyID]; ok {
			return id
		}
	}
	stats.PlaceholderUsed++
	return identity.UnknownEmployer
}

// writeEmployer applies the resolved reference, keeping the posted_by alias
// in step only when the schema has it.
func (r *Reconciler) writeEmployer(ctx context.Context, jobID, employer uuid.UUID, stats *report.Stats) {
	if !r.opts.PosterAlias {
		stats.AliasSkipped++
	}
	if err := r.store.UpdateJobEmployer(ctx, jobID, employer, r.opts.PosterAlias); err != nil {
		slog.Warn("employer update failed", "jobId", jobID, "err", err)
		stats.Errored++
		return
	}
	stats.Updated++
}

// progress logs a heartbeat and paces writes.
func (r *Reconciler) progress(done, total int, stats *report.Stats) {
	stats.Attempted = done
	if done%1000 == 0 || done == total {
		log.Printf("[reconcile] processed %d/%d — updated=%d notFound=%d placeholders=%d",
			done, total, stats.Updated, stats.JobNotFound, stats.PlaceholderUsed)
	}
	r.sincePause++
	if r.sincePause >= paceEvery {
		time.Sleep(paceDelay)
		r.sincePause = 0
	}
}
