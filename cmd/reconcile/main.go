// osteojob reconcile — repairs job→employer cross-references after import.
//
// Strategy is chosen per run with MIGRATE_MATCH_STRATEGY (direct, email or
// fuzzy), depending on what legacy linkage data survived the export. Every
// job ends up with a resolvable employer reference; the unknown-employer
// sentinel is the fallback and counts as success.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"osteojob/migration-service/internal/config"
	"osteojob/migration-service/internal/db"
	"osteojob/migration-service/internal/events"
	"osteojob/migration-service/internal/legacy"
	"osteojob/migration-service/internal/reconcile"
	"osteojob/migration-service/internal/store"
)

const (
	toolName   = "reconcile"
	jobsFile   = "data/legacy-jobs.json"
	emailsFile = "data/job-employer-emails.json"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[%s] Config error: %v", toolName, err)
	}

	ctx := context.Background()

	jobs, err := legacy.LoadJobs(jobsFile)
	if err != nil {
		log.Fatalf("[%s] Input error: %v", toolName, err)
	}

	// The email mapping file is only required for the email strategy.
	var emails []legacy.JobEmail
	if cfg.Strategy == config.StrategyEmail {
		emails, err = legacy.LoadJobEmails(emailsFile)
		if err != nil {
			log.Fatalf("[%s] Input error: %v", toolName, err)
		}
		log.Printf("[%s] Loaded %d job→employer email mappings", toolName, len(emails))
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[%s] PostgreSQL: %v", toolName, err)
	}
	defer pool.Close()

	st := store.New(pool)

	if err := st.EnsureUnknownEmployer(ctx); err != nil {
		log.Fatalf("[%s] %v", toolName, err)
	}

	posterAlias, err := st.DetectPosterAlias(ctx)
	if err != nil {
		log.Fatalf("[%s] Schema probe: %v", toolName, err)
	}
	log.Printf("[%s] posted_by alias column present: %t", toolName, posterAlias)

	pub := newPublisher(ctx, cfg.RedisURL)
	pub.RunStarted(ctx, toolName)

	r := reconcile.New(st, reconcile.Options{
		Strategy:    cfg.Strategy,
		PosterAlias: posterAlias,
	})

	stats, err := r.Run(ctx, jobs, emails)
	if err != nil {
		log.Fatalf("[%s] %v", toolName, err)
	}

	log.Println(stats.Summary(toolName))
	pub.RunFinished(ctx, toolName, stats)
	os.Exit(stats.ExitCode())
}

func newPublisher(ctx context.Context, redisURL string) *events.Publisher {
	if redisURL == "" {
		return nil
	}
	rdb, err := db.NewRedisClient(ctx, redisURL)
	if err != nil {
		slog.Warn("redis unavailable — run events disabled", "err", err)
		return nil
	}
	return events.New(rdb)
}
