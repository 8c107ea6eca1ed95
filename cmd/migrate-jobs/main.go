// osteojob migrate-jobs — one-shot WordPress job import.
//
// Reads the legacy job export, transforms each post into a jobs row with a
// preliminary employer reference (direct id mapping or the unknown-employer
// sentinel), and bulk-loads the target store. Run migrate-users first;
// run reconcile afterwards to repair employer references.
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
	"osteojob/migration-service/internal/loader"
	"osteojob/migration-service/internal/model"
	"osteojob/migration-service/internal/store"
	"osteojob/migration-service/internal/transform"
)

const (
	toolName  = "migrate-jobs"
	jobsFile  = "data/legacy-jobs.json"
	batchSize = 100
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
	log.Printf("[%s] Loaded %d legacy jobs from %s", toolName, len(jobs), jobsFile)

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[%s] PostgreSQL: %v", toolName, err)
	}
	defer pool.Close()

	st := store.New(pool)

	// The sentinel profile must exist before any job can fall back to it.
	if err := st.EnsureUnknownEmployer(ctx); err != nil {
		log.Fatalf("[%s] %v", toolName, err)
	}

	pub := newPublisher(ctx, cfg.RedisURL)
	pub.RunStarted(ctx, toolName)

	rows := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, transform.Job(j))
	}

	stats := loader.Jobs(ctx, st, rows, batchSize)

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
