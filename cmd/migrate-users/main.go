// osteojob migrate-users — one-shot WordPress user import.
//
// Reads the legacy user export, transforms each user into a profile row, and
// bulk-loads the target store in fixed-size batches. Duplicates (by email)
// are expected on re-runs and never fail the run.
//
// Exit code 0 unless a genuine persistence error was recorded.
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
	toolName  = "migrate-users"
	usersFile = "data/legacy-users.json"
	batchSize = 100
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[%s] Config error: %v", toolName, err)
	}

	ctx := context.Background()

	users, err := legacy.LoadUsers(usersFile)
	if err != nil {
		log.Fatalf("[%s] Input error: %v", toolName, err)
	}
	log.Printf("[%s] Loaded %d legacy users from %s", toolName, len(users), usersFile)

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[%s] PostgreSQL: %v", toolName, err)
	}
	defer pool.Close()

	pub := newPublisher(ctx, cfg.RedisURL)
	pub.RunStarted(ctx, toolName)

	rows := make([]model.Profile, 0, len(users))
	for _, u := range users {
		rows = append(rows, transform.User(u))
	}

	stats := loader.Profiles(ctx, store.New(pool), rows, batchSize)

	log.Println(stats.Summary(toolName))
	pub.RunFinished(ctx, toolName, stats)
	os.Exit(stats.ExitCode())
}

// newPublisher connects to Redis when configured. Event publishing is
// best-effort, so an unreachable Redis degrades to a warning.
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
