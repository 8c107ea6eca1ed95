// osteojob verify — post-migration integrity checks.
//
// Runs the check suite once and exits, or — with VERIFY_INTERVAL_HOURS set —
// keeps running it on a cron interval (immediate first pass) so a staged
// migration can be watched while the legacy site is still live.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"osteojob/migration-service/internal/config"
	"osteojob/migration-service/internal/db"
	"osteojob/migration-service/internal/verify"
)

const toolName = "verify"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[%s] Config error: %v", toolName, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[%s] PostgreSQL: %v", toolName, err)
	}
	defer pool.Close()

	if cfg.VerifyIntervalHours == 0 {
		result, err := verify.Run(ctx, pool)
		if err != nil {
			log.Fatalf("[%s] %v", toolName, err)
		}
		log.Println(result.Summary())
		if result.Failed() {
			os.Exit(1)
		}
		return
	}

	// Interval mode: cron fires every N hours, plus one immediate pass.
	c := cron.New(cron.WithLogger(cron.DefaultLogger))
	spec := fmt.Sprintf("@every %dh", cfg.VerifyIntervalHours)
	if _, err := c.AddFunc(spec, func() { runOnce(ctx, pool) }); err != nil {
		log.Fatalf("[%s] cron.AddFunc: %v", toolName, err)
	}
	c.Start()
	log.Printf("[%s] Cron started — spec: %s", toolName, spec)

	go runOnce(ctx, pool)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	c.Stop()
	log.Printf("[%s] Stopped.", toolName)
}

// runOnce executes one check pass in interval mode; defects are logged
// rather than fatal so the watcher keeps running.
func runOnce(ctx context.Context, pool *pgxpool.Pool) {
	result, err := verify.Run(ctx, pool)
	if err != nil {
		log.Printf("[%s] Check pass failed: %v", toolName, err)
		return
	}
	log.Println(result.Summary())
	if result.Failed() {
		log.Printf("[%s] Integrity defects found — see counts above", toolName)
	}
}
