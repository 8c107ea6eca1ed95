// Package loader streams transformed records into the target store in
// fixed-size batches, counting outcomes instead of aborting.
//
// A duplicate on the natural key (profile email, job wp_post_id) is an
// expected idempotent outcome, not an error. A batch that fails wholesale is
// counted as errored and the run moves on to the next batch.
package loader

import (
	"context"
	"log"
	"time"

	"osteojob/migration-service/internal/model"
	"osteojob/migration-service/internal/report"
)

const (
	// paceEvery / paceDelay throttle writes so a full import does not trip
	// the managed store's rate limits. Pacing, not concurrency control.
	paceEvery = 500
	paceDelay = 250 * time.Millisecond
)

// BatchCounts reports per-batch outcomes from a store writer.
type BatchCounts struct {
	Attempted int
	Inserted  int
	Duplicate int
	Errored   int
}

// ProfileBatchWriter persists one batch of profiles, absorbing natural-key
// conflicts and reporting them in the counts.
type ProfileBatchWriter interface {
	WriteProfiles(ctx context.Context, batch []model.Profile) (BatchCounts, error)
}

// JobBatchWriter persists one batch of jobs.
type JobBatchWriter interface {
	WriteJobs(ctx context.Context, batch []model.Job) (BatchCounts, error)
}

// Profiles loads rows through w in batches of batchSize and returns the
// merged run counters.
func Profiles(ctx context.Context, w ProfileBatchWriter, rows []model.Profile, batchSize int) report.Stats {
	start := time.Now()
	var stats report.Stats

	batches := chunk(rows, batchSize)
	sincePause := 0
	for i, batch := range batches {
		counts, err := w.WriteProfiles(ctx, batch)
		if err != nil {
			log.Printf("[loader] profile batch %d/%d failed: %v — continuing", i+1, len(batches), err)
			stats.Attempted += len(batch)
			stats.Errored += len(batch)
			continue
		}
		mergeCounts(&stats, counts)
		log.Printf("[loader] profile batch %d/%d — attempted=%d inserted=%d duplicates=%d errors=%d",
			i+1, len(batches), counts.Attempted, counts.Inserted, counts.Duplicate, counts.Errored)
		sincePause = pause(sincePause + len(batch))
	}

	stats.Duration = time.Since(start)
	return stats
}

// Jobs loads rows through w in batches of batchSize and returns the merged
// run counters.
func Jobs(ctx context.Context, w JobBatchWriter, rows []model.Job, batchSize int) report.Stats {
	start := time.Now()
	var stats report.Stats

	batches := chunk(rows, batchSize)
	sincePause := 0
	for i, batch := range batches {
		counts, err := w.WriteJobs(ctx, batch)
		if err != nil {
			log.Printf("[loader] job batch %d/%d failed: %v — continuing", i+1, len(batches), err)
			stats.Attempted += len(batch)
			stats.Errored += len(batch)
			continue
		}
		mergeCounts(&stats, counts)
		log.Printf("[loader] job batch %d/%d — attempted=%d inserted=%d duplicates=%d errors=%d",
			i+1, len(batches), counts.Attempted, counts.Inserted, counts.Duplicate, counts.Errored)
		sincePause = pause(sincePause + len(batch))
	}

	stats.Duration = time.Since(start)
	return stats
}

func mergeCounts(stats *report.Stats, c BatchCounts) {
	stats.Attempted += c.Attempted
	stats.Inserted += c.Inserted
	stats.Duplicate += c.Duplicate
	stats.Errored += c.Errored
}

// chunk partitions rows into fixed-size batches; the last batch may be short.
func chunk[T any](rows []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	var out [][]T
	for len(rows) > size {
		out = append(out, rows[:size])
		rows = rows[size:]
	}
	if len(rows) > 0 {
		out = append(out, rows)
	}
	return out
}

// pause sleeps once processed records since the last pause reach paceEvery,
// returning the carried-over count.
func pause(processed int) int {
	if processed < paceEvery {
		return processed
	}
	time.Sleep(paceDelay)
	return 0
}
