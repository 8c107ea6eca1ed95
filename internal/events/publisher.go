// Package events publishes migration run lifecycle events to Redis, the same
// channel the board's services use to forward events to admin dashboards.
// Publishing is best-effort: a failure is logged and never fails the run.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"osteojob/migration-service/internal/report"
)

// Event channel names.
const (
	EventRunStarted  = "EVENT_MIGRATION_STARTED"
	EventRunFinished = "EVENT_MIGRATION_FINISHED"
)

// Publisher wraps the Redis client. A nil Publisher is valid and publishes
// nothing — runs without REDIS_URL stay fully functional.
type Publisher struct {
	rdb *redis.Client
}

// New returns a Publisher, or nil when rdb is nil.
func New(rdb *redis.Client) *Publisher {
	if rdb == nil {
		return nil
	}
	return &Publisher{rdb: rdb}
}

// RunStarted announces a tool run.
func (p *Publisher) RunStarted(ctx context.Context, tool string) {
	p.publish(ctx, EventRunStarted, map[string]any{
		"tool": tool,
		"at":   time.Now().UTC().Format(time.RFC3339),
	})
}

// RunFinished announces a completed run with its final counters.
func (p *Publisher) RunFinished(ctx context.Context, tool string, stats report.Stats) {
	p.publish(ctx, EventRunFinished, map[string]any{
		"tool":            tool,
		"at":              time.Now().UTC().Format(time.RFC3339),
		"attempted":       stats.Attempted,
		"inserted":        stats.Inserted,
		"duplicates":      stats.Duplicate,
		"updated":         stats.Updated,
		"jobNotFound":     stats.JobNotFound,
		"placeholderUsed": stats.PlaceholderUsed,
		"multipleMatches": stats.MultipleMatches,
		"errors":          stats.Errored,
		"durationMs":      stats.Duration.Milliseconds(),
	})
}

func (p *Publisher) publish(ctx context.Context, channel string, payload map[string]any) {
	if p == nil {
		return
	}
	body, _ := json.Marshal(payload)
	if err := p.rdb.Publish(ctx, channel, body).Err(); err != nil {
		slog.Warn("publish migration event failed", "channel", channel, "err", err)
	}
}
