// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// MatchStrategy selects how the reconciler re-associates jobs with employers.
type MatchStrategy string

const (
	// StrategyDirect matches on the legacy employer id carried in job meta.
	StrategyDirect MatchStrategy = "direct"
	// StrategyEmail matches through an external job→employer-email mapping file.
	StrategyEmail MatchStrategy = "email"
	// StrategyFuzzy matches legacy jobs to persisted jobs on normalized
	// title plus conditional country/city/date criteria.
	StrategyFuzzy MatchStrategy = "fuzzy"
)

// ParseStrategy converts a raw string to a MatchStrategy, returning an error
// for unknown values.
func ParseStrategy(s string) (MatchStrategy, error) {
	st := MatchStrategy(s)
	switch st {
	case StrategyDirect, StrategyEmail, StrategyFuzzy:
		return st, nil
	}
	return "", fmt.Errorf("unknown match strategy %q (want direct, email or fuzzy)", s)
}

// Config holds all runtime configuration for the migration tools.
type Config struct {
	DatabaseURL string
	RedisURL    string // optional — empty disables run-event publishing

	Strategy MatchStrategy // reconcile only

	VerifyIntervalHours int // verify only; 0 means run once and exit
}

// Load reads environment variables and returns a validated Config.
// A local .env file is picked up first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	strategy := StrategyDirect
	if s := os.Getenv("MIGRATE_MATCH_STRATEGY"); s != "" {
		st, err := ParseStrategy(s)
		if err != nil {
			return nil, err
		}
		strategy = st
	}

	interval := 0
	if s := os.Getenv("VERIFY_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("VERIFY_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	return &Config{
		DatabaseURL:         dbURL,
		RedisURL:            os.Getenv("REDIS_URL"),
		Strategy:            strategy,
		VerifyIntervalHours: interval,
	}, nil
}
