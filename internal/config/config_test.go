package config_test

import (
	"testing"

	"osteojob/migration-service/internal/config"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load without DATABASE_URL should fail")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/osteojob")
	t.Setenv("REDIS_URL", "")
	t.Setenv("MIGRATE_MATCH_STRATEGY", "")
	t.Setenv("VERIFY_INTERVAL_HOURS", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Strategy != config.StrategyDirect {
		t.Errorf("default strategy = %q, want direct", cfg.Strategy)
	}
	if cfg.VerifyIntervalHours != 0 {
		t.Errorf("default verify interval = %d, want 0 (run once)", cfg.VerifyIntervalHours)
	}
}

func TestLoad_RejectsUnknownStrategy(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/osteojob")
	t.Setenv("MIGRATE_MATCH_STRATEGY", "psychic")

	if _, err := config.Load(); err == nil {
		t.Fatal("unknown strategy should fail fast")
	}
}

func TestLoad_RejectsBadInterval(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/osteojob")
	t.Setenv("MIGRATE_MATCH_STRATEGY", "")
	t.Setenv("VERIFY_INTERVAL_HOURS", "-2")

	if _, err := config.Load(); err == nil {
		t.Fatal("negative interval should fail fast")
	}
}

func TestParseStrategy(t *testing.T) {
	for _, valid := range []string{"direct", "email", "fuzzy"} {
		st, err := config.ParseStrategy(valid)
		if err != nil {
			t.Errorf("ParseStrategy(%q) returned unexpected error: %v", valid, err)
		}
		if string(st) != valid {
			t.Errorf("ParseStrategy(%q) = %q", valid, st)
		}
	}
	if _, err := config.ParseStrategy("DIRECT"); err == nil {
		t.Error("strategy values are lowercase slugs — uppercase should fail")
	}
}
