package legacy_test

import (
	"testing"
	"time"

	"osteojob/migration-service/internal/legacy"
)

// ── FirstNonEmpty ──────────────────────────────────────────────────────────

func TestMetaFirstNonEmpty(t *testing.T) {
	m := legacy.Meta{
		"primary":  "",
		"fallback": "  value  ",
		"last":     "other",
	}

	cases := []struct {
		name string
		keys []string
		want string
	}{
		{"skips empty primary", []string{"primary", "fallback"}, "value"},
		{"takes first present", []string{"fallback", "last"}, "value"},
		{"missing keys yield empty", []string{"nope", "also-nope"}, ""},
		{"no keys yield empty", nil, ""},
		{"whitespace-only counts as empty", []string{"primary"}, ""},
	}
	for _, tc := range cases {
		if got := m.FirstNonEmpty(tc.keys...); got != tc.want {
			t.Errorf("%s: FirstNonEmpty(%v) = %q, want %q", tc.name, tc.keys, got, tc.want)
		}
	}
}

// ── Int ────────────────────────────────────────────────────────────────────

func TestMetaInt(t *testing.T) {
	m := legacy.Meta{
		"views":    "42",
		"padded":   " 7 ",
		"garbage":  "12abc",
		"negative": "-3",
	}

	cases := []struct {
		key  string
		want int64
	}{
		{"views", 42},
		{"padded", 7},
		{"garbage", 0},
		{"negative", -3},
		{"missing", 0},
	}
	for _, tc := range cases {
		if got := m.Int(tc.key); got != tc.want {
			t.Errorf("Int(%q) = %d, want %d", tc.key, got, tc.want)
		}
	}
}

// ── Time ───────────────────────────────────────────────────────────────────

func TestMetaTime(t *testing.T) {
	const layout = "2006-01-02 15:04:05"
	m := legacy.Meta{
		"good": "2019-03-05 12:30:00",
		"bad":  "05/03/2019",
	}

	got := m.Time("good", layout)
	want := time.Date(2019, 3, 5, 12, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Time(good) = %v, want %v", got, want)
	}

	if !m.Time("bad", layout).IsZero() {
		t.Error("unparseable value should yield the zero time")
	}
	if !m.Time("missing", layout).IsZero() {
		t.Error("missing key should yield the zero time")
	}
}
