// Package report holds the run-scoped counters every migration tool threads
// through its components and prints as a final summary block.
//
// One Stats value per run, passed and merged explicitly — never ambient
// package state.
package report

import (
	"fmt"
	"strings"
	"time"
)

// Stats accumulates per-record outcomes across one run.
type Stats struct {
	Attempted int
	Inserted  int
	Duplicate int
	Errored   int

	Updated         int
	JobNotFound     int
	PlaceholderUsed int
	MultipleMatches int
	AliasSkipped    int

	Duration time.Duration
}

// Merge adds other's counters into s. Duration is summed.
func (s *Stats) Merge(other Stats) {
	s.Attempted += other.Attempted
	s.Inserted += other.Inserted
	s.Duplicate += other.Duplicate
	s.Errored += other.Errored
	s.Updated += other.Updated
	s.JobNotFound += other.JobNotFound
	s.PlaceholderUsed += other.PlaceholderUsed
	s.MultipleMatches += other.MultipleMatches
	s.AliasSkipped += other.AliasSkipped
	s.Duration += other.Duration
}

// ExitCode is 1 when any per-record error was recorded, 0 otherwise.
// Duplicates and placeholder fallbacks alone never fail a run.
func (s *Stats) ExitCode() int {
	if s.Errored > 0 {
		return 1
	}
	return 0
}

// Summary renders the human-readable final block. Only counters that can
// occur for the given tool are expected to be non-zero; zeros print anyway
// so runs are comparable.
func (s *Stats) Summary(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "─── %s ───\n", title)
	fmt.Fprintf(&b, "  attempted:        %d\n", s.Attempted)
	fmt.Fprintf(&b, "  inserted:         %d\n", s.Inserted)
	fmt.Fprintf(&b, "  duplicates:       %d\n", s.Duplicate)
	fmt.Fprintf(&b, "  updated:          %d\n", s.Updated)
	fmt.Fprintf(&b, "  job not found:    %d\n", s.JobNotFound)
	fmt.Fprintf(&b, "  placeholder used: %d\n", s.PlaceholderUsed)
	fmt.Fprintf(&b, "  multiple matches: %d\n", s.MultipleMatches)
	fmt.Fprintf(&b, "  alias skipped:    %d\n", s.AliasSkipped)
	fmt.Fprintf(&b, "  errors:           %d\n", s.Errored)
	fmt.Fprintf(&b, "  duration:         %s", s.Duration.Round(time.Millisecond))
	return b.String()
}
