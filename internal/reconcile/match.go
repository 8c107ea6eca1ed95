package reconcile

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"osteojob/migration-service/internal/legacy"
	"osteojob/migration-service/internal/model"
	"osteojob/migration-service/internal/report"
	"osteojob/migration-service/internal/transform"
)

// dateTolerance is how far apart two posted dates may sit and still count as
// the same posting.
const dateTolerance = 1000 * time.Millisecond

// NormalizeTitle lowercases, trims, and collapses internal whitespace so
// titles differing only in spacing or case compare equal.
func NormalizeTitle(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeEmail trims and lowercases an email for natural-key comparison.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchJob finds the persisted job a legacy job corresponds to:
//
//   - normalized title equality is mandatory;
//   - country, city, and posted date each constrain the match only when both
//     sides carry a value — missing data never blocks a sub-criterion;
//   - among multiple satisfying candidates the one with the lowest id wins
//     and the multiple-matches counter records the ambiguity.
func (r *Reconciler) matchJob(j legacy.Job, stats *report.Stats) (uuid.UUID, bool) {
	candidates := r.jobsByTitle[NormalizeTitle(j.Title)]
	if len(candidates) == 0 {
		return uuid.Nil, false
	}

	// transform.Job applies the same meta fallback chains the loader used,
	// so both sides compare like for like.
	want := transform.Job(j)

	var (
		matched    uuid.UUID
		satisfying int
	)
	for _, c := range candidates {
		if !fieldsMatch(want, c) {
			continue
		}
		if satisfying == 0 {
			matched = c.ID
		}
		satisfying++
	}
	if satisfying > 1 {
		stats.MultipleMatches++
	}
	return matched, satisfying > 0
}

// fieldsMatch applies the conditional sub-criteria against one candidate.
// Titles are already equal by construction of the candidate set.
func fieldsMatch(want, candidate model.Job) bool {
	if !looseEqual(want.Country, candidate.Country) {
		return false
	}
	if !looseEqual(want.City, candidate.City) {
		return false
	}
	if !want.PostedAt.IsZero() && !candidate.PostedAt.IsZero() {
		diff := want.PostedAt.Sub(candidate.PostedAt)
		if diff < 0 {
			diff = -diff
		}
		if diff > dateTolerance {
			return false
		}
	}
	return true
}

// looseEqual compares two values case-insensitively, treating absence on
// either side as a match.
func looseEqual(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return true
	}
	return a == b
}
