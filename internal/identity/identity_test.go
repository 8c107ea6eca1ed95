package identity_test

import (
	"testing"

	"github.com/google/uuid"

	"osteojob/migration-service/internal/identity"
)

// ── Determinism ────────────────────────────────────────────────────────────

func TestUserID_Deterministic(t *testing.T) {
	for _, id := range []int64{1, 42, 999999} {
		if identity.UserID(id) != identity.UserID(id) {
			t.Errorf("UserID(%d) not stable across calls", id)
		}
	}
}

// Pinned values: these must never change across releases, or re-runs would
// duplicate every previously migrated record.
func TestPinnedDerivations(t *testing.T) {
	cases := []struct {
		got  uuid.UUID
		want string
	}{
		{identity.UserID(1), "ea21adcf-be47-5d0d-9553-dade49d984de"},
		{identity.JobID(1), "e860e999-3e37-569b-8efd-7f43b36fc112"},
		{identity.UserID(0), "31c7bb51-108d-5d3c-bc5d-da10064e53ca"},
	}
	for _, tc := range cases {
		if tc.got.String() != tc.want {
			t.Errorf("derived %s, want pinned %s", tc.got, tc.want)
		}
	}
}

// ── Separation ─────────────────────────────────────────────────────────────

func TestUserAndJobNamespacesAreDisjoint(t *testing.T) {
	if identity.UserID(7) == identity.JobID(7) {
		t.Error("UserID(7) and JobID(7) collide — role tag not part of the name")
	}
}

func TestDistinctIDsDistinctUUIDs(t *testing.T) {
	seen := map[uuid.UUID]int64{}
	for id := int64(1); id <= 1000; id++ {
		u := identity.UserID(id)
		if prev, dup := seen[u]; dup {
			t.Fatalf("UserID collision between %d and %d", prev, id)
		}
		seen[u] = id
	}
}

// ── Edge inputs ────────────────────────────────────────────────────────────

func TestDegenerateLegacyIDs(t *testing.T) {
	for _, id := range []int64{0, -1, -999} {
		u := identity.UserID(id)
		if u == uuid.Nil {
			t.Errorf("UserID(%d) is the nil UUID", id)
		}
		if u.Version() != 5 {
			t.Errorf("UserID(%d) version = %d, want 5 (name-based SHA-1)", id, u.Version())
		}
	}
}

func TestGeneratedIDsAreVersion5(t *testing.T) {
	if v := identity.UserID(123).Version(); v != 5 {
		t.Errorf("UserID version = %d, want 5", v)
	}
	if v := identity.JobID(123).Version(); v != 5 {
		t.Errorf("JobID version = %d, want 5", v)
	}
}

// ── Sentinel ───────────────────────────────────────────────────────────────

func TestUnknownEmployerIsFixed(t *testing.T) {
	if identity.UnknownEmployer == uuid.Nil {
		t.Fatal("sentinel must not be the nil UUID")
	}
	// The sentinel must never collide with a derived id.
	if identity.UnknownEmployer == identity.UserID(0) {
		t.Error("sentinel collides with UserID(0)")
	}
}
