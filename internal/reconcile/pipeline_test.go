package reconcile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"osteojob/migration-service/internal/config"
	"osteojob/migration-service/internal/identity"
	"osteojob/migration-service/internal/legacy"
	"osteojob/migration-service/internal/loader"
	"osteojob/migration-service/internal/model"
	"osteojob/migration-service/internal/reconcile"
	"osteojob/migration-service/internal/transform"
)

// memStore backs a full transform→load→reconcile pass in memory, keyed the
// way the real store is: profiles by email, jobs by legacy post id.
type memStore struct {
	profilesByEmail map[string]model.Profile
	jobsByWPID      map[int64]model.Job
}

func newMemStore() *memStore {
	return &memStore{
		profilesByEmail: map[string]model.Profile{},
		jobsByWPID:      map[int64]model.Job{},
	}
}

func (m *memStore) WriteProfiles(_ context.Context, batch []model.Profile) (loader.BatchCounts, error) {
	counts := loader.BatchCounts{Attempted: len(batch)}
	for _, p := range batch {
		if _, dup := m.profilesByEmail[p.Email]; dup {
			counts.Duplicate++
			continue
		}
		m.profilesByEmail[p.Email] = p
		counts.Inserted++
	}
	return counts, nil
}

func (m *memStore) WriteJobs(_ context.Context, batch []model.Job) (loader.BatchCounts, error) {
	counts := loader.BatchCounts{Attempted: len(batch)}
	for _, j := range batch {
		if _, dup := m.jobsByWPID[j.WPPostID]; dup {
			counts.Duplicate++
			continue
		}
		m.jobsByWPID[j.WPPostID] = j
		counts.Inserted++
	}
	return counts, nil
}

func (m *memStore) ListProfiles(context.Context) ([]model.Profile, error) {
	out := make([]model.Profile, 0, len(m.profilesByEmail))
	for _, p := range m.profilesByEmail {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) ListJobs(context.Context) ([]model.Job, error) {
	out := make([]model.Job, 0, len(m.jobsByWPID))
	for _, j := range m.jobsByWPID {
		out = append(out, j)
	}
	return out, nil
}

func (m *memStore) UpdateJobEmployer(_ context.Context, jobID, employerID uuid.UUID, _ bool) error {
	for wpID, j := range m.jobsByWPID {
		if j.ID == jobID {
			j.EmployerID = employerID
			m.jobsByWPID[wpID] = j
		}
	}
	return nil
}

func (m *memStore) BackfillProfileLegacyID(_ context.Context, profileID uuid.UUID, legacyID int64) error {
	for email, p := range m.profilesByEmail {
		if p.ID == profileID {
			p.WPUserID = legacyID
			m.profilesByEmail[email] = p
		}
	}
	return nil
}

// Three users (two candidates, one employer) and two jobs authored by the
// employer flow through transform → load → reconcile: three profiles, two
// jobs, both owned by the employer, no sentinel anywhere.
func TestPipeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()

	users := []legacy.User{
		{ID: 1, Email: "anna@x.test", FirstName: "Anna", Roles: []string{"candidate"}},
		{ID: 2, Email: "ben@x.test", FirstName: "Ben", Roles: []string{"candidate"}},
		{ID: 3, Email: "clinic@x.test", DisplayName: "Clinic", Roles: []string{"employer"}},
	}
	jobs := []legacy.Job{
		{ID: 10, Title: "Associate osteopath", Status: "publish", Author: 3, Meta: legacy.Meta{}},
		{ID: 11, Title: "Locum cover", Status: "publish", Meta: legacy.Meta{"_job_employer_id": "3"}},
	}

	profileRows := make([]model.Profile, 0, len(users))
	for _, u := range users {
		profileRows = append(profileRows, transform.User(u))
	}
	if stats := loader.Profiles(ctx, st, profileRows, 2); stats.Inserted != 3 {
		t.Fatalf("profile load stats = %+v, want 3 inserted", stats)
	}

	jobRows := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		jobRows = append(jobRows, transform.Job(j))
	}
	if stats := loader.Jobs(ctx, st, jobRows, 2); stats.Inserted != 2 {
		t.Fatalf("job load stats = %+v, want 2 inserted", stats)
	}

	stats, err := reconcile.New(st, reconcile.Options{Strategy: config.StrategyDirect}).Run(ctx, jobs, nil)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	if stats.Updated != 2 || stats.PlaceholderUsed != 0 || stats.JobNotFound != 0 {
		t.Fatalf("reconcile stats = %+v, want 2 clean updates", stats)
	}

	employerID := identity.UserID(3)
	for _, wpID := range []int64{10, 11} {
		j := st.jobsByWPID[wpID]
		if j.EmployerID != employerID {
			t.Errorf("job %d employer = %s, want the employer profile %s", wpID, j.EmployerID, employerID)
		}
		if j.EmployerID == identity.UnknownEmployer {
			t.Errorf("job %d fell back to the sentinel", wpID)
		}
	}
	if len(st.profilesByEmail) != 3 {
		t.Errorf("profiles = %d, want 3", len(st.profilesByEmail))
	}
}

// Re-running the whole pipeline must not grow the store — the derived ids
// and natural keys make every pass idempotent.
func TestPipeline_RerunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()

	users := []legacy.User{
		{ID: 3, Email: "clinic@x.test", DisplayName: "Clinic", Roles: []string{"employer"}},
	}
	jobs := []legacy.Job{
		{ID: 10, Title: "Associate osteopath", Status: "publish", Author: 3, Meta: legacy.Meta{}},
	}

	for pass := 1; pass <= 2; pass++ {
		var profileRows []model.Profile
		for _, u := range users {
			profileRows = append(profileRows, transform.User(u))
		}
		loader.Profiles(ctx, st, profileRows, 10)

		var jobRows []model.Job
		for _, j := range jobs {
			jobRows = append(jobRows, transform.Job(j))
		}
		loader.Jobs(ctx, st, jobRows, 10)
	}

	if len(st.profilesByEmail) != 1 || len(st.jobsByWPID) != 1 {
		t.Errorf("store grew on re-run: %d profiles, %d jobs, want 1 each",
			len(st.profilesByEmail), len(st.jobsByWPID))
	}
}
