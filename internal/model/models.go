// Package model defines the target-store row types written by the migration.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile roles mirror the role column check constraint in PostgreSQL.
const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
)

// Job statuses mirror the status column check constraint.
const (
	JobStatusActive = "active"
	JobStatusDraft  = "draft"
)

// Profile is one row of the profiles table. WPUserID is the legacy
// back-reference; zero means "not migrated" (stored as NULL).
type Profile struct {
	ID          uuid.UUID
	Email       string // natural key — unique in the target store
	DisplayName string
	Role        string
	Bio         string
	CompanyName string
	WPUserID    int64
	CreatedAt   time.Time
}

// Job is one row of the jobs table. EmployerID always resolves to a real
// profile or the unknown-employer sentinel, never NULL. WPPostID is the
// legacy back-reference used as the natural key during load.
type Job struct {
	ID          uuid.UUID
	EmployerID  uuid.UUID
	Title       string
	Description string
	Excerpt     string
	Country     string
	City        string
	SalaryText  string
	Status      string
	Views       int64
	WPPostID    int64
	PostedAt    time.Time
}
