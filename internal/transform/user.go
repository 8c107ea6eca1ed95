// Package transform maps legacy WordPress records into target-store rows.
// All fallback rules live here; a bad field never fails a record.
package transform

import (
	"strings"
	"time"

	"osteojob/migration-service/internal/identity"
	"osteojob/migration-service/internal/legacy"
	"osteojob/migration-service/internal/model"
)

// wpTimeLayout is the fixed timestamp format of WordPress exports, UTC-assumed.
const wpTimeLayout = "2006-01-02 15:04:05"

// employerRole is the role slug the job-board plugin assigned to employers.
const employerRole = "employer"

// User maps a legacy user onto a profile row.
//
// Role: employer iff the legacy role list carries the employer slug, else
// candidate. Display name: trimmed first+last, falling back to the legacy
// display name, then the login. Registration date: parsed from the fixed
// export format; current time when unparseable.
func User(u legacy.User) model.Profile {
	role := model.RoleCandidate
	for _, r := range u.Roles {
		if r == employerRole {
			role = model.RoleEmployer
			break
		}
	}

	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		name = strings.TrimSpace(u.DisplayName)
	}
	if name == "" {
		name = strings.TrimSpace(u.Login)
	}

	company := ""
	if role == model.RoleEmployer {
		// Employer accounts on the legacy board used the display name
		// as the practice/company name.
		company = strings.TrimSpace(u.DisplayName)
	}

	created, err := time.ParseInLocation(wpTimeLayout, strings.TrimSpace(u.Registered), time.UTC)
	if err != nil {
		created = time.Now().UTC()
	}

	return model.Profile{
		ID:          identity.UserID(u.ID),
		Email:       strings.TrimSpace(u.Email),
		DisplayName: name,
		Role:        role,
		Bio:         strings.TrimSpace(u.Description),
		CompanyName: company,
		WPUserID:    u.ID,
		CreatedAt:   created,
	}
}
