// Package identity derives stable target-store identifiers from legacy
// WordPress numeric ids.
//
// Every id is a name-based (SHA-1, version 5) UUID under one fixed namespace,
// so repeated migration runs derive the same identifier for the same legacy
// record — the property the whole pipeline's idempotence rests on.
package identity

import (
	"strconv"

	"github.com/google/uuid"
)

// namespace is fixed forever. Changing it would orphan every previously
// migrated record.
var namespace = uuid.MustParse("9f2c1a44-73d0-4e6b-8b1e-6e1f3a9c5d20")

// UnknownEmployer is the sentinel profile id assigned to jobs whose real
// employer cannot be resolved. The matching placeholder profile row must
// exist in the target store before jobs are loaded.
var UnknownEmployer = uuid.MustParse("00000000-0000-4000-8000-00000000dead")

// UserID derives the profile id for a legacy user id.
func UserID(legacyID int64) uuid.UUID {
	return derive("wp-user-" + strconv.FormatInt(legacyID, 10))
}

// JobID derives the job id for a legacy post id.
func JobID(legacyID int64) uuid.UUID {
	return derive("wp-job-" + strconv.FormatInt(legacyID, 10))
}

func derive(name string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(name))
}
