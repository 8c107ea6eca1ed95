package store

import "time"

// nullStr maps "" to SQL NULL.
func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullID maps non-positive legacy ids to SQL NULL.
func nullID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

// nullTime maps the zero time to SQL NULL.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
