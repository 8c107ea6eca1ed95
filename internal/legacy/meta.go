package legacy

import (
	"strconv"
	"strings"
	"time"
)

// Meta is the string-keyed postmeta bag attached to a legacy job. Accessors
// make the fallback chains explicit instead of scattering raw map lookups:
// every read states its alternatives and its default.
type Meta map[string]string

// FirstNonEmpty returns the first key whose trimmed value is non-empty,
// or "" when none is.
func (m Meta) FirstNonEmpty(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(m[k]); v != "" {
			return v
		}
	}
	return ""
}

// Int parses the value under key as a base-10 integer. Missing or
// non-numeric values yield 0.
func (m Meta) Int(key string) int64 {
	v := strings.TrimSpace(m[key])
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Time parses the value under key with the given layout, UTC-assumed.
// Missing or unparseable values yield the zero time.
func (m Meta) Time(key, layout string) time.Time {
	v := strings.TrimSpace(m[key])
	if v == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(layout, v, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
