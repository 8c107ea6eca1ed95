package transform

import (
	"strings"
	"time"

	"osteojob/migration-service/internal/identity"
	"osteojob/migration-service/internal/legacy"
	"osteojob/migration-service/internal/model"
)

// Postmeta keys written by the legacy job-listing plugin.
const (
	metaEmployerID = "_job_employer_id"
	metaAuthorID   = "_job_author" // older plugin versions
	metaExcerpt    = "_job_excerpt"
	metaSalary     = "_job_salary"
	metaViews      = "_job_views"
	metaCountry    = "_job_country"
	metaCity       = "_job_city"
	metaPostedAt   = "_job_posted"
)

// excerptLimit caps derived excerpts at roughly this many characters.
const excerptLimit = 200

// Job maps a legacy job post onto a jobs row.
//
// The employer reference written here is preliminary: the direct UUID mapping
// of the meta employer id (falling back to the post author), or the
// unknown-employer sentinel when neither is present. The reconciler repairs
// it afterwards.
func Job(j legacy.Job) model.Job {
	employer := identity.UnknownEmployer
	if legacyEmployer := EmployerLegacyID(j); legacyEmployer > 0 {
		employer = identity.UserID(legacyEmployer)
	}

	excerpt := j.Meta.FirstNonEmpty(metaExcerpt)
	if excerpt == "" {
		excerpt = Excerpt(j.Content)
	}

	status := model.JobStatusDraft
	if j.Status == "publish" {
		status = model.JobStatusActive
	}

	city := j.Meta.FirstNonEmpty(metaCity)
	if city == "" && len(j.Locations) > 0 {
		city = strings.TrimSpace(j.Locations[0])
	}

	posted := j.Meta.Time(metaPostedAt, wpTimeLayout)
	if posted.IsZero() {
		if t, err := time.ParseInLocation(wpTimeLayout, strings.TrimSpace(j.Date), time.UTC); err == nil {
			posted = t
		}
	}

	return model.Job{
		ID:          identity.JobID(j.ID),
		EmployerID:  employer,
		Title:       strings.TrimSpace(j.Title),
		Description: j.Content,
		Excerpt:     excerpt,
		Country:     j.Meta.FirstNonEmpty(metaCountry),
		City:        city,
		SalaryText:  j.Meta.FirstNonEmpty(metaSalary),
		Status:      status,
		Views:       j.Meta.Int(metaViews),
		WPPostID:    j.ID,
		PostedAt:    posted,
	}
}

// EmployerLegacyID resolves the legacy employer id a job points at: the meta
// employer key, then the older author meta key, then the post author field.
// Zero means the job carries no employer linkage at all.
func EmployerLegacyID(j legacy.Job) int64 {
	if id := j.Meta.Int(metaEmployerID); id > 0 {
		return id
	}
	if id := j.Meta.Int(metaAuthorID); id > 0 {
		return id
	}
	return j.Author
}

// Excerpt derives a short listing excerpt from the first ~200 characters of
// the body, cut at a word boundary. Rune-safe.
func Excerpt(body string) string {
	s := strings.Join(strings.Fields(body), " ")
	runes := []rune(s)
	if len(runes) <= excerptLimit {
		return s
	}
	cut := string(runes[:excerptLimit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
