// Package legacy defines the WordPress export records the migration reads,
// and loads them from static JSON input files.
package legacy

// User mirrors one entry of the exported wp_users/usermeta dump.
type User struct {
	ID          int64    `json:"ID"`
	Email       string   `json:"user_email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	DisplayName string   `json:"display_name"`
	Login       string   `json:"user_login"`
	Roles       []string `json:"roles"`
	Description string   `json:"description"`
	Registered  string   `json:"user_registered"` // "2006-01-02 15:04:05", UTC
}

// Job mirrors one entry of the exported job-listing post dump. Meta carries
// the plugin's arbitrary string-keyed postmeta bag.
type Job struct {
	ID         int64    `json:"ID"`
	Title      string   `json:"post_title"`
	Content    string   `json:"post_content"`
	Status     string   `json:"post_status"`
	Author     int64    `json:"post_author"`
	Date       string   `json:"post_date"`
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
	Meta       Meta     `json:"meta"`
}

// JobEmail is one row of the optional job→employer-email mapping file,
// assembled by hand when neither ids nor author links survived the export.
type JobEmail struct {
	JobID         int64  `json:"wp_job_id"`
	EmployerEmail string `json:"employer_email"`
	EmployerID    int64  `json:"wp_employer_id,omitempty"`
}
