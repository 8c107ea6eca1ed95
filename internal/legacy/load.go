package legacy

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadUsers reads a legacy user export file wholesale into memory.
// A missing or malformed file is fatal to the run.
func LoadUsers(path string) ([]User, error) {
	var users []User
	if err := loadJSON(path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// LoadJobs reads a legacy job export file wholesale into memory.
func LoadJobs(path string) ([]Job, error) {
	var jobs []Job
	if err := loadJSON(path, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// LoadJobEmails reads the optional job→employer-email mapping file.
func LoadJobEmails(path string) ([]JobEmail, error) {
	var rows []JobEmail
	if err := loadJSON(path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func loadJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
