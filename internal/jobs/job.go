package jobs

import (
	"strings"
)

const (
	// UnknownField is the sentinel stored when a provider omits a textual field.
	UnknownField = "N/A"

	// MaxDescriptionLen caps stored descriptions to bound memory per record.
	MaxDescriptionLen = 1000
)

// Job is a normalized posting independent of the provider it came from.
// Title, Company, Location, Description and Source are always set, defaulting
// to the UnknownField sentinel. Records are immutable once built.
type Job struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	SalaryMin   *float64 `json:"salary_min,omitempty"`
	SalaryMax   *float64 `json:"salary_max,omitempty"`
	ApplyURL    string   `json:"apply_url,omitempty"`
	Source      string   `json:"source"`
	DatePosted  string   `json:"date_posted,omitempty"`
	JobType     string   `json:"job_type,omitempty"`
	Experience  string   `json:"experience_level,omitempty"`
}

// New builds a Job, defaulting the always-present textual fields and capping
// the description length.
func New(title, company, location, description, source string) *Job {
	return &Job{
		Title:       orUnknown(title),
		Company:     orUnknown(company),
		Location:    orUnknown(location),
		Description: TruncateDescription(description),
		Source:      orUnknown(source),
	}
}

// DedupKey identifies a posting for deduplication purposes: the
// case-insensitive, whitespace-trimmed (title, company) pair.
func (j *Job) DedupKey() string {
	title := strings.ToLower(strings.TrimSpace(j.Title))
	company := strings.ToLower(strings.TrimSpace(j.Company))
	return title + "\x00" + company
}

// HasSalaryRange reports whether both salary bounds are present.
func (j *Job) HasSalaryRange() bool {
	return j.SalaryMin != nil && j.SalaryMax != nil
}

// TruncateDescription caps a description to MaxDescriptionLen runes.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxDescriptionLen {
		return s
	}
	return string(runes[:MaxDescriptionLen])
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return UnknownField
	}
	return s
}
