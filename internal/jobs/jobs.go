package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Jobs is an ordered list of postings collected from one or more providers.
type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

// Append adds records to the end of the list, preserving order.
func (j *Jobs) Append(items ...*Job) {
	j.Items = append(j.Items, items...)
}

// Dedup removes postings sharing the same (title, company) key. The first
// occurrence wins regardless of source; relative order is preserved. The
// operation is idempotent.
func (j *Jobs) Dedup() {
	seen := make(map[string]struct{}, len(j.Items))
	unique := make([]*Job, 0, len(j.Items))

	for _, job := range j.Items {
		key := job.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, job)
	}

	j.Items = unique
}

// SortByRelevance orders postings by a deterministic multi-key heuristic:
// title containing the query term first, then description containing it, then
// postings from the preferred provider. Ties beyond all three keys keep their
// prior relative order.
func (j *Jobs) SortByRelevance(query, preferredSource string) {
	q := strings.ToLower(strings.TrimSpace(query))

	rank := func(job *Job) int {
		r := 0
		if q != "" && strings.Contains(strings.ToLower(job.Title), q) {
			r += 4
		}
		if q != "" && strings.Contains(strings.ToLower(job.Description), q) {
			r += 2
		}
		if preferredSource != "" && strings.EqualFold(job.Source, preferredSource) {
			r++
		}
		return r
	}

	sort.SliceStable(j.Items, func(a, b int) bool {
		return rank(j.Items[a]) > rank(j.Items[b])
	})
}

// Truncate keeps at most max postings from the front of the list.
func (j *Jobs) Truncate(max int) {
	if max >= 0 && len(j.Items) > max {
		j.Items = j.Items[:max]
	}
}

// ReportBySource groups postings by their provider for human-readable output.
func (j *Jobs) ReportBySource() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		entry := map[string]string{
			"title":    job.Title,
			"company":  job.Company,
			"location": job.Location,
			"url":      job.ApplyURL,
		}
		if job.HasSalaryRange() {
			entry["salary"] = fmt.Sprintf("%.0f-%.0f", *job.SalaryMin, *job.SalaryMax)
		}
		if job.JobType != "" {
			entry["job_type"] = job.JobType
		}
		report[job.Source] = append(report[job.Source], entry)
	}
	return report
}

// DumpToTmpFile writes the list as indented JSON to a temporary file and
// returns its name.
func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}
