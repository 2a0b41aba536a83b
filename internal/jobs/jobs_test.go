package jobs

import (
	"strings"
	"testing"
)

func TestNewDefaultsMissingFields(t *testing.T) {
	t.Parallel()

	job := New("", "  ", "", "", "")
	if job.Title != UnknownField || job.Company != UnknownField || job.Location != UnknownField || job.Source != UnknownField {
		t.Fatalf("expected sentinel defaults, got %+v", job)
	}
}

func TestTruncateDescription(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("я", MaxDescriptionLen+100)
	job := New("Go Developer", "Acme", "Remote", long, "adzuna")
	if got := len([]rune(job.Description)); got != MaxDescriptionLen {
		t.Fatalf("expected description capped at %d runes, got %d", MaxDescriptionLen, got)
	}

	short := "short description"
	if TruncateDescription(short) != short {
		t.Fatalf("expected short description unchanged")
	}
}

func TestDedupIdempotent(t *testing.T) {
	t.Parallel()

	list := &Jobs{Items: []*Job{
		New("Go Developer", "Acme", "Berlin", "", "adzuna"),
		New("  go developer ", "ACME", "Munich", "", "jsearch"),
		New("Go Developer", "Globex", "Berlin", "", "remotive"),
	}}

	list.Dedup()
	if list.Len() != 2 {
		t.Fatalf("expected 2 unique jobs, got %d", list.Len())
	}
	if list.Items[0].Source != "adzuna" {
		t.Fatalf("expected first occurrence to win, got %s", list.Items[0].Source)
	}

	// Running dedup again must not change the result.
	list.Dedup()
	if list.Len() != 2 {
		t.Fatalf("dedup is not idempotent: got %d items", list.Len())
	}
}

func TestSortByRelevance(t *testing.T) {
	t.Parallel()

	list := &Jobs{Items: []*Job{
		New("Backend Engineer", "A", "x", "we use golang daily", "adzuna"),
		New("Frontend Engineer", "B", "x", "react and css", "remotive"),
		New("Golang Developer", "C", "x", "", "adzuna"),
		New("Backend Engineer", "D", "x", "golang services", "jsearch"),
	}}

	list.SortByRelevance("golang", "jsearch")

	order := make([]string, 0, list.Len())
	for _, job := range list.Items {
		order = append(order, job.Company)
	}

	// Title match first, then description matches with the preferred source
	// winning the tie, then the rest in original order.
	want := []string{"C", "D", "A", "B"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", order, want)
		}
	}
}

func TestSortByRelevanceStable(t *testing.T) {
	t.Parallel()

	list := &Jobs{Items: []*Job{
		New("Job One", "A", "x", "", "adzuna"),
		New("Job Two", "B", "x", "", "adzuna"),
		New("Job Three", "C", "x", "", "adzuna"),
	}}

	list.SortByRelevance("golang", "jsearch")

	if list.Items[0].Company != "A" || list.Items[1].Company != "B" || list.Items[2].Company != "C" {
		t.Fatalf("expected stable order for full ties")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	list := &Jobs{Items: []*Job{
		New("a", "a", "a", "", "s"),
		New("b", "b", "b", "", "s"),
		New("c", "c", "c", "", "s"),
	}}

	list.Truncate(2)
	if list.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", list.Len())
	}

	list.Truncate(10)
	if list.Len() != 2 {
		t.Fatalf("truncate above length must be a no-op, got %d", list.Len())
	}
}

func TestReportBySource(t *testing.T) {
	t.Parallel()

	min, max := 40000.0, 60000.0
	list := &Jobs{Items: []*Job{
		{Title: "Go Developer", Company: "Acme", Location: "Berlin", Source: "adzuna", SalaryMin: &min, SalaryMax: &max},
		{Title: "Rust Developer", Company: "Globex", Location: "Remote", Source: "remotive", JobType: "Remote"},
	}}

	report := list.ReportBySource()
	adzuna, ok := report["adzuna"]
	if !ok || len(adzuna) != 1 {
		t.Fatalf("expected one adzuna entry, got %+v", report)
	}
	if adzuna[0]["salary"] != "40000-60000" {
		t.Fatalf("unexpected salary: %q", adzuna[0]["salary"])
	}
	if report["remotive"][0]["job_type"] != "Remote" {
		t.Fatalf("expected job_type for remotive entry")
	}
}
