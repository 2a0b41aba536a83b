package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubGenerator struct {
	responses  []string
	errs       []error
	calls      int
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return s.responses[len(s.responses)-1], nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func newTestExtractor(stub *stubGenerator) *Extractor {
	e := NewExtractor(stub, zap.NewNop())
	e.retryDelay = time.Millisecond
	return e
}

func TestExtract(t *testing.T) {
	stub := &stubGenerator{responses: []string{`{
		"target_roles": ["Backend Engineer"],
		"skills": ["go", "postgresql"],
		"experience_level": "senior",
		"total_experience_months": 96,
		"remote_preference": true
	}`}}

	basic, err := newTestExtractor(stub).Extract(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if basic.ExperienceLevel != "senior" {
		t.Fatalf("experience level = %q", basic.ExperienceLevel)
	}
	if basic.TotalExperienceMonths != 96 {
		t.Fatalf("months = %d", basic.TotalExperienceMonths)
	}
	if !basic.RemotePreference {
		t.Fatal("remote preference lost")
	}
	if len(basic.Skills) != 2 {
		t.Fatalf("skills = %v", basic.Skills)
	}

	if !strings.Contains(stub.lastPrompt, "resume text") {
		t.Fatal("resume text not injected into prompt")
	}
	if strings.Contains(stub.lastPrompt, "{{RESUME_TEXT}}") {
		t.Fatal("placeholder left in prompt")
	}
}

func TestExtractFencedResponse(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		"Here is the profile:\n```json\n{\"experience_level\": \"mid\"}\n```",
	}}

	basic, err := newTestExtractor(stub).Extract(context.Background(), "resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if basic.ExperienceLevel != "mid" {
		t.Fatalf("experience level = %q, want fence stripped", basic.ExperienceLevel)
	}
}

func TestExtractUnparsableFallsBack(t *testing.T) {
	stub := &stubGenerator{responses: []string{"I could not process this resume."}}

	basic, err := newTestExtractor(stub).Extract(context.Background(), "resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if basic == nil {
		t.Fatal("expected default profile fallback")
	}
	if basic.ExperienceLevel != "" || len(basic.Skills) != 0 {
		t.Fatalf("fallback profile not empty: %+v", basic)
	}
}

func TestExtractRetriesTransientFailure(t *testing.T) {
	stub := &stubGenerator{
		errs:      []error{errors.New("upstream hiccup"), errors.New("again")},
		responses: []string{"", "", `{"experience_level": "junior"}`},
	}

	basic, err := newTestExtractor(stub).Extract(context.Background(), "resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.calls != 3 {
		t.Fatalf("calls = %d, want 3", stub.calls)
	}
	if basic.ExperienceLevel != "junior" {
		t.Fatalf("experience level = %q", basic.ExperienceLevel)
	}
}

func TestExtractExhaustedRetries(t *testing.T) {
	cause := errors.New("quota exceeded")
	stub := &stubGenerator{errs: []error{cause, cause, cause, cause}}

	_, err := newTestExtractor(stub).Extract(context.Background(), "resume")
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not preserved: %v", err)
	}
	if stub.calls != 4 {
		t.Fatalf("calls = %d, want initial try plus 3 retries", stub.calls)
	}
}

func TestExtractEmptyResume(t *testing.T) {
	stub := &stubGenerator{responses: []string{"{}"}}

	if _, err := newTestExtractor(stub).Extract(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank resume text")
	}
	if stub.calls != 0 {
		t.Fatal("generator should not be called for blank input")
	}
}
