package ai

import (
	"context"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/profile"
)

// Extractor turns free-form resume text into a structured candidate profile.
type Extractor interface {
	Extract(ctx context.Context, resumeText string) (*profile.Basic, error)
}
