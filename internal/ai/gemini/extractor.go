package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/profile"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/utils"
	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultMaxRetries   = 3
	defaultRetryDelay   = time.Second
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Extractor derives a structured candidate profile from resume text using a
// generative model. Transient generation failures are retried with
// exponential backoff; a response that cannot be parsed falls back to a
// conservative default profile so the pipeline can proceed.
type Extractor struct {
	generator  contentGenerator
	logger     *zap.Logger
	maxLogLen  int
	maxRetries int
	retryDelay time.Duration
}

func NewExtractor(generator contentGenerator, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		generator:  generator,
		logger:     logger,
		maxLogLen:  defaultMaxLogLength,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
}

// Extract prompts the model with the resume text and parses the JSON reply.
func (e *Extractor) Extract(ctx context.Context, resumeText string) (*profile.Basic, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, fmt.Errorf("resume text must not be empty")
	}

	prompt := buildPrompt(resumeText)

	e.logger.Debug("profile extraction request",
		zap.String("ai_model", e.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extracting profile: %w", err)
	}

	e.logger.Debug("profile extraction response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	basic, err := parseProfile(raw)
	if err != nil {
		e.logger.Warn("unparsable extraction response, using default profile",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
		)
		return &profile.Basic{}, nil
	}

	return basic, nil
}

func (e *Extractor) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			delay := e.retryDelay * (1 << (attempt - 1))
			e.logger.Debug("retrying profile extraction",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
			)
			if err := utils.WaitFor(ctx, delay); err != nil {
				return "", err
			}
		}

		raw, err := e.generator.GenerateContent(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d attempts: %w", e.maxRetries+1, lastErr)
}

func buildPrompt(resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", resumeText)
}

func parseProfile(raw string) (*profile.Basic, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}

	basic, err := profile.FromMap(data)
	if err != nil {
		return nil, err
	}
	return basic, nil
}

// extractJSON strips markdown code fences and leading prose from a model
// reply, leaving the outermost JSON object.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		raw = raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}
