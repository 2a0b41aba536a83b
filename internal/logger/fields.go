package logger

import (
	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for a job provider name.
	FieldProvider = "provider"
	// FieldQuery is the structured log field key for the search query.
	FieldQuery = "query"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// WithProvider attaches the provider field to the logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithProvider(logger *zap.Logger, provider string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if provider == "" {
		return logger
	}
	return logger.With(zap.String(FieldProvider, provider))
}
