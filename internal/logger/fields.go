package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldJob is the structured log field key for a job identifier.
	FieldJob = "job"
	// FieldInterestCode is the structured log field key for a two-letter interest code.
	FieldInterestCode = "interest_code"
	// FieldStyleCode is the structured log field key for a communication style code.
	FieldStyleCode = "style_code"
	// FieldReport is the structured log field key for a report identifier.
	FieldReport = "report_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// JobFields returns the fields describing a job and its interest code.
func JobFields(job, code string) []zap.Field {
	return StringFields(
		StringField{Key: FieldJob, Value: job},
		StringField{Key: FieldInterestCode, Value: code},
	)
}

// ProfileFields returns the fields describing a person's derived codes.
func ProfileFields(interestCode, styleCode string) []zap.Field {
	return StringFields(
		StringField{Key: FieldInterestCode, Value: interestCode},
		StringField{Key: FieldStyleCode, Value: styleCode},
	)
}
