package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the advisor provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the advisor model identifier.
	FieldModel = "ai_model"
	// FieldReportID identifies a single analysis.
	FieldReportID = "report_id"
	// FieldRole is the predicted role of a resume.
	FieldRole = "predicted_role"
	// FieldVectorizer is the path of the loaded vectorizer artifact.
	FieldVectorizer = "vectorizer"
	// FieldClassifier is the path of the loaded classifier artifact.
	FieldClassifier = "classifier"
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

// WithFields attaches fields to the logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// AdvisorFields describes the advisor backend. Empty values are dropped.
func AdvisorFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// ArtifactFields describes the loaded model artifacts.
func ArtifactFields(vectorizerPath, classifierPath string, features int) []zap.Field {
	fields := StringFields(
		StringField{Key: FieldVectorizer, Value: vectorizerPath},
		StringField{Key: FieldClassifier, Value: classifierPath},
	)
	return append(fields, zap.Int("features", features))
}

// ReportFields summarizes an analysis result.
func ReportFields(id, role string, percent float64, missing int) []zap.Field {
	fields := StringFields(
		StringField{Key: FieldReportID, Value: id},
		StringField{Key: FieldRole, Value: role},
	)
	return append(fields, zap.Float64("match_percent", percent), zap.Int("missing_skills", missing))
}
