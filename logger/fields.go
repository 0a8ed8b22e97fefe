package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldBuildID   = "build_id"
	FieldVideoID   = "video_id"
	FieldComponent = "component"

	// Dataset
	FieldGloss     = "gloss"
	FieldLabel     = "label"
	FieldSplit     = "split"
	FieldView      = "view"
	FieldFrames    = "frames"
	FieldMaxFrames = "max_frames"
	FieldNodes     = "nodes"
	FieldEdges     = "edges"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount     = "count"
	FieldBatchSize = "batch_size"
	FieldSkipped   = "skipped"

	// Files and paths
	FieldPath = "path"
)

// Context keys for propagating logging context
type contextKey string

const (
	buildIDKey   contextKey = "logger_build_id"
	componentKey contextKey = "logger_component"
)

// WithBuildID adds a dataset build ID to the context for logging
func WithBuildID(ctx context.Context, buildID string) context.Context {
	return context.WithValue(ctx, buildIDKey, buildID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if buildID, ok := ctx.Value(buildIDKey).(string); ok && buildID != "" {
		fields = append(fields, FieldBuildID, buildID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	reader := dataset.NewReader(cfg, kpStore, logger.ComponentLogger("dataset"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
