package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := Logger
			defer func() {
				Logger = original
				JSONOutput = false
			}()

			err := Initialize(tt.jsonOutput, tt.verbosity)
			require.NoError(t, err)
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			enabled := Logger.Desugar().Core().Enabled(zapcore.DebugLevel)
			assert.Equal(t, tt.verbosity >= VerbosityDebug, enabled)
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Trace (-vvv+)", LevelName(5))
	assert.Equal(t, "Unknown", LevelName(-3))
	assert.True(t, ShouldLogTrace(3))
	assert.False(t, ShouldLogTrace(2))
}

func TestFieldsFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, FieldsFromContext(ctx))

	ctx = WithBuildID(ctx, "b-1")
	ctx = WithComponent(ctx, "dataset")

	fields := FieldsFromContext(ctx)
	assert.Equal(t, []interface{}{FieldBuildID, "b-1", FieldComponent, "dataset"}, fields)
}

func TestLoggerFromContext(t *testing.T) {
	original := Logger
	defer func() { Logger = original }()
	Logger = zap.NewNop().Sugar()

	assert.Same(t, Logger, LoggerFromContext(context.Background()))
	assert.NotSame(t, Logger, LoggerFromContext(WithBuildID(context.Background(), "b-2")))
	assert.NotNil(t, ComponentLogger("loader"))
}
