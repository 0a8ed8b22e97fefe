package commands

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func nopLogger(t *testing.T) *zap.SugaredLogger {
	return zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel)).Sugar()
}
