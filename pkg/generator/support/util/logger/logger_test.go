package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(zapcore.AddSync(&buf))
	t.Cleanup(func() {
		logger.SetOutput(zapcore.AddSync(&bytes.Buffer{}))
		logger.SetLogLevel("INFO")
	})

	logger.SetLogLevel("warn")
	logger.Infof("hidden %d", 1)
	logger.Warnf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "WARN")
	assert.Equal(t, logger.LevelWarn, logger.Level())
}

func TestSetLogLevel_UnknownFallsBackToInfo(t *testing.T) {
	logger.SetLogLevel("DEBUG")
	assert.Equal(t, logger.LevelDebug, logger.Level())

	logger.SetLogLevel("chatty")
	assert.Equal(t, logger.LevelInfo, logger.Level())
}
