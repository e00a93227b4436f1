package logrus

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerForwardsToZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLogger(zap.New(core))

	l.WithField("path", "/metrics").WithError(errors.New("boom")).Warn("scrape failed")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "scrape failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/metrics", fields["path"])
	assert.Equal(t, "boom", fields["error"])
}

func TestRedirectReplacesHooks(t *testing.T) {
	first, firstLogs := observer.New(zapcore.DebugLevel)
	second, secondLogs := observer.New(zapcore.DebugLevel)

	l := logrus.New()
	Redirect(l, zap.New(first))
	Redirect(l, zap.New(second))
	l.Info("hello")

	assert.Equal(t, 0, firstLogs.Len())
	assert.Equal(t, 1, secondLogs.Len())
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.ErrorLevel, zapLevel(logrus.ErrorLevel))
	assert.Equal(t, zapcore.InfoLevel, zapLevel(logrus.InfoLevel))
	assert.Equal(t, zapcore.DebugLevel, zapLevel(logrus.TraceLevel))
}
