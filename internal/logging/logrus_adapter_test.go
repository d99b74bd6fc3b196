package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
		expectJSON  bool
	}{
		{name: "debug text", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info json", level: "info", format: "json", expectLevel: logrus.InfoLevel, expectJSON: true},
		{name: "upper case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "loud", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func newBufferedAdapter(level logrus.Level) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(l), &buf
}

func TestLogrusAdapter_Fields(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.DebugLevel)

	logger.WithField(FieldTag, "FID").Info("rewrote tag", F(FieldOccurrences, 2))

	out := buf.String()
	assert.Contains(t, out, "rewrote tag")
	assert.Contains(t, out, "tag=FID")
	assert.Contains(t, out, "occurrences=2")
}

func TestLogrusAdapter_WithError(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.ErrorLevel)

	logger.WithError(errors.New("boom")).Error("conversion failed")

	assert.Contains(t, buf.String(), "conversion failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	adapter, ok := NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}
