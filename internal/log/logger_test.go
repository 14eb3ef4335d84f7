package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ems/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestLoggerSplitsStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	conf := &config.Configuration{}
	conf.App.Name = "ems"
	conf.Log.Level = "info"

	logger := newLogger(conf, zap.NewAtomicLevelAt(ParseLevel(conf.Log.Level)), zapcore.AddSync(&stdout), zapcore.AddSync(&stderr))
	logger.Debug("hidden")
	logger.Info("Record Inserted Successfully", zap.String("id", "abc"))
	logger.Warn("Error in Connecting to Database")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "Record Inserted Successfully")
	assert.NotContains(t, stdout.String(), "Error in Connecting to Database")
	assert.Contains(t, stderr.String(), "Error in Connecting to Database")

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ems", entry["service"])
	assert.Equal(t, "abc", entry["id"])
}

func TestLevelFollowsAtomicChanges(t *testing.T) {
	var stdout bytes.Buffer
	conf := &config.Configuration{}
	conf.Log.Level = "info"
	level := zap.NewAtomicLevelAt(ParseLevel(conf.Log.Level))

	logger := newLogger(conf, level, zapcore.AddSync(&stdout), zapcore.AddSync(&bytes.Buffer{}))
	logger.Debug("before")
	level.SetLevel(ParseLevel("debug"))
	logger.Debug("after")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, stdout.String(), "before")
	assert.Contains(t, stdout.String(), "after")
}
