package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"schnorr-batch/pkg/utilities/timeutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	return event
}

func TestLoggerWritesLeveledJson(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(LoggerConfig{LogLevel: zerolog.InfoLevel}).WithOutput(&buf)

	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l.Errorf(errors.New("boom"), "run %s failed", "r-1")
	event := decodeLine(t, &buf)
	assert.Equal(t, "error", event["level"])
	assert.Equal(t, "run r-1 failed", event["message"])
	assert.Equal(t, "boom", event["error"])
}

func TestWithFieldKeepsParentClean(t *testing.T) {
	var buf bytes.Buffer
	parent := New().WithOutput(&buf)

	parent.WithField("run_id", "abc").Info("child")
	assert.Equal(t, "abc", decodeLine(t, &buf)["run_id"])

	buf.Reset()
	parent.Info("parent")
	_, present := decodeLine(t, &buf)["run_id"]
	assert.False(t, present)
}

func TestSinkReceivesMessagesAtOrAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(LoggerConfig{LogLevel: zerolog.WarnLevel}).WithOutput(&buf)

	var got []string
	AddSinkToLoggerInstance(l, func(msg string, level zerolog.Level, ts timeutil.TimeUTC) {
		got = append(got, level.String()+":"+msg)
		assert.NotZero(t, ts.T)
	})

	l.Info("skipped")
	l.Warnf("slow challenge %d", 3)
	l.Error(errors.New("x"), "failed")

	assert.Equal(t, []string{"warn:slow challenge 3", "error:failed"}, got)
}

func TestNopDropsEverything(t *testing.T) {
	l := Nop()
	called := false
	AddSinkToLoggerInstance(l, func(string, zerolog.Level, timeutil.TimeUTC) { called = true })

	l.Info("ignored")
	assert.False(t, called)
}

func TestLoggerConfigJson(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, LoggerConfigJson{}.ConvertToDomain().LogLevel)

	warn := int8(zerolog.WarnLevel)
	assert.Equal(t, zerolog.WarnLevel, LoggerConfigJson{LogLevel: &warn}.ConvertToDomain().LogLevel)
}
