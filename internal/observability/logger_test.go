package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"DEBUG":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"Warning":  zerolog.WarnLevel,
		"warn":     zerolog.WarnLevel,
		"ERROR":    zerolog.ErrorLevel,
		"critical": zerolog.FatalLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("VERBOSE")
	assert.ErrorContains(t, err, "must be one of")
}

func TestSetLevelRoundTripsNames(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	for _, name := range LevelNames {
		require.NoError(t, SetLevel(name))
		assert.Equal(t, name, LevelName())
	}
	assert.Error(t, SetLevel("nope"))
	assert.Equal(t, "CRITICAL", LevelName())
}

func TestWithRequestIDTagsContextLogger(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	ctx, id := WithRequestID(context.Background(), "")
	assert.NotEmpty(t, id)

	var buf bytes.Buffer
	l := zerolog.Ctx(ctx).Output(&buf)
	l.Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, id, line["request_id"])

	_, given := WithRequestID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", given)
}
