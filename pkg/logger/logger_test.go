package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestFromContextAddsContextFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", "json")
	t.Cleanup(func() { defaultLogger = nil })

	ctx := WithContext(context.Background(), RequestIDKey, "req-1")
	ctx = WithContext(ctx, NovelIDKey, "novel-9")
	Error(ctx, "stats failed", errors.New("boom"), "chapters", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "stats failed", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "novel-9", line["novel_id"])
	assert.Equal(t, "boom", line["error"])
	assert.EqualValues(t, 3, line["chapters"])
}

func TestContextHelpersSkipEmptyNovel(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", "json")
	t.Cleanup(func() { defaultLogger = nil })

	ctx := WithNovelID(context.Background(), "")
	ctx = WithAITask(ctx, "continue")
	Info(ctx, "generation started")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "continue", line["ai_task"])
	assert.NotContains(t, line, "novel_id")
}
