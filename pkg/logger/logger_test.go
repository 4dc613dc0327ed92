package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerInjectsContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "ride-dashboard", LevelInfo)

	ctx := wrap.WithAction(context.Background(), "ask")
	ctx = wrap.WithSessionID(ctx, "s-1")
	l.Error(ctx, "remote failed", errors.New("boom"), "reason", "timeout")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "remote failed", rec["message"])
	assert.Equal(t, "ride-dashboard", rec["service"])
	assert.Equal(t, "ask", rec["action"])
	assert.Equal(t, "s-1", rec["session_id"])
	assert.Equal(t, "timeout", rec["reason"])
	assert.Contains(t, rec, "timestamp")
	assert.Equal(t, map[string]any{"msg": "boom"}, rec["error"])
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "svc", LevelWarn)
	l.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	l.Warn(context.Background(), "shown")
	assert.NotZero(t, buf.Len())
}

func TestErrorCarriesLogCtx(t *testing.T) {
	ctx := wrap.WithAction(context.Background(), "reload")
	err := wrap.Error(ctx, errors.New("boom"))

	got := wrap.ErrorCtx(context.Background(), err)
	lc, ok := got.Value(wrap.LogCtxKey).(wrap.LogCtx)
	require.True(t, ok)
	assert.Equal(t, "reload", lc.Action)
}

func TestValidateLogLevel(t *testing.T) {
	assert.True(t, ValidateLogLevel(LevelDebug))
	assert.False(t, ValidateLogLevel("TRACE"))
}
