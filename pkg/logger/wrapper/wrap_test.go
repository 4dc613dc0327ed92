package wrap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorRewrapKeepsChain(t *testing.T) {
	base := errors.New("not found")
	ctx := WithAction(context.Background(), "load")

	first := Error(ctx, base)
	second := Error(WithAction(ctx, "reload"), fmt.Errorf("outer: %w", first))

	assert.Equal(t, "outer: not found", second.Error())
	assert.ErrorIs(t, second, base)

	lc, ok := ErrorCtx(context.Background(), second).Value(LogCtxKey).(LogCtx)
	require.True(t, ok)
	assert.Equal(t, "reload", lc.Action)
}

func TestErrorNil(t *testing.T) {
	assert.NoError(t, Error(context.Background(), nil))
}

func TestWithLogCtxMerges(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithLogCtx(ctx, LogCtx{Action: "ask", SessionID: "s-1"})

	lc := ctx.Value(LogCtxKey).(LogCtx)
	assert.Equal(t, LogCtx{Action: "ask", RequestID: "req-1", SessionID: "s-1"}, lc)
}

func TestErrorKeepsInnerFields(t *testing.T) {
	inner := Error(WithSessionID(context.Background(), "s-1"), errors.New("timeout"))
	outer := Error(WithAction(context.Background(), "ask"), fmt.Errorf("remote: %w", inner))

	ctx := WithRequestID(context.Background(), "req-9")
	lc, ok := ErrorCtx(ctx, outer).Value(LogCtxKey).(LogCtx)
	require.True(t, ok)
	assert.Equal(t, LogCtx{Action: "ask", RequestID: "req-9", SessionID: "s-1"}, lc)
}

func TestErrorCtxPlainError(t *testing.T) {
	ctx := WithAction(context.Background(), "reload")
	assert.Equal(t, ctx, ErrorCtx(ctx, errors.New("plain")))
}
