package wrap

import (
	"context"
	"errors"
)

// ctxError carries the LogCtx of the call that failed so the place that
// finally logs the error still sees the action, session and dataset.
type ctxError struct {
	err    error
	logCtx LogCtx
}

func (e *ctxError) Error() string { return e.err.Error() }

func (e *ctxError) Unwrap() error { return e.err }

// Error wraps err with the LogCtx of ctx. Fields missing from ctx are taken
// from an inner wrapped error, so rewrapping never loses the session or
// dataset recorded deeper in the call chain.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	c, _ := ctx.Value(LogCtxKey).(LogCtx)
	var inner *ctxError
	if errors.As(err, &inner) {
		c = merge(c, inner.logCtx)
	}
	return &ctxError{err: err, logCtx: c}
}

// ErrorCtx returns ctx enriched with the LogCtx carried by err. Values from
// the error win; the request ID and user of ctx fill what the error lacks.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *ctxError
	if !errors.As(err, &e) {
		return ctx
	}
	return WithLogCtx(ctx, e.logCtx)
}

// merge fills the empty fields of dst from src.
func merge(dst, src LogCtx) LogCtx {
	if dst.Action == "" {
		dst.Action = src.Action
	}
	if dst.UserID == "" {
		dst.UserID = src.UserID
	}
	if dst.RequestID == "" {
		dst.RequestID = src.RequestID
	}
	if dst.SessionID == "" {
		dst.SessionID = src.SessionID
	}
	if dst.Dataset == "" {
		dst.Dataset = src.Dataset
	}
	return dst
}
