package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferedLogger() (*log.Logger, *bytes.Buffer, *bytes.Buffer) {
	local, remote := &bytes.Buffer{}, &bytes.Buffer{}
	h := NewTeeHandler(
		log.NewJSONHandler(local, &log.HandlerOptions{Level: log.LevelInfo}),
		NewRemoteFilterHandler(log.NewJSONHandler(remote, &log.HandlerOptions{Level: log.LevelInfo})),
	)
	return log.New(&ContextHandler{h}), local, remote
}

func TestRemoteFilter_OnlyTracedOrWarn(t *testing.T) {
	l, local, remote := newBufferedLogger()

	l.Info("startup")
	assert.Contains(t, local.String(), "startup")
	assert.NotContains(t, remote.String(), "startup")

	ctx := NewTraceContext(context.Background(), "job-scrape")
	l.InfoContext(ctx, "scrape finished")
	assert.Contains(t, remote.String(), "scrape finished")
	assert.Contains(t, remote.String(), TraceID(ctx))

	l.Warn("redis unavailable")
	assert.Contains(t, remote.String(), "redis unavailable")
}

func TestContextHandler_WithAttrsKeepsTrace(t *testing.T) {
	l, local, _ := newBufferedLogger()

	ctx := WithTraceID(context.Background(), "req-123")
	l.With("component", "cron").InfoContext(ctx, "tick")

	assert.Contains(t, local.String(), `"trace_id":"req-123"`)
	assert.Contains(t, local.String(), `"component":"cron"`)
}

func TestNewTraceContext(t *testing.T) {
	a := TraceID(NewTraceContext(context.Background(), "job"))
	b := TraceID(NewTraceContext(context.Background(), "job"))

	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^job-[0-9a-f-]{36}$`, a)
	assert.Empty(t, TraceID(context.Background()))
}

func TestRemoteFilter_BoundTraceAttr(t *testing.T) {
	l, _, remote := newBufferedLogger()

	l.With(TraceIDKey, "job-scrape-1").Info("roster fetched")
	assert.Contains(t, remote.String(), "roster fetched")

	remote.Reset()
	l.With("component", "cron").Info("tick")
	assert.Empty(t, remote.String())
}
