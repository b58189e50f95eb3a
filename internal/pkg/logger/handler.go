package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// TeeHandler 将日志分发到多个 Handler，某一路失败不影响其余
type TeeHandler struct {
	handlers []log.Handler
}

func NewTeeHandler(handlers ...log.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

func (s *TeeHandler) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range s.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (s *TeeHandler) Handle(ctx context.Context, r log.Record) error {
	var errs []error
	for _, h := range s.handlers {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (s *TeeHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return s.derive(func(h log.Handler) log.Handler { return h.WithAttrs(attrs) })
}

func (s *TeeHandler) WithGroup(name string) log.Handler {
	return s.derive(func(h log.Handler) log.Handler { return h.WithGroup(name) })
}

func (s *TeeHandler) derive(fn func(log.Handler) log.Handler) *TeeHandler {
	out := make([]log.Handler, 0, len(s.handlers))
	for _, h := range s.handlers {
		out = append(out, fn(h))
	}
	return &TeeHandler{handlers: out}
}

// RemoteFilterHandler 远程只上报请求与抓取任务的日志（带 trace_id），其余日志需达到 passLevel
type RemoteFilterHandler struct {
	next      log.Handler
	passLevel log.Level
	traced    bool
}

func NewRemoteFilterHandler(next log.Handler) *RemoteFilterHandler {
	return &RemoteFilterHandler{next: next, passLevel: log.LevelWarn}
}

func (s *RemoteFilterHandler) Enabled(ctx context.Context, level log.Level) bool {
	return s.next.Enabled(ctx, level)
}

func (s *RemoteFilterHandler) Handle(ctx context.Context, r log.Record) error {
	if r.Level >= s.passLevel || s.traced || TraceID(ctx) != "" || recordTraced(r) {
		return s.next.Handle(ctx, r)
	}
	return nil
}

// trace_id 可能由 logger.With 预先绑定
func (s *RemoteFilterHandler) WithAttrs(attrs []log.Attr) log.Handler {
	traced := s.traced
	for _, a := range attrs {
		traced = traced || isTraceAttr(a)
	}
	return &RemoteFilterHandler{next: s.next.WithAttrs(attrs), passLevel: s.passLevel, traced: traced}
}

func (s *RemoteFilterHandler) WithGroup(name string) log.Handler {
	return &RemoteFilterHandler{next: s.next.WithGroup(name), passLevel: s.passLevel, traced: s.traced}
}

func recordTraced(r log.Record) bool {
	found := false
	r.Attrs(func(a log.Attr) bool {
		found = isTraceAttr(a)
		return !found
	})
	return found
}

func isTraceAttr(a log.Attr) bool {
	return a.Key == TraceIDKey && a.Value.String() != ""
}
