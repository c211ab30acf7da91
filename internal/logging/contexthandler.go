package logging

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// ContextProvider returns attributes added to every record at handle time.
type ContextProvider func() []slog.Attr

// ContextHandler wraps another handler and appends the provider's attributes
// to each record it handles.
type ContextHandler struct {
	inner    slog.Handler
	provider ContextProvider
}

// NewContextHandler wraps inner. A nil provider adds nothing.
func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{
		inner:    inner,
		provider: provider,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		r.AddAttrs(h.provider()...)
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(h.inner.WithAttrs(attrs), h.provider)
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return NewContextHandler(h.inner.WithGroup(name), h.provider)
}

// Session holds the attributes that identify one invocation: the command,
// the item kind and when it started. Values may be set after logging is
// configured; records pick up the current set.
type Session struct {
	mu    sync.RWMutex
	attrs []slog.Attr
}

// Set adds key or replaces its value.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attr := slog.Any(key, value)
	if i := slices.IndexFunc(s.attrs, func(a slog.Attr) bool { return a.Key == key }); i >= 0 {
		s.attrs[i] = attr
		return
	}
	s.attrs = append(s.attrs, attr)
}

// Attrs returns a copy of the current attributes. It is a ContextProvider.
func (s *Session) Attrs() []slog.Attr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.attrs)
}
