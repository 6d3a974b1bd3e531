// SPDX-License-Identifier: BSD-3-Clause

package klog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// TailHandler is a minimal slog.Handler that retains the last N formatted
// log lines in memory. Handle never returns an error: a crash-time log tail
// is more useful approximate than perfectly accurate.
type TailHandler struct {
	mu     sync.Mutex
	lines  []string
	cap    int
	next   int
	filled bool
	attrs  []slog.Attr
	group  string
}

// NewTailHandler creates a TailHandler retaining up to capacity lines.
func NewTailHandler(capacity int) *TailHandler {
	if capacity <= 0 {
		capacity = 64
	}
	return &TailHandler{lines: make([]string, capacity), cap: capacity}
}

// Enabled reports true for every level; the tail buffer is meant to capture
// everything a board's other sinks might have dropped.
func (h *TailHandler) Enabled(context.Context, slog.Level) bool { return true }

// Handle formats the record and appends it to the ring buffer.
func (h *TailHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", r.Time.Format("15:04:05.000"), r.Level, r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines[h.next] = b.String()
	h.next = (h.next + 1) % h.cap
	if h.next == 0 {
		h.filled = true
	}
	return nil
}

// WithAttrs returns a handler that prefixes subsequent records with attrs.
func (h *TailHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := &TailHandler{lines: h.lines, cap: h.cap, next: h.next, filled: h.filled, group: h.group}
	n.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return n
}

// WithGroup is a no-op beyond remembering the group name; the tail buffer
// does not nest attributes by group.
func (h *TailHandler) WithGroup(name string) slog.Handler {
	n := *h
	n.group = name
	return &n
}

// Lines returns the retained lines in chronological order.
func (h *TailHandler) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.filled {
		out := make([]string, h.next)
		copy(out, h.lines[:h.next])
		return out
	}

	out := make([]string, 0, h.cap)
	out = append(out, h.lines[h.next:]...)
	out = append(out, h.lines[:h.next]...)
	return out
}
