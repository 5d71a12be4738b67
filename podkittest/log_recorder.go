// Package podkittest provides test helpers for asserting on service log
// output.
package podkittest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// Entry is one captured log line, flattened for easy assertions.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// LogRecorder captures every record logged through the logger returned by
// [NewLogger]. Safe for concurrent use.
type LogRecorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewLogger returns a logger that echoes records to t.Log and captures them
// in the returned recorder.
func NewLogger(t *testing.T) (*slog.Logger, *LogRecorder) {
	rec := &LogRecorder{}
	return slog.New(&recordHandler{t: t, rec: rec}), rec
}

// Entries returns a copy of everything captured so far.
func (lr *LogRecorder) Entries() []Entry {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	out := make([]Entry, len(lr.entries))
	copy(out, lr.entries)
	return out
}

// Find returns the first entry with the given message, or false.
func (lr *LogRecorder) Find(message string) (Entry, bool) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	for _, e := range lr.entries {
		if e.Message == message {
			return e, true
		}
	}
	return Entry{}, false
}

func (lr *LogRecorder) add(e Entry) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.entries = append(lr.entries, e)
}

type recordHandler struct {
	t     *testing.T
	rec   *LogRecorder
	attrs []slog.Attr
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	e := Entry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   map[string]string{},
	}
	for _, a := range h.attrs {
		e.Attrs[a.Key] = a.Value.Resolve().String()
	}
	var line strings.Builder
	fmt.Fprintf(&line, "%s: %s", r.Level, r.Message)
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.Resolve().String()
		fmt.Fprintf(&line, " %s=%s", a.Key, a.Value)
		return true
	})
	h.rec.add(e)
	h.t.Log(line.String())
	return nil
}

func (h *recordHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

// groups are flattened; tests here only assert on top-level attrs
func (h *recordHandler) WithGroup(string) slog.Handler { return h }
