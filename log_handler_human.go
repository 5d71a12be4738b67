package podkit

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	warnP  = color.New(color.FgYellow).FprintFunc()
	errorP = color.New(color.FgRed).FprintFunc()
	valP   = color.New(color.FgHiBlack).FprintFunc()
	msgP   = color.New(color.Bold).FprintFunc()
	keyP   = color.New(color.FgGreen).Add(color.Faint).FprintFunc()
)

// humanHandler makes logs easy to read from the CLI
type humanHandler struct {
	mu       sync.Mutex
	writer   io.Writer
	minlevel slog.Leveler
	attrs    []slog.Attr
	group    string
}

func newHumanHandler(minlevel slog.Leveler, w io.Writer) *humanHandler {
	return &humanHandler{
		minlevel: minlevel,
		writer:   w,
	}
}

// doesn't log below its set level
func (h *humanHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minlevel.Level()
}

// implements Handler.Handle.
func (h *humanHandler) Handle(_ context.Context, r slog.Record) error {
	buf := getBuf()
	defer putBuf(buf)

	valP(buf, r.Time.Format("Jan 02 15:04:05"))
	io.WriteString(buf, " ")
	switch r.Level {
	case slog.LevelDebug:
		valP(buf, "DBG")
	case slog.LevelInfo:
		io.WriteString(buf, "INF")
	case slog.LevelWarn:
		warnP(buf, "WRN")
	case slog.LevelError:
		errorP(buf, "ERR")
	}
	valP(buf, " - ")
	msgP(buf, r.Message)

	if h.group != "" {
		io.WriteString(buf, " ")
		keyP(buf, h.group+"[")
	}
	r.Attrs(func(a slog.Attr) bool {
		io.WriteString(buf, " ")
		printAttr(buf, a)
		return true
	})
	// static ones at the end
	for i := range h.attrs {
		io.WriteString(buf, " ")
		printAttr(buf, h.attrs[i])
	}
	if h.group != "" {
		keyP(buf, " ]")
	}
	io.WriteString(buf, "\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *humanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := &humanHandler{
		writer:   h.writer,
		minlevel: h.minlevel,
		group:    h.group,
	}
	h2.attrs = append(append(h2.attrs, h.attrs...), attrs...)
	return h2
}

func (h *humanHandler) WithGroup(name string) slog.Handler {
	return &humanHandler{
		writer:   h.writer,
		minlevel: h.minlevel,
		attrs:    h.attrs,
		group:    name,
	}
}

func printAttr(buf io.Writer, a slog.Attr) {
	keyP(buf, a.Key+"=")
	val := a.Value.Resolve().String()
	if strings.ContainsAny(val, " \t\n") {
		val = strconv.Quote(val)
	}
	io.WriteString(buf, val)
}
