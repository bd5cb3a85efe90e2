package main

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/exp/slog"
)

// ChatLogHandler is a colorized slog handler for interactive use: one line
// per record, attributes indented beneath it.
type ChatLogHandler struct {
	logger    *log.Logger
	level     slog.Level
	attrs     []slog.Attr
	openGroup string
	lock      *sync.Mutex
}

func NewChatLogHandler(out io.Writer, opts *slog.HandlerOptions) *ChatLogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}

	return &ChatLogHandler{
		level:  opts.Level.Level(),
		logger: log.New(out, "", 0),
		lock:   &sync.Mutex{},
	}
}

func (h *ChatLogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	level := r.Level.String() + ":"
	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.BlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	timeStr := r.Time.Format("[15:04:05.000]")
	h.logger.Println(timeStr, level, color.CyanString(r.Message))

	for _, attr := range h.attrs {
		h.logger.Printf("  %s=%s\n", color.YellowString(h.openGroup+attr.Key), color.WhiteString("%v", attr.Value.Any()))
	}

	r.Attrs(func(a slog.Attr) bool {
		h.logger.Printf("  %s=%s\n", color.YellowString(h.openGroup+a.Key), color.WhiteString("%v", a.Value.Any()))
		return true
	})

	return nil
}

func (h *ChatLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *ChatLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ChatLogHandler{
		attrs:     append(h.attrs, attrs...),
		logger:    h.logger,
		level:     h.level,
		lock:      h.lock,
		openGroup: h.openGroup,
	}
}

func (h *ChatLogHandler) WithGroup(name string) slog.Handler {
	return &ChatLogHandler{
		attrs:     h.attrs,
		logger:    h.logger,
		level:     h.level,
		lock:      h.lock,
		openGroup: h.openGroup + name + ".",
	}
}
