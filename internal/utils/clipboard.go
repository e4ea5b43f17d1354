package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrClipboardUnavailable is logged when neither copy path worked.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Writer puts text on a clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, text string) error

func (f WriterFunc) WriteText(ctx context.Context, text string) error { return f(ctx, text) }

// SystemWriter uses the OS clipboard (pbcopy, xclip, wl-copy, win32).
type SystemWriter struct{}

func (SystemWriter) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return errors.New("system clipboard: unsupported platform")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

// OSC52Writer asks the terminal emulator to set the clipboard by
// writing an OSC 52 escape sequence to Out.
type OSC52Writer struct {
	Out  io.Writer
	Tmux bool
}

func (w OSC52Writer) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.Out == nil {
		return errors.New("osc52: no terminal")
	}
	seq := osc52.New(text)
	if w.Tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(w.Out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// Clipboard copies text with a primary writer and falls back to a
// second one when the first fails.
type Clipboard struct {
	Primary  Writer
	Fallback Writer
	Logger   *slog.Logger
}

// NewClipboard returns the system clipboard with an OSC 52 fallback
// written to term.
func NewClipboard(term io.Writer, logger *slog.Logger) *Clipboard {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Clipboard{
		Primary:  SystemWriter{},
		Fallback: OSC52Writer{Out: term, Tmux: os.Getenv("TMUX") != ""},
		Logger:   logger,
	}
}

// Copy reports whether either path succeeded. It never returns an error.
func (c *Clipboard) Copy(ctx context.Context, text string) bool {
	log := c.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var primaryErr error
	if c.Primary != nil {
		if primaryErr = c.Primary.WriteText(ctx, text); primaryErr == nil {
			return true
		}
		log.Debug("primary clipboard failed, trying fallback", "error", primaryErr)
	}
	if c.Fallback != nil {
		fallbackErr := c.Fallback.WriteText(ctx, text)
		if fallbackErr == nil {
			return true
		}
		log.Debug("clipboard copy failed",
			"error", ErrClipboardUnavailable,
			"primary", primaryErr,
			"fallback", fallbackErr)
	}
	return false
}

// systemClipboard builds the clipboard CopyToClipboard uses.
var systemClipboard = func() *Clipboard { return NewClipboard(os.Stderr, nil) }

// CopyToClipboard copies text using the system clipboard, falling back
// to OSC 52 on stderr.
func CopyToClipboard(ctx context.Context, text string) bool {
	return systemClipboard().Copy(ctx, text)
}
