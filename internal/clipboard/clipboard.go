// Package clipboard writes command text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// ErrUnavailable is returned when no clipboard mechanism worked
var ErrUnavailable = errors.New("clipboard unavailable")

var errNoNativeTool = errors.New("no native clipboard utility found")

// Writer copies text to a clipboard
type Writer interface {
	WriteText(text string) error
}

// WriterFunc adapts a function to Writer
type WriterFunc func(text string) error

// WriteText calls f(text)
func (f WriterFunc) WriteText(text string) error { return f(text) }

// System uses the native clipboard tools and can fall back to an OSC 52
// escape sequence, which terminals forward to the local clipboard even
// over SSH.
//
// OSC 52 has no acknowledgement: a nil error means the sequence was
// written, not that the terminal accepted it.
type System struct {
	OSC52Fallback bool

	// Native writes to the OS clipboard; nil uses the platform tools
	Native func(text string) error

	// Output receives the OSC 52 sequence; nil means stdout. The sequence
	// goes out in a single Write so it cannot split a rendered frame.
	Output io.Writer
}

// WriteText copies text to the system clipboard
func (s System) WriteText(text string) error {
	native := s.Native
	if native == nil {
		native = nativeWrite
	}

	nativeErr := native(text)
	if nativeErr == nil {
		return nil
	}

	slog.Debug("native clipboard failed", "error", nativeErr, "osc52", s.OSC52Fallback)

	if !s.OSC52Fallback {
		return fmt.Errorf("%w: %w", ErrUnavailable, nativeErr)
	}

	out := s.Output
	if out == nil {
		out = os.Stdout
	}
	ew := &errWriter{w: out}
	termenv.NewOutput(ew).Copy(text)
	if ew.err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(nativeErr, ew.err))
	}
	return nil
}

func nativeWrite(text string) error {
	if clipboard.Unsupported {
		return errNoNativeTool
	}
	return clipboard.WriteAll(text)
}

// errWriter remembers the first write error, which termenv discards
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	n, err := e.w.Write(p)
	if err != nil && e.err == nil {
		e.err = err
	}
	return n, err
}
