package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterFunc(t *testing.T) {
	var got string
	w := WriterFunc(func(text string) error {
		got = text
		return nil
	})

	assert.NoError(t, w.WriteText("tasklist /v"))
	assert.Equal(t, "tasklist /v", got)

	failing := WriterFunc(func(string) error { return ErrUnavailable })
	assert.True(t, errors.Is(failing.WriteText("x"), ErrUnavailable))
}

func TestSystemImplementsWriter(t *testing.T) {
	var _ Writer = System{}
}

// failingWriter rejects every write
type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestSystemNativeSuccess(t *testing.T) {
	var copied string
	var out bytes.Buffer
	s := System{
		OSC52Fallback: true,
		Native:        func(text string) error { copied = text; return nil },
		Output:        &out,
	}

	require.NoError(t, s.WriteText("ps aux"))
	assert.Equal(t, "ps aux", copied)
	assert.Zero(t, out.Len(), "no escape sequence when the native clipboard works")
}

func TestSystemFallsBackToOSC52(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")

	var out bytes.Buffer
	s := System{
		OSC52Fallback: true,
		Native:        func(string) error { return errNoNativeTool },
		Output:        &out,
	}

	require.NoError(t, s.WriteText("ps aux"))
	encoded := base64.StdEncoding.EncodeToString([]byte("ps aux"))
	assert.Contains(t, out.String(), "\x1b]52;c;"+encoded)
}

func TestSystemNativeFailureWithoutFallback(t *testing.T) {
	nativeErr := errors.New("xclip: exit status 1")
	var out bytes.Buffer
	s := System{
		Native: func(string) error { return nativeErr },
		Output: &out,
	}

	err := s.WriteText("ps aux")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, nativeErr)
	assert.Zero(t, out.Len())
}

func TestSystemOSC52WriteFailure(t *testing.T) {
	writeErr := errors.New("broken pipe")
	s := System{
		OSC52Fallback: true,
		Native:        func(string) error { return errNoNativeTool },
		Output:        failingWriter{err: writeErr},
	}

	err := s.WriteText("ps aux")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, writeErr)
}
