package utils

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/idilsaglam/pokestats/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func failing(err error) WriterFunc {
	return func(context.Context, string) error { return err }
}

func recording(dst *string) WriterFunc {
	return func(_ context.Context, text string) error {
		*dst = text
		return nil
	}
}

func TestClipboard_PrimarySucceeds(t *testing.T) {
	var primary, fallback string
	c := &Clipboard{Primary: recording(&primary), Fallback: recording(&fallback), Logger: testutil.NewTestLogger(t)}

	assert.True(t, c.Copy(context.Background(), "Garchomp @ Life Orb"))
	assert.Equal(t, "Garchomp @ Life Orb", primary)
	assert.Empty(t, fallback, "fallback untouched when primary works")
}

func TestClipboard_FallbackWhenPrimaryUnavailable(t *testing.T) {
	var fallback string
	c := &Clipboard{
		Primary:  failing(errors.New("permission denied")),
		Fallback: recording(&fallback),
		Logger:   testutil.NewTestLogger(t),
	}

	assert.True(t, c.Copy(context.Background(), "text"))
	assert.Equal(t, "text", fallback)
}

func TestClipboard_BothFail(t *testing.T) {
	c := &Clipboard{
		Primary:  failing(errors.New("no clipboard")),
		Fallback: failing(errors.New("no terminal")),
		Logger:   testutil.NewTestLogger(t),
	}
	assert.False(t, c.Copy(context.Background(), "text"))
}

func TestClipboard_NilLoggerAndWriters(t *testing.T) {
	assert.False(t, (&Clipboard{}).Copy(context.Background(), "text"))
}

func TestOSC52Writer(t *testing.T) {
	var buf bytes.Buffer
	w := OSC52Writer{Out: &buf}

	err := w.WriteText(context.Background(), "hello")
	assert.NoError(t, err)
	// base64("hello") inside an OSC 52 sequence
	assert.Contains(t, buf.String(), "\x1b]52;c;aGVsbG8=")

	assert.Error(t, OSC52Writer{}.WriteText(context.Background(), "x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.WriteText(ctx, "x"), context.Canceled)
}

func TestCopyToClipboard_UsesSystemClipboard(t *testing.T) {
	var fallback string
	orig := systemClipboard
	t.Cleanup(func() { systemClipboard = orig })
	systemClipboard = func() *Clipboard {
		return &Clipboard{Primary: failing(errors.New("no display")), Fallback: recording(&fallback)}
	}

	assert.True(t, CopyToClipboard(context.Background(), "gen9ou"))
	assert.Equal(t, "gen9ou", fallback)
}
