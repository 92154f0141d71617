package status

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestBoardAutoDismiss(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	b := NewBoard(WithClock(clock.now))

	b.Show(LevelInfo, "loaded garment.glb")
	msg, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, "loaded garment.glb", msg.Text)

	clock.t = clock.t.Add(2199 * time.Millisecond)
	_, ok = b.Current()
	assert.True(t, ok)

	clock.t = clock.t.Add(time.Millisecond)
	_, ok = b.Current()
	assert.False(t, ok)
	assert.Empty(t, b.Render())
}

func TestBoardShowRestartsTimer(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	b := NewBoard(WithClock(clock.now), WithTimeout(time.Second))

	b.Show(LevelInfo, "first")
	clock.t = clock.t.Add(900 * time.Millisecond)
	b.Show(LevelWarn, "second")
	clock.t = clock.t.Add(900 * time.Millisecond)

	msg, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, "second", msg.Text)
	assert.Equal(t, LevelWarn, msg.Level)
}

func TestBoardDismiss(t *testing.T) {
	b := NewBoard()
	b.Show(LevelError, "boom")
	b.Dismiss()
	_, ok := b.Current()
	assert.False(t, ok)
}

func TestBoardEchoesToTerminal(t *testing.T) {
	var buf bytes.Buffer
	b := NewBoard(WithTerminal(&buf))
	b.Show(LevelWarn, "\"C\" group missing")
	assert.Contains(t, buf.String(), "\"C\" group missing")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "error", LevelError.String())
}
