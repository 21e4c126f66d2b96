package chip8

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

// loop is an endless 1200 (JP 200) program.
var loop = []byte{0x12, 0x00}

func newTimerChip8(t *testing.T, clock *fakeClock) *Chip8 {
	t.Helper()
	c, err := NewWithConfig(loop, Config{Clock: clock.Now})
	require.NoError(t, err)
	return c
}

func TestTimersIgnoreCycleRate(t *testing.T) {
	clock := newFakeClock()
	c := newTimerChip8(t, clock)
	c.timer.delay = 10
	c.timer.sound = 10

	for n := 0; n < 1000; n++ {
		clock.Advance(time.Microsecond)
		require.NoError(t, c.Step())
	}
	assert.Equal(t, uint8(10), c.Delay())
	assert.Equal(t, uint8(10), c.Sound())

	clock.Advance(TickInterval)
	for n := 0; n < 1000; n++ {
		require.NoError(t, c.Step())
	}
	assert.Equal(t, uint8(9), c.Delay())
	assert.Equal(t, uint8(9), c.Sound())
}

func TestTimersDoNotCatchUp(t *testing.T) {
	clock := newFakeClock()
	c := newTimerChip8(t, clock)
	c.timer.delay = 10

	clock.Advance(10 * TickInterval)
	require.NoError(t, c.Step())
	assert.Equal(t, uint8(9), c.Delay())

	require.NoError(t, c.Step())
	assert.Equal(t, uint8(9), c.Delay())
}

func TestTimersStopAtZero(t *testing.T) {
	clock := newFakeClock()
	c := newTimerChip8(t, clock)
	c.timer.delay = 1

	for n := 0; n < 3; n++ {
		clock.Advance(TickInterval)
		require.NoError(t, c.Step())
	}
	assert.Equal(t, uint8(0), c.Delay())
	assert.Equal(t, uint8(0), c.Sound())
	assert.False(t, c.ToneComplete())
}

func TestToneCompleteFiresOnce(t *testing.T) {
	clock := newFakeClock()
	c := newTimerChip8(t, clock)
	c.timer.sound = 2
	assert.True(t, c.SoundActive())

	clock.Advance(TickInterval)
	require.NoError(t, c.Step())
	assert.False(t, c.ToneComplete())
	assert.True(t, c.SoundActive())

	clock.Advance(TickInterval)
	require.NoError(t, c.Step())
	assert.False(t, c.SoundActive())
	assert.True(t, c.ToneComplete())
	assert.False(t, c.ToneComplete())

	clock.Advance(TickInterval)
	require.NoError(t, c.Step())
	assert.False(t, c.ToneComplete())
}

func TestTimersTickWhileWaitingForKey(t *testing.T) {
	clock := newFakeClock()
	c, err := NewWithConfig([]byte{0xF0, 0x0A}, Config{Clock: clock.Now})
	require.NoError(t, err)
	c.timer.delay = 5

	require.NoError(t, c.Step())
	require.True(t, c.Waiting())

	for n := 0; n < 3; n++ {
		clock.Advance(TickInterval)
		require.NoError(t, c.Step())
	}
	assert.True(t, c.Waiting())
	assert.Equal(t, uint8(2), c.Delay())
}
