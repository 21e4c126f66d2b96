package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuboc/chip8vm/chip8"
)

type fakeSound struct {
	updates []bool
}

func (f *fakeSound) Update(active bool) { f.updates = append(f.updates, active) }

func newTestHost(t *testing.T, rom []byte) (*Host, *bytes.Buffer, *fakeSound) {
	t.Helper()
	vm, err := chip8.New(rom)
	require.NoError(t, err)

	var out bytes.Buffer
	sound := &fakeSound{}
	h := New(vm, nil, sound, 1)
	h.out = &out
	return h, &out, sound
}

func TestRender(t *testing.T) {
	var frame [chip8.DisplayW * chip8.DisplayH]uint8
	frame[0] = 1                 // (0,0) top
	frame[chip8.DisplayW+1] = 1  // (1,1) bottom
	frame[2] = 1                 // (2,0) top
	frame[chip8.DisplayW+2] = 1  // (2,1) bottom

	s := Render(frame)
	require.True(t, strings.HasPrefix(s, "\x1b[H"))
	lines := strings.Split(strings.TrimPrefix(s, "\x1b[H"), "\r\n")
	require.Len(t, lines, chip8.DisplayH/2+1)

	first := []rune(lines[0])
	require.Len(t, first, chip8.DisplayW)
	assert.Equal(t, '▀', first[0])
	assert.Equal(t, '▄', first[1])
	assert.Equal(t, '█', first[2])
	assert.Equal(t, ' ', first[3])
	assert.Equal(t, strings.Repeat(" ", chip8.DisplayW), lines[1])
}

func TestFrameDrawsWhenDirty(t *testing.T) {
	h, out, _ := newTestHost(t, []byte{0x00, 0xE0, 0x12, 0x02}) // CLS; JP 202

	require.NoError(t, h.frame())
	assert.NotEmpty(t, out.String())
	assert.False(t, h.vm.Display().Dirty())

	out.Reset()
	require.NoError(t, h.frame())
	assert.Empty(t, out.String())
}

func TestKeysAreHeldThenReleased(t *testing.T) {
	h, _, _ := newTestHost(t, []byte{0x12, 0x00})

	h.input <- 'W'
	require.NoError(t, h.frame())
	assert.True(t, h.vm.Keypad().IsDown(0x5))

	for n := 0; n < holdFrames-1; n++ {
		require.NoError(t, h.frame())
	}
	assert.True(t, h.vm.Keypad().IsDown(0x5))

	require.NoError(t, h.frame())
	assert.False(t, h.vm.Keypad().IsDown(0x5))
}

func TestWaitForKeyThroughTerminal(t *testing.T) {
	h, _, _ := newTestHost(t, []byte{0xF3, 0x0A, 0x12, 0x02}) // LD V3,K; JP 202

	require.NoError(t, h.frame())
	require.True(t, h.vm.Waiting())

	h.input <- 'v'
	require.NoError(t, h.frame())
	assert.False(t, h.vm.Waiting())
	assert.Equal(t, uint8(0xf), h.vm.V(3))
}

func TestEscapeQuits(t *testing.T) {
	h, _, _ := newTestHost(t, []byte{0x12, 0x00})
	h.input <- keyEscape
	require.NoError(t, h.frame())
	assert.False(t, h.running)
}

func TestClosedInputQuits(t *testing.T) {
	h, _, _ := newTestHost(t, []byte{0x12, 0x00})
	close(h.input)
	require.NoError(t, h.frame())
	assert.False(t, h.running)
}

func TestSoundFollowsTimer(t *testing.T) {
	h, _, sound := newTestHost(t, []byte{0x60, 0x05, 0xF0, 0x18, 0x12, 0x04}) // LD V0,5; LD ST,V0; JP 204
	h.cyclesPerFrame = 2

	require.NoError(t, h.frame())
	assert.Equal(t, []bool{true}, sound.updates)
}

func TestMachineErrorStopsFrame(t *testing.T) {
	h, _, _ := newTestHost(t, []byte{0x00, 0xEE}) // RET with empty stack
	err := h.frame()
	assert.ErrorIs(t, err, chip8.ErrStackUnderflow)
}
