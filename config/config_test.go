package config

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := ParseFlags("chip8", []string{"-f", "pong.ch8", "-s", "-hz", "600", "-vf"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.File)
	assert.True(t, opts.StepMode)
	assert.False(t, opts.Terminal)
	assert.True(t, opts.IndexOverflowFlag)
	assert.Equal(t, 600, opts.Frequency)
	assert.Equal(t, 10, opts.CyclesPerFrame())
}

func TestParseFlagsPositionalFile(t *testing.T) {
	opts, err := ParseFlags("chip8", []string{"-t", "tetris.ch8"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "tetris.ch8", opts.File)
	assert.True(t, opts.Terminal)
	assert.Equal(t, DefaultFrequency, opts.Frequency)
	assert.Equal(t, 8, opts.CyclesPerFrame())
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", nil},
		{"frequency too low", []string{"-hz", "10", "a.ch8"}},
		{"frequency too high", []string{"-hz", "1000000", "a.ch8"}},
		{"unknown flag", []string{"-x", "a.ch8"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags("chip8", tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
