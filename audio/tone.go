// Package audio produces the buzzer tone of the machine.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

const (
	SampleRate    = 44100
	ToneFrequency = 440
	toneVolume    = 0.25
)

// Tone is an io.Reader of mono float32 little endian samples. It yields a
// square wave while enabled and silence otherwise.
type Tone struct {
	enabled atomic.Bool
	phase   float64
	step    float64
}

func NewTone(sampleRate, frequency int) *Tone {
	return &Tone{step: float64(frequency) / float64(sampleRate)}
}

// SetEnabled switches the wave on or off; it is safe to call from the host loop
// while the audio driver reads.
func (t *Tone) SetEnabled(on bool) {
	t.enabled.Store(on)
}

func (t *Tone) Enabled() bool {
	return t.enabled.Load()
}

func (t *Tone) Read(p []byte) (int, error) {
	on := t.enabled.Load()
	n := len(p) / 4 * 4
	for i := 0; i < n; i += 4 {
		var s float32
		if on {
			s = toneVolume
			if t.phase >= 0.5 {
				s = -toneVolume
			}
			t.phase += t.step
			t.phase -= math.Floor(t.phase)
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(s))
	}
	return n, nil
}
