package chip8

import (
	"math/rand"
	"time"
)

// RandomSource supplies the bytes consumed by Cxkk.
type RandomSource interface {
	Byte() uint8
}

type mathRandom struct {
	rnd *rand.Rand
}

// NewMathRandom returns a time-seeded pseudo random source.
func NewMathRandom() RandomSource {
	return NewSeededRandom(time.Now().UnixNano())
}

// NewSeededRandom returns a pseudo random source with a fixed seed.
func NewSeededRandom(seed int64) RandomSource {
	return &mathRandom{rnd: rand.New(rand.NewSource(seed))}
}

func (r *mathRandom) Byte() uint8 {
	return uint8(r.rnd.Uint32())
}

// SequenceRandom replays a fixed byte sequence, wrapping around at the end.
type SequenceRandom struct {
	bytes []uint8
	next  int
}

func NewSequenceRandom(b ...uint8) *SequenceRandom {
	return &SequenceRandom{bytes: b}
}

func (s *SequenceRandom) Byte() uint8 {
	if len(s.bytes) == 0 {
		return 0
	}
	b := s.bytes[s.next]
	s.next = (s.next + 1) % len(s.bytes)
	return b
}
