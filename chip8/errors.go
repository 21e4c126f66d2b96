package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrRomTooLarge       = errors.New("rom too large")
	ErrKeyOutOfRange     = errors.New("key index out of range")

	// ErrUnsupportedOpcode is only reported through the logger; the opcode is
	// skipped and execution continues.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
)

// CycleError carries the instruction that failed a cycle.
type CycleError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("pc %03X opcode %04X: %v", e.PC, e.Opcode, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}
