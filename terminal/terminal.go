// Package terminal runs a machine inside a text terminal. Pixels are drawn as
// half blocks, two rows per line, and keys are read from raw stdin.
package terminal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/tuboc/chip8vm/chip8"
	"golang.org/x/term"
)

const (
	// holdFrames is how long a key stays down after its byte arrived, terminals
	// do not report key releases.
	holdFrames = 6

	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

var char2Key = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// Sounder follows the sound timer of the machine.
type Sounder interface {
	Update(active bool)
}

// Host drives a machine at 60 frames per second.
type Host struct {
	vm             *chip8.Chip8
	logger         *log.Logger
	sound          Sounder
	out            io.Writer
	input          chan byte
	cyclesPerFrame int
	held           [chip8.KeyCount]int
	running        bool
}

func New(vm *chip8.Chip8, logger *log.Logger, sound Sounder, cyclesPerFrame int) *Host {
	return &Host{
		vm:             vm,
		logger:         logger,
		sound:          sound,
		out:            os.Stdout,
		input:          make(chan byte, 64),
		cyclesPerFrame: cyclesPerFrame,
		running:        true,
	}
}

// Run puts stdin into raw mode and runs until ctx is done, the user quits or
// the machine fails.
func (h *Host) Run(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}
	if w, hgt, err := term.GetSize(fd); err == nil && (w < chip8.DisplayW || hgt < chip8.DisplayH/2) {
		h.logger.Info("terminal smaller than display",
			log.Int("width", w), log.Int("height", hgt))
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	go readInput(os.Stdin, h.input)

	fmt.Fprint(h.out, "\x1b[2J\x1b[?25l")
	defer fmt.Fprint(h.out, "\x1b[?25h\r\n")

	ticker := time.NewTicker(chip8.TickInterval)
	defer ticker.Stop()

	for h.running {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := h.frame(); err != nil {
				return err
			}
		}
	}
	return nil
}

func readInput(r io.Reader, ch chan<- byte) {
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			ch <- b
		}
		if err != nil {
			close(ch)
			return
		}
	}
}

// frame handles pending input, runs one frame worth of cycles and redraws.
func (h *Host) frame() error {
	h.releaseKeys()
	h.pollInput()
	if !h.running {
		return nil
	}

	for n := 0; n < h.cyclesPerFrame; n++ {
		if err := h.vm.Step(); err != nil {
			return err
		}
	}

	if h.sound != nil {
		if h.vm.ToneComplete() {
			h.sound.Update(false)
		}
		h.sound.Update(h.vm.SoundActive())
	}

	disp := h.vm.Display()
	if disp.Dirty() {
		if _, err := io.WriteString(h.out, Render(disp.Frame())); err != nil {
			return err
		}
		disp.ClearDirty()
	}
	return nil
}

func (h *Host) pollInput() {
	for {
		select {
		case b, ok := <-h.input:
			if !ok {
				h.running = false
				return
			}
			h.handleByte(b)
		default:
			return
		}
	}
}

func (h *Host) handleByte(b byte) {
	if b == keyEscape || b == keyCtrlC {
		h.running = false
		return
	}
	key, ok := char2Key[lower(b)]
	if !ok {
		return
	}
	h.held[key] = holdFrames
	h.vm.Keypad().Press(key)
}

func (h *Host) releaseKeys() {
	for key, frames := range h.held {
		if frames == 0 {
			continue
		}
		h.held[key]--
		if h.held[key] == 0 {
			h.vm.Keypad().Release(uint8(key))
		}
	}
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

// Render draws a frame as half block characters, starting at the top left
// corner of the terminal.
func Render(frame [chip8.DisplayW * chip8.DisplayH]uint8) string {
	var buf bytes.Buffer
	buf.WriteString("\x1b[H")
	for y := 0; y < chip8.DisplayH; y += 2 {
		for x := 0; x < chip8.DisplayW; x++ {
			top := frame[y*chip8.DisplayW+x] != 0
			bottom := frame[(y+1)*chip8.DisplayW+x] != 0
			switch {
			case top && bottom:
				buf.WriteRune('█')
			case top:
				buf.WriteRune('▀')
			case bottom:
				buf.WriteRune('▄')
			default:
				buf.WriteByte(' ')
			}
		}
		buf.WriteString("\r\n")
	}
	return buf.String()
}
