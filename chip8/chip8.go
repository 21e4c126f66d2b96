package chip8

import (
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

const (
	MemorySize       = 4096
	FontOffset       = 0x000
	FontSpriteBytes  = 5
	ProgramOffset    = 0x200
	MaxProgramSize   = MemorySize - ProgramOffset
	RegisterCount    = 16
	OpHistoryNum     = 16
	instructionBytes = 2
)

var fontSprites = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Config holds the optional collaborators of a machine.
// Zero values select math/rand bytes, time.Now and no logging.
type Config struct {
	Random RandomSource
	Clock  func() time.Time
	Logger *log.Logger

	// IndexOverflowFlag makes Fx1E set VF to 1 when I+Vx leaves the 12-bit range
	// and to 0 otherwise. VF is left alone when false.
	IndexOverflowFlag bool
}

type runState uint8

const (
	running runState = iota
	awaitingKey
)

// Chip8 is a single CHIP-8 machine. It is not safe for concurrent use; the host
// loop owns it and writes the keypad between cycles.
type Chip8 struct {
	mem   [MemorySize]uint8 // memory
	pc    uint16            // program counter
	v     [RegisterCount]uint8
	i     uint16 // index register
	stack Stack
	timer Timers
	keys  Keypad
	disp  Framebuffer

	state   runState
	waitReg uint8 // destination register of a pending Fx0A

	random  RandomSource
	logger  *log.Logger
	quirkVF bool

	ophistory      [OpHistoryNum]string
	ophistoryIndex int
}

// New returns a machine with the font table and rom loaded, using default collaborators.
func New(rom []byte) (*Chip8, error) {
	return NewWithConfig(rom, Config{})
}

// NewWithConfig returns a machine with the font table and rom loaded.
func NewWithConfig(rom []byte, cfg Config) (*Chip8, error) {
	if cfg.Random == nil {
		cfg.Random = NewMathRandom()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	c := &Chip8{
		pc:      ProgramOffset,
		random:  cfg.Random,
		logger:  cfg.Logger,
		quirkVF: cfg.IndexOverflowFlag,
		timer:   newTimers(cfg.Clock),
	}
	copy(c.mem[FontOffset:], fontSprites)

	if err := c.LoadROM(rom); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadROM copies rom into memory at ProgramOffset. Memory is not touched
// when the rom does not fit.
func (c *Chip8) LoadROM(rom []byte) error {
	if len(rom) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrRomTooLarge, len(rom), MaxProgramSize)
	}
	copy(c.mem[ProgramOffset:], rom)
	return nil
}

// Step runs one cycle: fetch, decode and execute one instruction (or poll the
// keypad while an Fx0A is pending), then tick the timers.
// Any returned error is fatal for the loaded program and is a *CycleError.
func (c *Chip8) Step() error {
	if c.state == awaitingKey {
		c.resolveKeyWait()
	} else if err := c.cycle(); err != nil {
		return err
	}

	c.timer.tick()
	return nil
}

func (c *Chip8) cycle() error {
	pc := c.pc
	op, err := c.fetchOpcode()
	if err != nil {
		return &CycleError{PC: pc, Opcode: op, Err: err}
	}

	ins := Decode(op)
	if err := c.execute(ins); err != nil {
		return &CycleError{PC: pc, Opcode: op, Err: err}
	}

	c.recordHistory(pc, ins)
	return nil
}

func (c *Chip8) fetchOpcode() (uint16, error) {
	if int(c.pc)+1 >= MemorySize {
		return 0, fmt.Errorf("%w: fetch at %04X", ErrMemoryOutOfBounds, c.pc)
	}
	return uint16(c.mem[c.pc])<<8 | uint16(c.mem[c.pc+1]), nil
}

func (c *Chip8) resolveKeyWait() {
	key, ok := c.keys.lowestPressed()
	if !ok {
		return
	}
	c.v[c.waitReg] = key
	c.state = running
	c.pc += instructionBytes
}

func (c *Chip8) updateCarryFlag(b bool) {
	if b {
		c.v[0xf] = 1
	} else {
		c.v[0xf] = 0
	}
}

// checkRange validates that n bytes starting at addr lie inside memory.
func checkRange(addr uint16, n int) error {
	if int(addr)+n > MemorySize {
		return fmt.Errorf("%w: %d bytes at %04X", ErrMemoryOutOfBounds, n, addr)
	}
	return nil
}

func (c *Chip8) recordHistory(pc uint16, ins Instruction) {
	c.ophistory[c.ophistoryIndex] = fmt.Sprintf("%03X-%04X %s", pc, ins.Opcode, ins)
	c.ophistoryIndex = (c.ophistoryIndex + 1) % OpHistoryNum
}

// History returns the last executed instructions, oldest first.
func (c *Chip8) History() []string {
	h := make([]string, 0, OpHistoryNum)
	for n := 0; n < OpHistoryNum; n++ {
		h = append(h, c.ophistory[(c.ophistoryIndex+n)%OpHistoryNum])
	}
	return h
}

func (c *Chip8) V(x int) uint8 { return c.v[x&0xf] }
func (c *Chip8) I() uint16 { return c.i }
func (c *Chip8) PC() uint16 { return c.pc }
func (c *Chip8) SP() int { return c.stack.Depth() }
func (c *Chip8) Delay() uint8 { return c.timer.delay }
func (c *Chip8) Sound() uint8 { return c.timer.sound }
func (c *Chip8) Memory(a uint16) uint8 { return c.mem[a&(MemorySize-1)] }

// Waiting reports whether an Fx0A is parked waiting for a key.
func (c *Chip8) Waiting() bool { return c.state == awaitingKey }

// Keypad returns the latch the host writes key states into.
func (c *Chip8) Keypad() *Keypad { return &c.keys }

// Display returns the framebuffer the renderer reads from.
func (c *Chip8) Display() *Framebuffer { return &c.disp }

// SoundActive reports whether the tone should currently be playing.
func (c *Chip8) SoundActive() bool { return c.timer.sound > 0 }

// ToneComplete reports, once, that the sound timer decayed to zero.
func (c *Chip8) ToneComplete() bool { return c.timer.takeToneComplete() }
