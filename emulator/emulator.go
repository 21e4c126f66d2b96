package emulator

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/tuboc/chip8vm/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	VBlankFrequency = 60
	DisplayScale    = 10
	EmulatorW       = chip8.DisplayW * DisplayScale
	EmulatorH       = chip8.DisplayH * DisplayScale
	WindowW         = EmulatorW
	WindowH         = EmulatorH + 256
	InformationH    = WindowH - EmulatorH
	FontSize        = 16
	AudioSamples    = 64
)

type Emulator struct {
	rom      []byte
	cfg      chip8.Config
	chip8    *chip8.Chip8
	logger   *log.Logger
	renderer *sdl.Renderer
	audio    sdl.AudioDeviceID
	running  bool
	focus    bool
	stepMode bool
	redraw   bool

	cyclesPerFrame int
}

var scanCode2Key = map[int]byte{
	sdl.SCANCODE_4: 0x1,
	sdl.SCANCODE_5: 0x2,
	sdl.SCANCODE_6: 0x3,
	sdl.SCANCODE_7: 0xc,
	sdl.SCANCODE_R: 0x4,
	sdl.SCANCODE_T: 0x5,
	sdl.SCANCODE_Y: 0x6,
	sdl.SCANCODE_U: 0xd,
	sdl.SCANCODE_F: 0x7,
	sdl.SCANCODE_G: 0x8,
	sdl.SCANCODE_H: 0x9,
	sdl.SCANCODE_J: 0xe,
	sdl.SCANCODE_V: 0xa,
	sdl.SCANCODE_B: 0x0,
	sdl.SCANCODE_N: 0xb,
	sdl.SCANCODE_M: 0xf,
}

func initRenderer() (*sdl.Renderer, error) {
	window, err := sdl.CreateWindow("Chip-8 Emulator", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, WindowW, WindowH, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("CreateWindow: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, fmt.Errorf("CreateRenderer: %w", err)
	}

	// workaround for https://bugzilla.libsdl.org/show_bug.cgi?id=4272
	// 	or update sdl2 to 2.0.9
	window.Hide()
	sdl.PumpEvents()
	window.Show()

	return renderer, nil
}

func initAudio() (sdl.AudioDeviceID, error) {
	want := &sdl.AudioSpec{
		Freq:     AudioSamples * VBlankFrequency,
		Format:   sdl.AUDIO_F32LSB,
		Channels: 1,
		Samples:  AudioSamples,
	}
	have := &sdl.AudioSpec{}
	audio, err := sdl.OpenAudioDevice("", false, want, have, sdl.AUDIO_ALLOW_ANY_CHANGE)
	if err != nil {
		return 0, fmt.Errorf("OpenAudioDevice: %w", err)
	}

	sdl.PauseAudioDevice(audio, false)
	return audio, nil
}

// NewEmulator opens the window and audio device and loads rom into a new machine.
func NewEmulator(rom []byte, cfg chip8.Config, stepMode bool, cyclesPerFrame int, logger *log.Logger) (*Emulator, error) {
	c, err := chip8.NewWithConfig(rom, cfg)
	if err != nil {
		return nil, err
	}

	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return nil, fmt.Errorf("sdl.Init: %w", err)
	}

	renderer, err := initRenderer()
	if err != nil {
		return nil, err
	}
	audio, err := initAudio()
	if err != nil {
		return nil, err
	}

	return &Emulator{
		rom:            rom,
		cfg:            cfg,
		chip8:          c,
		logger:         logger,
		renderer:       renderer,
		audio:          audio,
		running:        true,
		focus:          true,
		stepMode:       stepMode,
		redraw:         true,
		cyclesPerFrame: cyclesPerFrame,
	}, nil
}

// Run executes the machine until the window is closed or the program fails.
func (e *Emulator) Run() error {
	defer sdl.Quit()

	ticker := time.NewTicker(time.Second / VBlankFrequency)
	defer ticker.Stop()

	for e.running {
		if e.focus && !e.stepMode {
			for n := 0; n < e.cyclesPerFrame; n++ {
				if err := e.step(); err != nil {
					return err
				}
			}
		}

		if e.chip8.Display().Dirty() || e.redraw {
			e.draw()
			e.chip8.Display().ClearDirty()
			e.redraw = false
		}
		e.updateSound()

		if err := e.pollEvents(); err != nil {
			return err
		}
		<-ticker.C
	}
	return nil
}

func (e *Emulator) step() error {
	err := e.chip8.Step()
	if err == nil {
		return nil
	}

	var ce *chip8.CycleError
	if errors.As(err, &ce) {
		e.logger.Error("Machine stopped",
			log.String("pc", fmt.Sprintf("%03X", ce.PC)),
			log.String("opcode", fmt.Sprintf("%04X", ce.Opcode)),
			log.Err(ce.Err))
	} else {
		e.logger.Error("Machine stopped", log.Err(err))
	}
	e.running = false
	return err
}

func (e *Emulator) draw() {
	_ = e.renderer.SetDrawColor(0, 0, 0, 255)
	_ = e.renderer.Clear()

	// chip8 display
	_ = e.renderer.SetDrawColor(0, 255, 0, 255)
	disp := e.chip8.Display()
	for y := int32(0); y < chip8.DisplayH; y++ {
		for x := int32(0); x < chip8.DisplayW; x++ {
			if disp.Pixel(int(x), int(y)) != 0 {
				_ = e.renderer.FillRect(&sdl.Rect{X: x * DisplayScale, Y: y * DisplayScale, W: DisplayScale, H: DisplayScale})
			}
		}
	}

	e.drawDebugInfo()

	e.renderer.Present()
}

func (e *Emulator) pollEvents() error {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			e.running = false
		case *sdl.KeyboardEvent:
			switch ev.Type {
			case sdl.KEYDOWN:
				if i, ok := scanCode2Key[int(ev.Keysym.Scancode)]; ok {
					e.chip8.Keypad().Press(i)
					continue
				}
				switch ev.Keysym.Scancode {
				case sdl.SCANCODE_SPACE:
					if e.stepMode {
						if err := e.step(); err != nil {
							return err
						}
					} else {
						e.stepMode = true
					}
					e.redraw = true
				case sdl.SCANCODE_RETURN:
					e.stepMode = false
				case sdl.SCANCODE_Z:
					if err := e.reset(); err != nil {
						return err
					}
				}
			case sdl.KEYUP:
				if i, ok := scanCode2Key[int(ev.Keysym.Scancode)]; ok {
					e.chip8.Keypad().Release(i)
				}
			}
		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_FOCUS_LOST:
				e.focus = false
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				e.focus = true
			}
		}
	}
	return nil
}

func (e *Emulator) reset() error {
	c, err := chip8.NewWithConfig(e.rom, e.cfg)
	if err != nil {
		return err
	}
	e.chip8 = c
	e.redraw = true
	sdl.ClearQueuedAudio(e.audio)
	e.logger.Info("Machine reset")
	return nil
}

func (e *Emulator) updateSound() {
	if e.chip8.ToneComplete() {
		sdl.ClearQueuedAudio(e.audio)
	}
	if !e.focus || !e.chip8.SoundActive() {
		return
	}

	samples := make([]byte, 4*AudioSamples)
	for i := 0; i < len(samples); i += 4 {
		// sin wave
		f := 2.0 * math.Pi / 180.0 * float64(360*i/AudioSamples)
		f = math.Sin(f)
		binary.LittleEndian.PutUint32(samples[i:], math.Float32bits(float32(f)))
	}

	if err := sdl.QueueAudio(e.audio, samples); err != nil {
		e.logger.Error("Queueing audio failed", log.Err(err))
	}
}

func (e *Emulator) drawDebugInfo() {
	_ = e.renderer.SetDrawColor(32, 32, 32, 255)
	_ = e.renderer.FillRect(&sdl.Rect{X: 0, Y: EmulatorH, W: EmulatorW, H: InformationH})
	_ = e.renderer.SetDrawColor(200, 200, 200, 255)

	// draw opcodes history
	for i, s := range e.chip8.History() {
		e.drawText(s, 0, EmulatorH+i*FontSize)
	}

	// draw v registers
	offsetX := EmulatorW/2 - 32
	for i := 0; i < chip8.RegisterCount; i++ {
		e.drawText(fmt.Sprintf("V%X = %02X", i, e.chip8.V(i)), offsetX, EmulatorH+i*FontSize)
	}

	// draw other registers
	offsetX = EmulatorW - FontSize*9
	e.drawText(fmt.Sprintf("DT = %02X", e.chip8.Delay()), offsetX, EmulatorH+FontSize*0)
	e.drawText(fmt.Sprintf("ST = %02X", e.chip8.Sound()), offsetX, EmulatorH+FontSize*1)
	e.drawText(fmt.Sprintf("SP = %02X", e.chip8.SP()), offsetX, EmulatorH+FontSize*2)
	e.drawText(fmt.Sprintf(" I = %04X", e.chip8.I()), offsetX, EmulatorH+FontSize*3)
	e.drawText(fmt.Sprintf("PC = %04X", e.chip8.PC()), offsetX, EmulatorH+FontSize*4)

	// draw key inputs
	keys := e.chip8.Keypad().State()
	e.drawText("KEYS "+keyRow(keys, 0x1, 0x2, 0x3, 0xc), offsetX, EmulatorH+FontSize*6)
	e.drawText("     "+keyRow(keys, 0x4, 0x5, 0x6, 0xd), offsetX, EmulatorH+FontSize*7)
	e.drawText("     "+keyRow(keys, 0x7, 0x8, 0x9, 0xe), offsetX, EmulatorH+FontSize*8)
	e.drawText("     "+keyRow(keys, 0xa, 0x0, 0xb, 0xf), offsetX, EmulatorH+FontSize*9)

	if e.chip8.Waiting() {
		e.drawText("WAIT KEY", offsetX, EmulatorH+FontSize*11)
	}
	if e.stepMode {
		e.drawText("STEP", offsetX, EmulatorH+FontSize*12)
	}
}

func (e *Emulator) drawText(s string, x, y int) {
	for _, p := range textPixels(s, x, y) {
		_ = e.renderer.DrawPoint(int32(p.X), int32(p.Y))
	}
}

func keyRow(keys [chip8.KeyCount]bool, k ...uint8) string {
	b := make([]byte, len(k))
	for i, key := range k {
		b[i] = '0'
		if keys[key] {
			b[i] = '1'
		}
	}
	return string(b)
}
