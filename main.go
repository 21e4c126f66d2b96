package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"

	"github.com/retroenv/retrogolib/log"
	"github.com/tuboc/chip8vm/audio"
	"github.com/tuboc/chip8vm/chip8"
	"github.com/tuboc/chip8vm/config"
	e "github.com/tuboc/chip8vm/emulator"
	"github.com/tuboc/chip8vm/terminal"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := config.ParseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	binary, err := os.ReadFile(opts.File)
	if err != nil {
		logger.Fatal("Reading chip8 image failed", log.Err(err))
	}
	logger.Debug("Loaded chip8 image", log.String("file", opts.File), log.Int("size", len(binary)))

	cfg := chip8.Config{
		Logger:            logger,
		IndexOverflowFlag: opts.IndexOverflowFlag,
	}

	if opts.Terminal {
		err = runTerminal(binary, cfg, opts, logger)
	} else {
		err = runWindow(binary, cfg, opts, logger)
	}
	if err != nil {
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func runWindow(binary []byte, cfg chip8.Config, opts config.Options, logger *log.Logger) error {
	emu, err := e.NewEmulator(binary, cfg, opts.StepMode, opts.CyclesPerFrame(), logger)
	if err != nil {
		return err
	}
	return emu.Run()
}

func runTerminal(binary []byte, cfg chip8.Config, opts config.Options, logger *log.Logger) error {
	vm, err := chip8.NewWithConfig(binary, cfg)
	if err != nil {
		return err
	}

	var sound terminal.Sounder
	tone := audio.NewTone(audio.SampleRate, audio.ToneFrequency)
	player, err := audio.NewPlayer(tone, audio.SampleRate)
	if err != nil {
		logger.Error("Audio unavailable", log.Err(err))
	} else {
		defer player.Close()
		sound = player
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return terminal.New(vm, logger, sound, opts.CyclesPerFrame()).Run(ctx)
}
