package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reflex/internal/logging"
	"github.com/vovakirdan/reflex/internal/platform/tui"
)

var flagNoAccel bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on the emulated handheld",
	Long: `Start the handheld in the terminal.

The menu picks a difficulty by spinning the encoder; press to start.
Each round shows a target gesture and a countdown. Perform it before the
time runs out. After the run, spin to pick letters and press to confirm
your initials.

Controls:
  Space/Enter  - Press the button
  Right/L      - Spin the encoder clockwise
  Left/H       - Spin the encoder counter-clockwise
  S            - Shake the device
  T            - Tilt / untilt the device
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  reflex play
  reflex play --no-accel
  reflex play --seed 42 --config ./reflex.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoAccel, "no-accel", false, "Emulate a handheld without accelerometer (PRESS and SPIN only)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fatal("play needs an interactive terminal")
	}

	cfg := loadConfig()

	// The screen belongs to the game, so logs go to a file.
	logger, logFile, err := logging.File(cfg.Logging, "reflex")
	if err != nil {
		fatal("could not open log file: %v", err)
	}
	defer logFile.Close()

	ledger := openLedger(cfg, logger)
	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := tui.NewHandheld(cfg, ledger, tui.HandheldOptions{
		Seed:     flagSeed,
		NoAccel:  flagNoAccel,
		Logger:   logger,
		Recorder: recorderFor(store),
	})

	logger.Info("handheld started", "accelerometer", h.HasAccel(), "scores", ledger.Path())
	if err := tui.Run(ctx, h); err != nil {
		logger.Error("game stopped", "error", err)
		fatal("%v", err)
	}
}
