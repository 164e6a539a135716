package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex/internal/logging"
	"github.com/vovakirdan/reflex/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start reflex with a launcher menu",
	Long: `Start reflex in interactive menu mode.

The launcher shows the high-score board and lets you play or browse the
run history. After a game you return to the launcher.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  reflex menu
  reflex menu --db ./history.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

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

	// Menu loop
	for {
		width, height := terminalSize()
		choice, err := tui.RunMenu(ledger.Board(), width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		switch choice {
		case tui.ChoicePlay:
			h := tui.NewHandheld(cfg, ledger, tui.HandheldOptions{
				Seed:     flagSeed,
				Logger:   logger,
				Recorder: recorderFor(store),
			})
			if err := tui.Run(context.Background(), h); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}

		case tui.ChoiceHistory:
			goBack, err := tui.RunHistory(store, width, height)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return
			}

		default:
			return
		}
	}
}
