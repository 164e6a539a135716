package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex/internal/logging"
)

var flagReset bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score board",
	Long: `Display the three best scores kept by the handheld.

The board lives in a small text file (one "NAME,SCORE" line per place).
A missing or broken file is replaced by the default board.

Examples:
  reflex scores
  reflex scores --reset
  reflex scores --scores ./highscore.txt`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Restore the default board")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := logging.Stderr(cfg.Logging, "reflex")
	ledger := openLedger(cfg, logger)

	if flagReset {
		if err := ledger.Reset(); err != nil {
			fatal("could not reset high scores: %v", err)
		}
		fmt.Println("High scores reset.")
		fmt.Println()
	}

	fmt.Println("High Scores")
	fmt.Println()
	for _, line := range ledger.Board().Lines() {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()
	fmt.Printf("Stored in %s\n", ledger.Path())
}
