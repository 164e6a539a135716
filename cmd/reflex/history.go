package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reflex/internal/logging"
	"github.com/vovakirdan/reflex/internal/platform/tui"
	"github.com/vovakirdan/reflex/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Browse recorded runs",
	Long: `Show the run history recorded by play, menu and serve.

Without arguments an interactive table of recent runs, best runs and
per-gesture success rates is shown. With a run ID the rounds of that run
are printed. Output that is not a terminal is printed as plain text.

Examples:
  reflex history
  reflex history --plain --limit 20
  reflex history 0b9c6b1e-5f0e-4a57-9d8a-2f0f8c1f4d6e
  reflex history --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive table")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print in plain mode")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
}

func runHistory(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := logging.Stderr(cfg.Logging, "reflex")

	store, err := storage.Open(cfg.Storage.HistoryDB)
	if err != nil {
		fatal("could not open run history: %v", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearHistory(); err != nil {
			fatal("%v", err)
		}
		logger.Info("run history cleared")
		return

	case len(args) == 1:
		printRun(store, args[0])
		return

	case flagPlain || !term.IsTerminal(int(os.Stdout.Fd())):
		printHistory(store, flagLimit)
		return
	}

	width, height := terminalSize()
	if _, err := tui.RunHistory(store, width, height); err != nil {
		fatal("%v", err)
	}
}

// printHistory prints recent runs, totals and gesture statistics.
func printHistory(store *storage.Store, limit int) {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Println("Recent Runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'reflex play' to record the first run!")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-10s  %-8s  %-5s  %-8s  %s\n", "Name", "Player", "Level", "Score", "Result", "Date")
	fmt.Printf("  %-5s  %-10s  %-8s  %-5s  %-8s  %s\n", "----", "------", "-----", "-----", "------", "----")

	for _, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-5s  %-10s  %-8s  %-5d  %-8s  %s\n",
			r.Name, player, r.Difficulty, r.Score, r.Result(), r.Finished.Local().Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetStats(); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Best: %d  Average: %.1f\n",
			stats.Runs, stats.Wins, stats.BestScore, stats.AvgScore)
	}

	gestures, err := store.GetGestureStats()
	if err != nil || len(gestures) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-7s  %s\n", "Gesture", "Rounds", "Success", "Avg time")
	fmt.Printf("  %-8s  %-6s  %-7s  %s\n", "-------", "------", "-------", "--------")
	for _, g := range gestures {
		fmt.Printf("  %-8s  %-6d  %-7s  %.2fs\n",
			g.Target, g.Rounds, fmt.Sprintf("%.0f%%", g.SuccessRate()*100), g.AvgElapsed.Seconds())
	}
}

// printRun prints one run and its rounds.
func printRun(store *storage.Store, runID string) {
	run, err := store.RunByID(runID)
	if err != nil {
		fatal("%v", err)
	}
	if run == nil {
		fatal("no run with ID %q", runID)
	}

	fmt.Printf("Run %s\n", run.RunRecord.ID)
	fmt.Println()
	fmt.Printf("  Name:       %s\n", run.Name)
	if run.Player != "" {
		fmt.Printf("  Player:     %s\n", run.Player)
	}
	fmt.Printf("  Difficulty: %s\n", run.Difficulty)
	fmt.Printf("  Result:     %s (score %d)\n", run.Result(), run.Score)
	if run.Rank >= 0 {
		fmt.Printf("  Board:      place %d\n", run.Rank+1)
	}
	fmt.Printf("  Played:     %s\n", run.Started.Local().Format("2006-01-02 15:04:05"))

	rounds, err := store.RunRounds(runID)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Println()
	fmt.Printf("  %-5s  %-7s  %-8s  %s\n", "Level", "Target", "Detected", "Time")
	fmt.Printf("  %-5s  %-7s  %-8s  %s\n", "-----", "------", "--------", "----")
	for _, r := range rounds {
		fmt.Printf("  %-5d  %-7s  %-8s  %.2fs\n", r.Level, r.Target, r.Detected, r.Elapsed.Seconds())
	}
}
