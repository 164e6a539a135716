// reflex is a handheld reaction game played in the terminal: the device
// asks for a gesture and the player has a few seconds to perform it.
//
// Usage:
//
//	reflex play              - Play on the emulated handheld
//	reflex menu              - Launcher with play and history
//	reflex scores            - Show the high-score board
//	reflex history [run-id]  - Browse recorded runs
//	reflex serve             - Start SSH server for remote play
//	reflex config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>  - Configuration file (default: ~/.reflex/config.yaml)
//	--seed <value>   - Set RNG seed for reproducible target sequences
//	--scores <path>  - Override the high-score file
//	--db <path>      - Override the run history database
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reflex/internal/config"
	"github.com/vovakirdan/reflex/internal/game"
	"github.com/vovakirdan/reflex/internal/highscore"
	"github.com/vovakirdan/reflex/internal/storage"
)

var (
	// Global flags
	flagConfig    string
	flagSeed      int64
	flagScoreFile string
	flagDBPath    string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reflex",
	Short: "Reflex - a handheld reaction game in your terminal",
	Long: `Reflex emulates a small handheld with a button, a rotary encoder,
an accelerometer, an RGB LED and a tiny display. Each round the device
asks for a gesture (PRESS, SPIN, SHAKE or TILT) and you have a few seconds
to perform it. Survive ten rounds to win.

Available commands:
  play     - Play on the emulated handheld
  menu     - Launcher with play and history
  scores   - Show the high-score board
  history  - Browse recorded runs
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  reflex play
  reflex play --no-accel
  reflex scores --reset
  reflex serve --ssh :2222 --metrics :9090`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagScoreFile, "scores", "", "Path to high-score file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies command-line overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	if flagScoreFile != "" {
		cfg.Storage.ScoreFile = flagScoreFile
	}
	if flagDBPath != "" {
		cfg.Storage.HistoryDB = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg
}

// openLedger opens the high-score file. The ledger heals broken files, so
// an error here means the file system refused us.
func openLedger(cfg config.Config, logger *log.Logger) *highscore.Ledger {
	ledger, err := highscore.Open(cfg.Storage.ScoreFile, logger)
	if err != nil {
		fatal("could not open high scores: %v", err)
	}
	return ledger
}

// openStore opens the run history. History is optional: on failure a
// warning is logged and nil returned.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.HistoryDB)
	if err != nil {
		logger.Warn("could not open run history, runs will not be recorded", "error", err)
		return nil
	}
	return store
}

// recorderFor returns store as a game recorder, nil when there is no store.
func recorderFor(store *storage.Store) game.Recorder {
	if store == nil {
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, 80x24 when unknown.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
