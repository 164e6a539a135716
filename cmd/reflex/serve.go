package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex/internal/logging"
	"github.com/vovakirdan/reflex/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reflex SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own emulated handheld. The high-score board
and the run history are shared by all users. Runs are recorded with the
SSH user name as player.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.reflex/host_key

Examples:
  reflex serve                           # Listen on :23234 with auto-generated key
  reflex serve --ssh :2222               # Listen on port 2222
  reflex serve --metrics :9090           # Also expose Prometheus metrics
  reflex serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Prometheus metrics address, e.g. :9090 (disabled if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := logging.Stderr(cfg.Logging, "reflex-ssh")

	ledger := openLedger(cfg, logger)
	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = flagHostKey
	srvCfg.MetricsAddress = flagMetricsAddr
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	srvCfg.Game = cfg

	server, err := tui.NewSSHServer(srvCfg, ledger, store, logger)
	if err != nil {
		fatal("could not create server: %v", err)
	}

	fmt.Printf("Starting reflex SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
