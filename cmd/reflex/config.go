package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration reflex would run with, as YAML.

Configuration is searched in this order:
  1. --config <path>
  2. ~/.reflex/config.yaml
  3. ./configs/reflex.yaml
  4. built-in defaults

Examples:
  reflex config
  reflex config --defaults > ~/.reflex/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default file instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML()) //nolint:errcheck // Nothing to do if stdout is gone
		return
	}

	data, err := config.Marshal(loadConfig())
	if err != nil {
		fatal("%v", err)
	}
	os.Stdout.Write(data) //nolint:errcheck // Nothing to do if stdout is gone
}
