package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"domaincheck/internal/config"
	"domaincheck/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// cfg is the resolved runtime configuration, populated before any RunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "domaincheck",
	Short: "Domain availability checks over DNS and RDAP",
	Long: "Domaincheck determines whether domains are available for registration\n" +
		"by probing DNS records and querying RDAP registries, and exposes the\n" +
		"checks as MCP tools for model-driven agents.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to YAML config file (default: .domaincheck.yaml if present)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.Version = version
}

// setup resolves config and installs the global logger for every command.
func setup(cmd *cobra.Command, _ []string) error {
	path := rootFlags.configPath
	optional := path == ""
	if path == "" {
		path = ".domaincheck.yaml"
	}

	loaded, err := config.LoadFromPath(path, optional)
	if err != nil {
		return err
	}
	cfg = loaded

	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		cfg.LogFormat = rootFlags.logFormat
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.Init(level, cfg.LogFormat)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
