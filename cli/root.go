// Package cli implements pageprobe, a command line tool for trying locators
// and page maps against a saved HTML file or a live page.
package cli

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pageprobe",
		Short: "Resolve page-object locators against HTML or a live page",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	f := root.PersistentFlags()
	f.String("config", "", "Config file (yaml, toml or json)")
	f.String("log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(newProbeCommand())
	root.AddCommand(newDumpCommand())
	return root
}

// prepare loads configuration and configures logging for cmd.
func prepare(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return Config{}, err
	}
	if err := setupLogging(cmd, cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
