package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MurdeRM3L0DY/strata/internal/config"
	"github.com/MurdeRM3L0DY/strata/internal/logger"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configPath string

	rootCmd = &cobra.Command{
		Use:   "strata",
		Short: "Strata - a scriptable tiling compositor",
		Long: `Strata is a tiling Wayland compositor core configured through Lua.
Windows tile automatically in a dwindle layout, keybinds and process
hooks are registered from the init script, and a control socket lets
external tools drive workspaces.`,
		SilenceUsage: true,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the TOML config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(msgCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the TOML configuration and applies the log level.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		config.SetConfigPath(configPath)
	}
	if err := config.Init(); err != nil {
		return nil, err
	}
	cfg := config.Get()
	logger.SetLevel(cfg.Logging.LogLevel)
	return cfg, nil
}
