package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MurdeRM3L0DY/strata/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n\n", config.GetConfigPath())

		fmt.Println("[general]")
		fmt.Printf("  workspaces: %d\n", cfg.General.Workspaces)
		fmt.Printf("  gaps_in:    %d\n", cfg.General.GapsIn)
		fmt.Printf("  gaps_out:   %d\n", cfg.General.GapsOut)
		fmt.Printf("  init_file:  %s\n", cfg.General.InitFile)

		fmt.Println("\n[input]")
		fmt.Printf("  repeat_rate:  %d\n", cfg.Input.RepeatRate)
		fmt.Printf("  repeat_delay: %d\n", cfg.Input.RepeatDelay)
		fmt.Printf("  xkb: layout=%q rules=%q model=%q options=%q variant=%q\n",
			cfg.Input.Xkb.Layout, cfg.Input.Xkb.Rules, cfg.Input.Xkb.Model,
			cfg.Input.Xkb.Options, cfg.Input.Xkb.Variant)

		fmt.Println("\n[logging]")
		fmt.Printf("  file_logging: %v\n", cfg.Logging.FileLogging)
		fmt.Printf("  log_level:    %s\n", cfg.Logging.LogLevel)

		if len(cfg.Autostart) > 0 {
			fmt.Println("\n[autostart]")
			for _, argv := range cfg.Autostart {
				fmt.Printf("  %s\n", strings.Join(argv, " "))
			}
		}
		return nil
	},
}
