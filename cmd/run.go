package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MurdeRM3L0DY/strata/internal/backend"
	"github.com/MurdeRM3L0DY/strata/internal/config"
	"github.com/MurdeRM3L0DY/strata/internal/logger"
	"github.com/MurdeRM3L0DY/strata/internal/server"
)

var (
	keyboardPath string
	grabKeyboard bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the compositor",
	Long: `Start the compositor event loop: grab the keyboard, evaluate the Lua
init script, launch autostart commands, and serve the control socket
until quit.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&keyboardPath, "keyboard", "k", "", "Keyboard device path (default: auto-detect)")
	runCmd.Flags().BoolVar(&grabKeyboard, "grab", true, "Grab the keyboard device exclusively")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Logging.FileLogging {
		closeLog, err := logger.InitFile(config.LogFilePath())
		if err != nil {
			logger.Warnf("File logging disabled: %v", err)
		} else {
			defer closeLog()
		}
	}

	srv, err := server.New(cfg, backend.NewEvdev(keyboardPath, grabKeyboard))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
