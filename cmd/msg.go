package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MurdeRM3L0DY/strata/internal/ipc"
)

var socketPath string

var msgCmd = &cobra.Command{
	Use:   "msg",
	Short: "Send a command to the running compositor",
}

func init() {
	msgCmd.PersistentFlags().StringVarP(&socketPath, "socket", "s", "", "Control socket path (default: auto-detect)")

	msgCmd.AddCommand(
		&cobra.Command{
			Use:   "workspace <id>",
			Short: "Switch to a workspace",
			Args:  cobra.ExactArgs(1),
			RunE:  targetCommand(ipc.CmdWorkspace),
		},
		&cobra.Command{
			Use:   "move-window <id>",
			Short: "Move the window under the pointer to a workspace",
			Args:  cobra.ExactArgs(1),
			RunE:  targetCommand(ipc.CmdMoveWindow),
		},
		&cobra.Command{
			Use:   "follow <id>",
			Short: "Move the window under the pointer and switch with it",
			Args:  cobra.ExactArgs(1),
			RunE:  targetCommand(ipc.CmdFollow),
		},
		&cobra.Command{
			Use:   "close",
			Short: "Close the window under the pointer",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := send(ipc.Request{Command: ipc.CmdClose})
				return err
			},
		},
		&cobra.Command{
			Use:   "quit",
			Short: "Stop the compositor",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := send(ipc.Request{Command: ipc.CmdQuit})
				return err
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show compositor status",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := send(ipc.Request{Command: ipc.CmdStatus})
				if err != nil {
					return err
				}
				if resp.Status == nil {
					return fmt.Errorf("empty status response")
				}
				fmt.Printf("workspace:  %d/%d\n", resp.Status.Workspace, resp.Status.Workspaces)
				fmt.Printf("windows:    %d\n", resp.Status.Windows)
				fmt.Printf("children:   %d\n", resp.Status.Children)
				return nil
			},
		},
	)
}

// targetCommand builds a RunE sending one workspace-targeted request.
func targetCommand(command string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid workspace id %q", args[0])
		}
		_, err = send(ipc.Request{Command: command, Target: id})
		return err
	}
}

func send(req ipc.Request) (ipc.Response, error) {
	client, err := ipc.Dial(socketPath)
	if err != nil {
		return ipc.Response{}, err
	}
	defer client.Close()

	resp, err := client.Do(req)
	if err != nil {
		return ipc.Response{}, err
	}
	if !resp.OK {
		return resp, fmt.Errorf("%s", resp.Error)
	}
	return resp, nil
}
