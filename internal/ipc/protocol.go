// Package ipc is the compositor's control socket: a unix socket speaking
// line-delimited JSON, one request and one response per line.
package ipc

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// Command names accepted over the socket.
const (
	CmdWorkspace  = "workspace"
	CmdMoveWindow = "move-window"
	CmdFollow     = "follow"
	CmdClose      = "close"
	CmdQuit       = "quit"
	CmdStatus     = "status"
)

// Request is one client command.
type Request struct {
	Command string `json:"command"`
	// Target is the workspace id for workspace/move-window/follow.
	Target int `json:"target,omitempty"`
}

// Response answers exactly one Request.
type Response struct {
	OK     bool    `json:"ok"`
	Error  string  `json:"error,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// Status is the payload of a status query.
type Status struct {
	Workspace  int `json:"workspace"`
	Workspaces int `json:"workspaces"`
	Windows    int `json:"windows"`
	Children   int `json:"children"`
}

// Errorf builds a failed response.
func Errorf(format string, args ...any) Response {
	return Response{Error: fmt.Sprintf(format, args...)}
}

// SocketPath resolves the control socket location. XDG_RUNTIME_DIR is
// preferred; the /tmp fallback carries the username so concurrent sessions
// do not collide.
func SocketPath() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "strata.sock"), nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return filepath.Join("/tmp", fmt.Sprintf("strata-%s.sock", currentUser.Username)), nil
}
