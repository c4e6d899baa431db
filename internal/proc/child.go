// Package proc tracks child processes spawned on behalf of scripts and turns
// their exits and output into events the compositor loop can dispatch.
package proc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrEmptyCommand is returned when spawning with no argv entries.
var ErrEmptyCommand = errors.New("command list is empty")

// Child is a spawned process with piped stdin/stdout/stderr. The stdout and
// stderr pipes can each be taken exactly once by a line reader.
type Child struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser

	mu     sync.Mutex
	done   chan struct{}
	code   int
	signal int
	exited bool
}

// Spawn starts argv[0] with the remaining arguments, with all three stdio
// streams piped.
func Spawn(argv []string) (*Child, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)

	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		stdinR.Close()
		stdinW.Close()
		return nil, err
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		stdinR.Close()
		stdinW.Close()
		stdoutR.Close()
		stdoutW.Close()
		return nil, err
	}

	cmd.Stdin = stdinR
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	if err := cmd.Start(); err != nil {
		stdinR.Close()
		stdinW.Close()
		stdoutR.Close()
		stdoutW.Close()
		stderrR.Close()
		stderrW.Close()
		return nil, fmt.Errorf("spawn %q: %w", argv[0], err)
	}

	// the child holds its own copies of these ends
	stdinR.Close()
	stdoutW.Close()
	stderrW.Close()

	return &Child{
		cmd:    cmd,
		stdin:  stdinW,
		stdout: stdoutR,
		stderr: stderrR,
		done:   make(chan struct{}),
	}, nil
}

// Pid returns the child's process id.
func (c *Child) Pid() int {
	return c.cmd.Process.Pid
}

// TakeStdout hands over the stdout pipe. The second caller gets nil.
func (c *Child) TakeStdout() io.ReadCloser {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.stdout
	c.stdout = nil
	return r
}

// TakeStderr hands over the stderr pipe. The second caller gets nil.
func (c *Child) TakeStderr() io.ReadCloser {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.stderr
	c.stderr = nil
	return r
}

// WriteStdin writes to the child's stdin.
func (c *Child) WriteStdin(p []byte) (int, error) {
	return c.stdin.Write(p)
}

// CloseStdin closes the child's stdin, signalling EOF.
func (c *Child) CloseStdin() error {
	return c.stdin.Close()
}

// Kill delivers SIGKILL to the child.
func (c *Child) Kill() error {
	return c.cmd.Process.Kill()
}

// MarkExited records the reaped status and releases any Wait callers.
func (c *Child) MarkExited(code, signal int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exited {
		return
	}
	c.exited = true
	c.code = code
	c.signal = signal
	close(c.done)
}

// ExitStatus returns the recorded status once the child has been reaped.
func (c *Child) ExitStatus() (code, signal int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code, c.signal, c.exited
}

// Wait blocks until the child exits and returns its exit code. When the
// reaper wins the race for the wait status, Wait falls back to the status the
// reaper recorded.
func (c *Child) Wait() (int, error) {
	if code, _, ok := c.ExitStatus(); ok {
		return code, nil
	}

	err := c.cmd.Wait()
	switch {
	case err == nil:
		c.MarkExited(0, 0)
		return 0, nil
	case errors.Is(err, unix.ECHILD):
		// already reaped elsewhere; the status arrives via MarkExited
		<-c.done
		code, _, _ := c.ExitStatus()
		return code, nil
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			ws, isWait := exitErr.Sys().(unix.WaitStatus)
			if isWait && ws.Signaled() {
				c.MarkExited(0, int(ws.Signal()))
			} else {
				c.MarkExited(exitErr.ExitCode(), 0)
			}
			code, _, _ := c.ExitStatus()
			return code, nil
		}
		return 0, err
	}
}
