// Package server drives the compositor event loop. One goroutine owns the
// compositor and the interpreter; backend, reaper, line-reader, and IPC
// goroutines only post events into channels drained here.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/MurdeRM3L0DY/strata/defaults"
	"github.com/MurdeRM3L0DY/strata/internal/backend"
	"github.com/MurdeRM3L0DY/strata/internal/compositor"
	"github.com/MurdeRM3L0DY/strata/internal/config"
	"github.com/MurdeRM3L0DY/strata/internal/input"
	"github.com/MurdeRM3L0DY/strata/internal/ipc"
	"github.com/MurdeRM3L0DY/strata/internal/layout"
	"github.com/MurdeRM3L0DY/strata/internal/logger"
	"github.com/MurdeRM3L0DY/strata/internal/output"
	"github.com/MurdeRM3L0DY/strata/internal/proc"
	"github.com/MurdeRM3L0DY/strata/internal/script"
)

// lineEvent is one stdout/stderr line waiting for its script callback.
type lineEvent struct {
	fn   *lua.LFunction
	line string
}

// Server wires the event sources to the compositor and runs the loop.
type Server struct {
	cfg     *config.Config
	comp    *compositor.Compositor
	runtime *script.Runtime
	backend backend.Backend
	reaper  *proc.Reaper
	control *ipc.Server

	lines    chan lineEvent
	quit     chan struct{}
	quitOnce sync.Once
}

// New assembles a server from the loaded configuration and an input backend.
func New(cfg *config.Config, b backend.Backend) (*Server, error) {
	control, err := ipc.NewServer("")
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		comp:    compositor.New(cfg),
		backend: b,
		reaper:  proc.NewReaper(),
		control: control,
		lines:   make(chan lineEvent, 64),
		quit:    make(chan struct{}),
	}
	s.runtime = script.New(s.comp, s)
	s.comp.OnQuit(func() {
		s.quitOnce.Do(func() { close(s.quit) })
	})
	// the reap loop records exit statuses directly, so ch:wait() in a script
	// callback returns even while this loop is busy running that callback
	s.comp.OnSpawn(s.reaper.Adopt)

	// until a protocol layer attaches real outputs, every workspace tiles
	// into one logical screen
	screen := output.New("headless-1", layout.Rect{Width: 1920, Height: 1080})
	for _, ws := range s.comp.Workspaces.All() {
		ws.AddOutput(screen)
	}
	return s, nil
}

// Compositor exposes the owned state, for the protocol layer and tests.
func (s *Server) Compositor() *compositor.Compositor {
	return s.comp
}

// WatchLines implements script.Host: lines read off the child pipe are posted
// back to the loop thread, which invokes the callback inside a scope.
func (s *Server) WatchLines(r io.Reader, fn *lua.LFunction) {
	go proc.WatchLines(r, func(line string) {
		select {
		case s.lines <- lineEvent{fn: fn, line: line}:
		case <-s.quit:
		}
	})
}

// Run starts the event sources and blocks in the loop until quit.
func (s *Server) Run(ctx context.Context) error {
	s.reaper.Start()
	defer s.reaper.Stop()

	if err := s.backend.Start(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	defer s.backend.Stop()

	if err := s.control.Start(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	defer s.control.Stop()

	defer s.runtime.Close()

	if err := s.bootstrap(); err != nil {
		return err
	}
	s.autostart()

	logger.Info("Compositor event loop running")
	for {
		select {
		case ev := <-s.backend.Events():
			s.handleKey(ev)
		case exit := <-s.reaper.Events():
			s.handleExit(exit)
		case le := <-s.lines:
			s.handleLine(le)
		case cmd := <-s.control.Commands():
			cmd.Reply <- s.handleControl(cmd.Req)
		case <-s.quit:
			logger.Info("Compositor shutting down")
			return nil
		case <-ctx.Done():
			logger.Info("Compositor shutting down")
			return ctx.Err()
		}
	}
}

// bootstrap evaluates the embedded bindings, then the user init script when
// one exists. User bindings on the same chords replace the built-ins.
func (s *Server) bootstrap() error {
	return s.runtime.Scope(func(*compositor.Compositor) error {
		if err := s.runtime.RunString(defaults.Script()); err != nil {
			return fmt.Errorf("built-in bindings: %w", err)
		}

		path := s.initFilePath()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			logger.Debugf("No init script at %s", path)
			return nil
		}
		logger.Infof("Loading init script %s", path)
		if err := s.runtime.RunFile(path); err != nil {
			// a broken user script keeps the built-in bindings usable
			logger.Errorf("Init script failed: %v", err)
		}
		return nil
	})
}

func (s *Server) initFilePath() string {
	if s.cfg.General.InitFile != "" {
		return s.cfg.General.InitFile
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "strata", "init.lua")
}

func (s *Server) autostart() {
	for _, argv := range s.cfg.Autostart {
		if len(argv) == 0 {
			continue
		}
		if _, err := s.comp.Spawn(argv); err != nil {
			logger.Warnf("Autostart %v failed: %v", argv, err)
		}
	}
}

// handleKey feeds the transition into the modifier machine, then dispatches a
// keybind on non-modifier presses.
func (s *Server) handleKey(ev input.KeyboardEvent) {
	s.comp.HandleModifiers(ev)
	if !ev.Pressed || ev.Keysym.IsModifier() || ev.Keysym == input.KeysymNone {
		return
	}
	pat := s.comp.PatternFor(ev.Keysym)
	if err := s.runtime.Scope(func(*compositor.Compositor) error {
		if s.runtime.RunKeybind(pat) {
			logger.Debugf("Dispatched keybind %s", pat)
		}
		return nil
	}); err != nil {
		logger.Errorf("Keybind scope: %v", err)
	}
}

// handleExit records the reaped status and delivers the registered callback,
// if any. Exits for untracked pids are dropped.
func (s *Server) handleExit(exit proc.ExitEvent) {
	child, fn := s.comp.Proc.TakeExit(exit.Pid)
	if child == nil {
		logger.Debugf("Exit for untracked pid %d dropped", exit.Pid)
		return
	}
	child.MarkExited(exit.Code, exit.Signal)
	if fn == nil {
		return
	}
	if err := s.runtime.Scope(func(*compositor.Compositor) error {
		s.runtime.CallExit(fn, exit.Code, exit.Signal)
		return nil
	}); err != nil {
		logger.Errorf("Exit callback scope: %v", err)
	}
}

func (s *Server) handleLine(le lineEvent) {
	if err := s.runtime.Scope(func(*compositor.Compositor) error {
		s.runtime.CallLine(le.fn, le.line)
		return nil
	}); err != nil {
		logger.Errorf("Line callback scope: %v", err)
	}
}

// handleControl executes one IPC request on the loop thread.
func (s *Server) handleControl(req ipc.Request) ipc.Response {
	switch req.Command {
	case ipc.CmdWorkspace:
		if err := s.comp.SwitchToWorkspace(req.Target); err != nil {
			return ipc.Errorf("%v", err)
		}
		return ipc.Response{OK: true}
	case ipc.CmdMoveWindow:
		if err := s.comp.MoveWindowToWorkspace(req.Target); err != nil {
			return ipc.Errorf("%v", err)
		}
		return ipc.Response{OK: true}
	case ipc.CmdFollow:
		if err := s.comp.FollowWindowMove(req.Target); err != nil {
			return ipc.Errorf("%v", err)
		}
		return ipc.Response{OK: true}
	case ipc.CmdClose:
		s.comp.CloseWindow()
		return ipc.Response{OK: true}
	case ipc.CmdQuit:
		s.comp.Quit()
		return ipc.Response{OK: true}
	case ipc.CmdStatus:
		return ipc.Response{OK: true, Status: &ipc.Status{
			Workspace:  s.comp.Workspaces.CurrentIndex(),
			Workspaces: s.comp.Workspaces.Len(),
			Windows:    len(s.comp.Workspaces.AllWindows()),
			Children:   s.comp.Proc.Tracked(),
		}}
	default:
		return ipc.Errorf("unknown command %q", req.Command)
	}
}
