package ipc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/MurdeRM3L0DY/strata/internal/logger"
)

// Command pairs a decoded request with its reply channel. The event loop
// drains Commands, executes the request on its own thread, and sends exactly
// one Response.
type Command struct {
	Req   Request
	Reply chan Response
}

// Server accepts control connections and forwards their requests to the
// event loop.
type Server struct {
	mu         sync.Mutex
	listener   net.Listener
	socketPath string
	commands   chan Command
	conns      map[net.Conn]struct{}
	wg         sync.WaitGroup
	cancel     context.CancelFunc
	running    bool
}

// NewServer creates a server on the given socket path; an empty path resolves
// via SocketPath.
func NewServer(socketPath string) (*Server, error) {
	if socketPath == "" {
		resolved, err := SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get socket path: %w", err)
		}
		socketPath = resolved
	}
	return &Server{
		socketPath: socketPath,
		commands:   make(chan Command, 16),
		conns:      make(map[net.Conn]struct{}),
	}, nil
}

// Commands returns the request stream drained by the event loop.
func (s *Server) Commands() <-chan Command {
	return s.commands
}

// Start binds the socket and begins accepting connections.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if err := os.RemoveAll(s.socketPath); err != nil {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0o755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket listener: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.listener = listener
	s.running = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.acceptConnections(ctx)

	logger.Infof("IPC socket server started at %s", s.socketPath)
	return nil
}

// Stop closes the listener and waits for connection goroutines.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.listener.Close()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	os.RemoveAll(s.socketPath)
	logger.Info("IPC socket server stopped")
}

func (s *Server) acceptConnections(ctx context.Context) {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				logger.Errorf("Failed to accept connection: %v", err)
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConnection(ctx, conn)
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()

	logger.Debug("New IPC connection established")

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			logger.Debugf("Connection closed or read error: %v", err)
			return
		}

		reply := make(chan Response, 1)
		select {
		case s.commands <- Command{Req: req, Reply: reply}:
		case <-ctx.Done():
			return
		}

		var resp Response
		select {
		case resp = <-reply:
		case <-ctx.Done():
			return
		}

		if err := enc.Encode(resp); err != nil {
			logger.Errorf("Failed to send response: %v", err)
			return
		}
	}
}
