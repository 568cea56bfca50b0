package ipc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
)

// Executor runs one command line.
type Executor interface {
	Exec(args []string) (status int, output string)
}

// HookSource streams hook lines.
type HookSource interface {
	Subscribe(buffer int) (<-chan string, func())
}

// statusProtocolError is reported for malformed requests. It matches the
// unknown-error status of the command surface.
const statusProtocolError = 1

// Server handles IPC requests from clients.
type Server struct {
	socketPath   string
	listener     net.Listener
	exec         Executor
	hooks        HookSource
	logger       *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a server for socketPath. A stale socket file is removed.
func NewServer(socketPath string, exec Executor, hooks HookSource, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	_ = os.Remove(socketPath)
	return &Server{
		socketPath: socketPath,
		exec:       exec,
		hooks:      hooks,
		logger:     logger,
	}
}

// Start begins listening for IPC connections.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			stopping := s.shuttingDown
			s.shutdownMu.Unlock()
			if stopping {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Debug("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.write(conn, NewErrorResponse(statusProtocolError, fmt.Sprintf("invalid request: %v", err)))
		return
	}

	if req.Idle {
		s.streamHooks(conn, reader)
		return
	}

	status, output := s.exec.Exec(req.Args)
	s.write(conn, &Response{Status: status, Output: output})
}

// streamHooks forwards hook lines until the client hangs up or the hook
// source shuts down.
func (s *Server) streamHooks(conn net.Conn, reader *bufio.Reader) {
	if s.hooks == nil {
		s.write(conn, NewErrorResponse(statusProtocolError, "hooks are not available"))
		return
	}
	lines, cancel := s.hooks.Subscribe(64)
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go func() {
		// Any read result means the client is gone.
		_, _ = reader.ReadByte()
		stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if err := s.write(conn, &Response{Hook: line}); err != nil {
				return
			}
		}
	}
}

func (s *Server) write(conn net.Conn, resp *Response) error {
	data, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return err
	}
	if _, err := conn.Write(data); err != nil {
		s.logger.Debug("failed to send response", "error", err)
		return err
	}
	return nil
}

// Stop shuts the listener down and removes the socket file.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
		s.wg.Wait()
	}
	_ = os.Remove(s.socketPath)
}
