package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"sync"

	"github.com/devmobasa/wayscriber/internal/logger"
)

// CommandHandler processes one command and produces its response. The
// handler is called from connection goroutines; implementations that
// touch the annotation state must bridge onto the event loop (see
// Mailbox).
type CommandHandler interface {
	HandleCommand(cmd Command) Response
}

// SocketServer accepts control connections on a unix socket.
type SocketServer struct {
	mu         sync.Mutex
	listener   net.Listener
	socketPath string
	handler    CommandHandler
	wg         sync.WaitGroup
	cancel     context.CancelFunc
	running    bool
}

// NewSocketServer builds a server on the given socket path; an empty
// path uses the per-user default.
func NewSocketServer(socketPath string, handler CommandHandler) (*SocketServer, error) {
	if socketPath == "" {
		p, err := DefaultSocketPath()
		if err != nil {
			return nil, err
		}
		socketPath = p
	}
	return &SocketServer{socketPath: socketPath, handler: handler}, nil
}

// Start binds the socket and begins accepting connections.
func (s *SocketServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if err := os.RemoveAll(s.socketPath); err != nil {
		return fmt.Errorf("remove stale socket: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0o755); err != nil {
		return fmt.Errorf("socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.socketPath, err)
	}
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		listener.Close()
		return fmt.Errorf("socket permissions: %w", err)
	}

	s.listener = listener
	s.running = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.acceptConnections(ctx)

	logger.Infof("control socket listening at %s", s.socketPath)
	return nil
}

// Stop closes the listener, waits for live connections, and removes the
// socket file.
func (s *SocketServer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	if s.cancel != nil {
		s.cancel()
	}
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.RemoveAll(s.socketPath)
	logger.Info("control socket stopped")
}

// SocketPath returns the bound path.
func (s *SocketServer) SocketPath() string { return s.socketPath }

func (s *SocketServer) acceptConnections(ctx context.Context) {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				logger.Errorf("accept control connection: %v", err)
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConnection(ctx, conn)
	}
}

func (s *SocketServer) handleConnection(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	logger.Debug("control connection established")

	scanner := bufio.NewScanner(conn)
	enc := json.NewEncoder(conn)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var cmd Command
		resp := func() Response {
			if err := json.Unmarshal(line, &cmd); err != nil {
				return Failf("malformed command: %v", err)
			}
			if err := cmd.Validate(); err != nil {
				return Fail(err)
			}
			return s.handler.HandleCommand(cmd)
		}()

		if err := enc.Encode(resp); err != nil {
			logger.Errorf("write control response: %v", err)
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Debugf("control connection read error: %v", err)
	}
}

// DefaultSocketPath is the per-user socket location.
func DefaultSocketPath() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "wayscriber.sock"), nil
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("resolve current user: %w", err)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("wayscriber-%s.sock", u.Username)), nil
}
