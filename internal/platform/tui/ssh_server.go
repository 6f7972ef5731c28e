package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// shutdownGrace bounds how long open games get to finish after a stop signal.
const shutdownGrace = 10 * time.Second

// SSHServerConfig configures remote play.
type SSHServerConfig struct {
	Address string // host:port, e.g. ":23234"

	// HostKeyPath is generated on first start when missing. Empty means
	// ~/.snake/host_key.
	HostKeyPath string

	DBPath      string
	IdleTimeout time.Duration

	// MaxPlayers caps concurrent games; 0 means no cap.
	MaxPlayers int

	// Game is the configuration every session plays with.
	Game config.Config

	// Logger receives server and session logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns the settings `snake serve` starts from.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.snake/scores.db",
		IdleTimeout: 30 * time.Minute,
		MaxPlayers:  32,
		Game:        config.Default(),
	}
}

// SSHServer hosts one snake game per SSH session. All sessions share a score
// list and best score.
type SSHServer struct {
	cfg    SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer opens the score database and prepares the listener. A
// database that cannot be opened is logged and play continues without
// saved scores.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-ssh",
		})
	}
	if cfg.HostKeyPath == "" {
		cfg.HostKeyPath = config.DataPath("host_key")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.HostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: host key directory: %w", err)
	}

	s := &SSHServer{cfg: cfg, logger: logger}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("scores disabled", "db", cfg.DBPath, "err", err)
	} else {
		s.store = store
	}

	// Middleware runs last to first: gate, then the PTY check, then the game.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newGame),
			activeterm.Middleware(),
			s.gate,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("tui: ssh server: %w", err)
	}
	s.server = server
	return s, nil
}

// newGame builds the model for one connection. Remote players hear nothing,
// so NewModel falls back to a silent audio player.
func (s *SSHServer) newGame(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	game := s.cfg.Game

	m := NewModel(Options{
		Config: game,
		Runtime: core.RuntimeConfig{
			ScreenW: pty.Window.Width,
			ScreenH: pty.Window.Height,
			FPS:     game.Render.FPS,
			Seed:    time.Now().UnixNano(),
		},
		Store:  s.store,
		Logger: s.sessionLogger(sess),
		Name:   sess.User(),
	})
	return m, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	}
}

func (s *SSHServer) sessionLogger(sess ssh.Session) *log.Logger {
	id, ok := sess.Context().Value(sessionIDKey{}).(string)
	if !ok {
		id = uuid.NewString()
	}
	return s.logger.With("session", id, "user", sess.User())
}

type sessionIDKey struct{}

// gate turns players away above MaxPlayers and logs how long each session
// lasted.
func (s *SSHServer) gate(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		remote := sess.RemoteAddr().String()
		if s.cfg.MaxPlayers > 0 && int(n) > s.cfg.MaxPlayers {
			s.logger.Warn("server full", "user", sess.User(), "remote", remote, "players", n-1)
			wish.Fatalln(sess, "snake: server is full, try again later")
			return
		}

		id := uuid.NewString()
		sess.Context().SetValue(sessionIDKey{}, id)

		started := time.Now()
		s.logger.Info("player joined", "session", id, "user", sess.User(), "remote", remote, "players", n)
		next(sess)
		s.logger.Info("player left", "session", id, "user", sess.User(),
			"played", time.Since(started).Round(time.Second))
	}
}

// Players reports how many sessions are connected.
func (s *SSHServer) Players() int {
	return int(s.active.Load())
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve accepts connections until ctx is cancelled or the listener fails.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.cfg.Address, "max_players", s.cfg.MaxPlayers)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: ssh listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down", "players", s.Players())
		return s.Shutdown()
	}
}

// Shutdown stops accepting connections and waits up to shutdownGrace for
// running games before closing the score database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("closing scores", "err", err)
	}
	s.store = nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
