package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewSSHServer(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	if _, err := os.Stat(cfg.HostKeyPath); err != nil {
		t.Errorf("host key not generated: %v", err)
	}
	if srv.store == nil {
		t.Error("score store was not opened")
	}
	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, expected %q", srv.Addr(), cfg.Address)
	}
	if srv.Players() != 0 {
		t.Errorf("Players() = %d, expected 0", srv.Players())
	}

	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
	if srv.store != nil {
		t.Error("Shutdown() left the score store open")
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" {
		t.Errorf("Address = %q, expected :23234", cfg.Address)
	}
	if cfg.MaxPlayers <= 0 {
		t.Errorf("MaxPlayers = %d, expected a cap", cfg.MaxPlayers)
	}
	if cfg.Game.Board.Cols != 22 || cfg.Game.Board.Rows != 22 {
		t.Errorf("Board = %dx%d, expected 22x22", cfg.Game.Board.Cols, cfg.Game.Board.Rows)
	}
}
