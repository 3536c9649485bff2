package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	configFileName = "config.json"

	// DefaultAPIURL is the backend base URL used when neither a flag, the
	// environment nor config.json names one.
	DefaultAPIURL = "http://localhost:8000"
)

type GlobalConfig struct {
	// APIURL is the backend base URL (scheme + host, no /api suffix).
	APIURL string `json:"apiUrl,omitempty"`

	// DeviceID scopes likes to this machine. It is created once and never regenerated
	// while present; see Device.
	DeviceID string `json:"deviceId,omitempty"`

	// Journal enables the local submission/suggestion history (journal.sqlite).
	Journal bool `json:"journal,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
	// StartPage overrides the restored page on launch ("submit", "ai", "ranking", "search").
	StartPage string `json:"startPage,omitempty"`
}

// Store is the client-side state directory (~/.datescore by default).
type Store struct {
	Dir string
}

// Default returns the store rooted at ConfigDir.
func Default() (Store, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: dir}, nil
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.datescore).
	if v := strings.TrimSpace(os.Getenv("DATESCORE_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".datescore"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) ConfigPath() string {
	return filepath.Join(s.Dir, configFileName)
}

func (s Store) LoadConfig() (*GlobalConfig, error) {
	b, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s Store) SaveConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	path := s.ConfigPath()

	// Keep a copy of the previous config so an accidental overwrite is recoverable.
	// Errors are ignored; the backup must never block a save.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(s.Dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	// Unique temp name + rename: the CLI and a running TUI may write concurrently.
	return atomicWriteFile(s.Dir, "config.json.*.tmp", path, b, 0o600)
}

// ResolveAPIURL applies flag > env > config > default precedence.
func ResolveAPIURL(flagValue string, cfg *GlobalConfig) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("DATESCORE_API_URL")); v != "" {
		return v
	}
	if cfg != nil && strings.TrimSpace(cfg.APIURL) != "" {
		return strings.TrimSpace(cfg.APIURL)
	}
	return DefaultAPIURL
}
