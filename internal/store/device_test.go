package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeviceID_IsIdempotentAndPersisted(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	d := NewDevice(s, nil)
	first := d.ID()
	second := d.ID()
	if first == "" || first != second {
		t.Fatalf("expected stable id; got %q then %q", first, second)
	}
	if !deviceIDPattern.MatchString(first) {
		t.Fatalf("unexpected id shape %q", first)
	}
	if d.Volatile() {
		t.Fatalf("expected persisted id")
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DeviceID != first {
		t.Fatalf("expected config deviceId %q; got %q", first, cfg.DeviceID)
	}

	// A fresh process reads the stored value instead of generating a new one.
	if got := NewDevice(s, nil).ID(); got != first {
		t.Fatalf("expected stored id %q; got %q", first, got)
	}
}

func TestDeviceID_NeverRegeneratesPresentValue(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.SaveConfig(&GlobalConfig{DeviceID: "device_custom_1", APIURL: "http://x"}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if got := NewDevice(s, nil).ID(); got != "device_custom_1" {
		t.Fatalf("expected existing id; got %q", got)
	}
	cfg, _ := s.LoadConfig()
	if cfg.APIURL != "http://x" {
		t.Fatalf("expected other config keys untouched; got %#v", cfg)
	}
}

func TestDeviceID_CorruptConfigFallsBackToSessionID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	d := NewDevice(Store{Dir: dir}, nil)
	id := d.ID()
	if id == "" {
		t.Fatalf("expected a session id")
	}
	if !d.Volatile() {
		t.Fatalf("expected volatile id when config is unreadable")
	}
	if again := d.ID(); again != id {
		t.Fatalf("expected session id to be stable; got %q then %q", id, again)
	}

	// The unreadable file is left alone.
	b, _ := os.ReadFile(path)
	if string(b) != "{not json" {
		t.Fatalf("expected config untouched; got %q", string(b))
	}
}

func TestDeviceID_UnwritableStoreFallsBackToSessionID(t *testing.T) {
	// A regular file where the store directory should be: reads and writes both fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	d := NewDevice(Store{Dir: blocker}, nil)
	id := d.ID()
	if id == "" || !d.Volatile() {
		t.Fatalf("expected volatile session id; got %q volatile=%v", id, d.Volatile())
	}
	if d.ID() != id {
		t.Fatalf("expected stable session id")
	}
}
