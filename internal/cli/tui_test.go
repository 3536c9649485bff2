package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"datescore-cli/internal/tui"
)

func TestRunTUI_StartsWhenConfigDirIsUnusable(t *testing.T) {
	var launched *tui.Options
	prev := runTUIProgram
	runTUIProgram = func(_ context.Context, opts tui.Options) error {
		launched = &opts
		return nil
	}
	t.Cleanup(func() { runTUIProgram = prev })

	notDir := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(notDir, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("DATESCORE_CONFIG_DIR", notDir)
	t.Setenv("DATESCORE_API_URL", "http://127.0.0.1:1")

	_, stderr, err := runCLI(t, []string{"--log-level", "warn"})
	if err != nil {
		t.Fatalf("expected the TUI to start, got %v\nstderr: %s", err, stderr)
	}
	if launched == nil {
		t.Fatalf("TUI program was not started")
	}
	if launched.Backend == nil || launched.Logger == nil {
		t.Fatalf("incomplete options: %+v", launched)
	}
	if id := launched.DeviceID(); !strings.HasPrefix(id, "device_") {
		t.Fatalf("expected a session device id, got %q", id)
	}
	if !strings.Contains(string(stderr), "tui log unavailable") {
		t.Fatalf("expected a warning about the log file, got %q", stderr)
	}
}

func TestRunTUI_WritesLogFileInConfigDir(t *testing.T) {
	var launched bool
	prev := runTUIProgram
	runTUIProgram = func(_ context.Context, opts tui.Options) error {
		launched = true
		opts.Logger.Warn("from tui")
		return nil
	}
	t.Cleanup(func() { runTUIProgram = prev })

	dir := t.TempDir()
	t.Setenv("DATESCORE_CONFIG_DIR", dir)
	t.Setenv("DATESCORE_API_URL", "http://127.0.0.1:1")

	if _, stderr, err := runCLI(t, []string{"--log-level", "warn"}); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr)
	}
	if !launched {
		t.Fatalf("TUI program was not started")
	}
	b, err := os.ReadFile(filepath.Join(dir, tuiLogFileName))
	if err != nil || !strings.Contains(string(b), "from tui") {
		t.Fatalf("expected log file with record, got %q err=%v", b, err)
	}
}
