package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// It is best effort: callers should tolerate missing/invalid data.
type TUIState struct {
	Version int `json:"version"`

	// Page is one of: submit|ai|ranking|search
	Page string `json:"page,omitempty"`

	// SearchKeyword is the last keyword submitted on the search page.
	SearchKeyword string `json:"searchKeyword,omitempty"`

	// Username pre-fills the comment form.
	Username string `json:"username,omitempty"`
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.Dir, tuiStateFileName)
}

func (s Store) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.tuiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupted state is treated as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil {
		return nil
	}
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, "tui_state.json.*.tmp", s.tuiStatePath(), b, 0o644)
}
