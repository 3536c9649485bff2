package store

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

var deviceIDPattern = regexp.MustCompile(`^device_[0-9a-z]{9}_[0-9a-z]+$`)

func TestNewDeviceID_Format(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	id, err := NewDeviceID(nil, now)
	if err != nil {
		t.Fatalf("NewDeviceID: %v", err)
	}
	if !deviceIDPattern.MatchString(id) {
		t.Fatalf("unexpected device id shape: %q", id)
	}
	parts := strings.Split(id, "_")
	ms, err := strconv.ParseInt(parts[2], 36, 64)
	if err != nil {
		t.Fatalf("time fragment is not base36: %q", parts[2])
	}
	if ms != now.UnixMilli() {
		t.Fatalf("expected time fragment %d; got %d", now.UnixMilli(), ms)
	}
}

func TestNewDeviceID_SkipsBiasedBytes(t *testing.T) {
	// 252..255 are rejected; 0 maps to '0', 35 to 'z'.
	src := append(bytes.Repeat([]byte{255}, 16), bytes.Repeat([]byte{0, 35, 36}, 6)...)
	id, err := NewDeviceID(bytes.NewReader(src), time.Unix(0, 0))
	if err != nil {
		t.Fatalf("NewDeviceID: %v", err)
	}
	if got, want := id, "device_0z00z00z0_0"; got != want {
		t.Fatalf("expected %q; got %q", want, got)
	}
}

func TestNewDeviceID_ShortReaderFails(t *testing.T) {
	if _, err := NewDeviceID(bytes.NewReader([]byte{1, 2}), time.Now()); err == nil {
		t.Fatalf("expected error from short reader")
	}
}
