package store

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Device hands out the per-machine identifier used to scope likes.
//
// The id lives under the deviceId key of config.json. When the config cannot be read or
// written the id is kept in memory for the lifetime of the process instead, so likes keep
// working for the session.
type Device struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	id       string
	volatile bool
}

func NewDevice(s Store, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{store: s, logger: logger, now: time.Now}
}

// ID returns the device identifier, creating and persisting it on first use.
func (d *Device) ID() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.id != "" {
		return d.id
	}

	cfg, err := d.store.LoadConfig()
	if err == nil {
		if v := strings.TrimSpace(cfg.DeviceID); v != "" {
			d.id = v
			return d.id
		}
	}

	id, genErr := NewDeviceID(nil, d.now())
	if genErr != nil {
		// crypto/rand failing is not worth crashing a like button over.
		id = deviceIDPrefix + "mem_" + strconv.FormatInt(d.now().UnixNano(), 36)
	}

	if err != nil {
		d.logger.Warn("device id storage unavailable, using session id", "error", err)
		d.volatile = true
		d.id = id
		return d.id
	}

	cfg.DeviceID = id
	if err := d.store.SaveConfig(cfg); err != nil {
		d.logger.Warn("device id not persisted, using session id", "error", err)
		d.volatile = true
	}
	d.id = id
	return d.id
}

// Volatile reports whether the id is session-scoped because storage failed.
func (d *Device) Volatile() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.volatile
}
