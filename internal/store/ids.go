package store

import (
	"crypto/rand"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	deviceIDPrefix     = "device_"
	deviceRandomLength = 9
	base36Alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewDeviceID returns device_<9 random base-36 chars>_<unix millis in base 36>.
//
// Uniqueness only needs to be good enough to deduplicate likes per machine.
func NewDeviceID(r io.Reader, now time.Time) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	frag, err := randomBase36(r, deviceRandomLength)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(deviceIDPrefix)
	b.WriteString(frag)
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	return b.String(), nil
}

func randomBase36(r io.Reader, n int) (string, error) {
	out := make([]byte, 0, n)
	var buf [16]byte
	for len(out) < n {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return "", err
		}
		for _, c := range buf {
			// Reject the tail of the byte range so every symbol is equally likely.
			if c >= 252 {
				continue
			}
			out = append(out, base36Alphabet[c%36])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
