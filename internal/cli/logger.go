package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-cz/devslog"
	"github.com/mattn/go-isatty"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
	}
}

// newLogger picks devslog for terminals and JSON otherwise.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	parsedLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: parsedLevel}

	var handler slog.Handler
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		handler = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: opts,
		})
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler), nil
}
