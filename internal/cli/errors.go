package cli

import (
	"fmt"
	"strconv"
	"strings"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type invalidIDError struct {
	kind string
	raw  string
}

func (e invalidIDError) Error() string {
	return fmt.Sprintf("invalid %s id: %q", e.kind, e.raw)
}

func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidIDError{kind: kind, raw: raw}
	}
	return id, nil
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }
