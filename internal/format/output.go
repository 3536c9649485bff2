// Package format renders CLI results as JSON or EDN.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	JSON Format = "json"
	EDN  Format = "edn"
)

func Parse(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "edn":
		return EDN, nil
	default:
		return "", fmt.Errorf("unknown format: %s (want json|edn)", s)
	}
}

// Envelope is the shape every command prints: the payload, optional metadata, and hints
// naming follow-up commands.
type Envelope struct {
	Data  any            `json:"data"`
	Meta  map[string]any `json:"meta,omitempty"`
	Hints []string       `json:"_hints,omitempty"`
}

// Wrap builds an envelope for data.
func Wrap(data any) *Envelope {
	return &Envelope{Data: data}
}

func (e *Envelope) With(key string, v any) *Envelope {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[key] = v
	return e
}

func (e *Envelope) Hint(h ...string) *Envelope {
	e.Hints = append(e.Hints, h...)
	return e
}

// Write encodes v in format f followed by a newline.
func Write(w io.Writer, v any, f Format, pretty bool) error {
	switch f {
	case "", JSON:
		return writeJSON(w, v, pretty)
	case EDN:
		return WriteEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", f)
	}
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	// Plan text and comments are Japanese; keep them readable.
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
