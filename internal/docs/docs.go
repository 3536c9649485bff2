// Package docs embeds the topic guides printed by `datescore docs`.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topics lists the available guides, sorted.
func Topics() []string {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return []string{}
	}
	topics := make([]string, 0, len(entries))
	for _, p := range entries {
		if t := strings.TrimSuffix(path.Base(p), ".md"); t != "" {
			topics = append(topics, t)
		}
	}
	slices.Sort(topics)
	return topics
}

// Get returns the markdown for topic (case-insensitive).
func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || strings.ContainsAny(topic, "/\\") {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}
