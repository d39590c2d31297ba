// Package docs serves the embedded help topics of the fb command.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.md
var topics embed.FS

// Topic returns the content of one help topic. The special name "*" expands
// to every topic.
func Topic(name string) (string, error) {
	if name == "*" {
		all, err := AllTopics()
		if err != nil {
			return "", err
		}
		return Topics(all...)
	}

	content, err := topics.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics concatenates the content of several topics, expanding "*".
func Topics(names ...string) (string, error) {
	var b bytes.Buffer
	for _, name := range names {
		if name == "*" {
			all, err := AllTopics()
			if err != nil {
				return "", err
			}
			for _, n := range all {
				content, err := Topic(n)
				if err != nil {
					return "", err
				}
				b.WriteString(content)
				b.WriteString("\n")
			}
			continue
		}
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// AllTopics lists every available topic, sorted. The readme is the index of
// topics, not a topic itself.
func AllTopics() ([]string, error) {
	var names []string
	err := fs.WalkDir(topics, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if base == "readme" {
			return nil
		}
		names = append(names, base)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
