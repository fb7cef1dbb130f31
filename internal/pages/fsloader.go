package pages

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var errNotDir = errors.New("path is not a directory")

// FSLoader reads the pages of one directory. Subdirectories are not pages.
type FSLoader struct {
	root string
}

// NewFSLoader creates a loader for the provided directory.
func NewFSLoader(root string) *FSLoader {
	return &FSLoader{root: root}
}

// List loads every Markdown file directly under the root, sorted for display.
func (l *FSLoader) List() ([]Page, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errNotDir
	}

	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, err
	}

	var list []Page
	for _, entry := range entries {
		if entry.IsDir() || !IsMarkdown(entry.Name()) {
			continue
		}
		p, err := LoadFile(filepath.Join(l.root, entry.Name()))
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	Sort(list)
	return list, nil
}

// HasMarkdown reports whether the root holds at least one Markdown file.
func (l *FSLoader) HasMarkdown() (bool, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if !entry.IsDir() && IsMarkdown(entry.Name()) {
			return true, nil
		}
	}
	return false, nil
}

// IsMarkdown reports whether name has a Markdown extension.
func IsMarkdown(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".mdx")
}
