package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kyaoi/mdtabs/internal/locale"
	"github.com/kyaoi/mdtabs/internal/pages"
	"github.com/kyaoi/mdtabs/internal/ui"
)

// LoadInitialState analyses the target path and prepares the UI state. A
// directory becomes one tab per Markdown file; a single file becomes one tab.
// When tag is set only pages listing it are kept, and none matching is an
// ErrNoPages error.
func LoadInitialState(target, tag string, msgs *locale.Messages) (ui.State, error) {
	if msgs == nil {
		msgs = locale.New("en")
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return ui.State{}, &LoadError{Path: target, Err: err}
	}
	info, err := os.Stat(absTarget)
	if err != nil {
		return ui.State{}, &LoadError{Path: target, Err: err}
	}

	var (
		list   []pages.Page
		header string
		watch  string
	)
	if info.IsDir() {
		rootName := filepath.Base(absTarget)
		header = rootName + "/"
		watch = absTarget

		loader := pages.NewFSLoader(absTarget)
		hasMarkdown, err := loader.HasMarkdown()
		if err != nil {
			return ui.State{}, &LoadError{Path: target, Err: err}
		}
		if !hasMarkdown {
			return ui.State{
				HeaderPath: header,
				Message:    msgs.T("NoMarkdown", map[string]any{"Dir": rootName}),
				Messages:   msgs,
			}, nil
		}
		list, err = loader.List()
		if err != nil {
			return ui.State{}, &LoadError{Path: target, Err: err}
		}
	} else {
		p, err := pages.LoadFile(absTarget)
		if err != nil {
			return ui.State{}, &LoadError{Path: target, Err: err}
		}
		list = []pages.Page{p}
		header = displayPath(absTarget)
		watch = filepath.Dir(absTarget)
	}

	if tag != "" {
		list = pages.FilterByTag(list, tag)
		if len(list) == 0 {
			return ui.State{}, fmt.Errorf("%w: %s", ErrNoPages, msgs.T("NoTagMatch", map[string]any{"Tag": tag}))
		}
		header = fmt.Sprintf("%s (tag: %s)", header, tag)
	}

	return ui.State{
		Pages:      list,
		HeaderPath: header,
		WatchDir:   watch,
		Messages:   msgs,
	}, nil
}

func displayPath(abs string) string {
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(abs)
}
