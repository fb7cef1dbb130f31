package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/mdtabs/internal/pages"
)

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

func (m *Model) startWatching(dir string) tea.Cmd {
	if dir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		m.err = err
		return nil
	}
	if err := watcher.Add(filepath.Clean(dir)); err != nil {
		watcher.Close()
		m.err = err
		return nil
	}
	m.watcher = watcher
	m.watchChan = make(chan tea.Msg, 10)

	go m.watchLoop()
	return m.waitForFileEvent()
}

func (m *Model) watchLoop() {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !pages.IsMarkdown(event.Name) {
				continue
			}
			m.watchChan <- fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.watchChan <- fileWatchErrMsg{err: err}
		}
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watchChan == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-m.watchChan
		if !ok {
			return nil
		}
		return msg
	}
}

// handleFileEvent reloads a page whose file changed. New files are not added:
// the strip's items are fixed once built.
func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	idx := m.pageIndexForPath(msg.path)
	if idx < 0 {
		m.log.Debug("ignoring change to unknown file", "path", msg.path)
		return m.waitForFileEvent()
	}
	m.reloadPage(idx)
	return m.waitForFileEvent()
}

func (m *Model) pageIndexForPath(path string) int {
	path = filepath.Clean(path)
	for i, p := range m.pages {
		if filepath.Clean(p.Path) == path {
			return i
		}
	}
	return -1
}

func (m *Model) reloadPage(i int) {
	p, err := pages.LoadFile(m.pages[i].Path)
	if err != nil {
		m.err = err
		m.log.Warn("reload failed", "path", m.pages[i].Path, "err", err)
		return
	}
	// the strip keeps the loaded title; only the body is live
	m.pages[i].Body = p.Body
	offset := m.viewports[i].YOffset
	m.renderPage(i)
	m.viewports[i].SetYOffset(offset)
	m.status = m.msgs.T("Reloaded", map[string]any{"Title": m.pages[i].Title})
	m.log.Info("page reloaded", "index", i, "path", m.pages[i].Path)
}

// Close stops the file watcher.
func (m *Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}
