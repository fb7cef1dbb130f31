package ui

import (
	"log/slog"

	"github.com/kyaoi/mdtabs/internal/locale"
	"github.com/kyaoi/mdtabs/internal/pages"
	"github.com/kyaoi/mdtabs/internal/segment"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Pages      []pages.Page
	HeaderPath string
	// WatchDir enables live reload of the pages in that directory.
	WatchDir string
	// Message is shown in place of content when there are no pages.
	Message  string
	Style    segment.Style
	Fill     segment.FillMode
	Messages *locale.Messages
	Logger   *slog.Logger
	// OnSettled is told whenever paging settles on a page.
	OnSettled func(index int)
}
