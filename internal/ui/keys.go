package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Down     key.Binding
	Up       key.Binding
	HalfDown key.Binding
	HalfUp   key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Prev:     key.NewBinding(key.WithKeys("h", "left", "shift+tab")),
	Next:     key.NewBinding(key.WithKeys("l", "right", "tab")),
	Down:     key.NewBinding(key.WithKeys("j", "down")),
	Up:       key.NewBinding(key.WithKeys("k", "up")),
	HalfDown: key.NewBinding(key.WithKeys("ctrl+d")),
	HalfUp:   key.NewBinding(key.WithKeys("ctrl+u")),
	Top:      key.NewBinding(key.WithKeys("g")),
	Bottom:   key.NewBinding(key.WithKeys("G")),
	Help:     key.NewBinding(key.WithKeys("?")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// tabNumber maps "1".."9" to a tab index.
func tabNumber(k string) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return 0, false
	}
	return int(k[0] - '1'), true
}
