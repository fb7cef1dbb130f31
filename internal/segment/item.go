package segment

import "github.com/charmbracelet/x/ansi"

const (
	itemPadding = 1
	iconGap     = 1
)

// Item is a single tab of the strip. Icons are opaque glyph strings supplied by
// the caller; an empty icon means the item shows its label only.
type Item struct {
	Index        int
	Label        string
	Icon         string
	SelectedIcon string
}

// NewItems builds an ordered item list, assigning indices in insertion order.
func NewItems(labels ...string) []Item {
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{Index: i, Label: label}
	}
	return items
}

func (it Item) hasIcon() bool {
	return it.Icon != "" || it.SelectedIcon != ""
}

// intrinsicWidth is the number of cells the item needs to show its content.
func (it Item) intrinsicWidth() float64 {
	w := ansi.StringWidth(it.Label)
	if it.hasIcon() {
		w += max(ansi.StringWidth(it.Icon), ansi.StringWidth(it.SelectedIcon)) + iconGap
	}
	return float64(w + 2*itemPadding)
}

// ItemView is render data for one item, recomputed from the strip's canonical
// style on every read.
type ItemView struct {
	Item     Item
	Selected bool
	Alpha    float64
	Color    string
	Icon     string
	Font     Font
}
