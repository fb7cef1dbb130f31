// Package segment implements the tab strip: its items, selection, highlight
// alphas and the geometry the underline indicator is anchored to.
package segment

import (
	"math"
	"time"
)

// View is the host capability the strip drives. Implementations render; they
// never call back into the strip.
type View interface {
	SetItemSelected(index int, animated bool)
	SetIndicatorAnchor(centerIndex, widthIndex int)
	SetIndicatorTransform(dx float64)
	SetIndicatorWidthDelta(delta float64)
	SetItemHighlightAlpha(index int, alpha float64)
}

// Cause tells whether a selection came from the user or from code.
type Cause int

const (
	CauseProgrammatic Cause = iota
	CauseUser
)

func (c Cause) String() string {
	if c == CauseUser {
		return "user"
	}
	return "programmatic"
}

// Selection is emitted by a successful select.
type Selection struct {
	Index int
	Cause Cause
}

// IndicatorGeometry positions the underline relative to anchor items so drags
// can be interpolated without a full relayout on every frame.
type IndicatorGeometry struct {
	CenterAnchor int
	WidthAnchor  int
	TranslationX float64
	WidthDelta   float64
}

// Strip owns the ordered items and the selection state.
type Strip struct {
	items    []Item
	alphas   []float64
	selected int
	fill     FillMode
	style    Style

	totalWidth float64
	widths     []float64
	lefts      []float64
}

// New builds a strip. An empty item list is valid and has nothing to select.
func New(items []Item, fill FillMode, style Style) *Strip {
	owned := make([]Item, len(items))
	for i, it := range items {
		it.Index = i
		owned[i] = it
	}
	s := &Strip{
		items:    owned,
		alphas:   make([]float64, len(owned)),
		selected: -1,
		fill:     fill,
		style:    style,
	}
	s.Layout(0)
	return s
}

// Items returns a copy of the ordered items.
func (s *Strip) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *Strip) Len() int { return len(s.items) }

// Count implements drag.Geometry.
func (s *Strip) Count() int { return len(s.items) }

// Selected returns the selected index or -1.
func (s *Strip) Selected() int { return s.selected }

// Style returns the current canonical style.
func (s *Strip) Style() Style { return s.style }

// Alpha returns the highlight alpha of item i, or 0 for a bad index.
func (s *Strip) Alpha(i int) float64 {
	if !s.valid(i) {
		return 0
	}
	return s.alphas[i]
}

func (s *Strip) valid(i int) bool {
	return i >= 0 && i < len(s.items)
}

// SelectIndex makes i the selected item and snaps the indicator onto it. Out
// of range indices are ignored.
func (s *Strip) SelectIndex(view View, i int, animated bool) (Selection, bool) {
	if !s.valid(i) {
		return Selection{}, false
	}
	s.selected = i
	for j := range s.alphas {
		s.alphas[j] = 0
	}
	s.alphas[i] = 1

	if view != nil {
		view.SetItemSelected(i, animated)
		view.SetIndicatorAnchor(i, i)
		view.SetIndicatorTransform(0)
		view.SetIndicatorWidthDelta(0)
	}
	return Selection{Index: i, Cause: CauseProgrammatic}, true
}

// ItemTapped selects i with animation and reports it as a user selection.
func (s *Strip) ItemTapped(view View, i int) (Selection, bool) {
	sel, ok := s.SelectIndex(view, i, true)
	if !ok {
		return Selection{}, false
	}
	sel.Cause = CauseUser
	return sel, true
}

// SetHighlightAlpha sets the derived highlight of one item.
func (s *Strip) SetHighlightAlpha(view View, i int, alpha float64) {
	if !s.valid(i) {
		return
	}
	alpha = math.Min(1, math.Max(0, alpha))
	s.alphas[i] = alpha
	if view != nil {
		view.SetItemHighlightAlpha(i, alpha)
	}
}

// ItemView returns render data for item i.
func (s *Strip) ItemView(i int) (ItemView, bool) {
	if !s.valid(i) {
		return ItemView{}, false
	}
	it := s.items[i]
	alpha := s.alphas[i]
	icon := it.Icon
	if alpha >= 0.5 && it.SelectedIcon != "" {
		icon = it.SelectedIcon
	}
	return ItemView{
		Item:     it,
		Selected: i == s.selected,
		Alpha:    alpha,
		Color:    s.style.blend(alpha),
		Icon:     icon,
		Font:     s.style.Font,
	}, true
}

// SetHighlightColor recolors the selected item and the indicator.
func (s *Strip) SetHighlightColor(c string) {
	s.style.HighlightColor = c
}

// SetTextColor recolors unselected items.
func (s *Strip) SetTextColor(c string) {
	s.style.TextColor = c
}

// SetFont sets the label attributes of every item.
func (s *Strip) SetFont(f Font) {
	s.style.Font = f
}

// SetUnderlineImage sets the indicator glyph pattern. Empty means a solid bar
// in the highlight color.
func (s *Strip) SetUnderlineImage(img string) {
	s.style.UnderlineImage = img
}

// SetAnimationDuration sets how long indicator moves take. Negative means
// instant.
func (s *Strip) SetAnimationDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.style.AnimationDuration = d
}

// SetUnderlineHeight sets the indicator height in rows; 0 hides it.
func (s *Strip) SetUnderlineHeight(h int) {
	if h < 0 {
		h = 0
	}
	s.style.UnderlineHeight = h
}

// SetItemsHeight sets the height of the label rows, at least one.
func (s *Strip) SetItemsHeight(h int) {
	if h < 1 {
		h = 1
	}
	s.style.ItemsHeight = h
}

// SetSpacing changes the gap between items and relays them out.
func (s *Strip) SetSpacing(spacing float64) {
	if spacing < 0 {
		spacing = 0
	}
	s.style.Spacing = spacing
	s.Layout(s.totalWidth)
}
