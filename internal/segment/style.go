package segment

import (
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FillMode controls how the strip distributes its width between items.
type FillMode int

const (
	// FillProportional sizes each item after its content.
	FillProportional FillMode = iota
	// FillEqual gives every item the same width.
	FillEqual
)

func (m FillMode) String() string {
	if m == FillEqual {
		return "equal"
	}
	return "proportional"
}

// ParseFillMode converts a config value into a FillMode.
func ParseFillMode(s string) (FillMode, bool) {
	switch s {
	case "", "proportional", "proportionally":
		return FillProportional, true
	case "equal", "equally":
		return FillEqual, true
	}
	return FillProportional, false
}

// Font holds the text attributes a terminal can express.
type Font struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// Style is the strip's canonical appearance. Items never hold a copy of it.
type Style struct {
	HighlightColor    string
	TextColor         string
	Font              Font
	UnderlineImage    string
	UnderlineHeight   int
	ItemsHeight       int
	Spacing           float64
	AnimationDuration time.Duration
}

// DefaultStyle returns the style used when the caller does not configure one.
func DefaultStyle() Style {
	return Style{
		HighlightColor:    "#7aa2f7",
		TextColor:         "#a9b1d6",
		UnderlineHeight:   1,
		ItemsHeight:       1,
		Spacing:           2,
		AnimationDuration: 300 * time.Millisecond,
	}
}

// blend mixes the text and highlight colors by alpha. Unparseable colors fall
// back to whichever endpoint is closer.
func (s Style) blend(alpha float64) string {
	from, errFrom := colorful.Hex(s.TextColor)
	to, errTo := colorful.Hex(s.HighlightColor)
	if errFrom != nil || errTo != nil {
		if alpha >= 0.5 {
			return s.HighlightColor
		}
		return s.TextColor
	}
	switch {
	case alpha <= 0:
		return s.TextColor
	case alpha >= 1:
		return s.HighlightColor
	}
	return from.BlendLab(to, alpha).Clamped().Hex()
}
