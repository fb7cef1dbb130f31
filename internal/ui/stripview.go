package ui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/mdtabs/internal/segment"
)

const solidUnderline = " "

// stripView renders the strip and animates its indicator. It reads item
// render data from the strip and keeps only what the strip does not know:
// the on-screen indicator and its running animation.
type stripView struct {
	strip *segment.Strip
	now   func() time.Time
	width int

	geom segment.IndicatorGeometry
	left *tween
	span *tween
}

func newStripView(strip *segment.Strip, now func() time.Time) *stripView {
	return &stripView{strip: strip, now: now}
}

// SetItemSelected implements segment.View. Animated selections slide the
// indicator from where it is drawn now to the item.
func (v *stripView) SetItemSelected(index int, animated bool) {
	d := v.strip.Style().AnimationDuration
	if !animated || d <= 0 {
		v.left, v.span = nil, nil
		return
	}
	left, width := v.indicatorRect()
	now := v.now()
	targetLeft, targetWidth := v.strip.Indicator(segment.IndicatorGeometry{CenterAnchor: index, WidthAnchor: index})
	v.left = &tween{from: left, to: targetLeft, start: now, duration: d}
	v.span = &tween{from: width, to: targetWidth, start: now, duration: d}
}

func (v *stripView) SetIndicatorAnchor(centerIndex, widthIndex int) {
	v.geom.CenterAnchor = centerIndex
	v.geom.WidthAnchor = widthIndex
}

func (v *stripView) SetIndicatorTransform(dx float64) {
	v.geom.TranslationX = dx
	if dx != 0 {
		v.left, v.span = nil, nil
	}
}

func (v *stripView) SetIndicatorWidthDelta(delta float64) {
	v.geom.WidthDelta = delta
	if delta != 0 {
		v.left, v.span = nil, nil
	}
}

// SetItemHighlightAlpha implements segment.View. Alphas are read back from the
// strip through ItemView on every render.
func (v *stripView) SetItemHighlightAlpha(int, float64) {}

func (v *stripView) animating() bool {
	return v.left != nil
}

// advance drops the animation once it has run its course.
func (v *stripView) advance(now time.Time) {
	if v.left != nil && v.left.done(now) {
		v.left, v.span = nil, nil
	}
}

func (v *stripView) resize(width int) {
	v.width = width
	v.strip.Layout(float64(width))
	v.left, v.span = nil, nil
}

func (v *stripView) height() int {
	st := v.strip.Style()
	return max(st.ItemsHeight, 1) + max(st.UnderlineHeight, 0)
}

// indicatorRect is the indicator's drawn position.
func (v *stripView) indicatorRect() (left, width float64) {
	if v.left != nil {
		now := v.now()
		return v.left.value(now), v.span.value(now)
	}
	return v.strip.Indicator(v.geom)
}

func (v *stripView) View() string {
	if v.width <= 0 || v.strip.Len() == 0 {
		return ""
	}
	st := v.strip.Style()
	rows := make([]string, 0, v.height())

	itemsHeight := max(st.ItemsHeight, 1)
	labelRow := (itemsHeight - 1) / 2
	blank := strings.Repeat(" ", v.width)
	for r := 0; r < itemsHeight; r++ {
		if r == labelRow {
			rows = append(rows, v.itemsLine())
		} else {
			rows = append(rows, blank)
		}
	}

	if st.UnderlineHeight > 0 {
		line := v.underlineLine(st)
		for r := 0; r < st.UnderlineHeight; r++ {
			rows = append(rows, line)
		}
	}
	return strings.Join(rows, "\n")
}

func (v *stripView) itemsLine() string {
	var b strings.Builder
	col := 0
	for i := 0; i < v.strip.Len(); i++ {
		start := clamp(int(math.Round(v.strip.ItemLeft(i))), col, v.width)
		end := clamp(int(math.Round(v.strip.ItemLeft(i)+v.strip.ItemWidth(i))), start, v.width)
		b.WriteString(strings.Repeat(" ", start-col))
		iv, _ := v.strip.ItemView(i)
		b.WriteString(renderItem(iv, end-start))
		col = end
	}
	b.WriteString(strings.Repeat(" ", v.width-col))
	return b.String()
}

func renderItem(iv segment.ItemView, width int) string {
	if width <= 0 {
		return ""
	}
	text := iv.Item.Label
	if iv.Icon != "" {
		text = iv.Icon + " " + text
	}
	text = ansi.Truncate(text, width, "…")
	pad := width - ansi.StringWidth(text)
	leftPad := pad / 2
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(iv.Color)).
		Bold(iv.Font.Bold).
		Italic(iv.Font.Italic).
		Underline(iv.Font.Underline)
	return strings.Repeat(" ", leftPad) + style.Render(text) + strings.Repeat(" ", pad-leftPad)
}

func (v *stripView) underlineLine(st segment.Style) string {
	left, width := v.indicatorRect()
	start := clamp(int(math.Round(left)), 0, v.width)
	end := clamp(int(math.Round(left+width)), start, v.width)
	n := end - start

	var bar string
	if st.UnderlineImage == "" {
		bar = lipgloss.NewStyle().
			Background(lipgloss.Color(st.HighlightColor)).
			Render(strings.Repeat(solidUnderline, n))
	} else {
		bar = lipgloss.NewStyle().
			Foreground(lipgloss.Color(st.HighlightColor)).
			Render(tilePattern(st.UnderlineImage, n))
	}
	if n == 0 {
		bar = ""
	}
	return strings.Repeat(" ", start) + bar + strings.Repeat(" ", v.width-end)
}

// tilePattern repeats pattern to exactly width cells.
func tilePattern(pattern string, width int) string {
	pw := ansi.StringWidth(pattern)
	if width <= 0 || pw == 0 {
		return strings.Repeat(" ", max(width, 0))
	}
	tiled := ansi.Truncate(strings.Repeat(pattern, width/pw+1), width, "")
	return tiled + strings.Repeat(" ", width-ansi.StringWidth(tiled))
}
