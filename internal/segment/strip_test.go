package segment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingView struct {
	calls []string
}

func (v *recordingView) SetItemSelected(index int, animated bool) {
	v.calls = append(v.calls, fmt.Sprintf("selected(%d,%t)", index, animated))
}

func (v *recordingView) SetIndicatorAnchor(center, width int) {
	v.calls = append(v.calls, fmt.Sprintf("anchor(%d,%d)", center, width))
}

func (v *recordingView) SetIndicatorTransform(dx float64) {
	v.calls = append(v.calls, fmt.Sprintf("transform(%g)", dx))
}

func (v *recordingView) SetIndicatorWidthDelta(delta float64) {
	v.calls = append(v.calls, fmt.Sprintf("width(%g)", delta))
}

func (v *recordingView) SetItemHighlightAlpha(index int, alpha float64) {
	v.calls = append(v.calls, fmt.Sprintf("alpha(%d,%g)", index, alpha))
}

func snapshot(s *Strip) (int, []float64) {
	alphas := make([]float64, s.Len())
	for i := range alphas {
		alphas[i] = s.Alpha(i)
	}
	return s.Selected(), alphas
}

func TestNewStripStartsUnselected(t *testing.T) {
	s := New(NewItems("one", "two", "three"), FillProportional, DefaultStyle())
	require.Equal(t, 3, s.Len())
	assert.Equal(t, -1, s.Selected())
	for i, it := range s.Items() {
		assert.Equal(t, i, it.Index)
	}
}

func TestNewReindexesItems(t *testing.T) {
	s := New([]Item{{Index: 7, Label: "a"}, {Index: 7, Label: "b"}}, FillEqual, DefaultStyle())
	items := s.Items()
	assert.Equal(t, 0, items[0].Index)
	assert.Equal(t, 1, items[1].Index)
}

func TestSelectIndexHighlightsOnlyTarget(t *testing.T) {
	s := New(NewItems("one", "two", "three"), FillProportional, DefaultStyle())
	view := &recordingView{}

	sel, ok := s.SelectIndex(view, 1, true)
	require.True(t, ok)
	assert.Equal(t, Selection{Index: 1, Cause: CauseProgrammatic}, sel)
	assert.Equal(t, 1, s.Selected())
	assert.Equal(t, []float64{0, 1, 0}, []float64{s.Alpha(0), s.Alpha(1), s.Alpha(2)})
	assert.Equal(t, []string{"selected(1,true)", "anchor(1,1)", "transform(0)", "width(0)"}, view.calls)
}

func TestSelectIndexIsIdempotent(t *testing.T) {
	s := New(NewItems("one", "two", "three"), FillProportional, DefaultStyle())
	s.SelectIndex(nil, 2, false)
	sel1, alphas1 := snapshot(s)
	s.SelectIndex(nil, 2, false)
	sel2, alphas2 := snapshot(s)
	assert.Equal(t, sel1, sel2)
	assert.Equal(t, alphas1, alphas2)
}

func TestInvalidIndexLeavesStateUnchanged(t *testing.T) {
	s := New(NewItems("one", "two", "three"), FillProportional, DefaultStyle())
	s.SelectIndex(nil, 1, false)
	before, alphasBefore := snapshot(s)

	for _, i := range []int{-1, 3, 42} {
		view := &recordingView{}
		_, ok := s.SelectIndex(view, i, true)
		assert.False(t, ok)
		_, ok = s.ItemTapped(view, i)
		assert.False(t, ok)
		assert.Empty(t, view.calls)
	}

	after, alphasAfter := snapshot(s)
	assert.Equal(t, before, after)
	assert.Equal(t, alphasBefore, alphasAfter)
}

func TestItemTappedReportsUserCause(t *testing.T) {
	s := New(NewItems("one", "two"), FillEqual, DefaultStyle())
	view := &recordingView{}
	sel, ok := s.ItemTapped(view, 1)
	require.True(t, ok)
	assert.Equal(t, CauseUser, sel.Cause)
	assert.Equal(t, "selected(1,true)", view.calls[0])
}

func TestEmptyStripHasNothingToSelect(t *testing.T) {
	s := New(nil, FillProportional, DefaultStyle())
	_, ok := s.SelectIndex(nil, 0, false)
	assert.False(t, ok)
	assert.Equal(t, -1, s.Selected())
	left, width := s.Indicator(IndicatorGeometry{})
	assert.Zero(t, left)
	assert.Zero(t, width)
	assert.Equal(t, -1, s.HitTest(0))
}

func TestSetHighlightAlphaClamps(t *testing.T) {
	s := New(NewItems("one", "two"), FillEqual, DefaultStyle())
	view := &recordingView{}
	s.SetHighlightAlpha(view, 0, 1.5)
	s.SetHighlightAlpha(view, 1, -0.2)
	s.SetHighlightAlpha(view, 5, 0.5)
	assert.Equal(t, 1.0, s.Alpha(0))
	assert.Equal(t, 0.0, s.Alpha(1))
	assert.Equal(t, []string{"alpha(0,1)", "alpha(1,0)"}, view.calls)
}

func TestItemViewFollowsStyleChanges(t *testing.T) {
	s := New([]Item{{Label: "home", Icon: "o", SelectedIcon: "*"}, {Label: "docs"}}, FillEqual, DefaultStyle())
	s.SelectIndex(nil, 0, false)

	v, ok := s.ItemView(0)
	require.True(t, ok)
	assert.True(t, v.Selected)
	assert.Equal(t, "*", v.Icon)
	assert.Equal(t, "#7aa2f7", v.Color)

	s.SetHighlightColor("#ff0000")
	s.SetFont(Font{Bold: true})
	v, _ = s.ItemView(0)
	assert.Equal(t, "#ff0000", v.Color)
	assert.True(t, v.Font.Bold)

	v, _ = s.ItemView(1)
	assert.False(t, v.Selected)
	assert.Equal(t, "#a9b1d6", v.Color)
}

func TestItemViewBlendsHalfway(t *testing.T) {
	style := DefaultStyle()
	style.TextColor = "#000000"
	style.HighlightColor = "#ffffff"
	s := New(NewItems("a", "b"), FillEqual, style)
	s.SetHighlightAlpha(nil, 0, 0.5)
	v, _ := s.ItemView(0)
	assert.NotEqual(t, "#000000", v.Color)
	assert.NotEqual(t, "#ffffff", v.Color)
}

func TestLayoutEqual(t *testing.T) {
	style := DefaultStyle()
	style.Spacing = 2
	s := New(NewItems("a", "bbbbbb", "c"), FillEqual, style)
	s.Layout(34)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 10, s.ItemWidth(i), 1e-9)
	}
	assert.InDelta(t, 0, s.ItemLeft(0), 1e-9)
	assert.InDelta(t, 12, s.ItemLeft(1), 1e-9)
	assert.InDelta(t, 24, s.ItemLeft(2), 1e-9)
	assert.InDelta(t, 17, s.ItemCenter(1), 1e-9)
}

func TestSetSpacingRelaysItems(t *testing.T) {
	style := DefaultStyle()
	style.Spacing = 2
	s := New(NewItems("a", "b", "c"), FillEqual, style)
	s.Layout(34)

	s.SetSpacing(5)
	assert.Equal(t, 5.0, s.Spacing())
	assert.InDelta(t, 8, s.ItemWidth(0), 1e-9)
	assert.InDelta(t, 13, s.ItemLeft(1), 1e-9)
	assert.InDelta(t, 26, s.ItemLeft(2), 1e-9)
	assert.Equal(t, 1, s.HitTest(15))
	assert.Equal(t, -1, s.HitTest(10))

	s.SetSpacing(-3)
	assert.Equal(t, 0.0, s.Spacing())
	assert.InDelta(t, 34.0/3, s.ItemWidth(1), 1e-9)
	assert.InDelta(t, 34.0/3, s.ItemLeft(1), 1e-9)
}

func TestLayoutProportional(t *testing.T) {
	style := DefaultStyle()
	style.Spacing = 0
	// intrinsic widths: 1+2=3 and 7+2=9
	s := New(NewItems("a", "bbbbbbb"), FillProportional, style)
	s.Layout(24)
	assert.InDelta(t, 6, s.ItemWidth(0), 1e-9)
	assert.InDelta(t, 18, s.ItemWidth(1), 1e-9)

	s.Layout(0)
	assert.InDelta(t, 3, s.ItemWidth(0), 1e-9)
	assert.InDelta(t, 9, s.ItemWidth(1), 1e-9)
}

func TestHitTest(t *testing.T) {
	style := DefaultStyle()
	style.Spacing = 2
	s := New(NewItems("a", "b", "c"), FillEqual, style)
	s.Layout(34)
	assert.Equal(t, 0, s.HitTest(0))
	assert.Equal(t, 0, s.HitTest(9.5))
	assert.Equal(t, -1, s.HitTest(11))
	assert.Equal(t, 1, s.HitTest(12))
	assert.Equal(t, 2, s.HitTest(33))
	assert.Equal(t, -1, s.HitTest(34))
}

func TestIndicatorGeometry(t *testing.T) {
	style := DefaultStyle()
	style.Spacing = 2
	s := New(NewItems("a", "b", "c"), FillEqual, style)
	s.Layout(34)

	left, width := s.Indicator(IndicatorGeometry{CenterAnchor: 1, WidthAnchor: 1})
	assert.InDelta(t, 12, left, 1e-9)
	assert.InDelta(t, 10, width, 1e-9)

	left, width = s.Indicator(IndicatorGeometry{CenterAnchor: 0, WidthAnchor: 0, TranslationX: 6, WidthDelta: -4})
	assert.InDelta(t, 8, left, 1e-9)
	assert.InDelta(t, 6, width, 1e-9)
}

func TestParseFillMode(t *testing.T) {
	m, ok := ParseFillMode("equal")
	assert.True(t, ok)
	assert.Equal(t, FillEqual, m)
	m, ok = ParseFillMode("")
	assert.True(t, ok)
	assert.Equal(t, FillProportional, m)
	_, ok = ParseFillMode("diagonal")
	assert.False(t, ok)
}
