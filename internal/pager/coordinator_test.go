package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/mdtabs/internal/segment"
)

type jump struct {
	target int
	dir    Direction
}

type fakePager struct {
	jumps []jump
}

func (p *fakePager) RequestPageJump(target int, dir Direction) {
	p.jumps = append(p.jumps, jump{target, dir})
}

type fakeView struct {
	selected   []int
	anchor     [2]int
	transform  float64
	widthDelta float64
	alphas     map[int]float64
	alphaCalls int
}

func newFakeView() *fakeView {
	return &fakeView{alphas: map[int]float64{}}
}

func (v *fakeView) SetItemSelected(index int, animated bool) {
	v.selected = append(v.selected, index)
}

func (v *fakeView) SetIndicatorAnchor(center, width int) { v.anchor = [2]int{center, width} }

func (v *fakeView) SetIndicatorTransform(dx float64) { v.transform = dx }

func (v *fakeView) SetIndicatorWidthDelta(delta float64) { v.widthDelta = delta }

func (v *fakeView) SetItemHighlightAlpha(index int, alpha float64) {
	v.alphas[index] = alpha
	v.alphaCalls++
}

func newFixture(t *testing.T, n int) (*Coordinator, *fakeView, *fakePager, *[]int) {
	t.Helper()
	labels := make([]string, n)
	for i := range labels {
		labels[i] = "tab"
	}
	style := segment.DefaultStyle()
	style.Spacing = 2
	strip := segment.New(segment.NewItems(labels...), segment.FillEqual, style)
	strip.Layout(float64(n*10 + (n-1)*2))
	view := newFakeView()
	p := &fakePager{}
	var settled []int
	c := New(strip, view, p,
		WithViewportWidth(200),
		WithSettledObserver(func(i int) { settled = append(settled, i) }),
	)
	c.Start()
	return c, view, p, &settled
}

func TestStartSelectsFirstPage(t *testing.T) {
	c, view, p, _ := newFixture(t, 3)
	assert.Equal(t, 0, c.Current())
	assert.Equal(t, 0, c.Strip().Selected())
	assert.Equal(t, []int{0}, view.selected)
	assert.Empty(t, p.jumps)
}

func TestStartOnEmptyStrip(t *testing.T) {
	c := New(segment.New(nil, segment.FillEqual, segment.DefaultStyle()), newFakeView(), &fakePager{})
	c.Start()
	assert.Equal(t, -1, c.Strip().Selected())
	c.DragBegan(0)
	c.DragOffsetChanged(100)
	c.DragEnded()
	assert.False(t, c.UserTappedItem(0))
}

func TestTapRequestsSingleJump(t *testing.T) {
	c, _, p, settled := newFixture(t, 3)

	require.True(t, c.UserTappedItem(2))
	require.Len(t, p.jumps, 1)
	assert.Equal(t, jump{2, Forward}, p.jumps[0])
	assert.Equal(t, 2, c.Strip().Selected())
	assert.Equal(t, 0, c.Current())

	c.PageTransitionCompleted(2)
	assert.Equal(t, 2, c.Strip().Selected())
	assert.Equal(t, 2, c.Current())
	assert.Equal(t, []int{2}, *settled)
	assert.Len(t, p.jumps, 1)
}

func TestRetapDuringJumpTargetsNewItem(t *testing.T) {
	c, _, p, settled := newFixture(t, 3)

	require.True(t, c.UserTappedItem(2))
	require.True(t, c.UserTappedItem(0))
	assert.Equal(t, []jump{{2, Forward}, {0, Reverse}}, p.jumps)
	assert.Equal(t, 0, c.Strip().Selected())
	assert.Equal(t, 0, c.Current())

	// tapping the item already being jumped to adds nothing
	require.True(t, c.UserTappedItem(0))
	assert.Len(t, p.jumps, 2)

	c.PageTransitionCompleted(0)
	assert.Equal(t, 0, c.Current())
	assert.Equal(t, []int{0}, *settled)

	require.True(t, c.UserTappedItem(1))
	assert.Equal(t, jump{1, Forward}, p.jumps[2])
}

func TestRetapSameTargetDuringJump(t *testing.T) {
	c, _, p, _ := newFixture(t, 3)
	require.True(t, c.UserTappedItem(1))
	require.True(t, c.UserTappedItem(1))
	assert.Equal(t, []jump{{1, Forward}}, p.jumps)
	require.True(t, c.UserTappedItem(2))
	assert.Equal(t, jump{2, Forward}, p.jumps[1])
}

func TestTapBackwardsJumpsInReverse(t *testing.T) {
	c, _, p, _ := newFixture(t, 3)
	c.PageTransitionCompleted(2)
	c.UserTappedItem(0)
	assert.Equal(t, []jump{{0, Reverse}}, p.jumps)
}

func TestTapOnCurrentPageDoesNotJump(t *testing.T) {
	c, _, p, _ := newFixture(t, 3)
	assert.True(t, c.UserTappedItem(0))
	assert.Empty(t, p.jumps)
}

func TestTapOutOfRangeIsNoop(t *testing.T) {
	c, view, p, _ := newFixture(t, 3)
	assert.False(t, c.UserTappedItem(3))
	assert.False(t, c.UserTappedItem(-1))
	assert.Empty(t, p.jumps)
	assert.Equal(t, 0, c.Strip().Selected())
	assert.Equal(t, []int{0}, view.selected)
}

func TestDragWithoutSettleKeepsCurrent(t *testing.T) {
	c, _, _, settled := newFixture(t, 3)
	c.DragBegan(0)
	assert.Equal(t, Dragging, c.State())
	assert.False(t, c.Interactive())
	for _, off := range []float64{20, 60, 110, 150, 190} {
		c.DragOffsetChanged(off)
	}
	c.DragEnded()

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 0, c.Current())
	assert.Equal(t, 0, c.Strip().Selected())
	assert.Empty(t, *settled)
}

func TestDragInterpolatesIndicatorAndHighlight(t *testing.T) {
	c, view, _, _ := newFixture(t, 3)
	c.DragBegan(0)
	c.DragOffsetChanged(50)

	// ((10+10)/2 + 2) * 0.25
	assert.InDelta(t, 3, view.transform, 1e-9)
	assert.InDelta(t, 0, view.widthDelta, 1e-9)
	assert.InDelta(t, 0.75, view.alphas[0], 1e-12)
	assert.InDelta(t, 0.25, view.alphas[1], 1e-12)
	assert.Equal(t, 1.0, view.alphas[0]+view.alphas[1])
}

func TestDragAtRestSkipsHighlight(t *testing.T) {
	c, view, _, _ := newFixture(t, 3)
	c.DragBegan(100)
	c.DragOffsetChanged(100)
	assert.Zero(t, view.alphaCalls)
}

func TestDragPastEdgeEmitsNothing(t *testing.T) {
	c, view, _, _ := newFixture(t, 3)
	view.transform = 42
	c.DragBegan(0)
	c.DragOffsetChanged(-30)
	assert.Equal(t, 42.0, view.transform)
	assert.Zero(t, view.alphaCalls)
}

func TestDragReversalResetsPreviousNeighbour(t *testing.T) {
	c, view, _, _ := newFixture(t, 3)
	c.PageTransitionCompleted(1)
	c.DragBegan(200)
	c.DragOffsetChanged(260)
	assert.InDelta(t, 0.3, view.alphas[2], 1e-12)

	c.DragOffsetChanged(150)
	assert.Equal(t, 0.0, view.alphas[2])
	assert.InDelta(t, 0.25, view.alphas[0], 1e-12)
	assert.InDelta(t, 0.75, view.alphas[1], 1e-12)
}

func TestOffsetsOutsideDragAreIgnored(t *testing.T) {
	c, view, _, _ := newFixture(t, 3)
	c.DragOffsetChanged(120)
	assert.Zero(t, view.transform)
	assert.Zero(t, view.alphaCalls)
}

func TestTapWhileDraggingIsIgnored(t *testing.T) {
	c, _, p, _ := newFixture(t, 3)
	c.DragBegan(0)
	c.DragOffsetChanged(80)

	assert.False(t, c.UserTappedItem(2))
	assert.Empty(t, p.jumps)
	assert.Equal(t, 0, c.Strip().Selected())
	assert.Equal(t, 0, c.Current())
	assert.Equal(t, Dragging, c.State())

	c.PageTransitionCompleted(1)
	assert.Equal(t, 1, c.Strip().Selected())
	assert.Equal(t, 1, c.Current())
}

func TestSettleResnapsIndicator(t *testing.T) {
	c, view, _, settled := newFixture(t, 3)
	c.DragBegan(0)
	c.DragOffsetChanged(180)
	require.NotZero(t, view.transform)

	c.DragEnded()
	c.PageTransitionCompleted(1)

	assert.Equal(t, [2]int{1, 1}, view.anchor)
	assert.Zero(t, view.transform)
	assert.Zero(t, view.widthDelta)
	assert.Equal(t, 1.0, c.Strip().Alpha(1))
	assert.Equal(t, 0.0, c.Strip().Alpha(0))
	assert.Equal(t, []int{1}, *settled)
}

func TestSettleOnUnknownPage(t *testing.T) {
	c, _, _, settled := newFixture(t, 3)
	c.DragBegan(0)
	c.PageTransitionCompleted(9)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 0, c.Current())
	assert.Empty(t, *settled)
}

func TestSettleWhileDraggingReturnsToIdle(t *testing.T) {
	c, _, _, _ := newFixture(t, 3)
	c.DragBegan(0)
	c.PageTransitionCompleted(0)
	assert.True(t, c.Interactive())
	c.DragOffsetChanged(100)
	assert.Equal(t, 1.0, c.Strip().Alpha(0))
}
