package ui

import (
	"math"
	"time"

	"github.com/kyaoi/mdtabs/internal/pager"
)

// Events the pager view reports back to the model, which forwards them to the
// coordinator. The view never calls the coordinator itself.
type (
	dragBeganEvent     struct{ offset float64 }
	dragMovedEvent     struct{ offset float64 }
	dragEndedEvent     struct{}
	pageCompletedEvent struct{ index int }
)

type pagerEvent any

// pagerView is the horizontally paged content. Its offset is measured in
// cells: page i rests at i*width.
type pagerView struct {
	count    int
	width    int
	duration time.Duration
	now      func() time.Time

	offset  float64
	settled int

	slide    *tween
	fling    *fling
	target   int
	dragging bool

	pressed     bool
	pressX      int
	pressOffset float64

	events []pagerEvent
}

func newPagerView(count int, duration time.Duration, now func() time.Time) *pagerView {
	return &pagerView{count: count, duration: duration, now: now}
}

var _ pager.Pager = (*pagerView)(nil)

// RequestPageJump implements pager.Pager. Programmatic slides do not report
// offsets, so the strip is not interpolated while they run.
func (p *pagerView) RequestPageJump(target int, _ pager.Direction) {
	if target < 0 || target >= p.count {
		return
	}
	if p.pressed || p.dragging {
		return
	}
	p.startSlide(target, false)
}

// startSlide moves the content to target. Programmatic jumps take the
// configured duration; a released drag flings onto its landing page.
func (p *pagerView) startSlide(target int, dragging bool) {
	p.target = target
	p.dragging = dragging
	dest := p.restOffset(target)
	if p.duration <= 0 || p.width <= 0 || p.offset == dest {
		p.finish()
		return
	}
	if dragging {
		p.fling = newFling(p.offset, dest, p.now())
		return
	}
	p.slide = &tween{from: p.offset, to: dest, start: p.now(), duration: p.duration}
}

func (p *pagerView) finish() {
	p.offset = p.restOffset(p.target)
	p.slide, p.fling = nil, nil
	if p.dragging {
		p.emit(dragMovedEvent{p.offset}, dragEndedEvent{})
		p.dragging = false
	}
	p.settled = p.target
	p.emit(pageCompletedEvent{p.target})
}

func (p *pagerView) restOffset(i int) float64 {
	return float64(i * p.width)
}

func (p *pagerView) emit(evs ...pagerEvent) {
	p.events = append(p.events, evs...)
}

// drain hands queued events to the caller.
func (p *pagerView) drain() []pagerEvent {
	evs := p.events
	p.events = nil
	return evs
}

func (p *pagerView) animating() bool {
	return p.slide != nil || p.fling != nil
}

// advance moves a running slide to now. Slides that follow a drag keep
// reporting offsets until they land.
func (p *pagerView) advance(now time.Time) {
	switch {
	case p.fling != nil:
		if p.fling.step(now) {
			p.finish()
			return
		}
		p.offset = p.fling.pos
	case p.slide != nil:
		if p.slide.done(now) {
			p.finish()
			return
		}
		p.offset = p.slide.value(now)
	default:
		return
	}
	if p.dragging {
		p.emit(dragMovedEvent{p.offset})
	}
}

// resize lays the pages out at the new width. A press measured against the
// old width cannot continue, so it ends on the settled page.
func (p *pagerView) resize(width int) {
	if p.pressed {
		p.pressed = false
		p.target = p.settled
		p.dragging = true
	}
	p.width = width
	if p.animating() || p.dragging {
		p.finish()
	}
	p.offset = p.restOffset(p.settled)
}

// press starts a drag at column x. A slide still running is completed first
// so the drag begins from a settled page.
func (p *pagerView) press(x int) {
	if p.count == 0 || p.width <= 0 {
		return
	}
	if p.animating() {
		p.finish()
	}
	p.pressed = true
	p.pressX = x
	p.pressOffset = p.offset
	p.emit(dragBeganEvent{p.offset})
}

func (p *pagerView) motion(x int) {
	if !p.pressed {
		return
	}
	margin := float64(p.width) / 4
	lo := -margin
	hi := p.restOffset(p.count-1) + margin
	off := p.pressOffset - float64(x-p.pressX)
	p.offset = math.Min(hi, math.Max(lo, off))
	p.emit(dragMovedEvent{p.offset})
}

// release lets go of the content. Past half a page it lands on the
// neighbour, otherwise it springs back.
func (p *pagerView) release(x int) {
	if !p.pressed {
		return
	}
	p.motion(x)
	p.pressed = false

	delta := p.offset - p.restOffset(p.settled)
	landing := p.settled
	if math.Abs(delta) >= float64(p.width)/2 {
		if delta > 0 {
			landing++
		} else {
			landing--
		}
	}
	landing = clamp(landing, 0, p.count-1)
	p.startSlide(landing, true)
}

// pageAt returns the page drawn at column 0 and the column offset into it.
func (p *pagerView) pageAt() (page, col int) {
	if p.width <= 0 {
		return p.settled, 0
	}
	off := int(math.Round(p.offset))
	page = int(math.Floor(float64(off) / float64(p.width)))
	return page, off - page*p.width
}
