// Package pager reconciles taps on the strip, page transitions reported by the
// content pager and continuous drags into one selection state.
package pager

import (
	"log/slog"

	"github.com/kyaoi/mdtabs/internal/drag"
	"github.com/kyaoi/mdtabs/internal/segment"
)

// Direction of a page jump.
type Direction int

const (
	Reverse Direction = -1
	Forward Direction = 1
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Pager is the host capability that moves the content.
type Pager interface {
	RequestPageJump(target int, dir Direction)
}

// State of the coordinator.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSettledObserver registers a callback for pages that finished settling.
func WithSettledObserver(fn func(index int)) Option {
	return func(c *Coordinator) { c.onSettled = fn }
}

// WithViewportWidth sets the initial content width used for drag percent.
func WithViewportWidth(w float64) Option {
	return func(c *Coordinator) { c.viewportWidth = w }
}

// Coordinator is the single owner of the strip, the drag session and the
// settled page index. Hosts feed it events; it emits commands to the strip
// view and the pager and never receives calls from them directly.
type Coordinator struct {
	strip *segment.Strip
	view  segment.View
	pager Pager

	state         State
	current       int
	requested     int
	session       *drag.Session
	neighbor      int
	viewportWidth float64

	onSettled func(int)
	log       *slog.Logger
}

// New builds a coordinator around the strip and the two host capabilities.
func New(strip *segment.Strip, view segment.View, p Pager, opts ...Option) *Coordinator {
	c := &Coordinator{
		strip:    strip,
		view:     view,
		pager:     p,
		neighbor:  -1,
		requested: -1,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start selects the first page without animation. It does nothing for an
// empty strip.
func (c *Coordinator) Start() {
	if _, ok := c.strip.SelectIndex(c.view, 0, false); ok {
		c.current = 0
	}
}

// Current returns the last settled page.
func (c *Coordinator) Current() int { return c.current }

// State returns the current state.
func (c *Coordinator) State() State { return c.state }

// Interactive reports whether taps are accepted.
func (c *Coordinator) Interactive() bool { return c.state == Idle }

// Strip returns the coordinated strip.
func (c *Coordinator) Strip() *segment.Strip { return c.strip }

// SetViewportWidth updates the content width drags are measured against.
func (c *Coordinator) SetViewportWidth(w float64) { c.viewportWidth = w }

// UserTappedItem handles a tap on strip item i. Taps during a drag are
// dropped so the in-flight session stays consistent. While a jump is still
// running the tap is measured against its target, not the settled page.
func (c *Coordinator) UserTappedItem(i int) bool {
	if c.state == Dragging {
		c.log.Debug("tap ignored while dragging", "index", i, "current", c.current)
		return false
	}
	sel, ok := c.strip.ItemTapped(c.view, i)
	if !ok {
		return false
	}
	from := c.current
	if c.requested >= 0 {
		from = c.requested
	}
	if sel.Cause == segment.CauseUser && sel.Index != from {
		dir := Reverse
		if sel.Index > from {
			dir = Forward
		}
		c.log.Debug("page jump requested", "from", from, "to", sel.Index, "direction", dir)
		c.requested = sel.Index
		if c.pager != nil {
			c.pager.RequestPageJump(sel.Index, dir)
		}
	}
	return true
}

// DragBegan opens a drag session at the settled page.
func (c *Coordinator) DragBegan(offset float64) {
	s := drag.Begin(offset, c.current)
	c.session = &s
	c.neighbor = -1
	c.state = Dragging
	c.log.Debug("drag began", "offset", offset, "index", c.current)
}

// DragOffsetChanged interpolates the indicator for the live offset. Offsets
// reported outside a drag come from programmatic scrolling and are ignored.
func (c *Coordinator) DragOffsetChanged(offset float64) {
	if c.state != Dragging || c.session == nil {
		return
	}
	f := c.session.Step(offset, c.viewportWidth, c.strip)
	if !f.Move {
		return
	}
	if c.view != nil {
		c.view.SetIndicatorTransform(f.XShift)
		c.view.SetIndicatorWidthDelta(f.WidthDelta)
	}
	if !f.Highlight {
		return
	}
	if c.neighbor >= 0 && c.neighbor != f.Next && c.neighbor != c.session.CurrentIndex {
		c.strip.SetHighlightAlpha(c.view, c.neighbor, 0)
	}
	c.neighbor = f.Next
	c.strip.SetHighlightAlpha(c.view, c.session.CurrentIndex, f.CurrentAlpha)
	c.strip.SetHighlightAlpha(c.view, f.Next, f.NextAlpha)
}

// DragEnded closes the drag session. The settled index is left alone; only
// PageTransitionCompleted moves it.
func (c *Coordinator) DragEnded() {
	if c.state == Dragging {
		c.log.Debug("drag ended", "index", c.current)
	}
	c.state = Idle
	c.session = nil
	c.neighbor = -1
}

// PageTransitionCompleted settles on page i: the strip snaps to it without
// animation, the settled index moves and the observer is told.
func (c *Coordinator) PageTransitionCompleted(i int) {
	c.state = Idle
	c.session = nil
	c.neighbor = -1
	c.requested = -1
	if _, ok := c.strip.SelectIndex(c.view, i, false); !ok {
		c.log.Debug("settle on unknown page ignored", "index", i)
		return
	}
	c.current = i
	c.log.Debug("page settled", "index", i)
	if c.onSettled != nil {
		c.onSettled(i)
	}
}
