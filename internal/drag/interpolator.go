// Package drag converts horizontal scroll progress into indicator movement.
package drag

import "math"

// Geometry is the strip geometry the interpolator reads.
type Geometry interface {
	Count() int
	ItemWidth(i int) float64
	Spacing() float64
}

// Session lives for one continuous drag gesture.
type Session struct {
	InitialOffset float64
	CurrentIndex  int
}

// Begin starts a session at the settled page index.
func Begin(offset float64, index int) Session {
	return Session{InitialOffset: offset, CurrentIndex: index}
}

// Frame is the result of one offset update.
type Frame struct {
	Direction int
	Percent   float64
	Next      int

	// Move reports whether XShift and WidthDelta apply.
	Move       bool
	XShift     float64
	WidthDelta float64

	// Highlight reports whether CurrentAlpha and NextAlpha apply.
	Highlight    bool
	CurrentAlpha float64
	NextAlpha    float64
}

// Step computes the frame for the live offset. Direction and percent are
// always measured from the session's initial offset, never the previous tick.
func (s Session) Step(offset, viewportWidth float64, geom Geometry) Frame {
	delta := offset - s.InitialOffset
	f := Frame{
		Direction: sign(delta),
		Next:      s.CurrentIndex,
	}
	if viewportWidth > 0 {
		f.Percent = math.Min(1, math.Abs(delta)/viewportWidth)
	}

	if geom == nil {
		return f
	}
	count := geom.Count()
	next := s.CurrentIndex + f.Direction
	if count == 0 || s.CurrentIndex < 0 || s.CurrentIndex >= count || next < 0 || next >= count {
		return f
	}
	f.Next = next

	cur := geom.ItemWidth(s.CurrentIndex)
	nxt := geom.ItemWidth(next)
	f.Move = true
	f.XShift = ((cur+nxt)/2 + geom.Spacing()) * f.Percent * float64(f.Direction)
	f.WidthDelta = (nxt - cur) * f.Percent

	if f.Direction == 0 && f.Percent == 0 {
		return f
	}
	f.Highlight = true
	f.CurrentAlpha = 1 - f.Percent
	f.NextAlpha = f.Percent
	return f
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
