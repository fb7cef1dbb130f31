package ui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	frameFPS      = 60
	frameInterval = time.Second / frameFPS

	flingFrequency = 10.0
	flingDamping   = 1.0
	// a fling within half a cell of its target and slower than that per
	// frame has landed
	flingRest = 0.5
)

// tween is a time based ease-in-out interpolation between two values.
type tween struct {
	from, to float64
	start    time.Time
	duration time.Duration
}

func (tw tween) progress(now time.Time) float64 {
	if tw.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(tw.start)) / float64(tw.duration)
	return math.Min(1, math.Max(0, p))
}

func (tw tween) done(now time.Time) bool {
	return tw.progress(now) >= 1
}

func (tw tween) value(now time.Time) float64 {
	return tw.from + (tw.to-tw.from)*easeInOut(tw.progress(now))
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// fling carries a released drag onto its landing page with a critically
// damped spring, stepped one frame at a time.
type fling struct {
	spring   harmonica.Spring
	pos, vel float64
	to       float64
	last     time.Time
}

func newFling(from, to float64, now time.Time) *fling {
	return &fling{
		spring: harmonica.NewSpring(harmonica.FPS(frameFPS), flingFrequency, flingDamping),
		pos:    from,
		to:     to,
		last:   now,
	}
}

// step runs every whole frame up to now and reports whether the fling has
// come to rest.
func (f *fling) step(now time.Time) bool {
	for !f.last.Add(frameInterval).After(now) {
		f.pos, f.vel = f.spring.Update(f.pos, f.vel, f.to)
		f.last = f.last.Add(frameInterval)
		if f.resting() {
			return true
		}
	}
	return f.resting()
}

func (f *fling) resting() bool {
	return math.Abs(f.pos-f.to) < flingRest && math.Abs(f.vel) < flingRest
}
