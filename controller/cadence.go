package controller

import "math"

const stepEpsilon = 1e-9

// InputBuffer hands one frame's snapshot to the fixed ticks that follow it.
// The first Take after a Push sees the just-pressed edges; later Takes see
// the Consumed copy. Pushing again before any Take merges the edges so a
// press is delivered exactly once.
type InputBuffer struct {
	snap   Snapshot
	unread bool
}

func (b *InputBuffer) Push(snap Snapshot) {
	if b.unread {
		snap = b.snap.Merge(snap)
	}
	b.snap = snap
	b.unread = true
}

func (b *InputBuffer) Take() Snapshot {
	if b.unread {
		b.unread = false
		return b.snap
	}
	return b.snap.Consumed()
}

// Pending reports whether the last pushed snapshot has not reached a tick.
func (b *InputBuffer) Pending() bool {
	return b.unread
}

// Stepper reconciles the variable input/render cadence with the fixed
// physics cadence. Input is sampled once per frame; Frame then runs zero or
// more fixed ticks against the most recent snapshot.
type Stepper struct {
	Step     float64
	MaxTicks int

	acc   float64
	input InputBuffer
}

func NewStepper(step float64, maxTicks int) *Stepper {
	if step <= 0 {
		step = DefaultStep
	}
	if maxTicks <= 0 {
		maxTicks = 1
	}
	return &Stepper{Step: step, MaxTicks: maxTicks}
}

// Advance adds elapsed seconds to the accumulator and returns how many fixed
// ticks are due, at most MaxTicks. Time beyond the cap is dropped, there is
// no catch-up.
func (s *Stepper) Advance(elapsed float64) int {
	if elapsed > 0 {
		s.acc += elapsed
	}

	n := 0
	for s.acc+stepEpsilon >= s.Step && n < s.MaxTicks {
		s.acc -= s.Step
		n++
	}
	if s.acc+stepEpsilon >= s.Step {
		s.acc = math.Mod(s.acc, s.Step)
	}
	if s.acc < 0 {
		s.acc = 0
	}
	return n
}

// Frame pushes snap, advances by elapsed and runs the ticks that fit. Only
// the first tick sees just-pressed edges. A frame that runs no tick keeps
// its edges for the next frame.
func (s *Stepper) Frame(elapsed float64, snap Snapshot, tick func(Snapshot)) int {
	s.input.Push(snap)
	n := s.Advance(elapsed)
	for i := 0; i < n; i++ {
		tick(s.input.Take())
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator, for render
// interpolation.
func (s *Stepper) Alpha() float64 {
	if s.Step <= 0 {
		return 0
	}
	return s.acc / s.Step
}
