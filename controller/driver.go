package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const maxSpringPerStep = 0.5

// Driver reconciles the basis and jump request with the body's velocity.
// It holds configuration only; every call is independent of the last.
type Driver struct {
	// Gravity is the magnitude of the active gravity.
	Gravity float64
	// Step is the fixed physics timestep in seconds.
	Step float64
	// Spring is the float-height correction rate in 1/s. It is capped so one
	// tick never closes more than half the offset.
	Spring float64
	// Acceleration bounds the horizontal velocity change in m/s². Zero
	// replaces the horizontal velocity outright.
	Acceleration float64
}

// Outcome describes what Advance wrote to the body.
type Outcome struct {
	Velocity  mgl64.Vec3
	Impulse   mgl64.Vec3
	Jumped    bool
	Corrected bool
}

// Advance steers body for one physics tick. Gravity, collision response and
// rotation stay with the engine. A nil body is a lifecycle bug in the caller.
func (d Driver) Advance(body Body, basis LocomotionBasis, jump JumpRequest, ground GroundingResult) Outcome {
	if body == nil {
		panic("controller: advance: " + ErrNoBody.Error())
	}

	v := body.Velocity()
	vy := v.Dot(Up)
	nextVy := vy
	jumping := jump.Requested && ground.Grounded

	var out Outcome
	if ground.Grounded && !jumping {
		want := d.springVelocity(basis.FloatHeight - ground.Distance)
		if !d.launched(vy, want) {
			// The engine subtracts gravity*step during integration; pre-pay it so
			// the spring velocity survives the step.
			nextVy = want + d.Gravity*d.Step
			out.Corrected = true
		}
	}

	next := d.steer(horizontal(v), horizontal(basis.DesiredVelocity)).Add(Up.Mul(nextVy))
	body.SetVelocity(next)

	if jumping {
		target := JumpVelocity(d.Gravity, jump.Height)
		out.Impulse = Up.Mul(body.Mass() * (target - nextVy))
		body.ApplyImpulse(out.Impulse)
		next = next.Add(Up.Mul(target - nextVy))
		out.Jumped = true
	}

	out.Velocity = next
	return out
}

// JumpVelocity is the launch speed that peaks at height under gravity g.
func JumpVelocity(g, height float64) float64 {
	if g <= 0 || height <= 0 {
		return 0
	}
	return math.Sqrt(2 * g * height)
}

func (d Driver) springRate() float64 {
	rate := math.Max(d.Spring, 0)
	if d.Step > 0 && rate*d.Step > maxSpringPerStep {
		rate = maxSpringPerStep / d.Step
	}
	return rate
}

func (d Driver) springVelocity(offset float64) float64 {
	return offset * d.springRate()
}

// launched reports a body rising faster than the spring alone would carry
// it, e.g. on the ticks right after a jump while the probe still sees the
// floor. Such a body is left to gravity.
func (d Driver) launched(vy, want float64) bool {
	if vy <= 1e-6 {
		return false
	}
	decay := 1 - d.springRate()*d.Step
	if decay <= 0 {
		decay = 1
	}
	return vy > 2*math.Max(want, 0)/decay
}

func (d Driver) steer(current, desired mgl64.Vec3) mgl64.Vec3 {
	if d.Acceleration <= 0 || d.Step <= 0 {
		return desired
	}
	delta := desired.Sub(current)
	limit := d.Acceleration * d.Step
	if l := delta.Len(); l > limit {
		delta = delta.Mul(limit / l)
	}
	return current.Add(delta)
}
