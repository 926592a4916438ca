// Package volume is a small 3D rigid body world: static boxes, upright
// capsule bodies approximated by their bounding boxes, semi-implicit Euler
// integration and per-axis collision resolution.
package volume

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/physics"
)

const (
	axisTolerance = 1e-9
	slopeRise     = 0.1
)

var _ physics.Backend = (*World)(nil)

// AABB is an axis aligned box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func BoxAt(center, size mgl64.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() < b.Max.X()-axisTolerance && a.Max.X() > b.Min.X()+axisTolerance &&
		a.Min.Y() < b.Max.Y()-axisTolerance && a.Max.Y() > b.Min.Y()+axisTolerance &&
		a.Min.Z() < b.Max.Z()-axisTolerance && a.Max.Z() > b.Min.Z()+axisTolerance
}

// World steps bodies against static geometry. Queries only read, so they
// may run concurrently with each other but never with Step.
type World struct {
	gravity mgl64.Vec3
	statics []AABB
	bodies  []*Body
}

func NewWorld(gravity mgl64.Vec3) *World {
	return &World{gravity: gravity}
}

func (w *World) Gravity() mgl64.Vec3 {
	if w == nil {
		return mgl64.Vec3{}
	}
	return w.gravity
}

func (w *World) SetGravity(g mgl64.Vec3) {
	if w == nil {
		return
	}
	w.gravity = g
}

func (w *World) Name() string { return "volume" }

// AddGround adds a slab whose top face is at height y.
func (w *World) AddGround(y, halfExtent float64) {
	w.AddAABB(AABB{
		Min: mgl64.Vec3{-halfExtent, y - 1, -halfExtent},
		Max: mgl64.Vec3{halfExtent, y, halfExtent},
	})
}

func (w *World) AddBox(center, size mgl64.Vec3) {
	w.AddAABB(BoxAt(center, size))
}

func (w *World) AddAABB(box AABB) {
	w.statics = append(w.statics, box)
}

// AddSlope builds a ramp from a to b out of stair boxes no taller than
// slopeRise, which the float spring walks over. The ramp must run along X
// or along Z.
func (w *World) AddSlope(a, b mgl64.Vec3, width float64) error {
	run := b.Sub(a)
	axis, across := 0, 2
	switch {
	case math.Abs(run.Z()) <= axisTolerance && math.Abs(run.X()) > axisTolerance:
	case math.Abs(run.X()) <= axisTolerance && math.Abs(run.Z()) > axisTolerance:
		axis, across = 2, 0
	default:
		return fmt.Errorf("volume: slope %v-%v must run along X or Z: %w", a, b, physics.ErrUnsupported)
	}

	n := int(math.Ceil(math.Abs(run.Y()) / slopeRise))
	if n < 1 {
		n = 1
	}
	bottom := math.Min(a.Y(), b.Y()) - 1
	for i := 0; i < n; i++ {
		t0, t1 := float64(i)/float64(n), float64(i+1)/float64(n)
		p0, p1 := a.Add(run.Mul(t0)), a.Add(run.Mul(t1))

		var box AABB
		box.Min[axis], box.Max[axis] = math.Min(p0[axis], p1[axis]), math.Max(p0[axis], p1[axis])
		box.Min[across], box.Max[across] = a[across]-width/2, a[across]+width/2
		box.Min[1], box.Max[1] = bottom, math.Max(p0.Y(), p1.Y())
		w.AddAABB(box)
	}
	return nil
}

func (w *World) Statics() []AABB {
	return w.statics
}

// AddCapsule adds an upright capsule centred at pos. Its collision volume is
// the capsule's bounding box.
func (w *World) AddCapsule(pos mgl64.Vec3, radius, halfLength, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	b := &Body{
		pos:    pos,
		radius: radius,
		half:   halfLength + radius,
		mass:   mass,
	}
	w.bodies = append(w.bodies, b)
	return b
}

func (w *World) Spawn(c physics.Capsule) physics.Body {
	return w.AddCapsule(c.Position, c.Radius, c.HalfLength, c.Mass)
}

func (w *World) Despawn(b physics.Body) {
	if body, ok := b.(*Body); ok {
		w.RemoveBody(body)
	}
}

func (w *World) RemoveBody(b *Body) {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

// Step integrates velocity, then moves each body one axis at a time,
// clamping against static boxes. A blocked axis loses its velocity.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.vel = b.vel.Add(w.gravity.Mul(dt))
		delta := b.vel.Mul(dt)
		for _, axis := range [3]int{1, 0, 2} {
			moved, blocked := w.sweepAxis(b, axis, delta[axis])
			b.pos[axis] += moved
			if blocked {
				b.vel[axis] = 0
			}
		}
	}
}

func (w *World) sweepAxis(b *Body, axis int, delta float64) (float64, bool) {
	if math.Abs(delta) <= axisTolerance {
		return delta, false
	}
	box := b.Bounds()
	allowed := delta
	for _, s := range w.statics {
		if !overlapsOtherAxes(box, s, axis) {
			continue
		}
		if delta > 0 {
			if gap := s.Min[axis] - box.Max[axis]; gap >= -axisTolerance && gap < allowed {
				allowed = math.Max(gap, 0)
			}
		} else {
			if gap := s.Max[axis] - box.Min[axis]; gap <= axisTolerance && gap > allowed {
				allowed = math.Min(gap, 0)
			}
		}
	}
	return allowed, allowed != delta
}

func overlapsOtherAxes(a, b AABB, axis int) bool {
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if a.Min[i] >= b.Max[i]-axisTolerance || a.Max[i] <= b.Min[i]+axisTolerance {
			return false
		}
	}
	return true
}

// CastDown sweeps a flat disc of the probe radius down from origin and
// returns the highest top face below it, static or body.
func (w *World) CastDown(origin mgl64.Vec3, maxDistance float64, shape controller.ProbeShape, ignore controller.Body) (controller.Hit, bool) {
	if w == nil || maxDistance <= 0 {
		return controller.Hit{}, false
	}
	r := math.Max(shape.Radius, 0)

	best := controller.Hit{Distance: math.Inf(1)}
	found := false
	consider := func(box AABB) {
		top := box.Max.Y()
		d := origin.Y() - top
		if d < -axisTolerance || d > maxDistance || d >= best.Distance {
			return
		}
		cx := clamp(origin.X(), box.Min.X(), box.Max.X())
		cz := clamp(origin.Z(), box.Min.Z(), box.Max.Z())
		dx, dz := origin.X()-cx, origin.Z()-cz
		if dx*dx+dz*dz > r*r {
			return
		}
		best = controller.Hit{
			Distance: math.Max(d, 0),
			Point:    mgl64.Vec3{cx, top, cz},
			Normal:   controller.Up,
		}
		found = true
	}

	for _, s := range w.statics {
		consider(s)
	}
	for _, b := range w.bodies {
		if controller.Body(b) == ignore {
			continue
		}
		consider(b.Bounds())
	}
	if !found {
		return controller.Hit{}, false
	}
	return best, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Body is an upright capsule in a World.
type Body struct {
	pos    mgl64.Vec3
	vel    mgl64.Vec3
	radius float64
	half   float64
	mass   float64
}

func (b *Body) Position() mgl64.Vec3 { return b.pos }
func (b *Body) Velocity() mgl64.Vec3 { return b.vel }
func (b *Body) Mass() float64        { return b.mass }

func (b *Body) SetVelocity(v mgl64.Vec3) {
	b.vel = v
}

func (b *Body) ApplyImpulse(impulse mgl64.Vec3) {
	b.vel = b.vel.Add(impulse.Mul(1 / b.mass))
}

// Teleport moves the body and clears its velocity.
func (b *Body) Teleport(pos mgl64.Vec3) {
	b.pos = pos
	b.vel = mgl64.Vec3{}
}

func (b *Body) Radius() float64 { return b.radius }

// HalfHeight is the distance from the centre to the bottom of the capsule.
func (b *Body) HalfHeight() float64 { return b.half }

func (b *Body) Bounds() AABB {
	ext := mgl64.Vec3{b.radius, b.half, b.radius}
	return AABB{Min: b.pos.Sub(ext), Max: b.pos.Add(ext)}
}
