package controller

import "github.com/go-gl/mathgl/mgl64"

type fakeBody struct {
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	mass     float64
	impulses []mgl64.Vec3
	sets     int
}

func newFakeBody(pos mgl64.Vec3) *fakeBody {
	return &fakeBody{pos: pos, mass: 1}
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Velocity() mgl64.Vec3 { return b.vel }
func (b *fakeBody) Mass() float64        { return b.mass }

func (b *fakeBody) SetVelocity(v mgl64.Vec3) {
	b.sets++
	b.vel = v
}

func (b *fakeBody) ApplyImpulse(j mgl64.Vec3) {
	b.impulses = append(b.impulses, j)
	b.vel = b.vel.Add(j.Mul(1 / b.mass))
}

// integrate mimics the engines: velocity first, then position.
func (b *fakeBody) integrate(g mgl64.Vec3, dt float64) {
	b.vel = b.vel.Add(g.Mul(dt))
	b.pos = b.pos.Add(b.vel.Mul(dt))
}

// flatWorld is an infinite floor at height floor with a constant normal.
type flatWorld struct {
	gravity mgl64.Vec3
	floor   float64
	normal  mgl64.Vec3
	noFloor bool
}

func newFlatWorld(floor float64) *flatWorld {
	return &flatWorld{gravity: mgl64.Vec3{0, -9.81, 0}, floor: floor, normal: Up}
}

func (w *flatWorld) Gravity() mgl64.Vec3 { return w.gravity }

func (w *flatWorld) CastDown(origin mgl64.Vec3, maxDistance float64, shape ProbeShape, ignore Body) (Hit, bool) {
	if w.noFloor {
		return Hit{}, false
	}
	d := origin.Y() - w.floor
	if d < 0 || d > maxDistance {
		return Hit{}, false
	}
	return Hit{
		Distance: d,
		Point:    mgl64.Vec3{origin.X(), w.floor, origin.Z()},
		Normal:   w.normal,
	}, true
}

// distanceCaster reports a fixed distance regardless of origin.
type distanceCaster struct {
	distance float64
	normal   mgl64.Vec3
	hit      bool

	lastReach  float64
	lastShape  ProbeShape
	lastIgnore Body
}

func (c *distanceCaster) CastDown(origin mgl64.Vec3, maxDistance float64, shape ProbeShape, ignore Body) (Hit, bool) {
	c.lastReach = maxDistance
	c.lastShape = shape
	c.lastIgnore = ignore
	if !c.hit || c.distance > maxDistance {
		return Hit{}, false
	}
	return Hit{Distance: c.distance, Normal: c.normal}, true
}

func vecNear(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-9)
}
