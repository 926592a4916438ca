// Package chipmunk runs characters in a Chipmunk space seen from the side.
// World X and Y map onto the space; Z is carried on each body but never
// simulated.
package chipmunk

import (
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/physics"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeCharacter
)

const (
	iterations    = 20
	collisionSlop = 0.01
	staticDepth   = 1.0
	slopeRadius   = 0.05
)

var _ physics.Backend = (*Space)(nil)

// Space owns the Chipmunk space plus every static and character shape in it.
type Space struct {
	space     *cp.Space
	nextGroup uint
	bodies    map[*cp.Body]*Body
}

func NewSpace(gravity mgl64.Vec3) *Space {
	space := cp.NewSpace()
	space.Iterations = iterations
	space.SetGravity(cp.Vector{X: gravity.X(), Y: gravity.Y()})
	space.SetCollisionSlop(collisionSlop)
	return &Space{
		space:  space,
		bodies: make(map[*cp.Body]*Body),
	}
}

func (s *Space) Name() string { return "chipmunk" }

// Space returns the underlying Chipmunk space.
func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

func (s *Space) Gravity() mgl64.Vec3 {
	if s == nil || s.space == nil {
		return mgl64.Vec3{}
	}
	g := s.space.Gravity()
	return mgl64.Vec3{g.X, g.Y, 0}
}

func (s *Space) SetGravity(gravity mgl64.Vec3) {
	if s == nil || s.space == nil {
		return
	}
	s.space.SetGravity(cp.Vector{X: gravity.X(), Y: gravity.Y()})
}

// Step advances the simulation by one fixed tick.
func (s *Space) Step(dt float64) {
	if s == nil || s.space == nil || dt <= 0 {
		return
	}
	s.space.Step(dt)
}

// AddGround adds a static slab whose top face is at height y.
func (s *Space) AddGround(y, halfWidth float64) {
	s.addStatic(cp.NewBox2(s.space.StaticBody, cp.BB{L: -halfWidth, B: y - staticDepth, R: halfWidth, T: y}, 0))
}

// AddBox adds an axis aligned box. Only the X and Y extents matter.
func (s *Space) AddBox(center, size mgl64.Vec3) {
	bb := cp.NewBBForExtents(cp.Vector{X: center.X(), Y: center.Y()}, size.X()/2, size.Y()/2)
	s.addStatic(cp.NewBox2(s.space.StaticBody, bb, 0))
}

// AddSlope adds a ramp as a thin segment from a to b. The width only
// matters in 3D and is ignored.
func (s *Space) AddSlope(a, b mgl64.Vec3, width float64) error {
	va, vb := cp.Vector{X: a.X(), Y: a.Y()}, cp.Vector{X: b.X(), Y: b.Y()}
	if va.Distance(vb) < slopeRadius {
		return fmt.Errorf("chipmunk: slope %v-%v is degenerate in the side view: %w", a, b, physics.ErrUnsupported)
	}
	s.addStatic(cp.NewSegment(s.space.StaticBody, va, vb, slopeRadius))
	return nil
}

func (s *Space) addStatic(shape *cp.Shape) *cp.Shape {
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	s.space.AddShape(shape)
	return shape
}

// AddCapsule creates a character body: a vertical segment of the given half
// length, rounded by radius, that never rotates.
func (s *Space) AddCapsule(pos mgl64.Vec3, radius, halfLength, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
	body.SetAngle(0)

	shape := cp.NewSegment(body, cp.Vector{X: 0, Y: -halfLength}, cp.Vector{X: 0, Y: halfLength}, radius)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)

	s.nextGroup++
	group := s.nextGroup
	shape.SetFilter(cp.ShapeFilter{Group: group, Categories: cp.ALL_CATEGORIES, Mask: cp.ALL_CATEGORIES})

	s.space.AddBody(body)
	s.space.AddShape(shape)

	b := &Body{body: body, shape: shape, group: group, z: pos.Z()}
	s.bodies[body] = b
	log.Printf("chipmunk: add capsule group=%d at (%.2f, %.2f)", group, pos.X(), pos.Y())
	return b
}

// Spawn adds a character capsule.
func (s *Space) Spawn(c physics.Capsule) physics.Body {
	return s.AddCapsule(c.Position, c.Radius, c.HalfLength, c.Mass)
}

// Despawn removes a body created by Spawn. Bodies from other backends are
// ignored.
func (s *Space) Despawn(b physics.Body) {
	if body, ok := b.(*Body); ok {
		s.RemoveBody(body)
	}
}

func (s *Space) RemoveBody(b *Body) {
	if s == nil || b == nil || b.body == nil {
		return
	}
	if _, ok := s.bodies[b.body]; !ok {
		return
	}
	s.space.RemoveShape(b.shape)
	s.space.RemoveBody(b.body)
	delete(s.bodies, b.body)
}

func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bodies)
}

// CastDown sweeps a circle of the probe radius straight down from origin.
// The reported distance runs from origin to the surface, so the radius is
// added back onto the centre's travel.
func (s *Space) CastDown(origin mgl64.Vec3, maxDistance float64, shape controller.ProbeShape, ignore controller.Body) (controller.Hit, bool) {
	if s == nil || s.space == nil || maxDistance <= 0 {
		return controller.Hit{}, false
	}
	radius := math.Max(shape.Radius, 0)
	travel := maxDistance - radius
	if travel <= 0 {
		return controller.Hit{}, false
	}

	filter := cp.SHAPE_FILTER_ALL
	if b, ok := ignore.(*Body); ok && b != nil {
		filter.Group = b.group
	}

	start := cp.Vector{X: origin.X(), Y: origin.Y()}
	end := cp.Vector{X: origin.X(), Y: origin.Y() - travel}
	info := s.space.SegmentQueryFirst(start, end, radius, filter)
	if info.Shape == nil {
		return controller.Hit{}, false
	}

	return controller.Hit{
		Distance: info.Alpha*travel + radius,
		Point:    mgl64.Vec3{info.Point.X, info.Point.Y, origin.Z()},
		Normal:   mgl64.Vec3{info.Normal.X, info.Normal.Y, 0},
	}, true
}

// Body adapts a Chipmunk body to controller.Body.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
	group uint
	z     float64
}

func (b *Body) Position() mgl64.Vec3 {
	p := b.body.Position()
	return mgl64.Vec3{p.X, p.Y, b.z}
}

func (b *Body) Velocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, 0}
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	b.body.SetVelocity(v.X(), v.Y())
}

func (b *Body) ApplyImpulse(impulse mgl64.Vec3) {
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X(), Y: impulse.Y()}, b.body.Position())
}

func (b *Body) Mass() float64 {
	return b.body.Mass()
}

// Teleport moves the body and clears its velocity.
func (b *Body) Teleport(pos mgl64.Vec3) {
	b.body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
	b.body.SetVelocity(0, 0)
	b.z = pos.Z()
}

func (b *Body) CP() *cp.Body     { return b.body }
func (b *Body) Shape() *cp.Shape { return b.shape }
