// Package physics defines what the scene needs from a physics backend. The
// chipmunk and volume subpackages implement it.
package physics

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/strider/controller"
)

var ErrUnsupported = errors.New("physics: unsupported by backend")

// Body is a controlled body the scene can also reposition.
type Body interface {
	controller.Body
	Teleport(pos mgl64.Vec3)
}

// Capsule describes an upright character body centred at Position.
type Capsule struct {
	Position   mgl64.Vec3
	Radius     float64
	HalfLength float64
	Mass       float64
}

// HalfHeight is the distance from the centre to the capsule's lowest point.
func (c Capsule) HalfHeight() float64 {
	return c.HalfLength + c.Radius
}

type Backend interface {
	controller.World

	Name() string
	SetGravity(g mgl64.Vec3)
	Step(dt float64)

	AddGround(y, halfExtent float64)
	AddBox(center, size mgl64.Vec3)
	// AddSlope adds a ramp from a to b, thickness across.
	AddSlope(a, b mgl64.Vec3, thickness float64) error

	Spawn(c Capsule) Body
	Despawn(b Body)
}
