package component

import "github.com/go-gl/mathgl/mgl64"

// Transform mirrors the body's pose after each physics tick. Previous is the
// pose before that tick, for render interpolation.
type Transform struct {
	Position mgl64.Vec3
	Previous mgl64.Vec3
	Velocity mgl64.Vec3
}

// Lerp returns the pose alpha of the way from Previous to Position.
func (t Transform) Lerp(alpha float64) mgl64.Vec3 {
	return t.Previous.Add(t.Position.Sub(t.Previous).Mul(alpha))
}

var TransformComponent = NewComponent[Transform]()
