package controller

//go:generate go tool mockgen -destination=./mocks/body_mock.go -package=mocks . Body,World

import "github.com/go-gl/mathgl/mgl64"

// Up is the axis the controller floats along. Gravity points the other way.
var Up = mgl64.Vec3{0, 1, 0}

// Body is the rigid body under control. Pose and velocity belong to the
// physics engine; the driver only steers.
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	ApplyImpulse(impulse mgl64.Vec3)
	Mass() float64
}

// World is what the controller needs from the physics engine besides the
// body itself.
type World interface {
	Caster
	Gravity() mgl64.Vec3
}

func horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(Up.Mul(v.Dot(Up)))
}
