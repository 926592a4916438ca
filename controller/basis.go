package controller

import "github.com/go-gl/mathgl/mgl64"

// LocomotionBasis is the steering signal re-supplied to the driver on every
// physics tick. A zero DesiredVelocity still carries the float height; a
// tick without a basis would leave the body to fall.
type LocomotionBasis struct {
	DesiredVelocity mgl64.Vec3
	FloatHeight     float64
}

// ComputeBasis is a pure function of the current intent. The desired
// velocity has no vertical component.
func ComputeBasis(intent MovementIntent, maxSpeed, floatHeight float64) LocomotionBasis {
	return LocomotionBasis{
		DesiredVelocity: mgl64.Vec3{
			intent.Direction[0] * maxSpeed,
			0,
			intent.Direction[1] * maxSpeed,
		},
		FloatHeight: floatHeight,
	}
}
