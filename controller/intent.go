package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MovementIntent is the desired heading in the movement plane: X is right,
// Y is forward (world +Z). Its length never exceeds 1.
type MovementIntent struct {
	Direction mgl64.Vec2
}

// NewMovementIntent clamps an (x, z) input to the unit disc. Inputs already
// inside the disc are kept so analog sticks can walk slowly.
func NewMovementIntent(x, z float64) MovementIntent {
	if !finite(x) || !finite(z) {
		return MovementIntent{}
	}
	dir := mgl64.Vec2{x, z}
	if l := dir.Len(); l > 1 {
		dir = dir.Mul(1 / l)
	}
	return MovementIntent{Direction: dir}
}

// IntentFromSnapshot derives the intent from the held move actions.
func IntentFromSnapshot(snap Snapshot) MovementIntent {
	var x, z float64
	if snap.Edge(MoveForward).Active {
		z++
	}
	if snap.Edge(MoveBack).Active {
		z--
	}
	if snap.Edge(MoveRight).Active {
		x++
	}
	if snap.Edge(MoveLeft).Active {
		x--
	}
	return NewMovementIntent(x, z)
}

func (i MovementIntent) IsZero() bool {
	return i.Direction[0] == 0 && i.Direction[1] == 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
