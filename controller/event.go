package controller

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Phase is the implicit per-body state. Jumping is not a phase; it is a
// single-tick impulse on top of whichever phase is current.
type Phase int

const (
	Airborne Phase = iota
	Grounded
)

func (p Phase) String() string {
	if p == Grounded {
		return "grounded"
	}
	return "airborne"
}

type EventKind string

const (
	EventGrounded EventKind = "grounded"
	EventAirborne EventKind = "airborne"
	EventJump     EventKind = "jump"
)

// Event is a read-only diagnostic notification.
type Event struct {
	Controller uuid.UUID
	Kind       EventKind
	Tick       uint64
	Height     float64
	Position   mgl64.Vec3
}

// Observer receives events synchronously on the tick that produced them.
type Observer func(Event)
