package component

import (
	"github.com/milk9111/strider/levels"
	"github.com/milk9111/strider/physics"
)

// PhysicsBody links an entity to its capsule in the physics backend.
type PhysicsBody struct {
	Body    physics.Body
	Capsule physics.Capsule
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// PhysicsWorld is a singleton holding the backend every body lives in and
// the fixed step it is advanced by.
type PhysicsWorld struct {
	Backend   physics.Backend
	Step      float64
	KillPlane float64
	Level     *levels.Level
}

var PhysicsWorldComponent = NewComponent[PhysicsWorld]()
