package component

import "github.com/go-gl/mathgl/mgl64"

// Spawn is where a character returns to after falling out of the level.
type Spawn struct {
	Position mgl64.Vec3
	Respawns int
}

var SpawnComponent = NewComponent[Spawn]()
