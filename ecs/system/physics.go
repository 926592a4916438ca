package system

import (
	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
)

// PhysicsSystem steps the backend by one fixed tick and mirrors each body's
// pose into its Transform.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem { return &PhysicsSystem{} }

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, pw, ok := ecs.First(w, component.PhysicsWorldComponent.Kind())
	if !ok || pw.Backend == nil {
		return
	}

	pw.Backend.Step(pw.Step)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			return
		}
		t.Previous = t.Position
		t.Position = pb.Body.Position()
		t.Velocity = pb.Body.Velocity()
	})
}
