package system

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
)

// LocomotionSystem ticks every character's controller once per fixed tick.
// Probes run in parallel on the crowd's pool; driving is serial.
type LocomotionSystem struct {
	crowd   *controller.Crowd
	members map[uuid.UUID]ecs.Entity
	ticks   uint64
}

func NewLocomotionSystem(probeWorkers int) (*LocomotionSystem, error) {
	crowd, err := controller.NewCrowd(probeWorkers)
	if err != nil {
		return nil, fmt.Errorf("locomotion system: %w", err)
	}
	return &LocomotionSystem{crowd: crowd, members: map[uuid.UUID]ecs.Entity{}}, nil
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.ticks++
	s.sync(w)

	snaps := make(map[uuid.UUID]controller.Snapshot, len(s.members))
	for id, e := range s.members {
		if actions, ok := ecs.Get(w, e, component.ActionsComponent.Kind()); ok {
			snaps[id] = actions.Buffer.Take()
		}
	}

	for _, report := range s.crowd.Tick(snaps) {
		e, ok := s.members[report.Controller]
		if !ok {
			continue
		}
		if loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind()); ok {
			loco.Last = report
		}
		if g, ok := ecs.Get(w, e, component.GroundingComponent.Kind()); ok {
			if g.Phase != report.Phase {
				g.Since = s.ticks
			}
			g.Result = report.Grounding
			g.Phase = report.Phase
		}
	}
}

// sync adds new characters to the crowd and drops destroyed ones. An entity
// that lost its body is dropped too and its controller skipped.
func (s *LocomotionSystem) sync(w *ecs.World) {
	live := make(map[uuid.UUID]struct{}, len(s.members))
	ecs.ForEach2(w, component.LocomotionComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, pb *component.PhysicsBody) {
		if loco.Controller == nil || pb.Body == nil {
			return
		}
		id := loco.Controller.ID()
		live[id] = struct{}{}
		if _, ok := s.members[id]; !ok {
			s.crowd.Add(loco.Controller)
			s.members[id] = e
		}
	})
	for id := range s.members {
		if _, ok := live[id]; !ok {
			s.crowd.Remove(id)
			delete(s.members, id)
		}
	}
}

func (s *LocomotionSystem) Len() int { return s.crowd.Len() }

// Close releases the probe pool. Later ticks probe inline.
func (s *LocomotionSystem) Close() {
	s.crowd.Release()
}
