package system

import (
	"log/slog"

	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/ecs"
)

// Stats are running totals of what DiagnosticsSystem has seen.
type Stats struct {
	Jumps     int
	Landings  int
	Takeoffs  int
	Spawns    int
	Reloads   int
	Respawns  int
	Fallen    map[ecs.Entity]struct{}
	LastEvent map[ecs.Entity]controller.Event
}

// DiagnosticsSystem drains the event queue once per frame and logs it.
// Locomotion transitions go to debug; falls and reloads are louder.
type DiagnosticsSystem struct {
	Logger *slog.Logger
	stats  Stats
}

func NewDiagnosticsSystem(logger *slog.Logger) *DiagnosticsSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiagnosticsSystem{
		Logger: logger,
		stats: Stats{
			Fallen:    map[ecs.Entity]struct{}{},
			LastEvent: map[ecs.Entity]controller.Event{},
		},
	}
}

func (s *DiagnosticsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventLocomotion:
			ev, ok := evt.Data.(controller.Event)
			if !ok {
				continue
			}
			s.stats.LastEvent[evt.Entity] = ev
			switch ev.Kind {
			case controller.EventJump:
				s.stats.Jumps++
			case controller.EventGrounded:
				s.stats.Landings++
			case controller.EventAirborne:
				s.stats.Takeoffs++
			}
			s.Logger.Debug("locomotion: "+string(ev.Kind),
				"entity", evt.Entity.String(),
				"tick", ev.Tick,
				"height", ev.Height,
				"pos", ev.Position,
			)
		case ecs.EventSpawn:
			s.stats.Spawns++
		case ecs.EventRespawn:
			s.stats.Respawns++
			if _, seen := s.stats.Fallen[evt.Entity]; !seen {
				s.stats.Fallen[evt.Entity] = struct{}{}
				s.Logger.Warn("locomotion: below kill plane", "entity", evt.Entity.String(), "at", evt.Data)
			}
		case ecs.EventReload:
			s.stats.Reloads++
			s.Logger.Info("prefabs: reloaded", "prefab", evt.Data)
		}
	}
}

func (s *DiagnosticsSystem) Stats() Stats { return s.stats }
