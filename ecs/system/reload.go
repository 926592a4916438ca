package system

import (
	"log/slog"
	"strings"

	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/entity"
	"github.com/milk9111/strider/prefabs"
)

// ReloadSystem applies prefab and script edits picked up by the watcher.
// It runs at frame cadence, before input, so a new config is in place
// before the next tick.
type ReloadSystem struct {
	Watcher *prefabs.Watcher
	Scripts *ScriptInputSystem
}

func NewReloadSystem(watcher *prefabs.Watcher, scripts *ScriptInputSystem) *ReloadSystem {
	return &ReloadSystem{Watcher: watcher, Scripts: scripts}
}

func (s *ReloadSystem) Update(w *ecs.World) {
	if w == nil || s.Watcher == nil {
		return
	}
	for _, name := range s.Watcher.Poll() {
		s.Apply(w, name)
	}
	select {
	case err, ok := <-s.Watcher.Errors:
		if ok {
			slog.Error("prefabs: watch", "err", err)
		}
	default:
	}
}

// Apply reloads one changed file by its prefab name.
func (s *ReloadSystem) Apply(w *ecs.World, name string) {
	if strings.HasSuffix(name, ".tengo") {
		if s.Scripts != nil {
			n := s.Scripts.Invalidate(name)
			slog.Info("prefabs: script changed", "script", name, "runtimes", n)
		}
		return
	}
	n, err := entity.ReloadCharacters(w, name)
	if err != nil {
		slog.Error("prefabs: reload rejected", "prefab", name, "err", err)
		return
	}
	if n == 0 {
		slog.Debug("prefabs: change affects no character", "prefab", name)
	}
}
