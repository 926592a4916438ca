package system

import (
	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
)

// KeyboardInputSystem copies the held keyboard actions into every
// keyboard-driven ActionSource. Poll reads the device; it is called once per
// frame.
type KeyboardInputSystem struct {
	Poll func() controller.ActionSet
}

func NewKeyboardInputSystem(poll func() controller.ActionSet) *KeyboardInputSystem {
	return &KeyboardInputSystem{Poll: poll}
}

func (s *KeyboardInputSystem) Update(w *ecs.World) {
	if w == nil || s.Poll == nil {
		return
	}
	held := s.Poll()
	ecs.ForEach(w, component.ActionSourceComponent.Kind(), func(_ ecs.Entity, src *component.ActionSource) {
		if src.Kind != component.InputKeyboard {
			return
		}
		src.Held = held
	})
}

// ActionSampleSystem turns held actions into edges once per frame and
// buffers the snapshot for the fixed ticks that follow.
type ActionSampleSystem struct{}

func NewActionSampleSystem() *ActionSampleSystem { return &ActionSampleSystem{} }

func (s *ActionSampleSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.ActionSourceComponent.Kind(), component.ActionsComponent.Kind(), func(_ ecs.Entity, src *component.ActionSource, actions *component.Actions) {
		if actions.State == nil {
			actions.State = controller.NewActionState()
		}
		snap := actions.State.Sample(src.Held)
		actions.Buffer.Push(snap)
		actions.Last = snap
	})
}
