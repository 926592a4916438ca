package component

import "github.com/milk9111/strider/controller"

type InputKind string

const (
	InputKeyboard InputKind = "keyboard"
	InputScript   InputKind = "script"
	InputNone     InputKind = "none"
)

// ActionSource is where an entity's held actions come from this frame.
// Input systems overwrite Held once per frame.
type ActionSource struct {
	Kind   InputKind
	Script string
	Held   controller.ActionSet
}

var ActionSourceComponent = NewComponent[ActionSource]()

// Actions turns held actions into edges at frame cadence and buffers them
// for the fixed ticks.
type Actions struct {
	State  *controller.ActionState
	Buffer controller.InputBuffer
	Last   controller.Snapshot
}

var ActionsComponent = NewComponent[Actions]()
