package component

import "github.com/milk9111/strider/controller"

type Locomotion struct {
	Controller *controller.Controller
	Last       controller.Report
}

var LocomotionComponent = NewComponent[Locomotion]()

// Grounding is the last probe result, kept for the HUD and scripts.
type Grounding struct {
	Result controller.GroundingResult
	Phase  controller.Phase
	// Since is the tick of the last phase change.
	Since uint64
}

var GroundingComponent = NewComponent[Grounding]()
