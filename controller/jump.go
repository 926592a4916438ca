package controller

// JumpRequest is a one-shot height request, true only on the tick the jump
// action's rising edge is observed.
type JumpRequest struct {
	Height    float64
	Requested bool
}

// EvaluateJump keeps no memory of earlier jumps. Re-arming comes entirely
// from the action edge, so holding the button never repeats a jump.
func EvaluateJump(edge ActionEdge, height float64) JumpRequest {
	return JumpRequest{Height: height, Requested: edge.JustActivated}
}
