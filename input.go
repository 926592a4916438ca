package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/strider/controller"
)

const stickDeadzone = 0.2

// pollActions reads the keyboard and the first gamepad. W/S move along +Z
// (into the screen), A/D along X.
func pollActions() controller.ActionSet {
	held := controller.NewActionSet()

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		held.Add(controller.MoveForward)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		held.Add(controller.MoveBack)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		held.Add(controller.MoveLeft)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		held.Add(controller.MoveRight)
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		held.Add(controller.Jump)
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		switch {
		case x < -stickDeadzone:
			held.Add(controller.MoveLeft)
		case x > stickDeadzone:
			held.Add(controller.MoveRight)
		}
		switch {
		case y < -stickDeadzone:
			held.Add(controller.MoveForward)
		case y > stickDeadzone:
			held.Add(controller.MoveBack)
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			held.Add(controller.Jump)
		}
	}
	return held
}
