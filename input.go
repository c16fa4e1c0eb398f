package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blockpush/ecs/component"
)

const stickDeadzone = 0.2

// keyboardInput reads held movement keys and the first gamepad.
type keyboardInput struct{}

func (keyboardInput) Actions() component.Action {
	var a component.Action
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		a |= component.ActionLeft
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		a |= component.ActionRight
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		a |= component.ActionJump
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if x < -stickDeadzone {
			a |= component.ActionLeft
		} else if x > stickDeadzone {
			a |= component.ActionRight
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			a |= component.ActionJump
		}
	}
	return a
}
