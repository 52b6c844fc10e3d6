package gui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/chubes4/chubes-games/internal/core"
)

type keyBinding struct {
	key    ebiten.Key
	action core.Action
}

// keyBindings mirrors the terminal controls.
var keyBindings = []keyBinding{
	{ebiten.KeyArrowUp, core.ActionUp},
	{ebiten.KeyW, core.ActionUp},
	{ebiten.KeyArrowDown, core.ActionDown},
	{ebiten.KeyS, core.ActionDown},
	{ebiten.KeyArrowLeft, core.ActionLeft},
	{ebiten.KeyA, core.ActionLeft},
	{ebiten.KeyArrowRight, core.ActionRight},
	{ebiten.KeyD, core.ActionRight},
	{ebiten.Key1, core.ActionSlot1},
	{ebiten.Key2, core.ActionSlot2},
	{ebiten.Key3, core.ActionSlot3},
	{ebiten.Key4, core.ActionSlot4},
	{ebiten.Key5, core.ActionSlot5},
	{ebiten.Key6, core.ActionSlot6},
	{ebiten.KeyEnter, core.ActionConfirm},
	{ebiten.KeySpace, core.ActionConfirm},
	{ebiten.KeyX, core.ActionSell},
	{ebiten.KeyDelete, core.ActionSell},
	{ebiten.KeyBackspace, core.ActionSell},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyR, core.ActionRestart},
	{ebiten.KeyEscape, core.ActionBack},
	{ebiten.KeyQ, core.ActionQuit},
}

// collectKeys sets the action of every binding whose key went down this
// frame. justPressed is inpututil.IsKeyJustPressed outside tests.
func collectKeys(frame *core.InputFrame, justPressed func(ebiten.Key) bool) {
	for _, b := range keyBindings {
		if justPressed(b.key) {
			frame.Set(b.action)
		}
	}
}
