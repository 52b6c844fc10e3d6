package gui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/chubes4/chubes-games/internal/core"
)

func pressed(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, want := range keys {
			if k == want {
				return true
			}
		}
		return false
	}
}

func TestCollectKeys(t *testing.T) {
	tests := []struct {
		name     string
		keys     []ebiten.Key
		expected []core.Action
	}{
		{"arrow", []ebiten.Key{ebiten.KeyArrowLeft}, []core.Action{core.ActionLeft}},
		{"wasd", []ebiten.Key{ebiten.KeyW}, []core.Action{core.ActionUp}},
		{"slot", []ebiten.Key{ebiten.Key5}, []core.Action{core.ActionSlot5}},
		{"sell and pause", []ebiten.Key{ebiten.KeyX, ebiten.KeyP}, []core.Action{core.ActionSell, core.ActionPause}},
		{"escape", []ebiten.Key{ebiten.KeyEscape}, []core.Action{core.ActionBack}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			collectKeys(&frame, pressed(tt.keys...))
			for _, a := range tt.expected {
				if !frame.Has(a) {
					t.Errorf("frame missing %v", a)
				}
			}
		})
	}

	frame := core.NewInputFrame()
	collectKeys(&frame, pressed())
	if frame.Has(core.ActionConfirm) || frame.Slot() != 0 {
		t.Error("no keys pressed but frame has actions")
	}
}
