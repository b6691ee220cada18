package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"worship/pkg/engine/input"
)

// keyCodes maps Ebiten keys to the raw codes used by the bindings.
var keyCodes = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyW, "w"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyControlLeft, "control_left"},
	{ebiten.KeySpace, " "},
	{ebiten.KeyDigit1, "1"},
	{ebiten.KeyDigit2, "2"},
	{ebiten.KeyDigit3, "3"},
	{ebiten.KeyEscape, "escape"},
	{ebiten.KeyP, "p"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyF9, "f9"},
	{ebiten.KeyF12, "f12"},
}

const mouseLeftCode = "mouse_left"

func isCodePressed(code string) bool {
	if code == mouseLeftCode {
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}
	for _, kc := range keyCodes {
		if kc.code == code {
			return ebiten.IsKeyPressed(kc.key)
		}
	}
	return false
}

// pollInput sets every bound action whose code is pressed and releases the
// rest. An action bound to several codes stays held while any of them is.
func pollInput(held *input.Held, pressed func(code string) bool) {
	for action, codes := range input.GetBindingsByAction() {
		down := false
		for _, code := range codes {
			if pressed(code) {
				down = true
				break
			}
		}
		if down {
			held.Set(action)
		} else {
			held.Release(action)
		}
	}
}

// handleZoom handles =/- for tile size adjustment
func (e *EbitenRenderer) handleZoom() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		e.tileSize = min(e.tileSize*2, maxTileSize)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		e.tileSize = max(e.tileSize/2, minTileSize)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit0):
		e.tileSize = defaultTileSize
	}
}
