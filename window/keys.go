//go:build cgo

package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/fabviz/engine"
)

// keyBindings mirrors the terminal bindings
var keyBindings = []struct {
	key  ebiten.Key
	kind engine.ActionKind
}{
	{ebiten.KeyArrowLeft, engine.ActionPrevious},
	{ebiten.KeyH, engine.ActionPrevious},
	{ebiten.KeyArrowRight, engine.ActionNext},
	{ebiten.KeyL, engine.ActionNext},
	{ebiten.KeySpace, engine.ActionTogglePlay},
	{ebiten.KeyR, engine.ActionReset},
	{ebiten.KeyArrowUp, engine.ActionOrbitUp},
	{ebiten.KeyArrowDown, engine.ActionOrbitDown},
	{ebiten.KeyBracketLeft, engine.ActionOrbitLeft},
	{ebiten.KeyBracketRight, engine.ActionOrbitRight},
	{ebiten.KeyEqual, engine.ActionZoomIn},
	{ebiten.KeyNumpadAdd, engine.ActionZoomIn},
	{ebiten.KeyMinus, engine.ActionZoomOut},
	{ebiten.KeyNumpadSubtract, engine.ActionZoomOut},
	{ebiten.KeyP, engine.ActionToggleRotation},
	{ebiten.KeyTab, engine.ActionToggleStats},
	{ebiten.KeyQ, engine.ActionQuit},
	{ebiten.KeyEscape, engine.ActionQuit},
}

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Actions returns the actions for keys reported as just pressed, in binding order
func Actions(justPressed func(ebiten.Key) bool) []engine.Action {
	var out []engine.Action
	for _, b := range keyBindings {
		if justPressed(b.key) {
			out = append(out, engine.Action{Kind: b.kind})
		}
	}
	for i, k := range digitKeys {
		if justPressed(k) {
			out = append(out, engine.Action{Kind: engine.ActionSeek, Index: i})
		}
	}
	return out
}

func pressedNow(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}
