// Package input translates terminal key events into loop actions
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fabviz/engine"
)

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (arrows, Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]engine.ActionKind

	// Rune bindings; digits 1-9 are handled as seek
	Runes map[rune]engine.ActionKind
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]engine.ActionKind{
			tcell.KeyLeft:   engine.ActionPrevious,
			tcell.KeyRight:  engine.ActionNext,
			tcell.KeyUp:     engine.ActionOrbitUp,
			tcell.KeyDown:   engine.ActionOrbitDown,
			tcell.KeyTab:    engine.ActionToggleStats,
			tcell.KeyEscape: engine.ActionQuit,
			tcell.KeyCtrlC:  engine.ActionQuit,
			tcell.KeyCtrlQ:  engine.ActionQuit,
			tcell.KeyHome:   engine.ActionReset,
		},

		Runes: map[rune]engine.ActionKind{
			'h': engine.ActionPrevious,
			'l': engine.ActionNext,
			' ': engine.ActionTogglePlay,
			'r': engine.ActionReset,
			'[': engine.ActionOrbitLeft,
			']': engine.ActionOrbitRight,
			'k': engine.ActionOrbitUp,
			'j': engine.ActionOrbitDown,
			'+': engine.ActionZoomIn,
			'=': engine.ActionZoomIn,
			'-': engine.ActionZoomOut,
			'p': engine.ActionToggleRotation,
			'q': engine.ActionQuit,
		},
	}
}

// Map returns the action for a key event
func (t *KeyTable) Map(ev *tcell.EventKey) (engine.Action, bool) {
	if ev.Key() != tcell.KeyRune {
		kind, ok := t.SpecialKeys[ev.Key()]
		return engine.Action{Kind: kind}, ok
	}
	r := ev.Rune()
	if r >= '1' && r <= '9' {
		return engine.Action{Kind: engine.ActionSeek, Index: int(r - '1')}, true
	}
	kind, ok := t.Runes[r]
	return engine.Action{Kind: kind}, ok
}
