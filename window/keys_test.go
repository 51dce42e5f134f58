//go:build cgo

package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/fabviz/engine"
)

func TestActions(t *testing.T) {
	tests := []struct {
		name    string
		pressed []ebiten.Key
		want    []engine.Action
	}{
		{"none", nil, nil},
		{"next", []ebiten.Key{ebiten.KeyArrowRight}, []engine.Action{{Kind: engine.ActionNext}}},
		{"vim previous", []ebiten.Key{ebiten.KeyH}, []engine.Action{{Kind: engine.ActionPrevious}}},
		{"seek digit", []ebiten.Key{ebiten.KeyDigit3}, []engine.Action{{Kind: engine.ActionSeek, Index: 2}}},
		{"play and quit", []ebiten.Key{ebiten.KeyQ, ebiten.KeySpace}, []engine.Action{{Kind: engine.ActionTogglePlay}, {Kind: engine.ActionQuit}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := make(map[ebiten.Key]bool)
			for _, k := range tt.pressed {
				set[k] = true
			}
			got := Actions(func(k ebiten.Key) bool { return set[k] })
			if len(got) != len(tt.want) {
				t.Fatalf("Actions = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("action[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestASCIIHUD(t *testing.T) {
	if got := asciiHUD.Replace("██░ ▶ Playing"); got != "##- > Playing" {
		t.Errorf("Replace = %q", got)
	}
}
