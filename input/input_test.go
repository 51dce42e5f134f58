package input

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fabviz/engine"
)

func TestMap(t *testing.T) {
	table := DefaultKeyTable()
	tests := []struct {
		name   string
		key    tcell.Key
		r      rune
		want   engine.Action
		wantOK bool
	}{
		{"left arrow", tcell.KeyLeft, 0, engine.Action{Kind: engine.ActionPrevious}, true},
		{"right arrow", tcell.KeyRight, 0, engine.Action{Kind: engine.ActionNext}, true},
		{"h", tcell.KeyRune, 'h', engine.Action{Kind: engine.ActionPrevious}, true},
		{"l", tcell.KeyRune, 'l', engine.Action{Kind: engine.ActionNext}, true},
		{"space", tcell.KeyRune, ' ', engine.Action{Kind: engine.ActionTogglePlay}, true},
		{"reset", tcell.KeyRune, 'r', engine.Action{Kind: engine.ActionReset}, true},
		{"seek 1", tcell.KeyRune, '1', engine.Action{Kind: engine.ActionSeek, Index: 0}, true},
		{"seek 9", tcell.KeyRune, '9', engine.Action{Kind: engine.ActionSeek, Index: 8}, true},
		{"zero unbound", tcell.KeyRune, '0', engine.Action{}, false},
		{"zoom", tcell.KeyRune, '+', engine.Action{Kind: engine.ActionZoomIn}, true},
		{"stats", tcell.KeyTab, 0, engine.Action{Kind: engine.ActionToggleStats}, true},
		{"escape", tcell.KeyEscape, 0, engine.Action{Kind: engine.ActionQuit}, true},
		{"ctrl-c", tcell.KeyCtrlC, 0, engine.Action{Kind: engine.ActionQuit}, true},
		{"unbound rune", tcell.KeyRune, 'z', engine.Action{}, false},
		{"unbound key", tcell.KeyF5, 0, engine.Action{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Map(tcell.NewEventKey(tt.key, tt.r, tcell.ModNone))
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Map = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestReaderDeliversActions(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}

	r := NewReader(sim, nil)
	r.Start(context.Background())

	sim.InjectKey(tcell.KeyRune, 'z', tcell.ModNone) // ignored
	sim.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, '3', tcell.ModNone)

	want := []engine.Action{
		{Kind: engine.ActionNext},
		{Kind: engine.ActionSeek, Index: 2},
	}
	for i, w := range want {
		select {
		case got := <-r.Actions():
			if got != w {
				t.Errorf("action[%d] = %v, want %v", i, got, w)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for action %d", i)
		}
	}

	sim.Fini()
	select {
	case _, ok := <-r.Actions():
		if ok {
			t.Error("unexpected action after Fini")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Actions not closed after Fini")
	}
}
