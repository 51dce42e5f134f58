package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/engine"
	"github.com/lixenwraith/fabviz/status"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := &app{v: viper.New()}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	a.close()
	return out.String(), err
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{28 * time.Second, "28s"},
		{1500 * time.Millisecond, "1.5s"},
		{3333 * time.Millisecond, "3.33s"},
	}
	for _, tt := range tests {
		if got := seconds(tt.in); got != tt.want {
			t.Errorf("seconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimulateCMP(t *testing.T) {
	c, err := catalog.Builtin("cmp")
	if err != nil {
		t.Fatal(err)
	}
	tl, loop := simulate(c, engine.Options{Registry: status.NewRegistry()}, 10)
	if !tl.done {
		t.Fatal("playback did not finish")
	}
	if tl.finished != c.Total() {
		t.Errorf("finished at %v, want %v", tl.finished, c.Total())
	}
	if len(tl.entries) != c.Len() {
		t.Fatalf("recorded %d steps, want %d", len(tl.entries), c.Len())
	}
	for i, e := range tl.entries {
		if e.Index != i {
			t.Errorf("entry %d has index %d", i, e.Index)
		}
	}
	if tl.entries[0].At != 0 {
		t.Errorf("first step at %v, want 0", tl.entries[0].At)
	}
	if got := loop.Controller().State().Index; got != c.Last() {
		t.Errorf("final index %d, want %d", got, c.Last())
	}
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range catalog.Names() {
		if !strings.Contains(out, name) {
			t.Errorf("list output missing %q", name)
		}
	}
}

func TestStepsCommand(t *testing.T) {
	out, err := execute(t, "steps", "cmp", "--params")
	if err != nil {
		t.Fatal(err)
	}
	c, _ := catalog.Builtin("cmp")
	for _, s := range c.Steps() {
		if !strings.Contains(out, s.Title) {
			t.Errorf("steps output missing %q", s.Title)
		}
	}
	if !strings.Contains(out, "28s") {
		t.Errorf("steps output missing total, got:\n%s", out)
	}
}

func TestUnknownProcess(t *testing.T) {
	if _, err := execute(t, "steps", "nope"); err == nil {
		t.Fatal("expected error for unknown process")
	}
}

func TestExportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drie.toml")
	if _, err := execute(t, "export", "drie", "-o", path); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "simulate", "--catalog", path, "--fps", "20")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "finished") {
		t.Errorf("simulate output missing finish line:\n%s", out)
	}
}
