package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/event"
	"github.com/lixenwraith/fabviz/playback"
	"github.com/lixenwraith/fabviz/status"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestLoop(t *testing.T, process string, opts Options) (*Loop, *MockTimeProvider) {
	t.Helper()
	cat, err := catalog.Builtin(process)
	if err != nil {
		t.Fatalf("Builtin(%q): %v", process, err)
	}
	clock := NewMockTimeProvider(epoch)
	opts.Clock = clock
	return New(cat, opts), clock
}

func TestMockTimeProvider(t *testing.T) {
	m := NewMockTimeProvider(epoch)
	if !m.Now().Equal(epoch) {
		t.Fatalf("Now = %v, want %v", m.Now(), epoch)
	}
	got := m.Advance(1500 * time.Millisecond)
	if want := epoch.Add(1500 * time.Millisecond); !got.Equal(want) {
		t.Errorf("Advance = %v, want %v", got, want)
	}
	if m.Elapsed() != 1500*time.Millisecond {
		t.Errorf("Elapsed = %v, want 1.5s", m.Elapsed())
	}
}

func TestInitialSceneComposedOnFirstTick(t *testing.T) {
	l, _ := newTestLoop(t, "cmp", Options{})
	if err := l.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	v := l.Panel().View()
	if v.Label != "Step 1 of 8" {
		t.Errorf("Label = %q, want %q", v.Label, "Step 1 of 8")
	}
	if v.Playing {
		t.Error("Playing = true on a fresh loop without autoplay")
	}

	first := l.Catalog().Step(0)
	for _, es := range first.Scene.Elements {
		n := l.Graph().Node(es.Element)
		if n == nil || !n.Visible {
			t.Errorf("element %q not visible after first tick", es.Element)
		}
	}
}

func TestFirstTickHasZeroDelta(t *testing.T) {
	l, clock := newTestLoop(t, "cmp", Options{})
	clock.Advance(time.Hour)

	var frames []Frame
	l.SetPresenter(PresenterFunc(func(f *Frame) error {
		frames = append(frames, *f)
		return nil
	}))
	if err := l.Tick(); err != nil {
		t.Fatal(err)
	}
	clock.Advance(20 * time.Millisecond)
	if err := l.Tick(); err != nil {
		t.Fatal(err)
	}

	if len(frames) != 2 {
		t.Fatalf("presented %d frames, want 2", len(frames))
	}
	if frames[0].Delta != 0 {
		t.Errorf("first Delta = %v, want 0", frames[0].Delta)
	}
	if frames[1].Delta != 20*time.Millisecond {
		t.Errorf("second Delta = %v, want 20ms", frames[1].Delta)
	}
	if frames[1].Number != 2 {
		t.Errorf("Number = %d, want 2", frames[1].Number)
	}
}

func TestDeltaClampedAfterStall(t *testing.T) {
	l, clock := newTestLoop(t, "cmp", Options{Autoplay: true, MaxFrameDelta: 100 * time.Millisecond})
	l.Tick()

	// A 10s stall must not skip steps
	clock.Advance(10 * time.Second)
	l.Tick()

	if got := l.Controller().State(); got.Index != 0 || got.Elapsed != 100*time.Millisecond {
		t.Errorf("state after stall = %+v, want index 0 elapsed 100ms", got)
	}
}

func TestAutoplayFinishesAfterTotalDwell(t *testing.T) {
	const dt = 100 * time.Millisecond
	l, clock := newTestLoop(t, "cmp", Options{Autoplay: true})
	l.Tick()

	var finishedAt time.Duration
	for i := 0; i < 1000 && finishedAt == 0; i++ {
		clock.Advance(dt)
		l.Tick()
		if l.Panel().View().Finished {
			finishedAt = clock.Elapsed()
		}
	}

	if finishedAt != 28*time.Second {
		t.Fatalf("finished at %v, want 28s", finishedAt)
	}
	st := l.Controller().State()
	if st.Index != 7 || st.Mode != playback.ModeIdle {
		t.Errorf("final state = %+v, want index 7 Idle", st)
	}

	// No wraparound afterwards
	for i := 0; i < 100; i++ {
		clock.Advance(dt)
		l.Tick()
	}
	if got := l.Controller().State().Index; got != 7 {
		t.Errorf("index after finish = %d, want 7", got)
	}
}

func TestApplyActions(t *testing.T) {
	tests := []struct {
		name      string
		actions   []Action
		wantIndex int
		wantMode  playback.Mode
		wantQuit  bool
	}{
		{"next", []Action{{Kind: ActionNext}}, 1, playback.ModeIdle, false},
		{"previous at start clamps", []Action{{Kind: ActionPrevious}}, 0, playback.ModeIdle, false},
		{"seek", []Action{{Kind: ActionSeek, Index: 4}}, 4, playback.ModeIdle, false},
		{"seek past end clamps", []Action{{Kind: ActionSeek, Index: 99}}, 7, playback.ModeIdle, false},
		{"toggle play", []Action{{Kind: ActionTogglePlay}}, 0, playback.ModePlaying, false},
		{"play then pause", []Action{{Kind: ActionPlay}, {Kind: ActionPause}}, 0, playback.ModeIdle, false},
		{"reset", []Action{{Kind: ActionSeek, Index: 5}, {Kind: ActionPlay}, {Kind: ActionReset}}, 0, playback.ModeIdle, false},
		{"quit", []Action{{Kind: ActionQuit}}, 0, playback.ModeIdle, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLoop(t, "cmp", Options{})
			var quit bool
			for _, a := range tt.actions {
				quit = l.Apply(a)
			}
			if quit != tt.wantQuit {
				t.Errorf("quit = %v, want %v", quit, tt.wantQuit)
			}
			st := l.Controller().State()
			if st.Index != tt.wantIndex || st.Mode != tt.wantMode {
				t.Errorf("state = %+v, want index %d mode %v", st, tt.wantIndex, tt.wantMode)
			}
		})
	}
}

func TestCameraActions(t *testing.T) {
	l, clock := newTestLoop(t, "cmp", Options{})
	l.Tick()

	r := l.Rig()
	yaw, radius := r.Yaw, r.Radius
	l.Apply(Action{Kind: ActionOrbitRight})
	if r.Yaw <= yaw {
		t.Errorf("orbit right did not increase yaw: %v -> %v", yaw, r.Yaw)
	}
	l.Apply(Action{Kind: ActionZoomIn})
	if r.Radius >= radius {
		t.Errorf("zoom in did not shrink radius: %v -> %v", radius, r.Radius)
	}

	l.Apply(Action{Kind: ActionToggleRotation})
	frozen := r.Yaw
	clock.Advance(time.Second)
	l.Tick()
	if r.Yaw != frozen {
		t.Errorf("yaw moved while rotation off: %v -> %v", frozen, r.Yaw)
	}

	l.Apply(Action{Kind: ActionToggleRotation})
	clock.Advance(time.Second)
	l.Tick()
	if r.Yaw == frozen {
		t.Error("yaw did not move after rotation resumed")
	}
}

func TestCameraRotatesWhileIdle(t *testing.T) {
	l, clock := newTestLoop(t, "lithography", Options{})
	l.Tick()
	yaw := l.Rig().Yaw
	clock.Advance(500 * time.Millisecond)
	l.Tick()
	if l.Rig().Yaw == yaw {
		t.Error("camera did not rotate while Idle")
	}
	if l.Controller().State().Mode != playback.ModeIdle {
		t.Error("loop changed mode on its own")
	}
}

func TestStatsOverlayToggle(t *testing.T) {
	reg := status.NewRegistry()
	l, _ := newTestLoop(t, "cmp", Options{Registry: reg})
	l.Tick()

	if f := l.Frame(); f.Stats != nil {
		t.Errorf("Stats = %v, want nil while overlay is off", f.Stats)
	}
	l.Apply(Action{Kind: ActionToggleStats})
	f := l.Frame()
	if len(f.Stats) == 0 {
		t.Fatal("Stats empty with overlay on")
	}
	if got := reg.Ints.Get(status.KeyFrames).Load(); got != 1 {
		t.Errorf("frames metric = %d, want 1", got)
	}
	if got := reg.Ints.Get(status.KeyEventsDispatched).Load(); got != 2 {
		t.Errorf("events metric = %d, want 2 (initial step + mode)", got)
	}
}

func TestPresenterErrorStopsTick(t *testing.T) {
	l, _ := newTestLoop(t, "cmp", Options{})
	boom := errors.New("boom")
	l.SetPresenter(PresenterFunc(func(*Frame) error { return boom }))
	if err := l.Tick(); !errors.Is(err, boom) {
		t.Errorf("Tick error = %v, want %v", err, boom)
	}
}

func TestExtraHandlerReceivesEvents(t *testing.T) {
	l, _ := newTestLoop(t, "cmp", Options{})
	var got []event.EventType
	l.Register(&event.HandlerFunc{
		Types: []event.EventType{event.EventStepChanged, event.EventPlaybackReset},
		Fn:    func(ev event.Event) { got = append(got, ev.Type) },
	})
	l.Tick()
	l.Apply(Action{Kind: ActionNext})
	l.Apply(Action{Kind: ActionReset})
	l.Tick()

	want := []event.EventType{event.EventStepChanged, event.EventStepChanged, event.EventStepChanged, event.EventPlaybackReset}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRunQuitsOnAction(t *testing.T) {
	l, _ := newTestLoop(t, "cmp", Options{FPS: 200})
	actions := make(chan Action, 2)
	actions <- Action{Kind: ActionNext}
	actions <- Action{Kind: ActionQuit}

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background(), actions) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	if got := l.Controller().State().Index; got != 1 {
		t.Errorf("index = %d, want 1", got)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	l, _ := newTestLoop(t, "drie", Options{FPS: 200})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx, nil) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestActionKindString(t *testing.T) {
	if got := ActionTogglePlay.String(); got != "toggle_play" {
		t.Errorf("String = %q", got)
	}
	if got := ActionKind(200).String(); got != "unknown" {
		t.Errorf("String = %q, want unknown", got)
	}
}
