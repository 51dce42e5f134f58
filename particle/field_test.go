package particle

import (
	"testing"
	"time"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/status"
	"github.com/lixenwraith/fabviz/vmath"
)

const frame = 16 * time.Millisecond

func testConfig(rate float64) *catalog.ParticleConfig {
	return &catalog.ParticleConfig{
		Kind:        "test",
		Rate:        rate,
		Velocity:    vmath.V3F(0, 1, 0),
		Jitter:      0.5,
		Radial:      0.5,
		Swirl:       1,
		Color:       "#ffffff",
		LifetimeMin: time.Second,
		LifetimeMax: 2 * time.Second,
		Emitter:     vmath.Box3F{Min: vmath.V3F(-1, 0, -1), Max: vmath.V3F(1, 0.1, 1)},
		Bounds:      vmath.Box3F{Min: vmath.V3F(-10, -1, -10), Max: vmath.V3F(10, 10, 10)},
	}
}

func TestEmissionRate(t *testing.T) {
	f := NewField(1000, 1, nil, nil)
	f.Configure(testConfig(100))

	f.Advance(500 * time.Millisecond)
	if got := f.Live(); got != 50 {
		t.Errorf("Live after 0.5s at 100/s = %d, want 50", got)
	}
}

func TestFractionalEmissionAccumulates(t *testing.T) {
	f := NewField(100, 1, nil, nil)
	f.Configure(testConfig(10)) // 0.16 spawns per frame

	for i := 0; i < 62; i++ {
		f.Advance(frame)
	}
	// 62 * 16ms = 0.992s → 9 whole spawns
	if got := f.Stats().Spawned; got != 9 {
		t.Errorf("Spawned = %d, want 9", got)
	}
}

func TestPoolBound(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		rate     float64
	}{
		{"tiny pool", 4, 1000},
		{"exact", 64, 64},
		{"flood", 128, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := status.NewRegistry()
			f := NewField(tt.capacity, 3, reg, nil)
			f.Configure(testConfig(tt.rate))

			for i := 0; i < 300; i++ {
				f.Advance(frame)
				if f.Live() > f.Capacity() {
					t.Fatalf("frame %d: live %d exceeds capacity %d", i, f.Live(), f.Capacity())
				}
			}
			if tt.rate*frame.Seconds() > float64(tt.capacity) && f.Stats().Dropped == 0 {
				t.Error("expected dropped spawns under overload")
			}
			if got := reg.Ints.Get(status.KeyParticlesLive).Load(); got != int64(f.Live()) {
				t.Errorf("live metric = %d, want %d", got, f.Live())
			}
		})
	}
}

func TestDroppedNotQueued(t *testing.T) {
	f := NewField(10, 1, nil, nil)
	f.Configure(testConfig(1000))
	f.Advance(100 * time.Millisecond) // 100 requested, 10 fit

	if f.Live() != 10 {
		t.Fatalf("Live = %d, want 10", f.Live())
	}
	if f.Stats().Dropped != 90 {
		t.Errorf("Dropped = %d, want 90", f.Stats().Dropped)
	}

	// Stop emission; no backlog appears once space frees up
	f.Configure(nil)
	for i := 0; i < 200; i++ {
		f.Advance(frame)
	}
	if f.Live() != 0 {
		t.Errorf("Live = %d after drain, want 0", f.Live())
	}
	if f.Stats().Spawned != 10 {
		t.Errorf("Spawned = %d, want 10", f.Stats().Spawned)
	}
}

func TestConfigureNilDrains(t *testing.T) {
	f := NewField(500, 1, nil, nil)
	f.Configure(testConfig(200))
	f.Advance(500 * time.Millisecond)
	before := f.Live()

	f.Configure(nil)
	if f.Emitting() {
		t.Error("still emitting after Configure(nil)")
	}
	f.Advance(frame)
	if f.Live() != before {
		t.Errorf("Configure(nil) cleared particles: %d → %d", before, f.Live())
	}

	// Max lifetime is 2s
	for i := 0; i < 130; i++ {
		f.Advance(frame)
	}
	if f.Live() != 0 {
		t.Errorf("Live = %d after all lifetimes elapsed", f.Live())
	}
}

func TestRecycleOutOfBounds(t *testing.T) {
	cfg := testConfig(100)
	cfg.Velocity = vmath.V3F(0, 50, 0)
	cfg.Jitter = 0
	cfg.Radial = 0
	cfg.Swirl = 0
	cfg.Bounds = vmath.Box3F{Min: vmath.V3F(-2, -1, -2), Max: vmath.V3F(2, 1, 2)}

	f := NewField(100, 1, nil, nil)
	f.Configure(cfg)
	f.Advance(100 * time.Millisecond) // spawn 10
	f.Configure(nil)
	f.Advance(100 * time.Millisecond) // 5 units up, out of bounds

	if f.Live() != 0 {
		t.Errorf("Live = %d, escaped particles not recycled", f.Live())
	}
	if f.Stats().Recycled != 10 {
		t.Errorf("Recycled = %d, want 10", f.Stats().Recycled)
	}
}

func TestSlotsReused(t *testing.T) {
	f := NewField(8, 1, nil, nil)
	cfg := testConfig(80)
	cfg.LifetimeMin = 50 * time.Millisecond
	cfg.LifetimeMax = 50 * time.Millisecond

	f.Configure(cfg)
	for i := 0; i < 100; i++ {
		f.Advance(frame)
	}
	s := f.Stats()
	if s.Spawned <= uint64(f.Capacity()) {
		t.Errorf("Spawned = %d, expected slot reuse beyond capacity %d", s.Spawned, f.Capacity())
	}
	if s.Spawned != s.Recycled+uint64(s.Live) {
		t.Errorf("accounting: spawned %d != recycled %d + live %d", s.Spawned, s.Recycled, s.Live)
	}
}

func TestEachReportsLifeFraction(t *testing.T) {
	f := NewField(50, 1, nil, nil)
	f.Configure(testConfig(100))
	f.Advance(100 * time.Millisecond)

	n := 0
	f.Each(func(p Particle) {
		n++
		if p.Life <= 0 || p.Life > 1 {
			t.Errorf("Life = %v out of (0, 1]", p.Life)
		}
		if p.Color.R != 255 {
			t.Errorf("Color = %+v, want white", p.Color)
		}
	})
	if n != f.Live() {
		t.Errorf("Each visited %d, Live = %d", n, f.Live())
	}
}

func TestClear(t *testing.T) {
	f := NewField(50, 1, nil, nil)
	f.Configure(testConfig(100))
	f.Advance(200 * time.Millisecond)
	f.Clear()
	if f.Live() != 0 {
		t.Errorf("Live = %d after Clear", f.Live())
	}
}

func TestDefaultCapacity(t *testing.T) {
	if f := NewField(0, 1, nil, nil); f.Capacity() != DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", f.Capacity(), DefaultCapacity)
	}
}

func TestBuiltinConfigsStayBounded(t *testing.T) {
	for _, name := range catalog.Names() {
		cat, _ := catalog.Builtin(name)
		f := NewField(256, 9, nil, nil)
		for _, st := range cat.Steps() {
			f.Configure(st.Particles)
			for i := 0; i < 120; i++ {
				f.Advance(frame)
				if f.Live() > f.Capacity() {
					t.Fatalf("%s step %d: live %d > capacity", name, st.Index, f.Live())
				}
			}
		}
	}
}
