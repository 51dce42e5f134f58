package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapGetCaches(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	a := m.Get("x")
	b := m.Get("x")
	if a != b {
		t.Error("Get returned different pointers for the same key")
	}
	if !m.Has("x") || m.Has("y") {
		t.Error("Has mismatch")
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get("shared").Add(1)
		}()
	}
	wg.Wait()

	if got := m.Get("shared").Load(); got != 16 {
		t.Errorf("shared = %d, want 16", got)
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	f.Set(1.5)
	if got := f.Add(2.25); got != 3.75 {
		t.Errorf("Add = %v, want 3.75", got)
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("zero value should be empty")
	}

	long := "°°°°°°°°°°°°°°°°°°°°" // 40 bytes, 2 per rune
	s.Store(long)
	got := s.Load()
	if len(got) > MaxStringLen {
		t.Errorf("len = %d, exceeds %d", len(got), MaxStringLen)
	}
	if len(got)%2 != 0 {
		t.Errorf("truncation split a rune: %q", got)
	}
}

func TestSnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Strings.Get(KeyBackend).Store("headless")
	r.Ints.Get(KeyParticlesLive).Store(12)
	r.Ints.Get(KeyFrames).Store(3)
	r.Floats.Get(KeyCameraYawDeg).Set(90)

	snap := r.Snapshot()
	want := []Entry{
		{KeyFrames, "3"},
		{KeyParticlesLive, "12"},
		{KeyCameraYawDeg, "90.00"},
		{KeyBackend, "headless"},
	}
	if len(snap) != len(want) {
		t.Fatalf("Snapshot = %v", snap)
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("snap[%d] = %v, want %v", i, snap[i], want[i])
		}
	}
}

func TestAtomicFloatSmooth(t *testing.T) {
	var f AtomicFloat
	if got := f.Smooth(16, 0.1); got != 16 {
		t.Errorf("first sample = %v, want 16", got)
	}
	if got := f.Smooth(26, 0.1); got != 17 {
		t.Errorf("second sample = %v, want 17", got)
	}
}
