// Package status is a lock-free metrics registry read by the stats overlay and simulate output
package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Metric keys written by engine components
const (
	KeyFrames            = "engine.frames"
	KeyFrameDeltaMs      = "engine.frame_ms"
	KeyEventsDispatched  = "engine.events"
	KeyEventsDropped     = "engine.events_dropped"
	KeyTransitions       = "playback.transitions"
	KeyPlaybackMode      = "playback.mode"
	KeyParticlesLive     = "particle.live"
	KeyParticlesSpawned  = "particle.spawned"
	KeyParticlesDropped  = "particle.dropped"
	KeyParticlesRecycled = "particle.recycled"
	KeySceneReconciles   = "scene.reconciles"
	KeySceneSkipped      = "scene.skipped"
	KeyCameraYawDeg      = "camera.yaw_deg"
	KeyAudioCues         = "audio.cues"
	KeyBackend           = "render.backend"
)

// Registry is the central metrics facade
// Components cache pointers at construction; tick code writes directly to atomics
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Entry is one formatted metric row
type Entry struct {
	Key   string
	Value string
}

// Snapshot formats every metric, ints first, then floats and strings, each sorted by key
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, Entry{Key: k, Value: strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, Entry{Key: k, Value: fmt.Sprintf("%.2f", v.Get())})
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		out = append(out, Entry{Key: k, Value: v.Load()})
	})
	return out
}
