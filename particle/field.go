// Package particle is a fixed-capacity particle arena driven by per-step emission configs
package particle

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/event"
	"github.com/lixenwraith/fabviz/palette"
	"github.com/lixenwraith/fabviz/status"
	"github.com/lixenwraith/fabviz/vmath"
)

// DefaultCapacity is the pool size used when none is configured
const DefaultCapacity = 512

// Particle is the read-only view handed to renderers
type Particle struct {
	Pos   vmath.Vec3F
	Color palette.RGB
	Life  float64 // remaining lifetime fraction in (0, 1]
}

// emitter is the active emission state derived from a ParticleConfig
type emitter struct {
	cfg   catalog.ParticleConfig
	color palette.RGB
	pivot vmath.Vec3F // swirl and radial center
}

// Field owns the particle arena
// Slots are recycled through a free list; no per-frame allocation once warm
// Not safe for concurrent use; owned by the loop goroutine
type Field struct {
	// Slot data (SoA layout)
	pos     []vmath.Vec3F
	vel     []vmath.Vec3F
	acc     []vmath.Vec3F
	swirl   []float64
	pivot   []vmath.Vec3F
	color   []palette.RGB
	life    []float64 // seconds remaining
	maxLife []float64
	active  []bool

	// Pool management
	free     []int // recycled slot stack
	live     []int // compact list of active slots
	capacity int

	emit        *emitter
	bounds      vmath.Box3F // kept after Configure(nil) so draining particles stay bounded
	accumulator float64     // fractional spawns carried between frames
	rng         *vmath.FastRand
	log         *slog.Logger

	spawned  uint64
	dropped  uint64
	recycled uint64

	statLive     *atomic.Int64
	statSpawned  *atomic.Int64
	statDropped  *atomic.Int64
	statRecycled *atomic.Int64
}

// NewField allocates a pool of the given capacity
// reg and logger may be nil
func NewField(capacity int, seed uint64, reg *status.Registry, logger *slog.Logger) *Field {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f := &Field{
		pos:      make([]vmath.Vec3F, capacity),
		vel:      make([]vmath.Vec3F, capacity),
		acc:      make([]vmath.Vec3F, capacity),
		swirl:    make([]float64, capacity),
		pivot:    make([]vmath.Vec3F, capacity),
		color:    make([]palette.RGB, capacity),
		life:     make([]float64, capacity),
		maxLife:  make([]float64, capacity),
		active:   make([]bool, capacity),
		free:     make([]int, capacity),
		live:     make([]int, 0, capacity),
		capacity: capacity,
		rng:      vmath.NewFastRand(seed),
		log:      logger.With("component", "particle"),

		statLive:     reg.Ints.Get(status.KeyParticlesLive),
		statSpawned:  reg.Ints.Get(status.KeyParticlesSpawned),
		statDropped:  reg.Ints.Get(status.KeyParticlesDropped),
		statRecycled: reg.Ints.Get(status.KeyParticlesRecycled),
	}

	// Pop order yields ascending slots
	for i := range f.free {
		f.free[i] = capacity - 1 - i
	}
	return f
}

// Configure swaps the emission config
// nil stops emission; live particles keep moving until they expire or leave the bounds
func (f *Field) Configure(cfg *catalog.ParticleConfig) {
	f.accumulator = 0
	if cfg == nil {
		f.emit = nil
		return
	}

	col, err := palette.ParseHex(cfg.Color)
	if err != nil {
		col = palette.White
	}
	f.emit = &emitter{
		cfg:   *cfg,
		color: col,
		pivot: cfg.Emitter.Center(),
	}
	f.bounds = cfg.Bounds
	f.log.Debug("emission configured", "kind", cfg.Kind, "rate", cfg.Rate)
}

// Emitting reports whether a config is active
func (f *Field) Emitting() bool {
	return f.emit != nil
}

// Advance integrates live particles, recycles expired or escaped ones, then emits
func (f *Field) Advance(dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	f.integrate(sec)
	f.spawn(sec)

	f.statLive.Store(int64(len(f.live)))
}

func (f *Field) integrate(sec float64) {
	kept := f.live[:0]
	for _, i := range f.live {
		f.life[i] -= sec
		if f.life[i] <= 0 {
			f.release(i)
			continue
		}

		f.vel[i] = vmath.V3FAdd(f.vel[i], vmath.V3FScale(f.acc[i], sec))
		p := vmath.V3FAdd(f.pos[i], vmath.V3FScale(f.vel[i], sec))
		if f.swirl[i] != 0 {
			rel := vmath.V3FSub(p, f.pivot[i])
			p = vmath.V3FAdd(f.pivot[i], vmath.V3FRotateY(rel, f.swirl[i]*sec))
		}
		f.pos[i] = p

		if !f.bounds.Contains(p) {
			f.release(i)
			continue
		}
		kept = append(kept, i)
	}
	f.live = kept
}

func (f *Field) spawn(sec float64) {
	if f.emit == nil || f.emit.cfg.Rate <= 0 {
		return
	}

	f.accumulator += f.emit.cfg.Rate * sec
	n := int(f.accumulator)
	f.accumulator -= float64(n)

	for k := 0; k < n; k++ {
		if len(f.free) == 0 {
			// Throttle, never queue
			f.dropped += uint64(n - k)
			f.statDropped.Add(int64(n - k))
			return
		}
		i := f.free[len(f.free)-1]
		f.free = f.free[:len(f.free)-1]
		f.init(i)
		f.live = append(f.live, i)
		f.spawned++
		f.statSpawned.Add(1)
	}
}

// init fills slot i from the active emitter
func (f *Field) init(i int) {
	cfg := &f.emit.cfg
	box := cfg.Emitter

	p := vmath.V3F(
		f.rng.Range(box.Min.X, box.Max.X),
		f.rng.Range(box.Min.Y, box.Max.Y),
		f.rng.Range(box.Min.Z, box.Max.Z),
	)

	v := cfg.Velocity
	if cfg.Jitter != 0 {
		j := vmath.V3F(f.rng.Signed(), f.rng.Signed(), f.rng.Signed())
		v = vmath.V3FAdd(v, vmath.V3FScale(j, cfg.Jitter))
	}
	if cfg.Radial != 0 {
		v = vmath.V3FAdd(v, vmath.V3FScale(f.radialDir(p), cfg.Radial))
	}

	life := f.rng.Range(cfg.LifetimeMin.Seconds(), cfg.LifetimeMax.Seconds())
	if life <= 0 {
		life = cfg.LifetimeMax.Seconds()
	}

	f.pos[i] = p
	f.vel[i] = v
	f.acc[i] = cfg.Acceleration
	f.swirl[i] = cfg.Swirl
	f.pivot[i] = f.emit.pivot
	f.color[i] = f.emit.color
	f.life[i] = life
	f.maxLife[i] = life
	f.active[i] = true
}

// radialDir is the unit XZ direction from the emitter center to p, random when p is on the axis
func (f *Field) radialDir(p vmath.Vec3F) vmath.Vec3F {
	d := vmath.V3F(p.X-f.emit.pivot.X, 0, p.Z-f.emit.pivot.Z)
	if vmath.V3FMagSq(d) < 1e-12 {
		a := f.rng.Float64() * vmath.TwoPi
		return vmath.V3F(math.Cos(a), 0, math.Sin(a))
	}
	return vmath.V3FNormalize(d)
}

func (f *Field) release(i int) {
	if !f.active[i] {
		return
	}
	f.active[i] = false
	f.free = append(f.free, i)
	f.recycled++
	f.statRecycled.Add(1)
}

// Clear recycles every live particle immediately
func (f *Field) Clear() {
	for _, i := range f.live {
		f.release(i)
	}
	f.live = f.live[:0]
	f.accumulator = 0
	f.statLive.Store(0)
}

// Each calls fn for every live particle in spawn order
func (f *Field) Each(fn func(Particle)) {
	for _, i := range f.live {
		fn(Particle{
			Pos:   f.pos[i],
			Color: f.color[i],
			Life:  f.life[i] / f.maxLife[i],
		})
	}
}

// Live returns the active particle count
func (f *Field) Live() int { return len(f.live) }

// Capacity returns the pool size
func (f *Field) Capacity() int { return f.capacity }

// Stats returns lifetime counters
func (f *Field) Stats() Stats {
	return Stats{
		Live:     len(f.live),
		Capacity: f.capacity,
		Spawned:  f.spawned,
		Dropped:  f.dropped,
		Recycled: f.recycled,
	}
}

// Stats is a snapshot of pool counters
type Stats struct {
	Live     int
	Capacity int
	Spawned  uint64
	Dropped  uint64
	Recycled uint64
}

// HandleEvent implements event.Handler
func (f *Field) HandleEvent(ev event.Event) {
	if p, ok := ev.Payload.(*event.StepChangedPayload); ok && p.Step != nil {
		f.Configure(p.Step.Particles)
	}
}

// EventTypes implements event.Handler
func (f *Field) EventTypes() []event.EventType {
	return []event.EventType{event.EventStepChanged}
}
