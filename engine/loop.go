// Package engine is the frame-driven scheduler that sequences playback, camera, particles and scene
package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fabviz/camera"
	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/event"
	"github.com/lixenwraith/fabviz/panel"
	"github.com/lixenwraith/fabviz/particle"
	"github.com/lixenwraith/fabviz/playback"
	"github.com/lixenwraith/fabviz/scene"
	"github.com/lixenwraith/fabviz/status"
)

const (
	DefaultFPS           = 30
	DefaultMaxFrameDelta = 250 * time.Millisecond

	orbitStep = 0.08 // radians per key press
	zoomStep  = 1.0
)

// Options configures a Loop; zero values take defaults
type Options struct {
	FPS              int
	ParticleCapacity int
	RotateDegPerSec  float64
	MaxFrameDelta    time.Duration // dt clamp after stalls
	Autoplay         bool
	Seed             uint64
	Clock            TimeProvider
	Registry         *status.Registry
	Logger           *slog.Logger
}

func (o *Options) normalize() {
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.MaxFrameDelta <= 0 {
		o.MaxFrameDelta = DefaultMaxFrameDelta
	}
	if o.RotateDegPerSec == 0 {
		o.RotateDegPerSec = camera.DefaultDegPerSec
	}
	if o.ParticleCapacity <= 0 {
		o.ParticleCapacity = particle.DefaultCapacity
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	if o.Clock == nil {
		o.Clock = SystemTimeProvider{}
	}
	if o.Registry == nil {
		o.Registry = status.NewRegistry()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

// Loop is the single cooperative scheduler of one process session
// All component state is owned by the goroutine calling Tick and Apply
type Loop struct {
	opts    Options
	catalog *catalog.Catalog
	log     *slog.Logger

	queue      *event.Queue
	router     *event.Router
	controller *playback.Controller
	composer   *scene.Composer
	field      *particle.Field
	panel      *panel.Panel
	rig        *camera.Rig
	presenter  Presenter

	frame     int64
	last      time.Time
	lastDelta time.Duration
	started   bool
	showStats bool
	rotating  bool

	statFrames  *atomic.Int64
	statFrameMs *status.AtomicFloat
	statEvents  *atomic.Int64
	statDropped *atomic.Int64
}

// New assembles the components for cat and announces the first step
// Observers are registered in order: scene, panel, particles; extra handlers come after
func New(cat *catalog.Catalog, opts Options) *Loop {
	opts.normalize()
	reg := opts.Registry
	log := opts.Logger.With("process", cat.Name())

	q := event.NewQueue()
	l := &Loop{
		opts:       opts,
		catalog:    cat,
		log:        log,
		queue:      q,
		router:     event.NewRouter(q),
		controller: playback.NewController(cat, q, reg, log),
		composer:   scene.NewComposer(scene.NewGraph(cat.Elements()), reg, log),
		field:      particle.NewField(opts.ParticleCapacity, opts.Seed, reg, log),
		panel:      panel.New(cat.Name()),
		rig:        camera.NewRig(opts.RotateDegPerSec, reg),
		rotating:   true,

		statFrames:  reg.Ints.Get(status.KeyFrames),
		statFrameMs: reg.Floats.Get(status.KeyFrameDeltaMs),
		statEvents:  reg.Ints.Get(status.KeyEventsDispatched),
		statDropped: reg.Ints.Get(status.KeyEventsDropped),
	}

	l.router.Register(l.composer)
	l.router.Register(l.panel)
	l.router.Register(l.field)

	l.controller.Stamp(0, opts.Clock.Now())
	l.controller.Announce()
	if opts.Autoplay {
		l.controller.Play()
	}
	return l
}

// Register adds an event observer such as audio cues
func (l *Loop) Register(h event.Handler) {
	l.router.Register(h)
}

// SetPresenter sets the frame sink; nil discards frames
func (l *Loop) SetPresenter(p Presenter) {
	l.presenter = p
}

// Accessors for hosts and tests
func (l *Loop) Controller() *playback.Controller { return l.controller }
func (l *Loop) Graph() *scene.Graph { return l.composer.Graph() }
func (l *Loop) Field() *particle.Field { return l.field }
func (l *Loop) Panel() *panel.Panel { return l.panel }
func (l *Loop) Rig() *camera.Rig { return l.rig }
func (l *Loop) Catalog() *catalog.Catalog { return l.catalog }
func (l *Loop) Registry() *status.Registry { return l.opts.Registry }
func (l *Loop) FrameNumber() int64 { return l.frame }

// Interval returns the frame period for the configured FPS
func (l *Loop) Interval() time.Duration {
	return time.Second / time.Duration(l.opts.FPS)
}

// Tick runs one frame:
//  1. dt from the clock, clamped after stalls
//  2. playback timer
//  3. camera and particles
//  4. event dispatch (scene reconcile, panel, particle config, cues)
//  5. cosmetic easing
//  6. presentation
func (l *Loop) Tick() error {
	now := l.opts.Clock.Now()
	var dt time.Duration
	if l.started {
		dt = now.Sub(l.last)
		if dt < 0 {
			dt = 0
		}
		if dt > l.opts.MaxFrameDelta {
			dt = l.opts.MaxFrameDelta
		}
	}
	l.started = true
	l.last = now
	l.lastDelta = dt
	l.frame++

	l.controller.Stamp(l.frame, now)
	l.controller.Advance(dt)

	l.rig.Advance(dt)
	l.field.Advance(dt)

	n := l.router.DispatchAll()
	l.composer.Graph().Ease(dt)

	l.statFrames.Store(l.frame)
	l.statEvents.Add(int64(n))
	l.statDropped.Store(int64(l.queue.Dropped()))
	if dt > 0 {
		l.statFrameMs.Smooth(float64(dt)/float64(time.Millisecond), 0.1)
	}

	if l.presenter == nil {
		return nil
	}
	f := l.Frame()
	return l.presenter.Present(&f)
}

// Frame builds the presentable snapshot of the current state
func (l *Loop) Frame() Frame {
	f := Frame{
		Number:    l.frame,
		Time:      l.last,
		Delta:     l.lastDelta,
		Title:     l.catalog.Title(),
		Graph:     l.composer.Graph(),
		Particles: l.field,
		Camera:    l.rig.Pose(),
		HUD:       l.panel.View(),
	}
	if l.showStats {
		f.Stats = l.opts.Registry.Snapshot()
	}
	return f
}

// Apply executes a user action synchronously; returns true on quit
// Playback changes take effect before the next tick
func (l *Loop) Apply(a Action) (quit bool) {
	c := l.controller
	switch a.Kind {
	case ActionPrevious:
		c.Previous()
	case ActionNext:
		c.Next()
	case ActionTogglePlay:
		c.TogglePlay()
	case ActionPlay:
		c.Play()
	case ActionPause:
		c.Pause()
	case ActionReset:
		c.Reset()
	case ActionSeek:
		c.Seek(a.Index)
	case ActionOrbitLeft:
		l.rig.Nudge(-orbitStep, 0)
	case ActionOrbitRight:
		l.rig.Nudge(orbitStep, 0)
	case ActionOrbitUp:
		l.rig.Nudge(0, orbitStep)
	case ActionOrbitDown:
		l.rig.Nudge(0, -orbitStep)
	case ActionZoomIn:
		l.rig.Zoom(-zoomStep)
	case ActionZoomOut:
		l.rig.Zoom(zoomStep)
	case ActionToggleRotation:
		l.rotating = !l.rotating
		l.rig.SetFrozen(!l.rotating)
	case ActionToggleStats:
		l.showStats = !l.showStats
	case ActionQuit:
		return true
	}
	if a.Kind != ActionNone {
		l.log.Debug("action", "kind", a.Kind.String(), "index", a.Index)
	}
	return false
}

// Run ticks at the configured FPS until ctx ends, a quit action arrives, or presentation fails
// Actions are applied between ticks on the calling goroutine
func (l *Loop) Run(ctx context.Context, actions <-chan Action) error {
	ticker := time.NewTicker(l.Interval())
	defer ticker.Stop()

	if err := l.Tick(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case a, ok := <-actions:
			if !ok {
				actions = nil
				continue
			}
			if l.Apply(a) {
				return nil
			}
		case <-ticker.C:
			if err := l.Tick(); err != nil {
				return err
			}
		}
	}
}
