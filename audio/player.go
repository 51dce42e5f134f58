package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/fabviz/event"
	"github.com/lixenwraith/fabviz/status"
)

// Player outputs streamers
type Player interface {
	Play(s beep.Streamer)
}

// Speaker mixes cues into the system audio device
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// OpenSpeaker initializes the audio device; failure is expected on headless hosts
func OpenSpeaker(cfg Config) (*Speaker, error) {
	rate := cfg.rate()
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play adds s to the mix
func (s *Speaker) Play(st beep.Streamer) {
	if st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences pending cues and releases the device
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}

// Cues turns playback events into sounds
// The first announcement of a session is silent
type Cues struct {
	cfg    Config
	player Player
	log    *slog.Logger

	statCues *atomic.Int64
}

// NewCues creates the event handler; a disabled config or nil player makes it silent
func NewCues(cfg Config, player Player, reg *status.Registry, logger *slog.Logger) *Cues {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cues{
		cfg:      cfg,
		player:   player,
		log:      logger.With("component", "audio"),
		statCues: reg.Ints.Get(status.KeyAudioCues),
	}
}

// HandleEvent implements event.Handler
func (c *Cues) HandleEvent(ev event.Event) {
	switch ev.Type {
	case event.EventStepChanged:
		pl, ok := ev.Payload.(*event.StepChangedPayload)
		if !ok || pl.Step == nil || pl.Previous < 0 {
			return
		}
		c.play(CueStep, pl.Step.Index)
	case event.EventPlaybackFinished:
		c.play(CueFinish, 0)
	case event.EventPlaybackReset:
		c.play(CueReset, 0)
	}
}

// EventTypes implements event.Handler
func (c *Cues) EventTypes() []event.EventType {
	return []event.EventType{event.EventStepChanged, event.EventPlaybackFinished, event.EventPlaybackReset}
}

func (c *Cues) play(cue Cue, index int) {
	if !c.cfg.Enabled || c.player == nil || c.cfg.MasterVolume <= 0 {
		return
	}
	c.player.Play(Streamer(c.cfg, cue, index))
	c.statCues.Add(1)
	c.log.Debug("cue", "cue", cue.String(), "index", index)
}
