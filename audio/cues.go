// Package audio plays short synthesized cues for playback events
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Cue identifies a playback sound
type Cue int

const (
	CueStep Cue = iota
	CueFinish
	CueReset
)

func (c Cue) String() string {
	switch c {
	case CueStep:
		return "step"
	case CueFinish:
		return "finish"
	case CueReset:
		return "reset"
	default:
		return "unknown"
	}
}

const (
	chimeDuration = 180 * time.Millisecond
	chimeAttack   = 5 * time.Millisecond
	chimeRelease  = 150 * time.Millisecond

	chordDuration = 700 * time.Millisecond
	chordAttack   = 20 * time.Millisecond
	chordRelease  = 500 * time.Millisecond

	sweepDuration = 350 * time.Millisecond
	sweepAttack   = 10 * time.Millisecond
	sweepRelease  = 200 * time.Millisecond

	baseFreq = 523.25 // C5
)

// Config controls cue output
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0..1
	SampleRate   int
}

// DefaultConfig returns enabled audio at half volume, 44.1 kHz
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
	}
}

func (c Config) rate() beep.SampleRate {
	if c.SampleRate <= 0 {
		return beep.SampleRate(44100)
	}
	return beep.SampleRate(c.SampleRate)
}

// StepFrequency maps a step index onto a major pentatonic ladder starting at C5
func StepFrequency(index int) float64 {
	ladder := [...]int{0, 2, 4, 7, 9}
	if index < 0 {
		index = 0
	}
	semis := 12*(index/len(ladder)) + ladder[index%len(ladder)]
	return baseFreq * math.Pow(2, float64(semis)/12)
}

// StepChime is a bell-like ding whose pitch rises with the step index
func StepChime(cfg Config, index int) beep.Streamer {
	rate := cfg.rate()
	f := StepFrequency(index)
	mixed := beep.Mix(
		newVolume(tone(f, chimeDuration, chimeAttack, chimeRelease, WaveSine, rate), 0.7),
		newVolume(tone(2*f, chimeDuration, chimeAttack, chimeRelease/2, WaveSine, rate), 0.3),
	)
	return newVolume(mixed, cfg.MasterVolume)
}

// FinishChord is a major triad played when auto-play reaches the end
func FinishChord(cfg Config) beep.Streamer {
	rate := cfg.rate()
	root := baseFreq / 2
	mixed := beep.Mix(
		newVolume(tone(root, chordDuration, chordAttack, chordRelease, WaveTriangle, rate), 0.4),
		newVolume(tone(root*1.25, chordDuration, chordAttack, chordRelease, WaveTriangle, rate), 0.3),
		newVolume(tone(root*1.5, chordDuration, chordAttack, chordRelease, WaveTriangle, rate), 0.3),
	)
	return newVolume(mixed, cfg.MasterVolume)
}

// ResetSweep is a falling glide played on reset
func ResetSweep(cfg Config) beep.Streamer {
	rate := cfg.rate()
	glide := NewGlide(baseFreq*2, baseFreq/2, sweepDuration, WaveSine, rate)
	shaped := NewEnvelope(glide, sweepDuration, sweepAttack, sweepRelease, rate)
	return newVolume(shaped, 0.6*cfg.MasterVolume)
}

// Streamer builds the sound for a cue; index is used by CueStep only
func Streamer(cfg Config, c Cue, index int) beep.Streamer {
	switch c {
	case CueStep:
		return StepChime(cfg, index)
	case CueFinish:
		return FinishChord(cfg)
	case CueReset:
		return ResetSweep(cfg)
	default:
		return nil
	}
}
