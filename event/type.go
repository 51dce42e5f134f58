package event

import (
	"time"
)

// EventType represents the type of playback event
type EventType int

const (
	// EventStepChanged announces a new active step
	// Trigger: playback.Controller on any index change, and Announce at session start
	// Consumer: SceneComposer, ParameterPanel, ParticleField, AudioCues | Payload: *StepChangedPayload
	EventStepChanged EventType = iota

	// EventModeChanged announces Idle ↔ Playing transitions
	// Trigger: Play, Pause, Reset, auto-play reaching the last step
	// Consumer: ParameterPanel | Payload: *ModeChangedPayload
	EventModeChanged

	// EventPlaybackFinished marks auto-play halting at the last step
	// Trigger: playback timer expiring on the final step
	// Consumer: AudioCues | Payload: *StepChangedPayload (Previous == Step.Index)
	EventPlaybackFinished

	// EventPlaybackReset marks an explicit Reset request
	// Trigger: playback.Controller.Reset, published even when already at the initial state
	// Consumer: AudioCues | Payload: nil
	EventPlaybackReset
)

// String returns the event name used in logs
func (t EventType) String() string {
	switch t {
	case EventStepChanged:
		return "StepChanged"
	case EventModeChanged:
		return "ModeChanged"
	case EventPlaybackFinished:
		return "PlaybackFinished"
	case EventPlaybackReset:
		return "PlaybackReset"
	default:
		return "Unknown"
	}
}

// Event is a single message on the playback event queue
type Event struct {
	Type      EventType
	Payload   any
	Frame     int64
	Timestamp time.Time
}
