package playback

import (
	"time"
)

// Mode is the playback state machine mode
type Mode uint8

const (
	ModeIdle Mode = iota
	ModePlaying
)

// String returns the mode label shown in the HUD
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// State is a snapshot of the controller
// Invariant: 0 <= Index < N; Elapsed resets to 0 on every index change
type State struct {
	Index   int
	Mode    Mode
	Elapsed time.Duration
}
