package engine

// ActionKind enumerates user commands applied between ticks
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionPrevious
	ActionNext
	ActionTogglePlay
	ActionPlay
	ActionPause
	ActionReset
	ActionSeek // Index holds the target step
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionToggleRotation
	ActionToggleStats
	ActionQuit
)

// Action is one user command
type Action struct {
	Kind  ActionKind
	Index int
}

var actionNames = map[ActionKind]string{
	ActionNone:           "none",
	ActionPrevious:       "previous",
	ActionNext:           "next",
	ActionTogglePlay:     "toggle_play",
	ActionPlay:           "play",
	ActionPause:          "pause",
	ActionReset:          "reset",
	ActionSeek:           "seek",
	ActionOrbitLeft:      "orbit_left",
	ActionOrbitRight:     "orbit_right",
	ActionOrbitUp:        "orbit_up",
	ActionOrbitDown:      "orbit_down",
	ActionZoomIn:         "zoom_in",
	ActionZoomOut:        "zoom_out",
	ActionToggleRotation: "toggle_rotation",
	ActionToggleStats:    "toggle_stats",
	ActionQuit:           "quit",
}

func (k ActionKind) String() string {
	if s, ok := actionNames[k]; ok {
		return s
	}
	return "unknown"
}
