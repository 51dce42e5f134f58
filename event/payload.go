package event

import (
	"github.com/lixenwraith/fabviz/catalog"
)

// StepChangedPayload carries the newly active step
// Previous is -1 for the initial announcement
type StepChangedPayload struct {
	Previous int
	Step     *catalog.Step
	Count    int
}

// ModeChangedPayload carries the new playback mode
type ModeChangedPayload struct {
	Playing bool
}
