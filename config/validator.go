package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // config key, e.g. "engine.fps"
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidBackends returns the accepted render.backend values
func ValidBackends() []string {
	return []string{"auto", "window", "terminal", "headless"}
}

// ValidColorModes returns the accepted render.color values
func ValidColorModes() []string {
	return []string{"auto", "truecolor", "256"}
}

// ValidLogLevels returns the accepted logging.level values
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks every field and returns all problems found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	add := func(field string, value any, msg string) {
		errs = append(errs, ValidationError{Field: field, Value: value, Message: msg})
	}

	if c.Engine.FPS < 1 || c.Engine.FPS > 240 {
		add("engine.fps", c.Engine.FPS, "must be between 1 and 240")
	}
	if c.Engine.ParticleCapacity < 1 {
		add("engine.particle_capacity", c.Engine.ParticleCapacity, "must be positive")
	}
	if c.Engine.RotateDegPerSec < -360 || c.Engine.RotateDegPerSec > 360 {
		add("engine.rotate_deg_per_sec", c.Engine.RotateDegPerSec, "must be within ±360")
	}
	if c.Engine.MaxFrameDeltaMs < 1 {
		add("engine.max_frame_delta_ms", c.Engine.MaxFrameDeltaMs, "must be positive")
	}

	if !slices.Contains(ValidBackends(), c.Render.Backend) {
		add("render.backend", c.Render.Backend, "must be one of "+strings.Join(ValidBackends(), ", "))
	}
	if !slices.Contains(ValidColorModes(), c.Render.Color) {
		add("render.color", c.Render.Color, "must be one of "+strings.Join(ValidColorModes(), ", "))
	}
	if c.Render.Width < 64 {
		add("render.width", c.Render.Width, "must be at least 64")
	}
	if c.Render.Height < 64 {
		add("render.height", c.Render.Height, "must be at least 64")
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		add("audio.master_volume", c.Audio.MasterVolume, "must be between 0 and 1")
	}
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		add("audio.sample_rate", c.Audio.SampleRate, "must be between 8000 and 192000")
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		add("logging.level", c.Logging.Level, "must be one of "+strings.Join(ValidLogLevels(), ", "))
	}
	if c.Logging.Enabled && c.Logging.Dir == "" {
		add("logging.dir", c.Logging.Dir, "required when logging is enabled")
	}

	return errs
}
