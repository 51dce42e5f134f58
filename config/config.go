// Package config loads layered settings: defaults, config file, FABVIZ_* environment, flags
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix, e.g. FABVIZ_ENGINE_FPS
const EnvPrefix = "FABVIZ"

// Config is the complete fabviz configuration
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Render  RenderConfig  `mapstructure:"render"`
	Audio   AudioConfig   `mapstructure:"audio"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig controls the frame loop
type EngineConfig struct {
	FPS              int     `mapstructure:"fps"`
	ParticleCapacity int     `mapstructure:"particle_capacity"`
	RotateDegPerSec  float64 `mapstructure:"rotate_deg_per_sec"`
	MaxFrameDeltaMs  int     `mapstructure:"max_frame_delta_ms"`
	Autoplay         bool    `mapstructure:"autoplay"`
}

// MaxFrameDelta returns the dt clamp as a duration
func (c *EngineConfig) MaxFrameDelta() time.Duration {
	return time.Duration(c.MaxFrameDeltaMs) * time.Millisecond
}

// RenderConfig selects the display backend
type RenderConfig struct {
	// Backend: "auto", "window", "terminal", "headless"
	// auto tries window, then terminal
	Backend string `mapstructure:"backend"`
	// Color: "auto", "truecolor", "256" (terminal only)
	Color  string `mapstructure:"color"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// AudioConfig controls playback cues
type AudioConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	MasterVolume float64 `mapstructure:"master_volume"`
	SampleRate   int     `mapstructure:"sample_rate"`
}

// LoggingConfig controls the debug log file
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	Dir     string `mapstructure:"dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			FPS:              30,
			ParticleCapacity: 512,
			RotateDegPerSec:  12,
			MaxFrameDeltaMs:  250,
		},
		Render: RenderConfig{
			Backend: "auto",
			Color:   "auto",
			Width:   960,
			Height:  600,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.5,
			SampleRate:   44100,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "logs",
		},
	}
}

// SetDefaults registers every default with v
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("engine.fps", d.Engine.FPS)
	v.SetDefault("engine.particle_capacity", d.Engine.ParticleCapacity)
	v.SetDefault("engine.rotate_deg_per_sec", d.Engine.RotateDegPerSec)
	v.SetDefault("engine.max_frame_delta_ms", d.Engine.MaxFrameDeltaMs)
	v.SetDefault("engine.autoplay", d.Engine.Autoplay)

	v.SetDefault("render.backend", d.Render.Backend)
	v.SetDefault("render.color", d.Render.Color)
	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("render.height", d.Render.Height)

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.master_volume", d.Audio.MasterVolume)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)

	v.SetDefault("logging.enabled", d.Logging.Enabled)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.dir", d.Logging.Dir)
}

// Init prepares v: defaults, environment binding and the config file
// An explicit cfgFile must exist; the default location is optional
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read: %w", err)
	}
	return nil
}

// Load unmarshals v into a Config and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// Dir returns the user config directory
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fabviz")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fabviz"
	}
	return filepath.Join(home, ".config", "fabviz")
}

// File returns the default config file path
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}
