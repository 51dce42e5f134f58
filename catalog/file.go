package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/fabviz/vmath"
)

// Format identifies a catalog file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// fileCatalog is the on-disk shape; durations are integer milliseconds
type fileCatalog struct {
	Name     string        `toml:"name" yaml:"name"`
	Title    string        `toml:"title,omitempty" yaml:"title,omitempty"`
	Elements []ElementSpec `toml:"elements" yaml:"elements"`
	Steps    []fileStep    `toml:"steps" yaml:"steps"`
}

type fileStep struct {
	Title       string         `toml:"title" yaml:"title"`
	Description string         `toml:"description,omitempty" yaml:"description,omitempty"`
	DwellMs     int64          `toml:"dwell_ms" yaml:"dwell_ms"`
	Scene       []ElementState `toml:"scene" yaml:"scene"`
	Particles   *fileParticles `toml:"particles,omitempty" yaml:"particles,omitempty"`
	Parameters  []Parameter    `toml:"parameters" yaml:"parameters"`
}

type fileParticles struct {
	Kind          string      `toml:"kind" yaml:"kind"`
	Rate          float64     `toml:"rate" yaml:"rate"`
	Velocity      vmath.Vec3F `toml:"velocity,inline" yaml:"velocity,flow"`
	Jitter        float64     `toml:"jitter,omitempty" yaml:"jitter,omitempty"`
	Radial        float64     `toml:"radial,omitempty" yaml:"radial,omitempty"`
	Swirl         float64     `toml:"swirl,omitempty" yaml:"swirl,omitempty"`
	Acceleration  vmath.Vec3F `toml:"acceleration,inline" yaml:"acceleration,flow"`
	Color         string      `toml:"color" yaml:"color"`
	LifetimeMinMs int64       `toml:"lifetime_min_ms" yaml:"lifetime_min_ms"`
	LifetimeMaxMs int64       `toml:"lifetime_max_ms" yaml:"lifetime_max_ms"`
	Emitter       vmath.Box3F `toml:"emitter,inline" yaml:"emitter,flow"`
	Bounds        vmath.Box3F `toml:"bounds,inline" yaml:"bounds,flow"`
}

// Load reads a catalog file, choosing the decoder by extension
func Load(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode parses and validates a catalog; unknown keys are rejected
func Decode(r io.Reader, format Format) (*Catalog, error) {
	var fc fileCatalog

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fc); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return New(fc.definition())
}

// Encode writes c in the given format; Decode of the output yields an equal catalog
func Encode(w io.Writer, c *Catalog, format Format) error {
	fc := toFile(c.Definition())

	switch format {
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(fc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (fc fileCatalog) definition() Definition {
	def := Definition{
		Name:     fc.Name,
		Title:    fc.Title,
		Elements: fc.Elements,
		Steps:    make([]Step, len(fc.Steps)),
	}
	for i, fs := range fc.Steps {
		st := Step{
			Title:       fs.Title,
			Description: fs.Description,
			Scene:       SceneConfig{Elements: fs.Scene},
			Parameters:  fs.Parameters,
			Dwell:       time.Duration(fs.DwellMs) * time.Millisecond,
		}
		if fp := fs.Particles; fp != nil {
			st.Particles = &ParticleConfig{
				Kind:         fp.Kind,
				Rate:         fp.Rate,
				Velocity:     fp.Velocity,
				Jitter:       fp.Jitter,
				Radial:       fp.Radial,
				Swirl:        fp.Swirl,
				Acceleration: fp.Acceleration,
				Color:        fp.Color,
				LifetimeMin:  time.Duration(fp.LifetimeMinMs) * time.Millisecond,
				LifetimeMax:  time.Duration(fp.LifetimeMaxMs) * time.Millisecond,
				Emitter:      fp.Emitter,
				Bounds:       fp.Bounds,
			}
		}
		def.Steps[i] = st
	}
	return def
}

func toFile(def Definition) fileCatalog {
	fc := fileCatalog{
		Name:     def.Name,
		Title:    def.Title,
		Elements: def.Elements,
		Steps:    make([]fileStep, len(def.Steps)),
	}
	for i, st := range def.Steps {
		fs := fileStep{
			Title:       st.Title,
			Description: st.Description,
			DwellMs:     st.Dwell.Milliseconds(),
			Scene:       st.Scene.Elements,
			Parameters:  st.Parameters,
		}
		if p := st.Particles; p != nil {
			fs.Particles = &fileParticles{
				Kind:          p.Kind,
				Rate:          p.Rate,
				Velocity:      p.Velocity,
				Jitter:        p.Jitter,
				Radial:        p.Radial,
				Swirl:         p.Swirl,
				Acceleration:  p.Acceleration,
				Color:         p.Color,
				LifetimeMinMs: p.LifetimeMin.Milliseconds(),
				LifetimeMaxMs: p.LifetimeMax.Milliseconds(),
				Emitter:       p.Emitter,
				Bounds:        p.Bounds,
			}
		}
		fc.Steps[i] = fs
	}
	return fc
}
