package palette

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB stores explicit 8-bit color channels, decoupled from any backend
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// ParseHex decodes "#rrggbb", "rrggbb" or the short "#rgb" form
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Black, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Black, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustHex is ParseHex for compile-time constants
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats as "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Add performs additive blend with clamping (light accumulation)
func (dst RGB) Add(src RGB) RGB {
	return RGB{
		R: uint8(min(int(dst.R)+int(src.R), 255)),
		G: uint8(min(int(dst.G)+int(src.G), 255)),
		B: uint8(min(int(dst.B)+int(src.B), 255)),
	}
}

// Scale multiplies every channel by f, clamped to [0, 255]
func (c RGB) Scale(f float64) RGB {
	return RGB{
		R: scaleChannel(c.R, f),
		G: scaleChannel(c.G, f),
		B: scaleChannel(c.B, f),
	}
}

func scaleChannel(v uint8, f float64) uint8 {
	x := float64(v) * f
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}

// Lerp interpolates a→b by t in [0, 1]
func Lerp(a, b RGB, t float64) RGB {
	return a.Blend(b, t)
}

// Luma returns perceived brightness in [0, 1]
func (c RGB) Luma() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}
