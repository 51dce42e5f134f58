package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector in world units (micrometres for process scenes)
// Struct tags allow direct decoding from catalog files
type Vec3F struct {
	X float64 `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`
	Z float64 `toml:"z" yaml:"z"`
}

// V3F constructs a vector
func V3F(x, y, z float64) Vec3F {
	return Vec3F{X: x, Y: y, Z: z}
}

// One is the identity scale
var One = Vec3F{1, 1, 1}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

// V3FMul multiplies component-wise
func V3FMul(a, b Vec3F) Vec3F {
	return Vec3F{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FLerp interpolates a→b by t in [0,1]
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// V3FRotateY rotates v around the Y axis by rad
func V3FRotateY(v Vec3F, rad float64) Vec3F {
	s, c := math.Sincos(rad)
	return Vec3F{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// V3FNear reports whether a and b differ by at most eps on every axis
func V3FNear(a, b Vec3F, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// Box3F is an axis-aligned box given by its min and max corners
type Box3F struct {
	Min Vec3F `toml:"min" yaml:"min"`
	Max Vec3F `toml:"max" yaml:"max"`
}

// Contains reports whether p lies inside the box, faces inclusive
func (b Box3F) Contains(p Vec3F) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Empty reports a degenerate box (zero value)
func (b Box3F) Empty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y || b.Max.Z <= b.Min.Z
}

// Center returns the box midpoint
func (b Box3F) Center() Vec3F {
	return V3FScale(V3FAdd(b.Min, b.Max), 0.5)
}

// Size returns the box extent per axis
func (b Box3F) Size() Vec3F {
	return V3FSub(b.Max, b.Min)
}
