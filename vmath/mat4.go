package vmath

import (
	"math"
)

// Vec4 is a homogeneous coordinate
type Vec4 struct {
	X, Y, Z, W float64
}

// Mat4 is a column-major 4x4 matrix, m[col*4+row]
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = a[0*4+row]*b[col*4+0] +
				a[1*4+row]*b[col*4+1] +
				a[2*4+row]*b[col*4+2] +
				a[3*4+row]*b[col*4+3]
		}
	}
	return out
}

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Mat4MulPoint transforms a point (w=1)
func Mat4MulPoint(m Mat4, p Vec3F) Vec4 {
	return Mat4MulV4(m, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
}

func Mat4Translate(v Vec3F) Mat4 {
	m := Mat4Identity()
	m[12] = v.X
	m[13] = v.Y
	m[14] = v.Z
	return m
}

func Mat4Scale(v Vec3F) Mat4 {
	m := Mat4Identity()
	m[0] = v.X
	m[5] = v.Y
	m[10] = v.Z
	return m
}

func Mat4RotateY(rad float64) Mat4 {
	s, c := math.Sincos(rad)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Mat4LookAt builds a right-handed view matrix
func Mat4LookAt(eye, target, up Vec3F) Mat4 {
	f := V3FNormalize(V3FSub(target, eye))
	s := V3FNormalize(V3FCross(f, up))
	u := V3FCross(s, f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-V3FDot(s, eye), -V3FDot(u, eye), V3FDot(f, eye), 1,
	}
}

// Mat4Perspective builds an OpenGL-style projection, NDC z in [-1, 1]
func Mat4Perspective(fovYRad, aspect, zNear, zFar float64) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	f := 1 / math.Tan(fovYRad/2)
	nf := 1 / (zNear - zFar)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (zFar + zNear) * nf, -1,
		0, 0, 2 * zFar * zNear * nf, 0,
	}
}
