// Package camera is the orbiting presentation camera
package camera

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fabviz/status"
	"github.com/lixenwraith/fabviz/vmath"
)

const (
	// DefaultDegPerSec is the idle rotation speed
	DefaultDegPerSec = 12.0

	minPitch = -10 * vmath.DegToRad
	maxPitch = 80 * vmath.DegToRad
)

// Pose is the camera placement derived from the rig each frame
type Pose struct {
	Eye    vmath.Vec3F
	Target vmath.Vec3F
	Up     vmath.Vec3F
	FovY   float64 // radians
}

// Rig orbits a fixed target at constant angular velocity
// Independent of playback; keeps rotating while Idle
type Rig struct {
	Target vmath.Vec3F
	Yaw    float64 // radians, wrapped to [0, 2π)
	Pitch  float64 // radians, clamped
	Radius float64
	FovY   float64

	MinRadius float64
	MaxRadius float64

	omega   float64 // rad/s
	statYaw *status.AtomicFloat
	frozen  atomic.Bool
}

// NewRig places the camera at a 3/4 view, rotating at degPerSec
// reg may be nil
func NewRig(degPerSec float64, reg *status.Registry) *Rig {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Rig{
		Yaw:       45 * vmath.DegToRad,
		Pitch:     30 * vmath.DegToRad,
		Radius:    14,
		FovY:      45 * vmath.DegToRad,
		MinRadius: 4,
		MaxRadius: 40,
		omega:     degPerSec * vmath.DegToRad,
		statYaw:   reg.Floats.Get(status.KeyCameraYawDeg),
	}
}

// Advance rotates yaw by the fixed angular velocity
func (r *Rig) Advance(dt time.Duration) {
	if dt <= 0 || r.frozen.Load() {
		return
	}
	r.Yaw = vmath.WrapAngle(r.Yaw + r.omega*dt.Seconds())
	r.statYaw.Set(r.Yaw / vmath.DegToRad)
}

// SetFrozen stops idle rotation without touching playback; used for stills
func (r *Rig) SetFrozen(frozen bool) {
	r.frozen.Store(frozen)
}

// Nudge applies a manual orbit offset
func (r *Rig) Nudge(dYaw, dPitch float64) {
	r.Yaw = vmath.WrapAngle(r.Yaw + dYaw)
	r.Pitch = vmath.Clamp(r.Pitch+dPitch, minPitch, maxPitch)
}

// Zoom changes the orbit radius within limits
func (r *Rig) Zoom(delta float64) {
	r.Radius = vmath.Clamp(r.Radius+delta, r.MinRadius, r.MaxRadius)
}

// Pose computes the eye position from yaw, pitch and radius
func (r *Rig) Pose() Pose {
	sy, cy := math.Sincos(r.Yaw)
	sp, cp := math.Sincos(r.Pitch)
	offset := vmath.V3F(r.Radius*cp*sy, r.Radius*sp, r.Radius*cp*cy)
	return Pose{
		Eye:    vmath.V3FAdd(r.Target, offset),
		Target: r.Target,
		Up:     vmath.V3F(0, 1, 0),
		FovY:   r.FovY,
	}
}

// View returns the world → camera matrix
func (p Pose) View() vmath.Mat4 {
	return vmath.Mat4LookAt(p.Eye, p.Target, p.Up)
}

// Projection returns the perspective matrix for a viewport aspect ratio
func (p Pose) Projection(aspect float64) vmath.Mat4 {
	return vmath.Mat4Perspective(p.FovY, aspect, 0.1, 200)
}

// ViewProjection is Projection(aspect) × View
func (p Pose) ViewProjection(aspect float64) vmath.Mat4 {
	return vmath.Mat4Mul(p.Projection(aspect), p.View())
}
