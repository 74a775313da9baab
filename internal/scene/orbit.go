package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	orbitPitchLimit = math32.Pi/2 - 0.01
	defaultRotate   = 0.005
	defaultZoom     = 1.0
)

// Orbit moves a camera on a sphere around its target. Input is accumulated
// with Rotate and Zoom and applied once per frame by Update.
type Orbit struct {
	Yaw         float32
	Pitch       float32
	Distance    float32
	MinDistance float32
	MaxDistance float32
	// RotateSpeed is radians per pixel of drag.
	RotateSpeed float32
	// ZoomSpeed is world units per wheel step.
	ZoomSpeed float32

	dYaw, dPitch, dZoom float32
}

// NewOrbit derives yaw, pitch and distance from the camera's current placement.
func NewOrbit(c Camera) *Orbit {
	off := c.Position.Sub(c.Target)
	dist := off.Len()
	o := &Orbit{
		Distance:    dist,
		MinDistance: 2,
		MaxDistance: 200,
		RotateSpeed: defaultRotate,
		ZoomSpeed:   defaultZoom,
	}
	if dist > 0 {
		o.Yaw = math32.Atan2(off[0], off[2])
		o.Pitch = math32.Asin(mgl32.Clamp(off[1]/dist, -1, 1))
	}
	return o
}

// Rotate queues a drag of dx, dy pixels.
func (o *Orbit) Rotate(dx, dy float32) {
	o.dYaw -= dx * o.RotateSpeed
	o.dPitch += dy * o.RotateSpeed
}

// Zoom queues wheel movement; positive moves closer.
func (o *Orbit) Zoom(steps float32) {
	o.dZoom -= steps * o.ZoomSpeed
}

// Update applies queued input and repositions c around its target.
// Without queued input the camera is left untouched.
func (o *Orbit) Update(c *Camera) {
	if o.dYaw == 0 && o.dPitch == 0 && o.dZoom == 0 {
		return
	}
	o.Yaw += o.dYaw
	o.Pitch = mgl32.Clamp(o.Pitch+o.dPitch, -orbitPitchLimit, orbitPitchLimit)
	o.Distance = mgl32.Clamp(o.Distance+o.dZoom, o.MinDistance, o.MaxDistance)
	o.dYaw, o.dPitch, o.dZoom = 0, 0, 0

	sp, cp := math32.Sincos(o.Pitch)
	sy, cy := math32.Sincos(o.Yaw)
	off := mgl32.Vec3{cp * sy, sp, cp * cy}.Mul(o.Distance)
	c.Position = c.Target.Add(off)
}
