package physics

import (
	"errors"
	"fmt"

	"card-toss/internal/geom"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNilBody is returned by AddBody for a nil body.
	ErrNilBody = errors.New("nil body")
	// ErrDuplicateBody is returned when a body is added twice.
	ErrDuplicateBody = errors.New("body already in world")
)

const (
	// angularDamping is applied to dynamic bodies each step so thrown cards settle.
	angularDamping = 0.98
	// contactSpinDamping scales angular velocity when a body is pushed out of contact.
	contactSpinDamping = 0.5
	// contactFriction is the share of tangential velocity lost per step in contact.
	contactFriction = 0.1
)

// World holds a set of bodies and runs a simple 3D step: gravity, integration, AABB contacts.
type World struct {
	Gravity mgl32.Vec3
	Bodies  []*Body
}

// NewWorld returns a world with gravity (0, -9.8, 0); the scene is Y-up.
func NewWorld() *World {
	return &World{
		Gravity: mgl32.Vec3{0, -9.8, 0},
	}
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g mgl32.Vec3) {
	w.Gravity = g
}

// AddBody registers b. The shape is re-validated so bodies built by hand
// cannot slip in with degenerate extents.
func (w *World) AddBody(b *Body) error {
	if b == nil {
		return ErrNilBody
	}
	if err := geom.CheckExtents(b.HalfExtents); err != nil {
		return fmt.Errorf("add body: %w", err)
	}
	if err := geom.CheckPosition(b.Position); err != nil {
		return fmt.Errorf("add body: %w", err)
	}
	for _, other := range w.Bodies {
		if other == b {
			return ErrDuplicateBody
		}
	}
	if b.Orientation.Len() == 0 {
		b.Orientation = mgl32.QuatIdent()
	}
	w.Bodies = append(w.Bodies, b)
	return nil
}

// RemoveBody drops b from the world. It reports whether b was present.
func (w *World) RemoveBody(b *Body) bool {
	for i, other := range w.Bodies {
		if other == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			return true
		}
	}
	return false
}

// Step advances the simulation by dt seconds. Only dynamic bodies are integrated.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for _, b := range w.Bodies {
		if !b.movable() {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))

		if b.AngularVelocity.LenSqr() > 0 {
			spin := mgl32.Quat{W: 0, V: b.AngularVelocity.Mul(0.5 * dt)}
			b.Orientation = b.Orientation.Add(spin.Mul(b.Orientation)).Normalize()
			b.AngularVelocity = b.AngularVelocity.Mul(angularDamping)
		}
	}

	for i := 0; i < len(w.Bodies); i++ {
		for j := i + 1; j < len(w.Bodies); j++ {
			resolve(w.Bodies[i], w.Bodies[j])
		}
	}
}

// penetration returns the overlap depth and axis (0=X, 1=Y, 2=Z) of minimum
// penetration between two AABBs, or (0, -1) when they do not overlap.
func penetration(aMin, aMax, bMin, bMax mgl32.Vec3) (depth float32, axis int) {
	axis = -1
	for i := 0; i < 3; i++ {
		overlap := math32.Min(aMax[i], bMax[i]) - math32.Max(aMin[i], bMin[i])
		if overlap <= 0 {
			return 0, -1
		}
		if axis < 0 || overlap < depth {
			depth = overlap
			axis = i
		}
	}
	return depth, axis
}

// resolve pushes two overlapping bodies apart along the axis of least
// penetration. Non-dynamic bodies are never moved.
func resolve(a, b *Body) {
	if !a.movable() && !b.movable() {
		return
	}
	aMin, aMax := a.Bounds()
	bMin, bMax := b.Bounds()
	depth, axis := penetration(aMin, aMax, bMin, bMax)
	if axis < 0 {
		return
	}
	// push a toward -axis when it sits below b on that axis
	sign := float32(1)
	if a.Position[axis] < b.Position[axis] {
		sign = -1
	}

	var moveA, moveB float32
	switch {
	case !a.movable():
		moveB = -sign * depth
	case !b.movable():
		moveA = sign * depth
	default:
		total := a.Mass + b.Mass
		moveA = sign * depth * (b.Mass / total)
		moveB = -sign * depth * (a.Mass / total)
	}

	if a.movable() {
		a.Position[axis] += moveA
		if a.Velocity[axis]*sign < 0 {
			a.Velocity[axis] = 0
		}
		settle(a, axis)
	}
	if b.movable() {
		b.Position[axis] += moveB
		if b.Velocity[axis]*sign > 0 {
			b.Velocity[axis] = 0
		}
		settle(b, axis)
	}
}

// settle bleeds tangential and angular velocity from a body in contact along axis.
func settle(b *Body, axis int) {
	for i := 0; i < 3; i++ {
		if i != axis {
			b.Velocity[i] *= 1 - contactFriction
		}
	}
	b.AngularVelocity = b.AngularVelocity.Mul(contactSpinDamping)
}
