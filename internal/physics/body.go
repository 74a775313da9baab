package physics

import (
	"errors"
	"fmt"

	"card-toss/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidMass is returned when a dynamic body is given a non-positive mass.
var ErrInvalidMass = errors.New("mass must be positive")

// BodyType selects how the world treats a body during Step.
type BodyType int

const (
	// Dynamic bodies are integrated: gravity, velocity, impulses and collisions.
	Dynamic BodyType = iota
	// Kinematic bodies are posed externally. Step never moves them, but they
	// still push dynamic bodies out of the way.
	Kinematic
	// Static bodies never move (ground, walls).
	Static
)

func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	default:
		return fmt.Sprintf("BodyType(%d)", int(t))
	}
}

// Body is a box-shaped rigid body.
type Body struct {
	Position        mgl32.Vec3
	Orientation     mgl32.Quat
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	HalfExtents     mgl32.Vec3
	Mass            float32
	Type            BodyType
}

// NewBody returns a body at position with the given half-extents. Velocity is zero.
// Dimensions must be finite and positive; dynamic bodies also need a positive mass.
func NewBody(position, halfExtents mgl32.Vec3, mass float32, typ BodyType) (*Body, error) {
	if err := geom.CheckPosition(position); err != nil {
		return nil, err
	}
	if err := geom.CheckExtents(halfExtents); err != nil {
		return nil, err
	}
	if typ == Dynamic && !(mass > 0) {
		return nil, fmt.Errorf("body mass %v: %w", mass, ErrInvalidMass)
	}
	return &Body{
		Position:    position,
		Orientation: mgl32.QuatIdent(),
		HalfExtents: halfExtents,
		Mass:        mass,
		Type:        typ,
	}, nil
}

// Pose returns the body's current position and orientation.
func (b *Body) Pose() geom.Pose {
	return geom.Pose{Position: b.Position, Orientation: b.Orientation}
}

// SetPose writes position and orientation directly, bypassing integration.
func (b *Body) SetPose(p geom.Pose) {
	b.Position = p.Position
	b.Orientation = p.Orientation.Normalize()
}

// SetType switches how the world treats the body from the next Step on.
func (b *Body) SetType(t BodyType) {
	b.Type = t
}

// Stop zeroes linear and angular velocity.
func (b *Body) Stop() {
	b.Velocity = mgl32.Vec3{}
	b.AngularVelocity = mgl32.Vec3{}
}

// ApplyImpulse changes momentum by impulse at the centre of mass.
// Only dynamic bodies respond.
func (b *Body) ApplyImpulse(impulse mgl32.Vec3) {
	if b.Type != Dynamic || b.Mass <= 0 {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(1 / b.Mass))
}

// Bounds returns the world-space AABB of the body.
func (b *Body) Bounds() (min, max mgl32.Vec3) {
	return geom.AABB(b.Position, b.Orientation, b.HalfExtents)
}

func (b *Body) movable() bool {
	return b.Type == Dynamic
}
