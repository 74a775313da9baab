package geom

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNonFinite is returned when a vector has a NaN or infinite component.
	ErrNonFinite = errors.New("non-finite value")
	// ErrInvalidExtents is returned when a box dimension is zero or negative.
	ErrInvalidExtents = errors.New("box extents must be positive")
)

// Forward is the local forward axis. Cameras and held objects look down -Z.
var Forward = mgl32.Vec3{0, 0, -1}

// Pose is a world-space position plus a unit orientation.
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// NewPose returns a pose at position with identity orientation.
func NewPose(position mgl32.Vec3) Pose {
	return Pose{Position: position, Orientation: mgl32.QuatIdent()}
}

// Forward returns the pose's forward direction in world space.
func (p Pose) Forward() mgl32.Vec3 {
	return p.Orientation.Rotate(Forward).Normalize()
}

// Ahead returns the point dist units in front of the pose.
func (p Pose) Ahead(dist float32) mgl32.Vec3 {
	return p.Position.Add(p.Forward().Mul(dist))
}

// Finite reports whether every component of v is a finite number.
func Finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// CheckPosition returns an error if v cannot be used as a position.
func CheckPosition(v mgl32.Vec3) error {
	if !Finite(v) {
		return fmt.Errorf("position %v: %w", v, ErrNonFinite)
	}
	return nil
}

// CheckExtents returns an error unless every component of v is finite and > 0.
func CheckExtents(v mgl32.Vec3) error {
	if !Finite(v) {
		return fmt.Errorf("extents %v: %w", v, ErrNonFinite)
	}
	if v[0] <= 0 || v[1] <= 0 || v[2] <= 0 {
		return fmt.Errorf("extents %v: %w", v, ErrInvalidExtents)
	}
	return nil
}

// LookRotation returns the orientation whose forward axis points along dir,
// keeping up as close to the world up as possible.
func LookRotation(dir, up mgl32.Vec3) mgl32.Quat {
	f := dir.Normalize()
	r := f.Cross(up)
	if r.LenSqr() < 1e-12 {
		// dir parallel to up; any perpendicular will do
		r = f.Cross(mgl32.Vec3{0, 0, 1})
		if r.LenSqr() < 1e-12 {
			r = f.Cross(mgl32.Vec3{1, 0, 0})
		}
	}
	r = r.Normalize()
	u := r.Cross(f)
	// columns: right, up, back (-forward)
	m := mgl32.Mat4{
		r[0], r[1], r[2], 0,
		u[0], u[1], u[2], 0,
		-f[0], -f[1], -f[2], 0,
		0, 0, 0, 1,
	}
	return mgl32.Mat4ToQuat(m).Normalize()
}

// AABB returns the world-space axis-aligned bounds of a box with the given
// half-extents rotated by q around center.
func AABB(center mgl32.Vec3, q mgl32.Quat, half mgl32.Vec3) (min, max mgl32.Vec3) {
	m := q.Mat4()
	var ext mgl32.Vec3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			ext[row] += math32.Abs(m.At(row, col)) * half[col]
		}
	}
	return center.Sub(ext), center.Add(ext)
}
