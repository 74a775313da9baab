package scene

import (
	"card-toss/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	// Fovy is the vertical field of view in degrees.
	Fovy float32
	Near float32
	Far  float32
}

// DefaultCamera sits at (0, 10, 30) looking at the origin with a 75° field of view.
func DefaultCamera() Camera {
	return Camera{
		Position: mgl32.Vec3{0, 10, 30},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     75,
		Near:     0.1,
		Far:      1000,
	}
}

// Forward returns the normalized view direction.
func (c Camera) Forward() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Pose returns the camera's position and orientation; the orientation maps -Z to Forward.
func (c Camera) Pose() geom.Pose {
	return geom.Pose{
		Position:    c.Position,
		Orientation: geom.LookRotation(c.Target.Sub(c.Position), c.Up),
	}
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), aspect, c.Near, c.Far)
}

// RayFromNDC returns the world-space ray through a point in normalized device
// coordinates (both axes in [-1, 1], +Y up).
func (c Camera) RayFromNDC(x, y, aspect float32) geom.Ray {
	inv := c.Projection(aspect).Mul4(c.View()).Inv()
	near := mgl32.TransformCoordinate(mgl32.Vec3{x, y, -1}, inv)
	far := mgl32.TransformCoordinate(mgl32.Vec3{x, y, 1}, inv)
	return geom.NewRay(c.Position, far.Sub(near))
}

// ScreenToNDC maps a pixel position to normalized device coordinates,
// flipping Y so the top of the viewport is +1.
func ScreenToNDC(x, y float32, width, height int) (nx, ny float32) {
	nx = 2*x/float32(width) - 1
	ny = 1 - 2*y/float32(height)
	return nx, ny
}
