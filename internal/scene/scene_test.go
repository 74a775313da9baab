package scene

import (
	"errors"
	"image/color"
	"testing"

	"card-toss/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = Material{Color: color.RGBA{255, 0, 0, 255}}

func meshAt(t *testing.T, name string, pos mgl32.Vec3) *Mesh {
	t.Helper()
	m, err := NewMesh(name, mgl32.Vec3{0.5, 0.5, 0.5}, red)
	require.NoError(t, err)
	m.SetPose(geom.NewPose(pos))
	return m
}

func TestNewMeshValidation(t *testing.T) {
	_, err := NewMesh("flat", mgl32.Vec3{1, 0, 1}, red)
	assert.True(t, errors.Is(err, geom.ErrInvalidExtents))

	_, err = NewMesh("invisible", mgl32.Vec3{1, 1, 1}, Material{})
	assert.True(t, errors.Is(err, ErrMissingMaterial))

	_, err = NewMesh("textured", mgl32.Vec3{1, 1, 1}, Material{Texture: "cards/a.png"})
	assert.NoError(t, err)
}

func TestAddRemoveMesh(t *testing.T) {
	s := New()
	m := meshAt(t, "a", mgl32.Vec3{})
	require.NoError(t, s.AddMesh(m))
	assert.ErrorIs(t, s.AddMesh(m), ErrDuplicateNode)
	assert.ErrorIs(t, s.AddMesh(nil), ErrNilNode)

	assert.Len(t, s.Meshes(), 1)
	assert.True(t, s.RemoveMesh(m))
	assert.False(t, s.RemoveMesh(m))
	assert.Empty(t, s.Meshes())

	// a removed mesh can be added again
	require.NoError(t, s.AddMesh(m))
}

func TestIntersectNearestFirst(t *testing.T) {
	s := New()
	far := meshAt(t, "far", mgl32.Vec3{0, 0, -5})
	near := meshAt(t, "near", mgl32.Vec3{0, 0, 0})
	side := meshAt(t, "side", mgl32.Vec3{5, 0, 0})
	require.NoError(t, s.AddMesh(far))
	require.NoError(t, s.AddMesh(near))
	require.NoError(t, s.AddMesh(side))

	hits := s.Intersect(geom.NewRay(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1}))
	require.Len(t, hits, 2)
	assert.Same(t, near, hits[0].Mesh)
	assert.Same(t, far, hits[1].Mesh)
	assert.InDelta(t, 9.5, hits[0].Distance, 1e-4)
	assert.True(t, hits[0].Point.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0.5}, 1e-4))
}

func TestIntersectDescendsGroups(t *testing.T) {
	s := New()
	deck := NewGroup("deck")
	inner := NewGroup("inner")
	m := meshAt(t, "card", mgl32.Vec3{})
	require.NoError(t, inner.Add(m))
	require.NoError(t, deck.Add(inner))
	require.NoError(t, s.Root.Add(deck))

	ray := geom.NewRay(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, -1, 0})
	hits := s.Intersect(ray)
	require.Len(t, hits, 1)
	assert.Same(t, m, hits[0].Mesh)

	inner.Visible = false
	assert.Empty(t, s.Intersect(ray))
	inner.Visible = true
	m.Visible = false
	assert.Empty(t, s.Intersect(ray))
}

func TestIntersectEmptyScene(t *testing.T) {
	s := New()
	assert.Empty(t, s.Intersect(geom.NewRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})))
}

func TestMeshTransform(t *testing.T) {
	m, err := NewMesh("card", mgl32.Vec3{1, 1.5, 0.05}, red)
	require.NoError(t, err)
	m.SetPose(geom.NewPose(mgl32.Vec3{1, 2, 3}))
	tr := m.Transform()
	corner := mgl32.TransformCoordinate(mgl32.Vec3{0.5, 0.5, 0.5}, tr)
	assert.True(t, corner.ApproxEqualThreshold(mgl32.Vec3{2, 3.5, 3.05}, 1e-4))
}

func TestCameraRayThroughCenter(t *testing.T) {
	c := DefaultCamera()
	r := c.RayFromNDC(0, 0, 16.0/9.0)
	assert.True(t, r.Origin.ApproxEqual(c.Position))
	assert.True(t, r.Direction.ApproxEqualThreshold(c.Forward(), 1e-4))
}

func TestCameraRayOffCenter(t *testing.T) {
	c := Camera{Position: mgl32.Vec3{0, 0, 10}, Target: mgl32.Vec3{}, Up: mgl32.Vec3{0, 1, 0}, Fovy: 90, Near: 0.1, Far: 100}
	// top-right corner of a square viewport with a 90 degree fov is 45 degrees up and right
	r := c.RayFromNDC(1, 1, 1)
	want := mgl32.Vec3{1, 1, -1}.Normalize()
	assert.True(t, r.Direction.ApproxEqualThreshold(want, 1e-3), "got %v", r.Direction)
}

func TestCameraPoseForward(t *testing.T) {
	c := DefaultCamera()
	p := c.Pose()
	assert.True(t, p.Forward().ApproxEqualThreshold(c.Forward(), 1e-4))
}

func TestScreenToNDC(t *testing.T) {
	x, y := ScreenToNDC(0, 0, 800, 600)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = ScreenToNDC(400, 300, 800, 600)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)

	x, y = ScreenToNDC(800, 600, 800, 600)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)
}

func TestOrbit(t *testing.T) {
	c := DefaultCamera()
	o := NewOrbit(c)
	start := c.Position

	o.Update(&c)
	assert.Equal(t, start, c.Position, "no input leaves the camera alone")

	o.Rotate(100, 0)
	o.Update(&c)
	assert.InDelta(t, start.Len(), c.Position.Len(), 1e-3)
	assert.NotEqual(t, start, c.Position)

	o.Zoom(5)
	o.Update(&c)
	assert.InDelta(t, start.Len()-5, c.Position.Len(), 1e-3)

	o.Rotate(0, 1e6)
	o.Update(&c)
	assert.Less(t, c.Position[1], o.Distance+1e-3)
	assert.Greater(t, c.Position[1], float32(0))
}
