package interactable

import (
	"errors"
	"image/color"
	"testing"

	"card-toss/internal/geom"
	"card-toss/internal/physics"
	"card-toss/internal/scene"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1.0 / 60)

var green = scene.Material{Color: color.RGBA{0, 255, 0, 255}}

func newObject(t *testing.T) (*Object, *scene.Scene, *physics.World) {
	t.Helper()
	s := scene.New()
	w := physics.NewWorld()
	o, err := New(s, w, 1, green, mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{1, 1, 1}, DefaultOptions())
	require.NoError(t, err)
	return o, s, w
}

func cameraPose() geom.Pose {
	return scene.DefaultCamera().Pose()
}

type rejectingGraph struct {
	removed int
}

var errRejected = errors.New("rejected")

func (g *rejectingGraph) AddMesh(*scene.Mesh) error   { return errRejected }
func (g *rejectingGraph) RemoveMesh(*scene.Mesh) bool { g.removed++; return false }

func TestNewRegistersBodyAndMesh(t *testing.T) {
	o, s, w := newObject(t)
	assert.Equal(t, 1, o.ID())
	assert.Equal(t, Free, o.Mode())
	assert.Equal(t, physics.Dynamic, o.Body().Type)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, o.Body().HalfExtents)
	assert.Equal(t, o.Body().HalfExtents, o.Mesh().HalfExtents)
	assert.Equal(t, o.Body().Pose(), o.Mesh().Pose)
	assert.Contains(t, w.Bodies, o.Body())
	assert.Contains(t, s.Meshes(), o.Mesh())
}

func TestNewRejectsBadInput(t *testing.T) {
	s := scene.New()
	w := physics.NewWorld()

	_, err := New(s, w, 1, green, mgl32.Vec3{}, mgl32.Vec3{1, 0, 1}, DefaultOptions())
	assert.ErrorIs(t, err, geom.ErrInvalidExtents)

	_, err = New(s, w, 1, scene.Material{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, DefaultOptions())
	assert.ErrorIs(t, err, scene.ErrMissingMaterial)

	opts := DefaultOptions()
	opts.Mass = 0
	_, err = New(s, w, 1, green, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, opts)
	assert.ErrorIs(t, err, physics.ErrInvalidMass)

	assert.Empty(t, w.Bodies)
	assert.Empty(t, s.Meshes())
}

func TestNewRejectsNonFiniteInput(t *testing.T) {
	nan := math32.NaN()
	inf := math32.Inf(1)
	unit := mgl32.Vec3{1, 1, 1}
	withOpts := func(f func(*Options)) Options {
		o := DefaultOptions()
		f(&o)
		return o
	}
	cases := map[string]struct {
		position, dimensions mgl32.Vec3
		opts                 Options
	}{
		"nan dimensions":    {mgl32.Vec3{}, mgl32.Vec3{1, nan, 1}, DefaultOptions()},
		"inf dimensions":    {mgl32.Vec3{}, mgl32.Vec3{inf, 1, 1}, DefaultOptions()},
		"nan position":      {mgl32.Vec3{nan, 0, 0}, unit, DefaultOptions()},
		"inf position":      {mgl32.Vec3{0, -inf, 0}, unit, DefaultOptions()},
		"nan hold distance": {mgl32.Vec3{}, unit, withOpts(func(o *Options) { o.HoldDistance = nan })},
		"inf hold distance": {mgl32.Vec3{}, unit, withOpts(func(o *Options) { o.HoldDistance = inf })},
		"nan launch speed":  {mgl32.Vec3{}, unit, withOpts(func(o *Options) { o.LaunchSpeed = nan })},
		"inf launch speed":  {mgl32.Vec3{}, unit, withOpts(func(o *Options) { o.LaunchSpeed = inf })},
		"nan spin":          {mgl32.Vec3{}, unit, withOpts(func(o *Options) { o.Spin = nan })},
		"inf mass":          {mgl32.Vec3{}, unit, withOpts(func(o *Options) { o.Mass = inf })},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := scene.New()
			w := physics.NewWorld()
			_, err := New(s, w, 1, green, tc.position, tc.dimensions, tc.opts)
			assert.ErrorIs(t, err, geom.ErrNonFinite)
			assert.Empty(t, w.Bodies)
			assert.Empty(t, s.Meshes())
		})
	}
}

func TestNewRejectsOutOfRangeOptions(t *testing.T) {
	s := scene.New()
	w := physics.NewWorld()
	unit := mgl32.Vec3{1, 1, 1}

	opts := DefaultOptions()
	opts.HoldDistance = 0
	_, err := New(s, w, 1, green, mgl32.Vec3{}, unit, opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	opts = DefaultOptions()
	opts.LaunchSpeed = -1
	_, err = New(s, w, 1, green, mgl32.Vec3{}, unit, opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	opts = DefaultOptions()
	opts.LaunchSpeed = 0
	_, err = New(s, w, 1, green, mgl32.Vec3{}, unit, opts)
	assert.NoError(t, err)
}

func TestNewRollsBackBodyWhenMeshRejected(t *testing.T) {
	w := physics.NewWorld()
	g := &rejectingGraph{}
	_, err := New(g, w, 7, green, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, DefaultOptions())
	assert.ErrorIs(t, err, errRejected)
	assert.Empty(t, w.Bodies)
}

func TestToggleAlternates(t *testing.T) {
	o, _, _ := newObject(t)
	cam := cameraPose()
	for i := 1; i <= 7; i++ {
		got := o.Toggle(cam)
		if i%2 == 1 {
			assert.Equal(t, Held, got)
			assert.Equal(t, physics.Kinematic, o.Body().Type)
		} else {
			assert.Equal(t, Free, got)
			assert.Equal(t, physics.Dynamic, o.Body().Type)
		}
		assert.Equal(t, got, o.Mode())
	}
}

func TestPickupStopsBody(t *testing.T) {
	o, _, _ := newObject(t)
	o.Body().Velocity = mgl32.Vec3{3, -2, 1}
	o.Body().AngularVelocity = mgl32.Vec3{1, 1, 1}

	o.Toggle(cameraPose())
	assert.Equal(t, Held, o.Mode())
	assert.Equal(t, mgl32.Vec3{}, o.Body().Velocity)
	assert.Equal(t, mgl32.Vec3{}, o.Body().AngularVelocity)
}

func TestHeldFollowsCameraWithoutDrift(t *testing.T) {
	o, _, w := newObject(t)
	cam := cameraPose()
	o.Toggle(cam)

	w.Step(dt)
	o.Update(cam)
	first := o.Body().Pose()

	want := cam.Ahead(DefaultOptions().HoldDistance)
	assert.True(t, first.Position.ApproxEqualThreshold(want, 1e-4))
	assert.True(t, first.Orientation.ApproxEqualThreshold(cam.Orientation, 1e-4))
	assert.False(t, first.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0.5, 0}, 1e-2))

	for i := 0; i < 120; i++ {
		w.Step(dt)
		o.Update(cam)
		assert.Equal(t, first, o.Body().Pose())
		assert.Equal(t, o.Body().Pose(), o.Mesh().Pose)
		assert.Equal(t, mgl32.Vec3{}, o.Body().Velocity)
		assert.Equal(t, mgl32.Vec3{}, o.Body().AngularVelocity)
	}
}

func TestReleaseLaunchesAlongCameraForward(t *testing.T) {
	o, _, _ := newObject(t)
	cam := cameraPose()
	o.Toggle(cam)
	o.Update(cam)

	o.Toggle(cam)
	assert.Equal(t, Free, o.Mode())
	v := o.Body().Velocity
	require.Greater(t, v.Len(), float32(0))
	assert.InDelta(t, DefaultOptions().LaunchSpeed, v.Len(), 1e-3)
	assert.InDelta(t, 1, v.Normalize().Dot(cam.Forward()), 1e-4)
}

func TestReleaseSpinsAboutWorldUp(t *testing.T) {
	o, _, w := newObject(t)
	cam := cameraPose()
	o.Toggle(cam)
	o.Update(cam)
	held := o.Body().Orientation
	assert.Equal(t, mgl32.Vec3{}, o.Body().AngularVelocity)

	o.Toggle(cam)
	assert.Equal(t, mgl32.Vec3{0, DefaultOptions().Spin, 0}, o.Body().AngularVelocity)

	w.Step(dt)
	o.Update(cam)
	assert.False(t, o.Body().Orientation.ApproxEqualThreshold(held, 1e-5))
	assert.Equal(t, o.Body().Orientation, o.Mesh().Pose.Orientation)

	// picking it up again stops the spin
	o.Toggle(cam)
	assert.Equal(t, mgl32.Vec3{}, o.Body().AngularVelocity)
}

func TestReleaseWithoutSpin(t *testing.T) {
	s := scene.New()
	w := physics.NewWorld()
	opts := DefaultOptions()
	opts.Spin = 0
	o, err := New(s, w, 1, green, mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{1, 1, 1}, opts)
	require.NoError(t, err)
	cam := cameraPose()
	o.Toggle(cam)
	o.Toggle(cam)
	assert.Equal(t, mgl32.Vec3{}, o.Body().AngularVelocity)
}

func TestFreeCopiesSimulatedPose(t *testing.T) {
	o, _, w := newObject(t)
	cam := cameraPose()
	o.Toggle(cam)
	o.Update(cam)
	o.Toggle(cam)

	heldAt := o.Body().Position
	for i := 0; i < 30; i++ {
		w.Step(dt)
		o.Update(cam)
		assert.Equal(t, o.Body().Pose(), o.Mesh().Pose)
	}
	pos := o.Body().Position
	assert.False(t, pos.ApproxEqualThreshold(heldAt, 1e-2))
	// gravity keeps pulling the velocity down while free
	assert.Less(t, o.Body().Velocity[1], cam.Forward()[1]*DefaultOptions().LaunchSpeed)
}

func TestFreeUpdateOnlyCopies(t *testing.T) {
	o, _, _ := newObject(t)
	o.Body().Position = mgl32.Vec3{3, 4, 5}
	o.Body().Velocity = mgl32.Vec3{1, 0, 0}
	o.Update(cameraPose())
	assert.Equal(t, mgl32.Vec3{3, 4, 5}, o.Mesh().Pose.Position)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, o.Body().Velocity)
}

func TestDestroy(t *testing.T) {
	o, s, w := newObject(t)
	o.Destroy(s, w)
	assert.Empty(t, w.Bodies)
	assert.Empty(t, s.Meshes())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "free", Free.String())
	assert.Equal(t, "held", Held.String())
}
