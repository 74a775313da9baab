// Package interactable pairs one rigid body with one mesh and implements the
// held/free behaviour of a card the user can pick up and throw.
package interactable

import (
	"errors"
	"fmt"

	"card-toss/internal/geom"
	"card-toss/internal/physics"
	"card-toss/internal/scene"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode is the two-valued interaction state of an Object.
type Mode int

const (
	// Free objects are simulated by the physics world.
	Free Mode = iota
	// Held objects follow the camera and are ignored by integration.
	Held
)

func (m Mode) String() string {
	if m == Held {
		return "held"
	}
	return "free"
}

// World is the physics collaborator an Object registers its body with.
type World interface {
	AddBody(b *physics.Body) error
	RemoveBody(b *physics.Body) bool
}

// Graph is the scene collaborator an Object registers its mesh with.
type Graph interface {
	AddMesh(m *scene.Mesh) error
	RemoveMesh(m *scene.Mesh) bool
}

// Options tunes how an object is carried and thrown.
type Options struct {
	// HoldDistance is how far in front of the camera a held object floats.
	HoldDistance float32
	// LaunchSpeed is the speed along the camera forward axis on release.
	LaunchSpeed float32
	// Spin is the yaw rate in rad/s given to a thrown object.
	Spin float32
	// Mass of the body while free.
	Mass float32
}

// ErrInvalidOptions is returned for a finite but out-of-range option.
var ErrInvalidOptions = errors.New("invalid interaction options")

// DefaultOptions suits unit-sized cards viewed from about 30 units away.
func DefaultOptions() Options {
	return Options{HoldDistance: 5, LaunchSpeed: 30, Spin: 2, Mass: 1}
}

// Validate requires a positive hold distance, a non-negative launch speed
// and finite values throughout. Mass is checked by the physics body.
func (o Options) Validate() error {
	for _, v := range []float32{o.HoldDistance, o.LaunchSpeed, o.Spin, o.Mass} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return fmt.Errorf("options %+v: %w", o, geom.ErrNonFinite)
		}
	}
	if o.HoldDistance <= 0 {
		return fmt.Errorf("hold distance %v: %w", o.HoldDistance, ErrInvalidOptions)
	}
	if o.LaunchSpeed < 0 {
		return fmt.Errorf("launch speed %v: %w", o.LaunchSpeed, ErrInvalidOptions)
	}
	return nil
}

// Object is one interactive card: a body and a mesh updated as a unit.
type Object struct {
	id   int
	mode Mode
	opts Options
	body *physics.Body
	mesh *scene.Mesh
}

// New registers a box body of the given full dimensions at position in world,
// and a matching mesh drawn with mat in graph. Both are removed again if
// either registration fails.
func New(graph Graph, world World, id int, mat scene.Material, position, dimensions mgl32.Vec3, opts Options) (*Object, error) {
	if graph == nil || world == nil {
		return nil, fmt.Errorf("object %d: scene and world are required", id)
	}
	if err := geom.CheckExtents(dimensions); err != nil {
		return nil, fmt.Errorf("object %d: %w", id, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("object %d: %w", id, err)
	}
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("object %d: %w", id, err)
	}
	half := dimensions.Mul(0.5)

	body, err := physics.NewBody(position, half, opts.Mass, physics.Dynamic)
	if err != nil {
		return nil, fmt.Errorf("object %d: %w", id, err)
	}
	mesh, err := scene.NewMesh(fmt.Sprintf("card-%d", id), half, mat)
	if err != nil {
		return nil, fmt.Errorf("object %d: %w", id, err)
	}
	mesh.SetPose(body.Pose())

	if err := world.AddBody(body); err != nil {
		return nil, fmt.Errorf("object %d: add body: %w", id, err)
	}
	if err := graph.AddMesh(mesh); err != nil {
		world.RemoveBody(body)
		return nil, fmt.Errorf("object %d: add mesh: %w", id, err)
	}
	return &Object{id: id, mode: Free, opts: opts, body: body, mesh: mesh}, nil
}

// ID returns the object's identifier.
func (o *Object) ID() int { return o.id }

// Mode returns the current interaction state.
func (o *Object) Mode() Mode { return o.mode }

// Body returns the physics body. Callers must not change its pose or type.
func (o *Object) Body() *physics.Body { return o.body }

// Mesh returns the render mesh. Callers must not change its pose.
func (o *Object) Mesh() *scene.Mesh { return o.mesh }

// Update runs once per tick after the physics step. A held object is first
// posed in front of the camera and stopped; in both modes the mesh then
// copies the body pose.
func (o *Object) Update(camera geom.Pose) {
	if o.mode == Held {
		o.body.SetPose(geom.Pose{
			Position:    camera.Ahead(o.opts.HoldDistance),
			Orientation: camera.Orientation,
		})
		o.body.Stop()
	}
	o.mesh.SetPose(o.body.Pose())
}

// Toggle flips between Free and Held and returns the new mode. Picking up
// makes the body kinematic and stops it; releasing makes it dynamic, launches
// it along the camera forward axis and sets it spinning about world up.
func (o *Object) Toggle(camera geom.Pose) Mode {
	switch o.mode {
	case Free:
		o.body.SetType(physics.Kinematic)
		o.body.Stop()
		o.mode = Held
	case Held:
		o.body.SetType(physics.Dynamic)
		o.body.ApplyImpulse(camera.Forward().Mul(o.opts.LaunchSpeed * o.body.Mass))
		o.body.AngularVelocity = mgl32.Vec3{0, o.opts.Spin, 0}
		o.mode = Free
	}
	return o.mode
}

// Destroy removes the body and mesh from their collaborators.
func (o *Object) Destroy(graph Graph, world World) {
	graph.RemoveMesh(o.mesh)
	world.RemoveBody(o.body)
}
