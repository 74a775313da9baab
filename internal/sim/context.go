package sim

import (
	"fmt"

	"card-toss/internal/geom"
	"card-toss/internal/interactable"
	"card-toss/internal/logger"
	"card-toss/internal/physics"
	"card-toss/internal/picking"
	"card-toss/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// groundThickness is the height of the ground slab; its top face sits at
// groundTop.
const (
	groundThickness = 1
	groundTop       = 0
)

// NewContext returns an empty scene, world and picker sharing log.
func NewContext(log *logger.Logger) *Context {
	return &Context{
		Scene:  scene.New(),
		World:  physics.NewWorld(),
		Picker: picking.New(log),
		Log:    log,
	}
}

// AddCard builds an interactable object and makes it clickable. On any
// failure nothing is left behind in the scene or the world.
func (c *Context) AddCard(id int, mat scene.Material, position, dimensions mgl32.Vec3, opts interactable.Options) (*interactable.Object, error) {
	obj, err := interactable.New(c.Scene, c.World, id, mat, position, dimensions, opts)
	if err != nil {
		return nil, err
	}
	if err := c.Picker.Register(obj); err != nil {
		obj.Destroy(c.Scene, c.World)
		return nil, err
	}
	c.Objects = append(c.Objects, obj)
	return obj, nil
}

// AddGround adds a static slab of the given width and depth whose top face is
// at y=0, with a matching non-interactable mesh.
func (c *Context) AddGround(width, depth float32, mat scene.Material) error {
	half := mgl32.Vec3{width / 2, groundThickness / 2.0, depth / 2}
	pos := mgl32.Vec3{0, groundTop - groundThickness/2.0, 0}

	body, err := physics.NewBody(pos, half, 0, physics.Static)
	if err != nil {
		return fmt.Errorf("ground: %w", err)
	}
	mesh, err := scene.NewMesh("ground", half, mat)
	if err != nil {
		return fmt.Errorf("ground: %w", err)
	}
	mesh.SetPose(geom.NewPose(pos))

	if err := c.World.AddBody(body); err != nil {
		return fmt.Errorf("ground: %w", err)
	}
	if err := c.Scene.AddMesh(mesh); err != nil {
		c.World.RemoveBody(body)
		return fmt.Errorf("ground: %w", err)
	}
	return nil
}

// HeldCount returns how many objects are currently held.
func (c *Context) HeldCount() int {
	n := 0
	for _, o := range c.Objects {
		if o.Mode() == interactable.Held {
			n++
		}
	}
	return n
}
