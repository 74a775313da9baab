// Package picking turns pointer clicks into held/free toggles on interactable objects.
package picking

import (
	"errors"
	"fmt"

	"card-toss/internal/geom"
	"card-toss/internal/interactable"
	"card-toss/internal/logger"
	"card-toss/internal/scene"
)

// ErrDuplicateID is returned by Register when an id is already taken.
var ErrDuplicateID = errors.New("object id already registered")

// Intersector answers ray queries against the render graph, nearest hit first.
type Intersector interface {
	Intersect(ray geom.Ray) []scene.Hit
}

// Click is a pointer press captured with the camera as it was at event time.
type Click struct {
	X, Y          float32
	Width, Height int
	Camera        scene.Camera
}

// Controller resolves clicks to at most one object toggle each.
type Controller struct {
	// ExclusiveHold ignores clicks on free objects while another object is held.
	ExclusiveHold bool

	log     *logger.Logger
	owners  map[*scene.Mesh]*interactable.Object
	ids     map[int]*interactable.Object
	pending []Click
}

// New returns a controller with no registered objects. log may be nil.
func New(log *logger.Logger) *Controller {
	return &Controller{
		log:    log,
		owners: make(map[*scene.Mesh]*interactable.Object),
		ids:    make(map[int]*interactable.Object),
	}
}

// Register makes obj's mesh clickable.
func (c *Controller) Register(obj *interactable.Object) error {
	if _, ok := c.ids[obj.ID()]; ok {
		return fmt.Errorf("register %d: %w", obj.ID(), ErrDuplicateID)
	}
	c.ids[obj.ID()] = obj
	c.owners[obj.Mesh()] = obj
	return nil
}

// Objects returns the number of registered objects.
func (c *Controller) Objects() int {
	return len(c.ids)
}

// HandleClick casts a ray from camera through the pixel (x, y) of a
// width×height viewport and toggles the object owning the nearest hit.
// It returns that object, or nil when nothing interactable was hit.
func (c *Controller) HandleClick(x, y float32, width, height int, camera scene.Camera, graph Intersector) *interactable.Object {
	if width <= 0 || height <= 0 {
		return nil
	}
	nx, ny := scene.ScreenToNDC(x, y, width, height)
	ray := camera.RayFromNDC(nx, ny, float32(width)/float32(height))

	hits := graph.Intersect(ray)
	if len(hits) == 0 {
		return nil
	}
	nearest := hits[0]
	for _, h := range hits[1:] {
		if h.Distance < nearest.Distance {
			nearest = h
		}
	}
	obj, ok := c.owners[nearest.Mesh]
	if !ok {
		return nil
	}
	if c.ExclusiveHold && obj.Mode() == interactable.Free && c.holding() {
		return nil
	}

	mode := obj.Toggle(camera.Pose())
	if c.log != nil {
		verb := "picked up"
		if mode == interactable.Free {
			verb = "released"
		}
		c.log.Logf("card %d %s at %.2f", obj.ID(), verb, nearest.Distance)
	}
	return obj
}

// Enqueue stores a click to be applied by the next Flush.
func (c *Controller) Enqueue(click Click) {
	c.pending = append(c.pending, click)
}

// Flush applies queued clicks in arrival order against graph and returns how
// many toggled an object.
func (c *Controller) Flush(graph Intersector) int {
	if len(c.pending) == 0 {
		return 0
	}
	clicks := c.pending
	c.pending = nil
	n := 0
	for _, cl := range clicks {
		if c.HandleClick(cl.X, cl.Y, cl.Width, cl.Height, cl.Camera, graph) != nil {
			n++
		}
	}
	return n
}

// Held returns the currently held objects.
func (c *Controller) Held() []*interactable.Object {
	var out []*interactable.Object
	for _, o := range c.ids {
		if o.Mode() == interactable.Held {
			out = append(out, o)
		}
	}
	return out
}

func (c *Controller) holding() bool {
	for _, o := range c.ids {
		if o.Mode() == interactable.Held {
			return true
		}
	}
	return false
}
