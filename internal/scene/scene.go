package scene

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"card-toss/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrMissingMaterial is returned for a mesh with neither a texture nor a visible color.
	ErrMissingMaterial = errors.New("material needs a texture or a non-transparent color")
	// ErrDuplicateNode is returned when a node is added to the graph twice.
	ErrDuplicateNode = errors.New("node already in scene")
	// ErrNilNode is returned when adding a nil node.
	ErrNilNode = errors.New("nil node")
)

// Material describes how a mesh is drawn. Texture is a path resolved by the
// renderer; when empty the mesh is drawn with Color only.
type Material struct {
	Color   color.RGBA
	Texture string
}

// Validate reports ErrMissingMaterial when nothing would be drawn.
func (m Material) Validate() error {
	if m.Texture == "" && m.Color.A == 0 {
		return ErrMissingMaterial
	}
	return nil
}

// Node is an element of the render hierarchy: a *Group or a *Mesh.
type Node interface {
	NodeName() string
	IsVisible() bool
}

// Mesh is a box-shaped drawable with a world-space pose.
type Mesh struct {
	Name        string
	HalfExtents mgl32.Vec3
	Material    Material
	Pose        geom.Pose
	Visible     bool
	parent      *Group
}

// NewMesh returns a visible mesh at the origin.
func NewMesh(name string, halfExtents mgl32.Vec3, mat Material) (*Mesh, error) {
	if err := geom.CheckExtents(halfExtents); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}
	return &Mesh{
		Name:        name,
		HalfExtents: halfExtents,
		Material:    mat,
		Pose:        geom.NewPose(mgl32.Vec3{}),
		Visible:     true,
	}, nil
}

func (m *Mesh) NodeName() string { return m.Name }
func (m *Mesh) IsVisible() bool  { return m.Visible }

// SetPose moves the mesh.
func (m *Mesh) SetPose(p geom.Pose) {
	m.Pose = p
}

// Transform returns the model matrix: translate * rotate * scale(full size).
func (m *Mesh) Transform() mgl32.Mat4 {
	size := m.HalfExtents.Mul(2)
	t := mgl32.Translate3D(m.Pose.Position[0], m.Pose.Position[1], m.Pose.Position[2])
	r := m.Pose.Orientation.Normalize().Mat4()
	s := mgl32.Scale3D(size[0], size[1], size[2])
	return t.Mul4(r).Mul4(s)
}

// Group collects child nodes. Children keep their own world-space poses.
type Group struct {
	Name     string
	Visible  bool
	Children []Node
	parent   *Group
}

// NewGroup returns an empty visible group.
func NewGroup(name string) *Group {
	return &Group{Name: name, Visible: true}
}

func (g *Group) NodeName() string { return g.Name }
func (g *Group) IsVisible() bool  { return g.Visible }

// Add appends n as a child of g.
func (g *Group) Add(n Node) error {
	switch c := n.(type) {
	case nil:
		return ErrNilNode
	case *Mesh:
		if c == nil {
			return ErrNilNode
		}
		if c.parent != nil {
			return fmt.Errorf("mesh %q: %w", c.Name, ErrDuplicateNode)
		}
		if err := c.Material.Validate(); err != nil {
			return fmt.Errorf("mesh %q: %w", c.Name, err)
		}
		if err := geom.CheckExtents(c.HalfExtents); err != nil {
			return fmt.Errorf("mesh %q: %w", c.Name, err)
		}
		c.parent = g
	case *Group:
		if c == nil {
			return ErrNilNode
		}
		if c.parent != nil || c == g {
			return fmt.Errorf("group %q: %w", c.Name, ErrDuplicateNode)
		}
		c.parent = g
	default:
		return fmt.Errorf("unsupported node %T", n)
	}
	g.Children = append(g.Children, n)
	return nil
}

// Remove detaches a direct child. It reports whether n was a child of g.
func (g *Group) Remove(n Node) bool {
	for i, c := range g.Children {
		if c != n {
			continue
		}
		g.Children = append(g.Children[:i], g.Children[i+1:]...)
		switch v := n.(type) {
		case *Mesh:
			v.parent = nil
		case *Group:
			v.parent = nil
		}
		return true
	}
	return false
}

// Walk calls fn for every visible mesh under g, depth first.
func (g *Group) Walk(fn func(m *Mesh)) {
	if !g.Visible {
		return
	}
	for _, c := range g.Children {
		switch v := c.(type) {
		case *Mesh:
			if v.Visible {
				fn(v)
			}
		case *Group:
			v.Walk(fn)
		}
	}
}

// Hit is one ray intersection.
type Hit struct {
	Mesh     *Mesh
	Distance float32
	Point    mgl32.Vec3
}

// Intersect returns every visible mesh under g hit by ray, nearest first.
func (g *Group) Intersect(ray geom.Ray) []Hit {
	var hits []Hit
	g.Walk(func(m *Mesh) {
		d, ok := ray.IntersectBox(m.Pose, m.HalfExtents)
		if !ok {
			return
		}
		hits = append(hits, Hit{Mesh: m, Distance: d, Point: ray.At(d)})
	})
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Light is a single directional light plus an ambient term.
type Light struct {
	// Direction points from the scene toward the light.
	Direction mgl32.Vec3
	Ambient   color.RGBA
}

// Scene owns the render hierarchy, the camera and the light.
type Scene struct {
	Camera Camera
	Light  Light
	Root   *Group
}

// New returns an empty scene with the default camera.
func New() *Scene {
	return &Scene{
		Camera: DefaultCamera(),
		Light: Light{
			Direction: mgl32.Vec3{0.5, 1, 0.5},
			Ambient:   color.RGBA{51, 56, 66, 255},
		},
		Root: NewGroup("root"),
	}
}

// AddMesh adds m to the root group.
func (s *Scene) AddMesh(m *Mesh) error {
	return s.Root.Add(m)
}

// RemoveMesh detaches m from whichever group holds it.
func (s *Scene) RemoveMesh(m *Mesh) bool {
	if m == nil || m.parent == nil {
		return false
	}
	return m.parent.Remove(m)
}

// Intersect ray-casts against every visible mesh in the scene.
func (s *Scene) Intersect(ray geom.Ray) []Hit {
	return s.Root.Intersect(ray)
}

// Meshes returns the visible meshes in draw order.
func (s *Scene) Meshes() []*Mesh {
	var out []*Mesh
	s.Root.Walk(func(m *Mesh) { out = append(out, m) })
	return out
}
