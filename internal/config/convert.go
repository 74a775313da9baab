package config

import (
	"context"
	"fmt"

	"card-toss/internal/interactable"
	"card-toss/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec converts a YAML triple.
func Vec(a [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{a[0], a[1], a[2]}
}

// SceneCamera returns the configured camera with +Y up.
func (c Config) SceneCamera() scene.Camera {
	return scene.Camera{
		Position: Vec(c.Camera.Position),
		Target:   Vec(c.Camera.Target),
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     c.Camera.Fovy,
		Near:     c.Camera.Near,
		Far:      c.Camera.Far,
	}
}

// Options returns the per-card interaction options.
func (c Config) Options() interactable.Options {
	return interactable.Options{
		HoldDistance: c.Interaction.HoldDistance,
		LaunchSpeed:  c.Interaction.LaunchSpeed,
		Spin:         c.Interaction.ReleaseSpin,
		Mass:         c.Cards.Mass,
	}
}

// Material returns the material for a deck entry.
func (it Card) Material() (scene.Material, error) {
	m := scene.Material{Texture: it.Texture}
	if it.Color != "" {
		rgba, err := ParseColor(it.Color)
		if err != nil {
			return m, err
		}
		m.Color = rgba
	}
	return m, nil
}

// GroundMaterial returns the material of the ground slab.
func (c Config) GroundMaterial() (scene.Material, error) {
	rgba, err := ParseColor(c.Physics.GroundColor)
	return scene.Material{Color: rgba}, err
}

// Resolver maps an image reference (path or URL) to a local file path.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// ResolveAssets returns a copy of c whose card textures and skybox point at
// local files. c itself is left as written so it can be saved back unchanged.
func (c Config) ResolveAssets(ctx context.Context, r Resolver) (Config, error) {
	out := c
	out.Cards.Items = make([]Card, len(c.Cards.Items))
	copy(out.Cards.Items, c.Cards.Items)
	for i, it := range out.Cards.Items {
		p, err := r.Resolve(ctx, it.Texture)
		if err != nil {
			return c, fmt.Errorf("card %d texture: %w", it.ID, err)
		}
		out.Cards.Items[i].Texture = p
	}
	sky, err := r.Resolve(ctx, c.Skybox)
	if err != nil {
		return c, fmt.Errorf("skybox: %w", err)
	}
	out.Skybox = sky
	return out, nil
}
