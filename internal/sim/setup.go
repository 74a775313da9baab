package sim

import (
	"fmt"

	"card-toss/internal/config"
	"card-toss/internal/interactable"
	"card-toss/internal/logger"
)

// FromConfig builds a context with the configured camera, gravity, ground and deck.
func FromConfig(cfg config.Config, log *logger.Logger) (*Context, error) {
	ctx := NewContext(log)
	ctx.Scene.Camera = cfg.SceneCamera()
	ctx.World.SetGravity(config.Vec(cfg.Physics.Gravity))
	ctx.Picker.ExclusiveHold = cfg.Interaction.ExclusiveHold

	ground, err := cfg.GroundMaterial()
	if err != nil {
		return nil, err
	}
	if err := ctx.AddGround(cfg.Physics.GroundSize, cfg.Physics.GroundSize, ground); err != nil {
		return nil, err
	}

	size := config.Vec(cfg.Cards.Size)
	opts := cfg.Options()
	for _, it := range cfg.Cards.Items {
		mat, err := it.Material()
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", it.ID, err)
		}
		if _, err := ctx.AddCard(it.ID, mat, config.Vec(it.Position), size, opts); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// Snapshot returns cfg with the live gravity and each card's current position.
// Held cards and cards whose centre has dropped below the ground top keep
// their configured position. Pass the config as read from disk so process
// overrides are not written back.
func (c *Context) Snapshot(cfg config.Config) config.Config {
	g := c.World.Gravity
	cfg.Physics.Gravity = [3]float32{g[0], g[1], g[2]}

	byID := make(map[int][3]float32, len(c.Objects))
	for _, o := range c.Objects {
		p := o.Body().Position
		if o.Mode() == interactable.Held || p[1] < groundTop {
			continue
		}
		byID[o.ID()] = [3]float32{p[0], p[1], p[2]}
	}
	items := make([]config.Card, len(cfg.Cards.Items))
	copy(items, cfg.Cards.Items)
	for i, it := range items {
		if p, ok := byID[it.ID]; ok {
			items[i].Position = p
		}
	}
	cfg.Cards.Items = items
	return cfg
}
