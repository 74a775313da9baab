package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"card-toss/internal/geom"
	"card-toss/internal/sim"

	"github.com/go-gl/mathgl/mgl32"
)

// HUD is the overlay the hud command toggles.
type HUD interface {
	SetShowFPS(show bool)
	SetShowHeld(show bool)
	Shown() (fps, held bool)
}

// Deps are what the built-in commands act on. Save may be nil.
type Deps struct {
	Sim  *sim.Context
	HUD  HUD
	Save func() error
}

// RegisterDefaults adds hud, gravity, cards and save to r.
func RegisterDefaults(r *Registry, d Deps) {
	r.Register("hud", "hud [--fps=true|false] [--held=true|false]", func(args []string) (string, error) {
		fs, out := newFlagSet("hud")
		fps := fs.Bool("fps", false, "show frames per second")
		held := fs.Bool("held", false, "show held card count")
		if err := fs.Parse(args); err != nil {
			return out.String(), err
		}
		if fs.NArg() > 0 {
			return "", fmt.Errorf("hud: unexpected argument %q", fs.Arg(0))
		}
		if d.HUD == nil {
			return "", errors.New("hud: no overlay")
		}
		// only flags given on this line change the overlay
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "fps":
				d.HUD.SetShowFPS(*fps)
			case "held":
				d.HUD.SetShowHeld(*held)
			}
		})
		showFPS, showHeld := d.HUD.Shown()
		return fmt.Sprintf("hud fps=%t held=%t", showFPS, showHeld), nil
	})

	r.Register("gravity", "gravity [X Y Z]: show or set gravity", func(args []string) (string, error) {
		w := d.Sim.World
		switch len(args) {
		case 0:
		case 3:
			var g mgl32.Vec3
			for i, a := range args {
				f, err := strconv.ParseFloat(a, 32)
				if err != nil {
					return "", fmt.Errorf("gravity: %q: %w", a, err)
				}
				g[i] = float32(f)
			}
			if !geom.Finite(g) {
				return "", fmt.Errorf("gravity %v: %w", g, geom.ErrNonFinite)
			}
			w.SetGravity(g)
		default:
			return "", errors.New("gravity: want 0 or 3 numbers")
		}
		return fmt.Sprintf("gravity %.2f %.2f %.2f", w.Gravity[0], w.Gravity[1], w.Gravity[2]), nil
	})

	r.Register("cards", "cards: list cards with mode and position", func([]string) (string, error) {
		if len(d.Sim.Objects) == 0 {
			return "no cards", nil
		}
		lines := make([]string, 0, len(d.Sim.Objects))
		for _, o := range d.Sim.Objects {
			p := o.Body().Position
			lines = append(lines, fmt.Sprintf("card %d %s (%.2f, %.2f, %.2f)", o.ID(), o.Mode(), p[0], p[1], p[2]))
		}
		return strings.Join(lines, "\n"), nil
	})

	r.Register("save", "save: write the current config", func([]string) (string, error) {
		if d.Save == nil {
			return "", errors.New("save: not available")
		}
		if err := d.Save(); err != nil {
			return "", fmt.Errorf("save: %w", err)
		}
		return "saved", nil
	})
}

func newFlagSet(name string) (*flag.FlagSet, *bytes.Buffer) {
	var out bytes.Buffer
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(&out)
	return fs, &out
}
