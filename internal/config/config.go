package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"card-toss/internal/geom"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/cards.yaml"

// Config holds everything the process reads at startup.
type Config struct {
	Window      Window      `yaml:"window"`
	Camera      Camera      `yaml:"camera"`
	Physics     Physics     `yaml:"physics"`
	Interaction Interaction `yaml:"interaction"`
	Cards       Cards       `yaml:"cards"`
	HUD         HUD         `yaml:"hud"`
	Skybox      string      `yaml:"skybox,omitempty"`
	LogPath     string      `yaml:"log_path"`
}

type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type Camera struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Fovy     float32    `yaml:"fovy"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

type Physics struct {
	// FixedStep is the simulation timestep in seconds.
	FixedStep   float32    `yaml:"fixed_step"`
	Gravity     [3]float32 `yaml:"gravity"`
	GroundSize  float32    `yaml:"ground_size"`
	GroundColor string     `yaml:"ground_color"`
}

type Interaction struct {
	HoldDistance  float32 `yaml:"hold_distance"`
	LaunchSpeed   float32 `yaml:"launch_speed"`
	ReleaseSpin   float32 `yaml:"release_spin"`
	ExclusiveHold bool    `yaml:"exclusive_hold"`
}

// Cards describes the deck laid out at startup.
type Cards struct {
	// Size is the full width, height and thickness of every card.
	Size  [3]float32 `yaml:"size"`
	Mass  float32    `yaml:"mass"`
	Items []Card     `yaml:"items"`
}

// Card is one entry of the deck. Either Color or Texture must be set.
type Card struct {
	ID       int        `yaml:"id"`
	Color    string     `yaml:"color,omitempty"`
	Texture  string     `yaml:"texture,omitempty"`
	Position [3]float32 `yaml:"position"`
}

type HUD struct {
	ShowFPS  bool `yaml:"show_fps"`
	ShowHeld bool `yaml:"show_held"`
}

// Default returns a six-card deck standing in a row in front of the default camera.
func Default() Config {
	palette := []string{"#e63946", "#f1a208", "#2a9d8f", "#457b9d", "#8338ec", "#ff006e"}
	items := make([]Card, len(palette))
	for i, c := range palette {
		items[i] = Card{
			ID:       i + 1,
			Color:    c,
			Position: [3]float32{float32(i)*3 - 7.5, 1.5, 0},
		}
	}
	return Config{
		Window: Window{Title: "card toss", Width: 1280, Height: 720, TargetFPS: 60},
		Camera: Camera{
			Position: [3]float32{0, 10, 30},
			Fovy:     75,
			Near:     0.1,
			Far:      1000,
		},
		Physics: Physics{
			FixedStep:   1.0 / 60,
			Gravity:     [3]float32{0, -9.8, 0},
			GroundSize:  100,
			GroundColor: "#3a3f47",
		},
		Interaction: Interaction{HoldDistance: 8, LaunchSpeed: 30, ReleaseSpin: 2},
		Cards: Cards{
			Size:  [3]float32{2, 3, 0.1},
			Mass:  1,
			Items: items,
		},
		HUD:     HUD{ShowFPS: true, ShowHeld: true},
		LogPath: "logs/cards.log",
	}
}

// Load reads path over Default. A missing file yields Default and no error;
// a malformed or invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if !finite(c.Camera.Fovy, c.Camera.Near, c.Camera.Far) {
		errs = append(errs, fmt.Errorf("camera fovy/near/far %v/%v/%v: %w", c.Camera.Fovy, c.Camera.Near, c.Camera.Far, geom.ErrNonFinite))
	} else {
		if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
			errs = append(errs, fmt.Errorf("camera fovy %v out of range (0, 180)", c.Camera.Fovy))
		}
		if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
			errs = append(errs, fmt.Errorf("camera near/far %v/%v invalid", c.Camera.Near, c.Camera.Far))
		}
	}
	if !finite(c.Camera.Position[:]...) || !finite(c.Camera.Target[:]...) {
		errs = append(errs, fmt.Errorf("camera position %v target %v: %w", c.Camera.Position, c.Camera.Target, geom.ErrNonFinite))
	} else if c.Camera.Position == c.Camera.Target {
		errs = append(errs, errors.New("camera position equals target"))
	}
	if !finite(c.Physics.Gravity[:]...) {
		errs = append(errs, fmt.Errorf("physics gravity %v: %w", c.Physics.Gravity, geom.ErrNonFinite))
	}
	errs = appendPositive(errs, "physics fixed_step", c.Physics.FixedStep)
	errs = appendPositive(errs, "physics ground_size", c.Physics.GroundSize)
	if _, err := ParseColor(c.Physics.GroundColor); err != nil {
		errs = append(errs, fmt.Errorf("physics ground_color: %w", err))
	}
	errs = appendPositive(errs, "interaction hold_distance", c.Interaction.HoldDistance)
	if !finite(c.Interaction.LaunchSpeed) {
		errs = append(errs, fmt.Errorf("interaction launch_speed %v: %w", c.Interaction.LaunchSpeed, geom.ErrNonFinite))
	} else if c.Interaction.LaunchSpeed < 0 {
		errs = append(errs, fmt.Errorf("interaction launch_speed %v must not be negative", c.Interaction.LaunchSpeed))
	}
	if !finite(c.Interaction.ReleaseSpin) {
		errs = append(errs, fmt.Errorf("interaction release_spin %v: %w", c.Interaction.ReleaseSpin, geom.ErrNonFinite))
	}
	for i, v := range c.Cards.Size {
		errs = appendPositive(errs, fmt.Sprintf("cards size[%d]", i), v)
	}
	errs = appendPositive(errs, "cards mass", c.Cards.Mass)
	seen := make(map[int]bool, len(c.Cards.Items))
	for _, it := range c.Cards.Items {
		if seen[it.ID] {
			errs = append(errs, fmt.Errorf("card id %d is duplicated", it.ID))
		}
		seen[it.ID] = true
		if !finite(it.Position[:]...) {
			errs = append(errs, fmt.Errorf("card %d position %v: %w", it.ID, it.Position, geom.ErrNonFinite))
		}
		if it.Color == "" && it.Texture == "" {
			errs = append(errs, fmt.Errorf("card %d needs a color or a texture", it.ID))
		}
		if it.Color != "" {
			if _, err := ParseColor(it.Color); err != nil {
				errs = append(errs, fmt.Errorf("card %d: %w", it.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func appendPositive(errs []error, name string, v float32) []error {
	switch {
	case !finite(v):
		return append(errs, fmt.Errorf("%s %v: %w", name, v, geom.ErrNonFinite))
	case v <= 0:
		return append(errs, fmt.Errorf("%s %v must be positive", name, v))
	}
	return errs
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
