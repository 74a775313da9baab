package config

import (
	"fmt"
	"strconv"
	"strings"

	"card-toss/internal/geom"
)

// Environment variables that override file values.
const (
	EnvPath          = "CARDS_CONFIG"
	EnvHoldDistance  = "CARDS_HOLD_DISTANCE"
	EnvLaunchSpeed   = "CARDS_LAUNCH_SPEED"
	EnvExclusiveHold = "CARDS_EXCLUSIVE_HOLD"
	EnvFullscreen    = "CARDS_FULLSCREEN"
	EnvLogPath       = "CARDS_LOG_PATH"
)

// PathFromEnv returns the config path named by CARDS_CONFIG, or DefaultPath.
func PathFromEnv(lookup func(string) (string, bool)) string {
	if p, ok := lookup(EnvPath); ok && strings.TrimSpace(p) != "" {
		return strings.TrimSpace(p)
	}
	return DefaultPath
}

// ApplyEnv overlays CARDS_* variables on c and re-validates the result.
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if err := envFloat(lookup, EnvHoldDistance, &c.Interaction.HoldDistance); err != nil {
		return err
	}
	if err := envFloat(lookup, EnvLaunchSpeed, &c.Interaction.LaunchSpeed); err != nil {
		return err
	}
	if err := envBool(lookup, EnvExclusiveHold, &c.Interaction.ExclusiveHold); err != nil {
		return err
	}
	if err := envBool(lookup, EnvFullscreen, &c.Window.Fullscreen); err != nil {
		return err
	}
	if v, ok := lookup(EnvLogPath); ok && v != "" {
		c.LogPath = v
	}
	return c.Validate()
}

func envFloat(lookup func(string) (string, bool), key string, dst *float32) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if !finite(float32(f)) {
		return fmt.Errorf("%s %q: %w", key, v, geom.ErrNonFinite)
	}
	*dst = float32(f)
	return nil
}

func envBool(lookup func(string) (string, bool), key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
