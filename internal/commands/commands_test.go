package commands

import (
	"errors"
	"image/color"
	"testing"

	"card-toss/internal/geom"
	"card-toss/internal/interactable"
	"card-toss/internal/logger"
	"card-toss/internal/scene"
	"card-toss/internal/sim"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHUD struct{ fps, held bool }

func (h *fakeHUD) SetShowFPS(v bool)   { h.fps = v }
func (h *fakeHUD) SetShowHeld(v bool)  { h.held = v }
func (h *fakeHUD) Shown() (bool, bool) { return h.fps, h.held }

func setup(t *testing.T, save func() error) (*Registry, *sim.Context, *fakeHUD) {
	t.Helper()
	ctx := sim.NewContext(logger.New(""))
	mat := scene.Material{Color: color.RGBA{1, 2, 3, 255}}
	_, err := ctx.AddCard(7, mat, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 1, 1}, interactable.DefaultOptions())
	require.NoError(t, err)
	hud := &fakeHUD{fps: true, held: true}
	r := NewRegistry()
	RegisterDefaults(r, Deps{Sim: ctx, HUD: hud, Save: save})
	return r, ctx, hud
}

func TestParse(t *testing.T) {
	assert.Equal(t, []string{"gravity", "0", "-1", "0"}, Parse("  /gravity 0 -1  0 "))
	assert.Empty(t, Parse("   "))
}

func TestExecuteUnknownAndEmpty(t *testing.T) {
	r := NewRegistry()
	_, err := r.Execute(nil)
	assert.Error(t, err)
	_, err = r.Execute([]string{"fly"})
	assert.ErrorContains(t, err, "unknown command: fly")
}

func TestHelpListsCommands(t *testing.T) {
	r, _, _ := setup(t, nil)
	assert.Equal(t, []string{"cards", "gravity", "help", "hud", "save"}, r.Names())
	out, err := r.Execute([]string{"help"})
	require.NoError(t, err)
	assert.Contains(t, out, "gravity [X Y Z]")
}

func TestHUD(t *testing.T) {
	r, _, hud := setup(t, nil)
	out, err := r.Execute(Parse("hud --fps=false"))
	require.NoError(t, err)
	assert.Equal(t, "hud fps=false held=true", out)
	assert.False(t, hud.fps)
	assert.True(t, hud.held)

	// a bare call only reports
	out, err = r.Execute(Parse("hud"))
	require.NoError(t, err)
	assert.Equal(t, "hud fps=false held=true", out)
	assert.False(t, hud.fps)

	_, err = r.Execute(Parse("hud --bogus"))
	assert.Error(t, err)
	_, err = r.Execute(Parse("hud on"))
	assert.Error(t, err)
}

func TestHUDPartialCallsKeepOtherLine(t *testing.T) {
	r, _, hud := setup(t, nil)
	_, err := r.Execute(Parse("hud --held=false"))
	require.NoError(t, err)
	out, err := r.Execute(Parse("hud --fps=false"))
	require.NoError(t, err)
	assert.False(t, hud.fps)
	assert.False(t, hud.held)
	assert.Equal(t, "hud fps=false held=false", out)

	_, err = r.Execute(Parse("hud --held"))
	require.NoError(t, err)
	assert.False(t, hud.fps)
	assert.True(t, hud.held)
}

func TestGravity(t *testing.T) {
	r, ctx, _ := setup(t, nil)
	out, err := r.Execute(Parse("gravity"))
	require.NoError(t, err)
	assert.Equal(t, "gravity 0.00 -9.80 0.00", out)

	_, err = r.Execute(Parse("gravity 0 -1.5 0"))
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, -1.5, 0}, ctx.World.Gravity)

	_, err = r.Execute(Parse("gravity 1 2"))
	assert.Error(t, err)
	_, err = r.Execute(Parse("gravity a b c"))
	assert.Error(t, err)
	assert.Equal(t, mgl32.Vec3{0, -1.5, 0}, ctx.World.Gravity)
}

func TestGravityRejectsNonFinite(t *testing.T) {
	r, ctx, _ := setup(t, nil)
	for _, line := range []string{"gravity NaN 0 0", "gravity 0 Inf 0", "gravity 0 0 -infinity"} {
		_, err := r.Execute(Parse(line))
		assert.ErrorIs(t, err, geom.ErrNonFinite, line)
	}
	assert.Equal(t, mgl32.Vec3{0, -9.8, 0}, ctx.World.Gravity)
}

func TestCards(t *testing.T) {
	r, ctx, _ := setup(t, nil)
	out, err := r.Execute(Parse("cards"))
	require.NoError(t, err)
	assert.Equal(t, "card 7 free (1.00, 2.00, 3.00)", out)

	ctx.Objects[0].Toggle(ctx.Scene.Camera.Pose())
	out, err = r.Execute(Parse("cards"))
	require.NoError(t, err)
	assert.Contains(t, out, "card 7 held")
}

func TestSave(t *testing.T) {
	r, _, _ := setup(t, nil)
	_, err := r.Execute(Parse("save"))
	assert.Error(t, err)

	calls := 0
	r, _, _ = setup(t, func() error { calls++; return nil })
	out, err := r.Execute(Parse("save"))
	require.NoError(t, err)
	assert.Equal(t, "saved", out)
	assert.Equal(t, 1, calls)

	boom := errors.New("disk full")
	r, _, _ = setup(t, func() error { return boom })
	_, err = r.Execute(Parse("save"))
	assert.ErrorIs(t, err, boom)
}
