package graphics

import (
	"card-toss/internal/debug"
	"card-toss/internal/logger"
	"card-toss/internal/scene"
	"card-toss/internal/terminal"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer draws a scene with raylib: skybox, every visible mesh as a lit box,
// then the 2D overlays. GPU resources are created on the first Render call so
// they exist only after the window is open.
type Renderer struct {
	Background rl.Color
	HUD        *debug.HUD
	Console    *terminal.Terminal

	log      *logger.Logger
	sky      *skybox
	ready    bool
	cube     rl.Mesh
	lit      rl.Material
	textured rl.Material
	shaders  []rl.Shader
	textures map[string]rl.Texture2D
}

// NewRenderer returns a renderer. skyboxPath may be empty to use the default
// assets/skybox location.
func NewRenderer(log *logger.Logger, skyboxPath string) *Renderer {
	return &Renderer{
		Background: rl.NewColor(20, 22, 28, 255),
		log:        log,
		sky:        newSkybox(skyboxPath),
		textures:   make(map[string]rl.Texture2D),
	}
}

func (r *Renderer) ensure() {
	if r.ready {
		return
	}
	r.ready = true
	// unit cube, scaled per mesh to its full size
	r.cube = rl.GenMeshCube(1, 1, 1)
	r.lit = rl.LoadMaterialDefault()
	if s := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(s) {
		r.lit.Shader = s
		r.shaders = append(r.shaders, s)
	}
	r.textured = rl.LoadMaterialDefault()
	if albedo := r.textured.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	if s := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(s) {
		r.textured.Shader = s
		r.shaders = append(r.shaders, s)
	}
}

// Render draws one frame of s.
func (r *Renderer) Render(s *scene.Scene) {
	r.ensure()
	cam := rayCamera(s.Camera)

	rl.BeginDrawing()
	rl.ClearBackground(r.Background)
	rl.BeginMode3D(cam)
	if r.sky != nil {
		r.sky.draw(cam.Position, s.Camera.Far)
	}
	r.setLight(r.lit.Shader, s)
	r.setLight(r.textured.Shader, s)
	s.Root.Walk(r.drawMesh)
	rl.EndMode3D()

	if r.HUD != nil {
		r.HUD.Draw()
	}
	if r.Console != nil {
		r.Console.Draw()
	}
	rl.EndDrawing()
}

func (r *Renderer) drawMesh(m *scene.Mesh) {
	transform := toMatrix(m.Transform())
	c := m.Material.Color
	if tex, ok := r.texture(m.Material.Texture); ok {
		rl.SetMaterialTexture(&r.textured, rl.MapAlbedo, tex)
		if albedo := r.textured.GetMap(rl.MapAlbedo); albedo != nil {
			if c.A == 0 {
				albedo.Color = rl.White
			} else {
				albedo.Color = rl.NewColor(c.R, c.G, c.B, c.A)
			}
		}
		rl.DrawMesh(r.cube, r.textured, transform)
		return
	}
	if albedo := r.lit.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(c.R, c.G, c.B, c.A)
	}
	rl.DrawMesh(r.cube, r.lit, transform)
}

// texture returns the cached texture for path, loading it on first use.
// Paths that fail to load are remembered and reported once.
func (r *Renderer) texture(path string) (rl.Texture2D, bool) {
	if path == "" {
		return rl.Texture2D{}, false
	}
	tex, ok := r.textures[path]
	if !ok {
		tex = rl.LoadTexture(path)
		r.textures[path] = tex
		if !rl.IsTextureValid(tex) && r.log != nil {
			r.log.Logf("texture %s could not be loaded, drawing color only", path)
		}
	}
	return tex, rl.IsTextureValid(tex)
}

// Unload frees GPU resources. Call before Close.
func (r *Renderer) Unload() {
	for _, tex := range r.textures {
		if rl.IsTextureValid(tex) {
			rl.UnloadTexture(tex)
		}
	}
	r.textures = make(map[string]rl.Texture2D)
	if r.sky != nil {
		r.sky.unload()
	}
	if r.ready {
		rl.UnloadMesh(&r.cube)
		r.ready = false
	}
	// only shaders loaded in ensure; the default shader belongs to raylib
	for _, s := range r.shaders {
		rl.UnloadShader(s)
	}
	r.shaders = nil
}

func rayCamera(c scene.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(c.Position[0], c.Position[1], c.Position[2]),
		Target:     rl.NewVector3(c.Target[0], c.Target[1], c.Target[2]),
		Up:         rl.NewVector3(c.Up[0], c.Up[1], c.Up[2]),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// toMatrix converts a column-major mgl32 matrix; raylib's Mn fields use the same indexing.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
