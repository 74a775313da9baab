package graphics

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// skyboxPaths are tried in order when no skybox is configured.
var skyboxPaths = []string{
	"assets/skybox/skybox.png",
	"assets/skybox/skybox.jpg",
	"../../assets/skybox/skybox.png",
	"../../assets/skybox/skybox.jpg",
}

// equirectAspectMin/Max: width/height ratio for equirectangular panorama (typically 2:1).
const (
	equirectAspectMin = 1.8
	equirectAspectMax = 2.2
)

// skybox is a large cube centered on the camera, textured with either a
// cubemap or an equirectangular panorama.
type skybox struct {
	path     string
	pending  bool
	loaded   bool
	equirect bool
	tex      rl.Texture2D
	mesh     rl.Mesh
	mtl      rl.Material
	camPos   int32
	texLoc   int32
}

// newSkybox resolves the image path. GPU resources are created on first draw.
// It returns nil when no image is found.
func newSkybox(configured string) *skybox {
	candidates := skyboxPaths
	if configured != "" {
		candidates = []string{configured}
	}
	for _, p := range candidates {
		cleaned := filepath.Clean(p)
		if _, err := os.Stat(cleaned); err == nil {
			return &skybox{path: cleaned, pending: true}
		}
	}
	return nil
}

func (s *skybox) ensureLoaded() {
	if !s.pending {
		return
	}
	s.pending = false

	img := rl.LoadImage(s.path)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return
	}
	aspect := float32(img.Width) / float32(img.Height)
	s.equirect = aspect >= equirectAspectMin && aspect <= equirectAspectMax

	if !s.equirect {
		s.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(s.tex) {
			return
		}
		s.mesh = rl.GenMeshCube(1, 1, 1)
		s.mtl = rl.LoadMaterialDefault()
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
		s.loaded = true
		return
	}
	rl.UnloadImage(img)

	s.tex = rl.LoadTexture(s.path)
	if !rl.IsTextureValid(s.tex) {
		return
	}
	shader := rl.LoadShaderFromMemory(equirectVS, equirectFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(s.tex)
		return
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	s.camPos = rl.GetShaderLocation(shader, "cameraPosition")
	s.texLoc = rl.GetShaderLocation(shader, "skybox")
	s.loaded = true
}

// draw renders the box around pos with edge length size. Call inside BeginMode3D.
func (s *skybox) draw(pos rl.Vector3, size float32) {
	s.ensureLoaded()
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	transform := rl.MatrixMultiply(rl.MatrixScale(size, size, size), rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
	if s.equirect {
		if s.camPos >= 0 {
			rl.SetShaderValueV(s.mtl.Shader, s.camPos, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
		}
	}
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

func (s *skybox) unload() {
	if !s.loaded {
		return
	}
	if s.equirect {
		rl.UnloadShader(s.mtl.Shader)
	}
	rl.UnloadTexture(s.tex)
	rl.UnloadMesh(&s.mesh)
	s.loaded = false
}

// Equirectangular skybox shader: samples a 2D panorama by view direction.
const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = texture(skybox, vec2(u, v));
}
`
)
