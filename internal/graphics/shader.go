package graphics

import (
	"card-toss/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Lighting defaults shared by the lit and lit-textured shaders.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

const (
	defaultLightIntensity   = float32(0.75)
	defaultSpecularPower    = float32(48.0)
	defaultSpecularStrength = float32(0.35)
)

// setLight uploads the scene light and camera position to shader (cgo-safe: local arrays).
func (r *Renderer) setLight(shader rl.Shader, s *scene.Scene) {
	if !rl.IsShaderValid(shader) {
		return
	}
	dir := s.Light.Direction
	if dir.LenSqr() > 0 {
		dir = dir.Normalize()
	}
	a := s.Light.Ambient
	viewPos := [3]float32{s.Camera.Position[0], s.Camera.Position[1], s.Camera.Position[2]}
	lightDir := [3]float32{dir[0], dir[1], dir[2]}
	amb := [4]float32{float32(a.R) / 255, float32(a.G) / 255, float32(a.B) / 255, 1}
	lightColor := defaultLightColor

	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}

// litVS is shared by both fragment shaders. Attribute names match raylib meshes.
const litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = transpose(inverse(mat3(matModel))) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`

// lighting is the Blinn-Phong body common to both fragment shaders.
const lighting = `
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`

const litUniforms = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform sampler2D texture0;
out vec4 finalColor;
`

const (
	litFS = litUniforms + `void main() {
  vec4 tint = colDiffuse;` + lighting

	// litTexturedFS tints the albedo texture by colDiffuse.
	litTexturedFS = litUniforms + `void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;` + lighting
)
