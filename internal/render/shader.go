package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"solar-scene/internal/scene"
)

// loadLitShader returns the two-light shader used by planets and orbiters.
// Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// Sun and moon are directional. envIntensity scales the ambient fill and sheen
	// adds a rim term that fades with the day.
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 sunDir;
uniform float sunIntensity;
uniform vec3 moonDir;
uniform float moonIntensity;
uniform vec4 ambient;
uniform float envIntensity;
uniform float sheen;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  float sun = max(dot(N, normalize(sunDir)), 0.0) * sunIntensity;
  float moon = max(dot(N, normalize(moonDir)), 0.0) * moonIntensity;
  vec3 diffuse = tint.rgb * (sun * vec3(1.0, 0.98, 0.95) + moon * vec3(0.55, 0.62, 0.85)) * 0.3;
  vec3 amb = ambient.rgb * tint.rgb * envIntensity;
  float rim = pow(1.0 - max(dot(N, V), 0.0), 3.0) * sheen * 0.25;
  vec3 sheenCol = vec3(0.41, 0.43, 0.27) * rim;
  finalColor = vec4(amb + diffuse + sheenCol, tint.a);
}
`
)

// defaultAmbient is the ambient term before envIntensity (dim so shadowed areas aren't pure black).
var defaultAmbient = [4]float32{0.2, 0.22, 0.26, 1.0}

// setLitUniforms uploads this frame's light rig (cgo-safe: local arrays).
func setLitUniforms(shader rl.Shader, view rl.Vector3, l scene.Lighting) {
	if !rl.IsShaderValid(shader) {
		return
	}
	sd, md := l.Sun.Direction(), l.Moon.Direction()
	viewPos := [3]float32{view.X, view.Y, view.Z}
	sunDir := [3]float32{float32(sd[0]), float32(sd[1]), float32(sd[2])}
	moonDir := [3]float32{float32(md[0]), float32(md[1]), float32(md[2])}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "sunDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, sunDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "moonDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, moonDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "sunIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{float32(l.Sun.Intensity)}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "moonIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{float32(l.Moon.Intensity)}, rl.ShaderUniformFloat)
	}
}

// setSurface uploads the per-mesh env strength and sheen.
func setSurface(shader rl.Shader, env, sheen float64) {
	if !rl.IsShaderValid(shader) {
		return
	}
	if loc := rl.GetShaderLocation(shader, "envIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{float32(env)}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "sheen"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{float32(sheen)}, rl.ShaderUniformFloat)
	}
}
