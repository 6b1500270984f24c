package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// cached holds mesh and material for a shape. Created lazily on first draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// meshes maps shape names to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type meshes struct {
	cache  map[string]cached
	shader rl.Shader
}

const (
	sphereRings  = 32
	sphereSlices = 32
)

func newMeshes() *meshes {
	return &meshes{cache: make(map[string]cached)}
}

// ensure creates the named mesh if not yet cached. "sphere" is unit radius;
// "orbiter" is a unit cube stretched along local Z so the nose is visible.
func (m *meshes) ensure(key string) (cached, bool) {
	if c, ok := m.cache[key]; ok {
		return c, true
	}
	shader := m.ensureShader()
	var mesh rl.Mesh
	switch key {
	case "sphere":
		mesh = rl.GenMeshSphere(1, sphereRings, sphereSlices)
	case "orbiter":
		mesh = rl.GenMeshCube(0.6, 0.4, 1.6)
	default:
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	m.cache[key] = c
	return c, true
}

// ensureShader loads the lit shader on first use, so uniforms can be set before
// any mesh is drawn.
func (m *meshes) ensureShader() rl.Shader {
	if !rl.IsShaderValid(m.shader) {
		m.shader = loadLitShader()
	}
	return m.shader
}

// draw draws the named mesh with the given world transform and tint.
func (m *meshes) draw(key string, world mgl64.Mat4, tint rl.Color) {
	c, ok := m.ensure(key)
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	rl.DrawMesh(c.mesh, c.mtl, toMatrix(world))
}

func (m *meshes) unload() {
	for _, c := range m.cache {
		rl.UnloadMesh(&c.mesh)
	}
	if rl.IsShaderValid(m.shader) {
		rl.UnloadShader(m.shader)
	}
	m.cache = make(map[string]cached)
}

// toMatrix copies a column-major mgl64 matrix into raylib's column-major layout.
func toMatrix(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
		M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
		M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
		M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
	}
}
