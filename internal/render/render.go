package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"solar-scene/internal/orbit"
	"solar-scene/internal/palette"
	"solar-scene/internal/scene"
	"solar-scene/internal/solar"
)

const (
	ringSegments = 96
	trailPoints  = 24
	// trailStep is the phase gap between trail samples, in radians.
	trailStep = 0.035
)

// Renderer draws a scene with raylib. It holds GPU resources and must be used
// from the thread that owns the window.
type Renderer struct {
	meshes *meshes
	Camera rl.Camera3D
}

// New returns a renderer. GPU resources are created on the first Draw.
func New() *Renderer {
	r := &Renderer{meshes: newMeshes()}
	r.Camera.Up = rl.NewVector3(0, 1, 0)
	r.Camera.Projection = rl.CameraPerspective
	return r
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.meshes.unload()
}

// Draw renders the backdrop, then the 3D scene. Call between BeginDrawing and
// EndDrawing, before any 2D overlay.
func (r *Renderer) Draw(s *scene.Scene) {
	r.syncCamera(s.Camera)
	drawBackdrop(s)

	light := s.Lighting()
	setLitUniforms(r.meshes.ensureShader(), r.Camera.Position, light)

	rl.BeginMode3D(r.Camera)
	if s.StarsVisible {
		drawStars(s.Stars, s.StarSize)
	}
	primary := s.System.Primary()
	for _, b := range s.System.Bodies {
		sheen := b.Sheen
		if b == primary {
			sheen = light.Sheen
		}
		r.drawBody(b, sheen)
	}
	for _, o := range s.Orbiters {
		r.drawOrbiter(s.Pipeline, o, s.OrbiterScale)
	}
	rl.EndMode3D()
}

func (r *Renderer) syncCamera(c *scene.OrbitCamera) {
	p := c.Position()
	r.Camera.Position = rl.NewVector3(float32(p[0]), float32(p[1]), float32(p[2]))
	r.Camera.Target = rl.NewVector3(float32(c.Target[0]), float32(c.Target[1]), float32(c.Target[2]))
	r.Camera.Fovy = float32(c.Fovy)
}

// drawBackdrop clears to the day sky blended toward the night sky by the
// transition's night layer opacity.
func drawBackdrop(s *scene.Scene) {
	rl.ClearBackground(toColor(palette.Backdrop(s.DaySky, s.NightSky, s.SkyOpacity()), 1))
}

func drawStars(stars [][3]float32, size float64) {
	c := rl.NewColor(255, 255, 255, 200)
	if size > 1 {
		for _, st := range stars {
			rl.DrawCube(rl.NewVector3(st[0], st[1], st[2]), float32(size), float32(size), float32(size), c)
		}
		return
	}
	for _, st := range stars {
		rl.DrawPoint3D(rl.NewVector3(st[0], st[1], st[2]), c)
	}
}

func (r *Renderer) drawBody(b *solar.Body, sheen float64) {
	env := 1.0
	if b.Env != nil {
		env = b.Env.Current
	}
	setSurface(r.meshes.shader, env, sheen)

	world := b.World()
	r.meshes.draw("sphere", world.Mul4(mgl64.Scale3D(b.Radius, b.Radius, b.Radius)), toColor(b.Color, 1))

	if b.Ring != nil {
		drawRing(world, b.Ring)
	}
}

// drawRing draws a flat annulus in the body's local XZ plane. Its brightness
// follows the ring's env property.
func drawRing(world mgl64.Mat4, ring *solar.Ring) {
	env := 1.0
	if ring.Env != nil {
		env = ring.Env.Current
	}
	col := ring.Color
	base := colorful.Color{R: col.R * env, G: col.G * env, B: col.B * env}
	c := toColor(base, ring.Opacity)

	inner, outer := float32(ring.Inner), float32(ring.Outer)
	step := 2 * math32.Pi / ringSegments
	point := func(radius, angle float32) rl.Vector3 {
		v := world.Mul4x1(mgl64.Vec4{float64(radius * math32.Cos(angle)), 0, float64(radius * math32.Sin(angle)), 1})
		return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
	}

	rl.DisableBackfaceCulling()
	for i := 0; i < ringSegments; i++ {
		a0, a1 := float32(i)*step, float32(i+1)*step
		i0, o0 := point(inner, a0), point(outer, a0)
		i1, o1 := point(inner, a1), point(outer, a1)
		rl.DrawTriangle3D(i0, o0, o1, c)
		rl.DrawTriangle3D(i0, o1, i1, c)
	}
	rl.EnableBackfaceCulling()
}

func (r *Renderer) drawOrbiter(pl *orbit.Pipeline, o *scene.Orbiter, scale float64) {
	setSurface(r.meshes.shader, o.Body.Current, 0)
	if scale <= 0 {
		scale = 1
	}
	world := o.Transform.Mat4().Mul4(mgl64.Scale3D(scale, scale, scale))
	r.meshes.draw("orbiter", world, rl.LightGray)
	drawTrail(pl, o)
}

// drawTrail traces the orbiter's recent path. Brightness follows the trail's
// env property.
func drawTrail(pl *orbit.Pipeline, o *scene.Orbiter) {
	strength := 1.0
	if o.Trail.Sun != 0 {
		strength = o.Trail.Current / o.Trail.Sun
	}
	prev := o.Transform.Position
	for i, next := range trail(pl, o.Params) {
		fade := trailFade(i+1) * strength
		rl.DrawLine3D(toVector(prev), toVector(next), toColor(o.TrailColor, fade))
		prev = next
	}
}

// trail returns the orbiter's positions at trailPoints earlier phases, newest
// first. p is not modified.
func trail(pl *orbit.Pipeline, p orbit.Params) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, trailPoints)
	phase := p.Phase
	for i := range out {
		p.Phase = phase - float64(i+1)*trailStep
		out[i] = pl.Compose(p).Position
	}
	return out
}

// trailFade is the opacity of the i-th trail segment, counting from 1.
func trailFade(i int) float64 {
	return 1 - float64(i)/float64(trailPoints+1)
}

func toVector(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

func toColor(c colorful.Color, alpha float64) rl.Color {
	r, g, b, a := palette.RGBA8(c, alpha)
	return rl.NewColor(r, g, b, a)
}
