package orbit

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultAngularSpeed is how fast Phase advances, in radians per second.
	DefaultAngularSpeed = 0.25
	// CorrectiveAngle turns the orbiter model so its nose follows the path.
	CorrectiveAngle = math.Pi / 2
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// Params is the persistent state of one orbiter. Only Phase changes after
// construction; everything else is fixed when the orbiter is spawned.
type Params struct {
	Phase        float64
	TiltAxis     mgl64.Vec3 // unit length
	TiltAngle    float64
	Inclination  float64
	RadiusOffset float64
}

// NewParams builds Params, normalising tiltAxis. A zero axis falls back to +Y.
func NewParams(phase float64, tiltAxis mgl64.Vec3, tiltAngle, inclination, radiusOffset float64) Params {
	if tiltAxis.Len() == 0 {
		tiltAxis = axisY
	}
	return Params{
		Phase:        phase,
		TiltAxis:     tiltAxis.Normalize(),
		TiltAngle:    tiltAngle,
		Inclination:  inclination,
		RadiusOffset: radiusOffset,
	}
}

// Transform is a rigid world transform: rotate, then translate.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Identity is the origin with no rotation.
func Identity() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// Mat4 returns T * R.
func (t Transform) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.Rotation.Mat4())
}

// rotateLocal rotates about axis expressed in the transform's own frame.
func (t *Transform) rotateLocal(axis mgl64.Vec3, angle float64) {
	t.Rotation = t.Rotation.Mul(mgl64.QuatRotate(angle, axis))
}

// translateLocal moves along axis expressed in the transform's own frame.
func (t *Transform) translateLocal(axis mgl64.Vec3, distance float64) {
	t.Position = t.Position.Add(t.Rotation.Rotate(axis).Mul(distance))
}

// Pipeline recomputes orbiter transforms from their parameters.
type Pipeline struct {
	AngularSpeed float64
	Corrective   float64
}

// NewPipeline returns a pipeline with the default speed and corrective turn.
func NewPipeline() *Pipeline {
	return &Pipeline{AngularSpeed: DefaultAngularSpeed, Corrective: CorrectiveAngle}
}

// Update advances p.Phase by dt and returns the orbiter's transform for this frame.
// The transform is rebuilt from identity every call, so only Phase carries over.
func (pl *Pipeline) Update(p *Params, dt float64) Transform {
	p.Phase += dt * pl.AngularSpeed
	return pl.Compose(*p)
}

// Compose builds the transform for p without touching Phase. The order matters:
// tilt, revolve about Y, incline about Z, push out along Y, then the corrective turn
// about X.
func (pl *Pipeline) Compose(p Params) Transform {
	t := Identity()
	t.rotateLocal(p.TiltAxis, p.TiltAngle)
	t.rotateLocal(axisY, p.Phase)
	t.rotateLocal(axisZ, p.Inclination)
	t.translateLocal(axisY, p.RadiusOffset)
	t.rotateLocal(axisX, pl.Corrective)
	return t
}

// SpawnConfig bounds the random parameters handed to new orbiters.
type SpawnConfig struct {
	MinInclination  float64
	InclinationSpan float64
	RadiusBase      float64
	RadiusJitter    float64
}

// DefaultSpawnConfig keeps orbiters between 10.5 and 11.5 units from the centre,
// inclined at least 0.2 rad.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		MinInclination:  0.2,
		InclinationSpan: math.Pi * 0.45,
		RadiusBase:      10.5,
		RadiusJitter:    1,
	}
}

// Spawn draws a fresh parameter set from rng. The tilt axis lies in the XY plane.
func Spawn(rng *rand.Rand, cfg SpawnConfig) Params {
	phase := rng.Float64() * 2 * math.Pi
	inclination := rng.Float64()*cfg.InclinationSpan + cfg.MinInclination
	radius := rng.Float64()*cfg.RadiusJitter + cfg.RadiusBase
	axis := mgl64.Vec3{symmetric(rng), symmetric(rng), 0}
	angle := rng.Float64() * 2 * math.Pi
	return NewParams(phase, axis, angle, inclination, radius)
}

func symmetric(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}
