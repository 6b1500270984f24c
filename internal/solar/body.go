package solar

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"solar-scene/internal/daynight"
)

// DefaultSpinSpeed is Earth's axial rotation per rendered frame, in radians.
const DefaultSpinSpeed = 0.002

// Ring is a flat annulus around a body, in the body's local XZ plane.
type Ring struct {
	Inner   float64
	Outer   float64
	Opacity float64
	Color   colorful.Color
	Env     *daynight.Property
}

// Body is a sphere in the scene graph. Position is relative to Parent.
type Body struct {
	Name       string
	Parent     *Body
	Radius     float64
	Position   mgl64.Vec3
	Scale      mgl64.Vec3
	Tilt       mgl64.Quat
	SpinAxis   mgl64.Vec3
	SpinFactor float64 // signed multiple of the base spin speed; negative is retrograde
	Spin       float64
	Color      colorful.Color
	Sheen      float64
	Primary    bool
	Ring       *Ring
	Env        *daynight.Property
}

// Advance adds one frame of axial rotation.
func (b *Body) Advance(base float64) {
	b.Spin += base * b.SpinFactor
}

// Local is the body's transform relative to its parent: T * tilt * spin * S.
func (b *Body) Local() mgl64.Mat4 {
	scale := b.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	axis := b.SpinAxis
	if axis.Len() == 0 {
		axis = mgl64.Vec3{0, 1, 0}
	}
	tilt := b.Tilt
	if tilt == (mgl64.Quat{}) {
		tilt = mgl64.QuatIdent()
	}
	spin := mgl64.QuatRotate(b.Spin, axis.Normalize())
	return mgl64.Translate3D(b.Position.X(), b.Position.Y(), b.Position.Z()).
		Mul4(tilt.Mul(spin).Mat4()).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// World composes Local with every ancestor, so children ride along with their
// parent's spin.
func (b *Body) World() mgl64.Mat4 {
	if b.Parent == nil {
		return b.Local()
	}
	return b.Parent.World().Mul4(b.Local())
}

// System is the set of bodies in draw order.
type System struct {
	Bodies []*Body
}

// Find looks a body up by case-insensitive name.
func (s *System) Find(name string) (*Body, bool) {
	for _, b := range s.Bodies {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return nil, false
}

// Primary is the body whose sheen follows the day/night transition.
func (s *System) Primary() *Body {
	for _, b := range s.Bodies {
		if b.Primary {
			return b
		}
	}
	if len(s.Bodies) > 0 {
		return s.Bodies[0]
	}
	return nil
}

// Advance spins every body by one frame.
func (s *System) Advance(base float64) {
	for _, b := range s.Bodies {
		b.Advance(base)
	}
}
