package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"solar-scene/internal/daynight"
)

// Light is a directional light shining from Position toward the origin.
type Light struct {
	Position  mgl64.Vec3
	Intensity float64
}

// Direction is the unit vector from the origin toward the light, or +Y when the
// light has sunk to the origin.
func (l Light) Direction() mgl64.Vec3 {
	if l.Position.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return l.Position.Normalize()
}

// Lighting is what the renderer needs from the transition each frame.
type Lighting struct {
	Sun   Light
	Moon  Light
	Sheen float64
}

const lightOffset = 10

// LightingFrom places the sun above the right of the view and the moon above the
// left, each at its current height.
func LightingFrom(d daynight.Derived) Lighting {
	return Lighting{
		Sun:   Light{Position: mgl64.Vec3{lightOffset, d.SunHeight, lightOffset}, Intensity: d.SunIntensity},
		Moon:  Light{Position: mgl64.Vec3{-lightOffset, d.MoonHeight, lightOffset}, Intensity: d.MoonIntensity},
		Sheen: d.Sheen,
	}
}

// Lighting returns this frame's light rig.
func (s *Scene) Lighting() Lighting {
	return LightingFrom(s.Transition.Derived())
}

// SkyOpacity is the night backdrop layer's opacity. The day layer is its complement.
func (s *Scene) SkyOpacity() float64 {
	return s.Transition.Derived().MoonLayerOpacity
}
