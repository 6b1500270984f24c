package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"solar-scene/internal/config"
	"solar-scene/internal/daynight"
	"solar-scene/internal/logger"
)

// SetAngularSpeed changes how fast every orbiter's phase advances.
func (s *Scene) SetAngularSpeed(v float64) {
	s.Pipeline.AngularSpeed = v
	s.log.Info("orbit speed", logger.Float("angular_speed", v))
}

// SetBlend switches how env properties combine their day and night targets.
func (s *Scene) SetBlend(m daynight.BlendMode) {
	s.Transition.SetBlend(m)
	s.log.Info("blend mode", logger.String("blend", m.String()))
}

// RequestTransition asks for a transition as if the cursor had hit an edge.
func (s *Scene) RequestTransition(d daynight.Direction) bool {
	return s.Transition.Request(d)
}

// ScaleBody sets a uniform scale on the named body.
func (s *Scene) ScaleBody(name string, scale float64) error {
	b, ok := s.System.Find(name)
	if !ok {
		return fmt.Errorf("unknown body: %s", name)
	}
	b.Scale = mgl64.Vec3{scale, scale, scale}
	return nil
}

// MoveBody sets the named body's position relative to its parent.
func (s *Scene) MoveBody(name string, x, y, z float64) error {
	b, ok := s.System.Find(name)
	if !ok {
		return fmt.Errorf("unknown body: %s", name)
	}
	b.Position = mgl64.Vec3{x, y, z}
	return nil
}

// MoveCamera places the camera, keeping its target.
func (s *Scene) MoveCamera(x, y, z float64) {
	s.Camera.SetPosition(mgl64.Vec3{x, y, z})
}

// SetStarsVisible shows or hides the starfield.
func (s *Scene) SetStarsVisible(v bool) {
	s.StarsVisible = v
}

// Status is a one-line summary for the console.
func (s *Scene) Status() string {
	return fmt.Sprintf("%s blend=%s speed=%.3f orbiters=%d frames=%d",
		s.Transition.State(), s.Transition.Blend(), s.Pipeline.AngularSpeed, len(s.Orbiters), s.frames)
}

// Snapshot returns the config the scene was built from with live changes folded
// in: orbit speed, blend, edges, spin, starfield visibility, camera and body
// positions. The seed is the one actually used, so a saved snapshot rebuilds the
// same orbiters and stars.
func (s *Scene) Snapshot() config.Config {
	out := s.cfg.Clone()
	out.Orbit.AngularSpeed = s.Pipeline.AngularSpeed
	out.DayNight.Blend = s.Transition.Blend().String()
	out.DayNight.LeftEdge, out.DayNight.RightEdge = s.Transition.Edges()
	out.Spin.Speed = s.SpinSpeed
	out.Starfield.Visible = s.StarsVisible
	out.Camera.Position = [3]float64(s.Camera.Position())
	for i := range out.Bodies {
		if b, ok := s.System.Find(out.Bodies[i].Name); ok {
			out.Bodies[i].Position = [3]float64(b.Position)
		}
	}
	return out
}

// SaveConfig writes Snapshot to path as YAML.
func (s *Scene) SaveConfig(path string) error {
	if err := config.Save(path, s.Snapshot()); err != nil {
		return err
	}
	s.log.Info("config saved", logger.String("path", path))
	return nil
}
