package scene

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"solar-scene/internal/config"
	"solar-scene/internal/daynight"
	"solar-scene/internal/logger"
	"solar-scene/internal/orbit"
	"solar-scene/internal/palette"
	"solar-scene/internal/solar"
)

// Recorder receives frame and transition activity. metrics.Collectors implements it.
type Recorder interface {
	ObserveFrame(dt float64, accepted bool, orbiters int)
	RejectDelta()
	TransitionStarted(direction string)
	TransitionIgnored(reason string)
	TransitionCompleted(phase string)
	TransitionSampled(t float64)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFrame(float64, bool, int) {}
func (nopRecorder) RejectDelta()                    {}
func (nopRecorder) TransitionStarted(string)        {}
func (nopRecorder) TransitionIgnored(string)        {}
func (nopRecorder) TransitionCompleted(string)      {}
func (nopRecorder) TransitionSampled(float64)       {}

// Orbiter is one decorative craft circling the primary body: its persistent
// parameters, this frame's transform, and the two env properties it draws with.
type Orbiter struct {
	Params     orbit.Params
	Transform  orbit.Transform
	Body       *daynight.Property
	Trail      *daynight.Property
	TrailColor colorful.Color
}

// Scene is everything one running scene owns. Nothing in it is global, so several
// scenes can coexist (tests build many). It is driven from a single frame loop and
// is not safe for concurrent use.
type Scene struct {
	log *logger.Logger
	rec Recorder

	Pipeline     *orbit.Pipeline
	Orbiters     []*Orbiter
	System       *solar.System
	Props        *daynight.Registry
	Transition   *daynight.Transition
	Camera       *OrbitCamera
	Stars        [][3]float32
	StarsVisible bool
	StarSize     float64
	OrbiterScale float64
	SpinSpeed    float64
	DaySky       colorful.Color
	NightSky     colorful.Color

	cfg           config.Config
	onFirstCursor func()
	cursorSeen    bool
	frames        uint64
}

// Option customises New.
type Option func(*Scene)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scene) { s.log = l }
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(s *Scene) { s.rec = r }
}

// WithFirstCursor runs fn the first time the cursor moves, which is when audio
// is allowed to start.
func WithFirstCursor(fn func()) Option {
	return func(s *Scene) { s.onFirstCursor = fn }
}

// New assembles a scene from a validated config: bodies, rings, orbiters, the
// env property registry, and the day/night transition over it.
func New(cfg config.Config, opts ...Option) (*Scene, error) {
	s := &Scene{log: logger.Discard(), rec: nopRecorder{}}
	for _, opt := range opts {
		opt(s)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s.cfg = cfg.Clone()
	s.cfg.Seed = seed

	s.Props = daynight.NewRegistry()
	system, err := buildSystem(cfg.Bodies, s.Props)
	if err != nil {
		return nil, err
	}
	s.System = system

	s.Pipeline = &orbit.Pipeline{AngularSpeed: cfg.Orbit.AngularSpeed, Corrective: orbit.CorrectiveAngle}
	spawn := orbit.SpawnConfig{
		MinInclination:  cfg.Orbit.MinInclination,
		InclinationSpan: cfg.Orbit.InclinationSpan,
		RadiusBase:      cfg.Orbit.RadiusBase,
		RadiusJitter:    cfg.Orbit.RadiusJitter,
	}
	for i := 0; i < cfg.Orbit.Count; i++ {
		o := &Orbiter{
			Params:     orbit.Spawn(rng, spawn),
			Body:       s.Props.Register(fmt.Sprintf("orbiter-%d", i), cfg.Orbit.Body.Sun, cfg.Orbit.Body.Moon, cfg.Orbit.Body.Initial),
			Trail:      s.Props.Register(fmt.Sprintf("orbiter-%d trail", i), cfg.Orbit.Trail.Sun, cfg.Orbit.Trail.Moon, cfg.Orbit.Trail.Initial),
			TrailColor: palette.Pick(rng),
		}
		o.Transform = s.Pipeline.Compose(o.Params)
		s.Orbiters = append(s.Orbiters, o)
	}
	s.OrbiterScale = cfg.Orbit.Scale

	s.Transition = daynight.New(cfg.Transition(), s.Props)
	s.Transition.SetHooks(s.transitionHooks())

	s.Camera = NewOrbitCamera(cfg.Camera.Position, cfg.Camera.Target, cfg.Camera.Fovy, cfg.Camera.Damping)
	s.Stars = solar.Starfield(rng, cfg.Starfield.Count, cfg.Starfield.Dispersion)
	s.StarsVisible = cfg.Starfield.Visible
	s.StarSize = cfg.Starfield.Size
	s.SpinSpeed = cfg.Spin.Speed
	if err := s.setBackdrop(cfg.Backdrop); err != nil {
		return nil, err
	}

	s.log.Info("scene ready",
		logger.Int("bodies", len(s.System.Bodies)),
		logger.Int("orbiters", len(s.Orbiters)),
		logger.Int("properties", s.Props.Len()),
		logger.Int("stars", len(s.Stars)),
		logger.String("blend", s.Transition.Blend().String()),
	)
	return s, nil
}

func buildSystem(bodies []config.BodyConfig, props *daynight.Registry) (*solar.System, error) {
	sys := &solar.System{}
	byName := make(map[string]*solar.Body, len(bodies))
	for _, bc := range bodies {
		col, err := colourOr(bc.Color, "#808080")
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", bc.Name, err)
		}
		b := &solar.Body{
			Name:       bc.Name,
			Radius:     bc.Radius,
			Position:   mgl64.Vec3(bc.Position),
			Scale:      mgl64.Vec3{1, 1, 1},
			Tilt:       mgl64.QuatIdent(),
			SpinAxis:   mgl64.Vec3{0, 1, 0},
			SpinFactor: bc.SpinFactor,
			Spin:       bc.Yaw,
			Color:      col,
			Sheen:      bc.Sheen,
			Primary:    bc.Primary,
			Env:        props.Register(bc.Name, bc.Env.Sun, bc.Env.Moon, bc.Env.Initial),
		}
		if bc.SpinAxis == "z" {
			b.SpinAxis = mgl64.Vec3{0, 0, 1}
		}
		if axis := mgl64.Vec3(bc.TiltAxis); bc.TiltAngle != 0 && axis.Len() > 0 {
			b.Tilt = mgl64.QuatRotate(bc.TiltAngle, axis.Normalize())
		}
		if bc.Parent != "" {
			parent, ok := byName[bc.Parent]
			if !ok {
				return nil, fmt.Errorf("body %s: unknown parent %s", bc.Name, bc.Parent)
			}
			b.Parent = parent
		}
		if rc := bc.Ring; rc != nil {
			ringCol, err := colourOr(rc.Color, "#ccbf99")
			if err != nil {
				return nil, fmt.Errorf("body %s ring: %w", bc.Name, err)
			}
			b.Ring = &solar.Ring{
				Inner:   rc.Inner,
				Outer:   rc.Outer,
				Opacity: rc.Opacity,
				Color:   ringCol,
				Env:     props.Register(bc.Name+" ring", rc.Env.Sun, rc.Env.Moon, rc.Env.Initial),
			}
		}
		byName[bc.Name] = b
		sys.Bodies = append(sys.Bodies, b)
	}
	return sys, nil
}

// colourOr parses hex, falling back to def when hex is empty.
func colourOr(hex, def string) (colorful.Color, error) {
	if hex == "" {
		hex = def
	}
	return palette.Parse(hex)
}

func (s *Scene) transitionHooks() daynight.Hooks {
	return daynight.Hooks{
		Started: func(d daynight.Direction) {
			s.rec.TransitionStarted(d.String())
			s.log.Info("transition started", logger.String("direction", d.String()))
		},
		Ignored: func(d daynight.Direction, reason string) {
			s.rec.TransitionIgnored(reason)
			s.log.Debug("transition ignored", logger.String("direction", d.String()), logger.String("reason", reason))
		},
		Sampled: s.rec.TransitionSampled,
		Completed: func(st daynight.State) {
			phase := "night"
			if st.Daytime {
				phase = "day"
			}
			s.rec.TransitionCompleted(phase)
			s.log.Info("transition complete", logger.String("state", st.String()))
		},
	}
}

// SanitizeDelta returns dt if it is a usable frame delta. Negative, NaN and
// infinite values become 0 and ok is false.
func SanitizeDelta(dt float64) (clean float64, ok bool) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0, false
	}
	return dt, true
}

// Frame advances the scene by dt seconds. Within a frame: planets spin, every
// orbiter's transform is rebuilt, then an in-flight transition samples and fans out.
// All of it completes before the caller draws. A rejected dt freezes the frame.
func (s *Scene) Frame(dt float64) {
	s.frames++
	dt, ok := SanitizeDelta(dt)
	if !ok {
		s.rec.RejectDelta()
		s.log.Debug("rejected frame delta", logger.Any("frame", s.frames))
	} else {
		s.System.Advance(s.SpinSpeed)
	}
	for _, o := range s.Orbiters {
		o.Transform = s.Pipeline.Update(&o.Params, dt)
	}
	s.Transition.Advance(time.Duration(dt * float64(time.Second)))
	s.Camera.Update()
	s.rec.ObserveFrame(dt, ok, len(s.Orbiters))
}

// CursorMoved feeds a cursor position in viewport pixels to the edge guard.
// The first call also fires the first-cursor hook.
func (s *Scene) CursorMoved(x, y, width, height float64) {
	if !s.cursorSeen {
		s.cursorSeen = true
		if s.onFirstCursor != nil {
			s.onFirstCursor()
		}
	}
	s.Transition.CursorMoved(x, width)
}

// Frames is the number of Frame calls so far.
func (s *Scene) Frames() uint64 { return s.frames }

// Apply takes the live-tunable parts of a reloaded config. Geometry, orbiter count
// and bodies are fixed for the scene's lifetime.
func (s *Scene) Apply(cfg config.Config) error {
	blend, err := daynight.ParseBlendMode(cfg.DayNight.Blend)
	if err != nil {
		return err
	}
	if err := s.setBackdrop(cfg.Backdrop); err != nil {
		return err
	}
	s.Pipeline.AngularSpeed = cfg.Orbit.AngularSpeed
	s.Transition.SetEdges(cfg.DayNight.LeftEdge, cfg.DayNight.RightEdge)
	s.Transition.SetBlend(blend)
	s.SpinSpeed = cfg.Spin.Speed
	s.StarsVisible = cfg.Starfield.Visible
	s.cfg.Backdrop = cfg.Backdrop
	s.log.Info("config applied",
		logger.Float("angular_speed", cfg.Orbit.AngularSpeed),
		logger.String("blend", blend.String()),
	)
	return nil
}

func (s *Scene) setBackdrop(b config.BackdropConfig) error {
	day, err := palette.Parse(b.Day)
	if err != nil {
		return fmt.Errorf("backdrop day: %w", err)
	}
	night, err := palette.Parse(b.Night)
	if err != nil {
		return fmt.Errorf("backdrop night: %w", err)
	}
	s.DaySky, s.NightSky = day, night
	return nil
}
