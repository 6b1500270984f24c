package scene

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-scene/internal/config"
	"solar-scene/internal/daynight"
	"solar-scene/internal/logger"
	"solar-scene/internal/palette"
)

type recorder struct {
	frames    int
	accepted  int
	rejected  int
	started   []string
	ignored   []string
	completed []string
	lastT     float64
}

func (r *recorder) RejectDelta()                     { r.rejected++ }
func (r *recorder) TransitionStarted(d string)       { r.started = append(r.started, d) }
func (r *recorder) TransitionIgnored(reason string)  { r.ignored = append(r.ignored, reason) }
func (r *recorder) TransitionCompleted(phase string) { r.completed = append(r.completed, phase) }
func (r *recorder) TransitionSampled(t float64)      { r.lastT = t }

func (r *recorder) ObserveFrame(_ float64, accepted bool, _ int) {
	r.frames++
	if accepted {
		r.accepted++
	}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 42
	cfg.Starfield.Count = 64
	return cfg
}

func newScene(t *testing.T, opts ...Option) (*Scene, *recorder) {
	t.Helper()
	rec := &recorder{}
	s, err := New(testConfig(), append([]Option{WithRecorder(rec)}, opts...)...)
	require.NoError(t, err)
	return s, rec
}

func TestNewAssemblesScene(t *testing.T) {
	s, _ := newScene(t)

	assert.Len(t, s.System.Bodies, 9)
	assert.Len(t, s.Orbiters, 10)
	assert.Len(t, s.Stars, 64)
	// nine bodies, two rings, and a body and trail per orbiter
	assert.Equal(t, 9+2+20, s.Props.Len())

	earth := s.System.Primary()
	require.NotNil(t, earth)
	assert.Equal(t, "Earth", earth.Name)

	luna, ok := s.System.Find("luna")
	require.True(t, ok)
	assert.Same(t, earth, luna.Parent)

	saturn, _ := s.System.Find("Saturn")
	require.NotNil(t, saturn.Ring)
	assert.Equal(t, 0.4, saturn.Ring.Opacity)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, saturn.SpinAxis)

	for _, o := range s.Orbiters {
		r := o.Transform.Position.Len()
		assert.InDelta(t, o.Params.RadiusOffset, r, 1e-9)
		assert.Equal(t, 1.0, o.Body.Current)
		assert.Equal(t, 3.0, o.Trail.Current)
	}
}

func TestNewIsDeterministicForSeed(t *testing.T) {
	a, _ := newScene(t)
	b, _ := newScene(t)
	for i := range a.Orbiters {
		assert.Equal(t, a.Orbiters[i].Params, b.Orbiters[i].Params)
		assert.Equal(t, a.Orbiters[i].TrailColor, b.Orbiters[i].TrailColor)
	}
	assert.Equal(t, a.Stars, b.Stars)
}

func TestNewRejectsUnknownParent(t *testing.T) {
	cfg := testConfig()
	cfg.Bodies = []config.BodyConfig{{Name: "Luna", Parent: "Earth", Radius: 1}}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewParsesColoursOnce(t *testing.T) {
	s, _ := newScene(t)
	earth, _ := s.System.Find("Earth")
	saturn, _ := s.System.Find("Saturn")
	assert.Equal(t, palette.MustParse("#2e6fd8"), earth.Color)
	require.NotNil(t, saturn.Ring)
	assert.Equal(t, palette.MustParse("#d8c49a"), saturn.Ring.Color)

	cfg := testConfig()
	cfg.Bodies = []config.BodyConfig{{Name: "Rock", Radius: 1}}
	bare, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, palette.MustParse("#808080"), bare.System.Bodies[0].Color)

	cfg.Bodies = []config.BodyConfig{{Name: "Rock", Radius: 1, Ring: &config.RingConfig{Inner: 2, Outer: 3, Color: "#zzzzzz"}}}
	_, err = New(cfg)
	assert.ErrorContains(t, err, "Rock ring")
}

func TestFrameAdvancesPhaseAndSpin(t *testing.T) {
	s, rec := newScene(t)
	phase := s.Orbiters[0].Params.Phase
	earth := s.System.Primary()
	spin := earth.Spin

	s.Frame(0.5)

	assert.InDelta(t, phase+0.125, s.Orbiters[0].Params.Phase, 1e-12)
	assert.InDelta(t, spin+0.002, earth.Spin, 1e-12)
	assert.Equal(t, 1, rec.frames)
	assert.Equal(t, 1, rec.accepted)
	assert.Equal(t, uint64(1), s.Frames())
}

func TestFrameRejectsBadDelta(t *testing.T) {
	for _, dt := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		s, rec := newScene(t)
		before := s.Orbiters[0].Params.Phase
		spin := s.System.Primary().Spin

		s.Frame(dt)

		assert.Equal(t, before, s.Orbiters[0].Params.Phase, "dt=%v", dt)
		assert.Equal(t, spin, s.System.Primary().Spin, "dt=%v", dt)
		assert.Equal(t, 1, rec.rejected, "dt=%v", dt)
		assert.Equal(t, 1, rec.frames, "dt=%v", dt)
		assert.Zero(t, rec.accepted, "dt=%v", dt)
	}
}

func TestSanitizeDelta(t *testing.T) {
	dt, ok := SanitizeDelta(0.016)
	assert.True(t, ok)
	assert.Equal(t, 0.016, dt)

	dt, ok = SanitizeDelta(0)
	assert.True(t, ok)
	assert.Equal(t, 0.0, dt)

	dt, ok = SanitizeDelta(math.Inf(-1))
	assert.False(t, ok)
	assert.Equal(t, 0.0, dt)
}

func TestCursorDrivesTransition(t *testing.T) {
	unlocked := 0
	s, rec := newScene(t, WithFirstCursor(func() { unlocked++ }))

	s.CursorMoved(960, 540, 1920, 1080)
	assert.Equal(t, 1, unlocked)
	assert.False(t, s.Transition.State().InProgress)

	s.CursorMoved(5, 540, 1920, 1080)
	assert.True(t, s.Transition.State().InProgress)
	assert.Equal(t, []string{"ToNight"}, rec.started)

	// Hitting the edge again while in flight is silently dropped by the cursor path.
	s.CursorMoved(2, 540, 1920, 1080)
	assert.Equal(t, []string{"ToNight"}, rec.started)

	for i := 0; i < 100 && s.Transition.State().InProgress; i++ {
		s.Frame(1.0 / 60)
	}
	st := s.Transition.State()
	assert.False(t, st.InProgress)
	assert.False(t, st.Daytime)
	assert.Equal(t, []string{"night"}, rec.completed)
	assert.Equal(t, 1.0, rec.lastT)

	earth := s.System.Primary()
	assert.InDelta(t, 0.0, earth.Env.Current, 1e-12, "multiplicative blend is zero at rest")
	assert.Equal(t, 1, unlocked)
}

func TestRequestWhileInFlightIsIgnored(t *testing.T) {
	s, rec := newScene(t)
	require.True(t, s.RequestTransition(daynight.ToNight))
	assert.False(t, s.RequestTransition(daynight.ToDay))
	assert.Equal(t, []string{daynight.ReasonInFlight}, rec.ignored)
}

func TestApply(t *testing.T) {
	s, _ := newScene(t)
	cfg := testConfig()
	cfg.Orbit.AngularSpeed = 1
	cfg.DayNight.Blend = "additive"
	cfg.DayNight.LeftEdge = 300
	cfg.Starfield.Visible = false
	cfg.Backdrop.Night = "#000000"

	require.NoError(t, s.Apply(cfg))
	assert.Equal(t, 1.0, s.Pipeline.AngularSpeed)
	assert.Equal(t, daynight.BlendAdditive, s.Transition.Blend())
	assert.False(t, s.StarsVisible)
	assert.Equal(t, 0.0, s.NightSky.R)

	s.CursorMoved(250, 0, 1920, 1080)
	assert.True(t, s.Transition.State().InProgress)

	cfg.DayNight.Blend = "screen"
	assert.Error(t, s.Apply(cfg))
}

func TestControl(t *testing.T) {
	log := logger.Discard()
	s, _ := newScene(t, WithLogger(log))

	s.SetAngularSpeed(2)
	assert.Equal(t, 2.0, s.Pipeline.AngularSpeed)

	s.SetBlend(daynight.BlendAdditive)
	assert.Equal(t, daynight.BlendAdditive, s.Transition.Blend())

	require.NoError(t, s.ScaleBody("mars", 2))
	mars, _ := s.System.Find("Mars")
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, mars.Scale)

	require.NoError(t, s.MoveBody("Mars", 1, 2, 3))
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, mars.Position)

	assert.Error(t, s.ScaleBody("pluto", 1))
	assert.Error(t, s.MoveBody("pluto", 0, 0, 0))

	s.MoveCamera(0, 0, 50)
	assert.InDelta(t, 50, s.Camera.Distance(), 1e-9)

	s.SetStarsVisible(false)
	assert.False(t, s.StarsVisible)

	assert.Contains(t, s.Status(), "Resting(day)")
	assert.Contains(t, s.Status(), "blend=additive")
	assert.NotEmpty(t, log.Lines())
}

func TestLighting(t *testing.T) {
	s, _ := newScene(t)
	l := s.Lighting()
	assert.Equal(t, mgl64.Vec3{10, 20, 10}, l.Sun.Position)
	assert.Equal(t, 3.5, l.Sun.Intensity)
	assert.Equal(t, mgl64.Vec3{-10, 0, 10}, l.Moon.Position)
	assert.Equal(t, 0.0, l.Moon.Intensity)
	assert.Equal(t, 1.4, l.Sheen)
	assert.Equal(t, 0.0, s.SkyOpacity())

	s.Transition.Sample(1)
	l = s.Lighting()
	assert.Equal(t, 0.0, l.Sun.Position.Y())
	assert.Equal(t, 20.0, l.Moon.Position.Y())
	assert.Equal(t, 1.0, s.SkyOpacity())

	assert.Equal(t, mgl64.Vec3{0, 1, 0}, Light{}.Direction())
	assert.InDelta(t, 1, l.Sun.Direction().Len(), 1e-12)
}

func TestSnapshotFoldsLiveChanges(t *testing.T) {
	s, _ := newScene(t)
	s.SetAngularSpeed(0.5)
	s.SetBlend(daynight.BlendAdditive)
	s.Transition.SetEdges(40, 60)
	s.SetStarsVisible(false)
	require.NoError(t, s.MoveBody("mars", 1, 2, 3))

	snap := s.Snapshot()

	require.NoError(t, snap.Validate())
	assert.Equal(t, 0.5, snap.Orbit.AngularSpeed)
	assert.Equal(t, "additive", snap.DayNight.Blend)
	assert.Equal(t, 40.0, snap.DayNight.LeftEdge)
	assert.Equal(t, 60.0, snap.DayNight.RightEdge)
	assert.False(t, snap.Starfield.Visible)
	assert.Equal(t, "Mars", snap.Bodies[4].Name)
	assert.Equal(t, [3]float64{1, 2, 3}, snap.Bodies[4].Position)
	assert.Equal(t, uint64(42), snap.Seed)
	// the scene's own copy is untouched
	assert.Equal(t, 0.25, s.cfg.Orbit.AngularSpeed)
	assert.Equal(t, [3]float64{-60, -3, 0}, s.cfg.Bodies[4].Position)
}

func TestSaveConfigRebuildsSameScene(t *testing.T) {
	s, _ := newScene(t)
	s.SetAngularSpeed(0.4)
	path := filepath.Join(t.TempDir(), "scene.yaml")

	require.NoError(t, s.SaveConfig(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.4, loaded.Orbit.AngularSpeed)
	for i, v := range s.Camera.Position() {
		assert.InDelta(t, v, loaded.Camera.Position[i], 1e-9)
	}

	again, err := New(loaded)
	require.NoError(t, err)
	require.Len(t, again.Orbiters, len(s.Orbiters))
	assert.Equal(t, s.Orbiters[0].Params, again.Orbiters[0].Params)
	assert.Equal(t, s.Stars, again.Stars)
}
