package daynight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-scene/internal/easing"
)

const width = 1920.0

func newTransition(t *testing.T) (*Transition, *Registry) {
	t.Helper()
	reg := NewRegistry()
	reg.Register("earth", 0.4, 0.1, 1)
	reg.Register("trail", 3, 0.7, 3)
	return New(DefaultConfig(), reg), reg
}

func TestInitialState(t *testing.T) {
	tr, reg := newTransition(t)
	s := tr.State()
	assert.True(t, s.Daytime)
	assert.False(t, s.InProgress)
	assert.Equal(t, 0.0, s.T)
	assert.Equal(t, "Resting(day)", s.String())

	d := tr.Derived()
	assert.Equal(t, 3.5, d.SunIntensity)
	assert.Equal(t, 0.0, d.MoonIntensity)
	assert.Equal(t, 1.4, d.Sheen)
	assert.Equal(t, 1.0, reg.All()[0].Current, "properties keep their initial value until sampled")
}

func TestSampleBoundaries(t *testing.T) {
	tr, _ := newTransition(t)

	day := tr.Sample(0)
	assert.Equal(t, 3.5, day.SunIntensity)
	assert.Equal(t, 0.0, day.MoonIntensity)
	assert.Equal(t, 20.0, day.SunHeight)
	assert.Equal(t, 0.0, day.MoonHeight)
	assert.Equal(t, 1.0, day.Sheen)
	assert.Equal(t, 1.0, day.SunLayerOpacity)
	assert.Equal(t, 0.0, day.MoonLayerOpacity)

	night := tr.Sample(1)
	assert.Equal(t, 0.0, night.SunIntensity)
	assert.Equal(t, 3.5, night.MoonIntensity)
	assert.Equal(t, 0.0, night.SunHeight)
	assert.Equal(t, 20.0, night.MoonHeight)
	assert.Equal(t, 0.0, night.Sheen)
	assert.Equal(t, 0.0, night.SunLayerOpacity)
	assert.Equal(t, 1.0, night.MoonLayerOpacity)
}

func TestSampleBlendModes(t *testing.T) {
	tests := []struct {
		mode BlendMode
		t    float64
		want float64
	}{
		{BlendMultiplicative, 0, 0},
		{BlendMultiplicative, 1, 0},
		{BlendMultiplicative, 0.5, 0.4 * 0.5 * 0.1 * 0.5},
		{BlendAdditive, 0, 0.4},
		{BlendAdditive, 1, 0.1},
		{BlendAdditive, 0.5, 0.25},
		{BlendAdditive, 1.2, 0.04},
	}
	for _, tt := range tests {
		tr, reg := newTransition(t)
		tr.SetBlend(tt.mode)
		tr.Sample(tt.t)
		p, ok := reg.Find("earth")
		require.True(t, ok)
		assert.InDelta(t, tt.want, p.Current, 1e-12, "%s at t=%v", tt.mode, tt.t)
	}
}

func TestNightfallRunsToCompletion(t *testing.T) {
	tr, _ := newTransition(t)
	var started []Direction
	var completed []State
	tr.SetHooks(Hooks{
		Started:   func(d Direction) { started = append(started, d) },
		Completed: func(s State) { completed = append(completed, s) },
	})

	require.True(t, tr.CursorMoved(3, width))
	s := tr.State()
	assert.True(t, s.InProgress)
	assert.Equal(t, ToNight, s.Direction)
	assert.Equal(t, "InFlight(ToNight) t=0.000", s.String())

	for i := 0; i < 200 && tr.State().InProgress; i++ {
		tr.Advance(16 * time.Millisecond)
	}

	s = tr.State()
	assert.False(t, s.InProgress)
	assert.False(t, s.Daytime)
	assert.Equal(t, 1.0, s.T)
	d := tr.Derived()
	assert.Equal(t, 0.0, d.SunIntensity)
	assert.Equal(t, 3.5, d.MoonIntensity)
	assert.Equal(t, []Direction{ToNight}, started)
	require.Len(t, completed, 1)
	assert.False(t, completed[0].Daytime)
}

func TestDaybreakFromNight(t *testing.T) {
	tr, _ := newTransition(t)
	require.True(t, tr.Request(ToNight))
	tr.Advance(2 * time.Second)
	require.False(t, tr.State().Daytime)

	assert.False(t, tr.CursorMoved(3, width), "left edge at night does nothing")
	assert.False(t, tr.CursorMoved(width/2, width))
	require.True(t, tr.CursorMoved(width-1, width))
	assert.Equal(t, ToDay, tr.State().Direction)

	tr.Advance(2 * time.Second)
	s := tr.State()
	assert.True(t, s.Daytime)
	assert.Equal(t, 0.0, s.T)
	assert.Equal(t, 3.5, tr.Derived().SunIntensity)
}

func TestSingleFlight(t *testing.T) {
	tr, _ := newTransition(t)
	var reasons []string
	tr.SetHooks(Hooks{Ignored: func(_ Direction, r string) { reasons = append(reasons, r) }})

	require.True(t, tr.CursorMoved(0, width))
	tr.Advance(750 * time.Millisecond) // half way, pre-easing
	before := tr.State()

	assert.False(t, tr.CursorMoved(0, width))
	assert.False(t, tr.CursorMoved(width, width))
	assert.False(t, tr.Request(ToDay))
	assert.Equal(t, before, tr.State())
	assert.Equal(t, []string{ReasonInFlight}, reasons)

	// The trajectory is the one the original tween would have produced.
	tr.Advance(250 * time.Millisecond)
	want := easing.OutElastic(3, 0.7)(1000.0 / 1500.0)
	assert.InDelta(t, want, tr.State().T, 1e-9)
}

func TestDirectionalGuard(t *testing.T) {
	tr, _ := newTransition(t)
	var reasons []string
	tr.SetHooks(Hooks{Ignored: func(_ Direction, r string) { reasons = append(reasons, r) }})

	assert.False(t, tr.Request(ToDay))
	assert.False(t, tr.CursorMoved(width, width), "right edge by day does nothing")
	assert.Equal(t, State{Daytime: true}, tr.State())

	require.True(t, tr.Request(ToNight))
	tr.Advance(time.Minute)
	assert.False(t, tr.Request(ToNight))
	assert.Equal(t, []string{ReasonAlreadyDay, ReasonAlreadyNight}, reasons)
}

func TestInFlightOvershootIsNotClamped(t *testing.T) {
	tr, _ := newTransition(t)
	require.True(t, tr.Request(ToNight))
	peak := 0.0
	for i := 0; i < 150; i++ {
		tr.Advance(10 * time.Millisecond)
		if v := tr.State().T; v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, 1.0)
	assert.Equal(t, 1.0, tr.State().T)
}

func TestSetEdges(t *testing.T) {
	tr, _ := newTransition(t)
	assert.False(t, tr.CursorMoved(150, width))
	tr.SetEdges(200, 200)
	assert.True(t, tr.CursorMoved(150, width))
}

func TestParse(t *testing.T) {
	m, err := ParseBlendMode("additive")
	require.NoError(t, err)
	assert.Equal(t, BlendAdditive, m)
	m, err = ParseBlendMode("")
	require.NoError(t, err)
	assert.Equal(t, BlendMultiplicative, m)
	_, err = ParseBlendMode("screen")
	assert.Error(t, err)

	d, err := ParseDirection("day")
	require.NoError(t, err)
	assert.Equal(t, ToDay, d)
	_, err = ParseDirection("dusk")
	assert.Error(t, err)
}
