package solar

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func origin(m mgl64.Mat4) mgl64.Vec3 {
	return m.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
}

func TestAdvanceSpin(t *testing.T) {
	s := &System{Bodies: []*Body{
		{Name: "Earth", SpinFactor: 1},
		{Name: "Venus", SpinFactor: -1 / 2.5},
		{Name: "Luna"},
	}}
	for i := 0; i < 10; i++ {
		s.Advance(DefaultSpinSpeed)
	}
	assert.InDelta(t, 0.02, s.Bodies[0].Spin, 1e-12)
	assert.InDelta(t, -0.008, s.Bodies[1].Spin, 1e-12)
	assert.Zero(t, s.Bodies[2].Spin)
}

func TestChildFollowsParentSpin(t *testing.T) {
	earth := &Body{Name: "Earth", SpinFactor: 1}
	luna := &Body{Name: "Luna", Parent: earth, Position: mgl64.Vec3{18, 4, 0}}

	at := origin(luna.World())
	assert.InDeltaSlice(t, []float64{18, 4, 0}, at[:], 1e-9)

	earth.Spin = math.Pi / 2
	// +90° about Y maps +X to -Z.
	at = origin(luna.World())
	assert.InDeltaSlice(t, []float64{0, 4, -18}, at[:], 1e-9)
}

func TestLocalScaleDefaults(t *testing.T) {
	b := &Body{Position: mgl64.Vec3{1, 2, 3}}
	m := b.Local()
	p := m.Mul4x1(mgl64.Vec4{1, 0, 0, 1}).Vec3()
	assert.InDeltaSlice(t, []float64{2, 2, 3}, p[:], 1e-12)
}

func TestFindAndPrimary(t *testing.T) {
	s := &System{Bodies: []*Body{{Name: "Mercury"}, {Name: "Earth", Primary: true}}}
	b, ok := s.Find("earth")
	require.True(t, ok)
	assert.Equal(t, "Earth", b.Name)
	_, ok = s.Find("pluto")
	assert.False(t, ok)
	assert.Equal(t, "Earth", s.Primary().Name)

	assert.Equal(t, "Mercury", (&System{Bodies: s.Bodies[:1]}).Primary().Name)
	assert.Nil(t, (&System{}).Primary())
}

func TestStarfield(t *testing.T) {
	stars := Starfield(rand.New(rand.NewPCG(1, 1)), 5000, 10000)
	require.Len(t, stars, 5000)
	for _, s := range stars {
		for _, c := range s {
			assert.LessOrEqual(t, math.Abs(float64(c)), 5000.0)
		}
	}
	assert.Nil(t, Starfield(rand.New(rand.NewPCG(1, 1)), 0, 1))
}
