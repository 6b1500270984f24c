package palette

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForms(t *testing.T) {
	for _, s := range []string{"#63B598", "63B598", "0x63B598", " 63b598 "} {
		c, err := Parse(s)
		require.NoError(t, err, s)
		r, g, b := c.RGB255()
		assert.Equal(t, []uint8{0x63, 0xB5, 0x98}, []uint8{r, g, b}, s)
	}
	_, err := Parse("not-a-colour")
	assert.Error(t, err)
}

func TestTrailsAllParse(t *testing.T) {
	assert.Len(t, Trails, 270)
	for _, s := range Trails {
		_, err := Parse(s)
		assert.NoError(t, err, s)
	}
}

func TestPickIsDeterministic(t *testing.T) {
	a := Pick(rand.New(rand.NewPCG(5, 6)))
	b := Pick(rand.New(rand.NewPCG(5, 6)))
	assert.Equal(t, a, b)
}

func TestBackdrop(t *testing.T) {
	day := MustParse("#ffffff")
	night := MustParse("#000000")
	assert.Equal(t, day, Backdrop(day, night, 0))
	assert.Equal(t, night, Backdrop(day, night, 1))
	// overshoot stays in gamut
	r, g, b, _ := RGBA8(Backdrop(day, night, 1.2), 1)
	assert.Equal(t, []uint8{0, 0, 0}, []uint8{r, g, b})
}

func TestRGBA8Alpha(t *testing.T) {
	c := MustParse("#102030")
	_, _, _, a := RGBA8(c, 0.5)
	assert.Equal(t, uint8(128), a)
	_, _, _, a = RGBA8(c, 1.3)
	assert.Equal(t, uint8(255), a)
	_, _, _, a = RGBA8(c, -0.2)
	assert.Equal(t, uint8(0), a)
}
