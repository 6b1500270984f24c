package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesHiddenByDefault(t *testing.T) {
	d := New()
	assert.Empty(t, d.Lines(60))
}

func TestLinesOrderAndStatus(t *testing.T) {
	d := New()
	state := "Resting(day)"
	d.Status = func() string { return state }
	d.Toggle()

	lines := d.Lines(60)
	require.Len(t, lines, 3)
	assert.Equal(t, "FPS: 60", lines[0])
	assert.Contains(t, lines[1], "Mem: ")
	assert.Equal(t, "Resting(day)", lines[2])

	// FPS text is cached between refreshes; status is not.
	state = "InFlight(ToNight) t=0.500"
	lines = d.Lines(30)
	assert.Equal(t, "FPS: 60", lines[0])
	assert.Equal(t, state, lines[2])

	d.Toggle()
	assert.Empty(t, d.Lines(60))
}
