package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestOrbitCameraRoundTripsPosition(t *testing.T) {
	c := NewOrbitCamera([3]float64{902, -946, -732}, [3]float64{}, 70, 0.05)
	p := c.Position()
	assert.InDelta(t, 902, p.X(), 1e-9)
	assert.InDelta(t, -946, p.Y(), 1e-9)
	assert.InDelta(t, -732, p.Z(), 1e-9)
}

func TestOrbitCameraDampedDrag(t *testing.T) {
	c := NewOrbitCamera([3]float64{0, 0, 100}, [3]float64{}, 70, 0.5)
	c.Drag(-100, 0)

	c.Update()
	first := c.yaw
	c.Update()
	second := c.yaw - first

	assert.InDelta(t, 0.25, first, 1e-12)
	assert.InDelta(t, 0.125, second, 1e-12, "half the remaining motion each frame")
	assert.InDelta(t, 100, c.Position().Len(), 1e-9, "drag keeps distance")
}

func TestOrbitCameraUndampedAppliesAtOnce(t *testing.T) {
	c := NewOrbitCamera([3]float64{0, 0, 100}, [3]float64{}, 70, 0)
	c.Zoom(1)
	c.Update()
	assert.InDelta(t, 90, c.Distance(), 1e-9)
	c.Update()
	assert.InDelta(t, 90, c.Distance(), 1e-9)
}

func TestOrbitCameraClampsPitchAndDistance(t *testing.T) {
	c := NewOrbitCamera([3]float64{0, 0, 10}, [3]float64{}, 70, 0)
	c.Drag(0, 1e6)
	c.Update()
	assert.InDelta(t, maxPitch, c.pitch, 1e-12)

	c.Zoom(100)
	c.Update()
	assert.Equal(t, minDistance, c.Distance())

	c.SetPosition(mgl64.Vec3{})
	assert.Equal(t, minDistance, c.Distance())
}
