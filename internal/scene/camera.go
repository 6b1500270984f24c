package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	minDistance = 1.0
	maxPitch    = math.Pi/2 - 1e-3
	// dragRate converts pixels of mouse drag into radians.
	dragRate = 0.005
	// zoomRate is the fraction of the current distance one wheel notch covers.
	zoomRate = 0.1
)

// OrbitCamera circles a target on a sphere. Drag and zoom add velocity, and each
// Update applies a Damping fraction of it and keeps the rest for later frames,
// so motion eases out after the input stops.
type OrbitCamera struct {
	Target  mgl64.Vec3
	Fovy    float64
	Damping float64

	distance float64
	yaw      float64
	pitch    float64

	yawVel   float64
	pitchVel float64
	zoomVel  float64
}

// NewOrbitCamera places the camera at position looking at target.
func NewOrbitCamera(position, target [3]float64, fovy, damping float64) *OrbitCamera {
	c := &OrbitCamera{Target: mgl64.Vec3(target), Fovy: fovy, Damping: damping}
	c.SetPosition(mgl64.Vec3(position))
	return c
}

// SetPosition moves the camera and drops any pending motion.
func (c *OrbitCamera) SetPosition(p mgl64.Vec3) {
	offset := p.Sub(c.Target)
	c.distance = math.Max(offset.Len(), minDistance)
	c.yaw = math.Atan2(offset.X(), offset.Z())
	c.pitch = clampPitch(math.Asin(mgl64.Clamp(offset.Y()/c.distance, -1, 1)))
	c.yawVel, c.pitchVel, c.zoomVel = 0, 0, 0
}

// Position is the camera's world position.
func (c *OrbitCamera) Position() mgl64.Vec3 {
	cp := math.Cos(c.pitch)
	dir := mgl64.Vec3{cp * math.Sin(c.yaw), math.Sin(c.pitch), cp * math.Cos(c.yaw)}
	return c.Target.Add(dir.Mul(c.distance))
}

// Distance from the target.
func (c *OrbitCamera) Distance() float64 { return c.distance }

// Drag turns the camera by a mouse drag in pixels.
func (c *OrbitCamera) Drag(dx, dy float64) {
	c.yawVel -= dx * dragRate
	c.pitchVel += dy * dragRate
}

// Zoom moves toward (positive) or away from (negative) the target in wheel notches.
func (c *OrbitCamera) Zoom(notches float64) {
	c.zoomVel -= notches * zoomRate
}

// Update applies pending motion. Call once per frame.
func (c *OrbitCamera) Update() {
	k := c.Damping
	if k <= 0 || k > 1 {
		k = 1
	}
	c.yaw += c.yawVel * k
	c.pitch = clampPitch(c.pitch + c.pitchVel*k)
	c.distance = math.Max(c.distance*(1+c.zoomVel*k), minDistance)

	keep := 1 - k
	c.yawVel *= keep
	c.pitchVel *= keep
	c.zoomVel *= keep
}

func clampPitch(p float64) float64 {
	return mgl64.Clamp(p, -maxPitch, maxPitch)
}
