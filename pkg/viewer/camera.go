package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"europa/pkg/terrain"
)

// Orbit limits
const (
	minPitch = 0.05
	maxPitch = 1.5
)

// OrbitCamera circles a target point at a fixed distance
type OrbitCamera struct {
	Target    mgl32.Vec3
	Yaw       float32 // radians around +Y
	Pitch     float32 // radians above the horizon
	Distance  float32
	MinDist   float32
	MaxDist   float32
	Clearance float32 // minimum height of the eye above the surface
}

// NewOrbitCamera frames a square terrain of the given size
func NewOrbitCamera(size float32) *OrbitCamera {
	return &OrbitCamera{
		Target:    mgl32.Vec3{0, 0, 0},
		Yaw:       mgl32.DegToRad(35),
		Pitch:     mgl32.DegToRad(25),
		Distance:  size * 0.45,
		MinDist:   size * 0.02,
		MaxDist:   size * 1.5,
		Clearance: 2,
	}
}

// Orbit rotates the camera, keeping pitch between the horizon and the zenith
func (c *OrbitCamera) Orbit(dYaw, dPitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 2*math.Pi))
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, minPitch, maxPitch)
}

// Zoom scales the orbit distance by factor
func (c *OrbitCamera) Zoom(factor float32) {
	c.Distance = mgl32.Clamp(c.Distance*factor, c.MinDist, c.MaxDist)
}

// Eye returns the camera position ignoring the terrain
func (c *OrbitCamera) Eye() mgl32.Vec3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	offset := mgl32.Vec3{
		cp * float32(math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		cp * float32(math.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// EyeAbove returns the camera position lifted above the surface of field
func (c *OrbitCamera) EyeAbove(field terrain.ScalarField) mgl32.Vec3 {
	eye := c.Eye()
	if field == nil {
		return eye
	}

	ground := field.HeightAt(eye[0], eye[2])
	if math.IsNaN(float64(ground)) {
		return eye
	}
	if floor := ground + c.Clearance; eye[1] < floor {
		eye[1] = floor
	}
	return eye
}

// View returns the world-to-camera matrix for eye
func (c *OrbitCamera) View(eye mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, c.Target, mgl32.Vec3{0, 1, 0})
}

// Projection returns a perspective matrix. fov is vertical, in degrees.
func (c *OrbitCamera) Projection(fov, aspect float32) mgl32.Mat4 {
	far := c.MaxDist * 4
	return mgl32.Perspective(mgl32.DegToRad(fov), aspect, 0.5, far)
}
