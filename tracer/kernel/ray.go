package kernel

import (
	"math"

	"github.com/landris006/path-tracer/types"
)

// A ray in world space. Direction is kept unit length by the generators.
type Ray struct {
	Origin    types.Vec3
	Direction types.Vec3
}

// Get the point at parameter t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Camera parameters as uploaded per frame. Forward, Right and Up are assumed
// to form an orthonormal basis.
type Camera struct {
	Origin      types.Vec3
	Forward     types.Vec3
	Right       types.Vec3
	Up          types.Vec3
	FocalLength float32
	VerticalFov float32 // degrees
}

// Global tracing parameters, constant for a frame.
type Settings struct {
	SamplesPerPixel uint32
	MaxBounces      uint32
	TMin            float32
	TMax            float32
}

// DefaultSettings returns sampling parameters suitable for interactive
// progressive rendering.
func DefaultSettings() Settings {
	return Settings{
		SamplesPerPixel: 4,
		MaxBounces:      8,
		TMin:            0.001,
		TMax:            1e9,
	}
}

// CameraRay builds the world-space ray for pixel (x, y) on a frameW x frameH
// viewport. jx and jy are sub-pixel jitter offsets in [-0.5, 0.5) used for
// anti-aliasing; pass zero for the pixel center ray.
func CameraRay(cam Camera, frameW, frameH uint32, x, y uint32, jx, jy float32) Ray {
	aspectRatio := float32(frameW) / float32(frameH)

	fovRad := float64(cam.VerticalFov) * math.Pi / 180.0
	viewportH := 2.0 * float32(math.Tan(fovRad/2.0)) * cam.FocalLength
	viewportW := aspectRatio * viewportH

	u := (float32(x)+0.5+jx)/float32(frameW) - 0.5
	v := 0.5 - (float32(y)+0.5+jy)/float32(frameH)

	dir := cam.Forward.Mul(cam.FocalLength).
		Add(cam.Right.Mul(u * viewportW)).
		Add(cam.Up.Mul(v * viewportH)).
		Normalize()

	return Ray{Origin: cam.Origin, Direction: dir}
}
