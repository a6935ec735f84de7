package scene

import (
	"github.com/landris006/path-tracer/tracer/kernel"
	"github.com/landris006/path-tracer/types"
)

// Directions the camera can be moved towards.
type CameraDirection uint8

const (
	Forward CameraDirection = iota
	Backward
	Left
	Right
)

// The camera type controls the scene camera. The basis vectors are expected
// to stay mutually orthogonal unit vectors; the kernel assumes it.
type Camera struct {
	Origin  types.Vec3
	Forward types.Vec3
	Right   types.Vec3
	Up      types.Vec3

	FocalLength float32
	VerticalFov float32 // degrees
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera(fov float32) *Camera {
	return &Camera{
		Origin:      types.Vec3{0, 0, 0},
		Forward:     types.Vec3{0, 0, -1},
		Right:       types.Vec3{1, 0, 0},
		Up:          types.Vec3{0, 1, 0},
		FocalLength: 1.0,
		VerticalFov: fov,
	}
}

// Move translates the camera along its basis. Any movement invalidates the
// renderer's accumulated history; callers must notify it.
func (c *Camera) Move(dir CameraDirection, amount float32) {
	switch dir {
	case Forward:
		c.Origin = c.Origin.Add(c.Forward.Mul(amount))
	case Backward:
		c.Origin = c.Origin.Sub(c.Forward.Mul(amount))
	case Left:
		c.Origin = c.Origin.Sub(c.Right.Mul(amount))
	case Right:
		c.Origin = c.Origin.Add(c.Right.Mul(amount))
	}
}

// Kernel flattens the camera into the per-frame uniform consumed by the
// tracing kernel.
func (c *Camera) Kernel() kernel.Camera {
	return kernel.Camera{
		Origin:      c.Origin,
		Forward:     c.Forward,
		Right:       c.Right,
		Up:          c.Up,
		FocalLength: c.FocalLength,
		VerticalFov: c.VerticalFov,
	}
}
