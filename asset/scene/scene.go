// Package scene holds the editable description of a world: the camera, the
// sphere list and the triangle soup. It is the form the application mutates;
// the compiler package flattens it into the buffers the kernel traces.
package scene

import (
	"github.com/landris006/path-tracer/tracer/kernel"
	"github.com/landris006/path-tracer/types"
)

// Scene is the editable world description.
type Scene struct {
	Camera    *Camera
	Spheres   []Sphere
	Triangles []Triangle

	// Radiance source for escaped rays. Nil selects the kernel's built-in
	// sky gradient.
	Env kernel.Environment
}

// New creates an empty scene with a default camera.
func New() *Scene {
	return &Scene{
		Camera: NewCamera(45),
	}
}

// AddSphere appends a sphere and returns its index.
func (sc *Scene) AddSphere(s Sphere) int {
	sc.Spheres = append(sc.Spheres, s)
	return len(sc.Spheres) - 1
}

// AddTriangle appends a triangle.
func (sc *Scene) AddTriangle(t Triangle) {
	sc.Triangles = append(sc.Triangles, t)
}

// AddPlane expands a parallelogram into its two triangles and appends them.
func (sc *Scene) AddPlane(p Plane) {
	sc.Triangles = append(sc.Triangles, p.Triangles()...)
}

// SelectSphere appends the selection gizmo shell for the sphere at the given
// index. The returned index points at the gizmo so it can be removed when
// the selection changes.
func (sc *Scene) SelectSphere(index int, color types.Vec3) int {
	return sc.AddSphere(NewGizmo(sc.Spheres[index], color))
}
