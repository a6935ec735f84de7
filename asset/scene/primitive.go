package scene

import (
	"github.com/landris006/path-tracer/tracer/kernel"
	"github.com/landris006/path-tracer/types"
)

// An editable sphere. Compile flattens these into the kernel sphere buffer.
type Sphere struct {
	Center   types.Vec3
	Radius   float32
	Albedo   types.Vec3
	Material kernel.Material
}

// NewGizmo wraps a sphere with the thin selection-ring overlay used to mark
// it in the viewport: same center, slightly larger radius.
func NewGizmo(target Sphere, color types.Vec3) Sphere {
	return Sphere{
		Center:   target.Center,
		Radius:   target.Radius + 0.01,
		Albedo:   color,
		Material: kernel.Material{Kind: kernel.Gizmo},
	}
}

// An editable triangle with per-vertex shading normals.
type Triangle struct {
	A, B, C    types.Vec3
	NA, NB, NC types.Vec3
	Albedo     types.Vec3
	Material   kernel.Material
}

// Centroid of the triangle, used by the BVH builder for partitioning.
func (t Triangle) Centroid() types.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// BBox returns the axis-aligned bounds of the triangle.
func (t Triangle) BBox() (types.Vec3, types.Vec3) {
	lo := types.MinVec3(types.MinVec3(t.A, t.B), t.C)
	hi := types.MaxVec3(types.MaxVec3(t.A, t.B), t.C)
	return lo, hi
}

// Kernel flattens the triangle into its buffer representation.
func (t Triangle) Kernel() kernel.Triangle {
	return kernel.Triangle{
		V0: t.A, V1: t.B, V2: t.C,
		N0: t.NA, N1: t.NB, N2: t.NC,
		Albedo:   t.Albedo,
		Material: t.Material,
	}
}

// A parallelogram defined by a corner point and two edge vectors. It expands
// into two triangles sharing the face normal, which is how meshes are built
// without a model loader.
type Plane struct {
	Q, U, V  types.Vec3
	Albedo   types.Vec3
	Material kernel.Material
}

// Normal of the plane: U x V normalized.
func (p Plane) Normal() types.Vec3 {
	return p.U.Cross(p.V).Normalize()
}

// Triangles expands the plane into its two triangles.
func (p Plane) Triangles() []Triangle {
	n := p.Normal()
	return []Triangle{
		{
			A: p.Q, B: p.Q.Add(p.U), C: p.Q.Add(p.V),
			NA: n, NB: n, NC: n,
			Albedo:   p.Albedo,
			Material: p.Material,
		},
		{
			A: p.Q.Add(p.U).Add(p.V), B: p.Q.Add(p.U), C: p.Q.Add(p.V),
			NA: n, NB: n, NC: n,
			Albedo:   p.Albedo,
			Material: p.Material,
		},
	}
}
