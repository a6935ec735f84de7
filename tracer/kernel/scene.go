package kernel

import "github.com/landris006/path-tracer/types"

// Material kinds understood by the scatter dispatch. Values match the ids
// used by the scene buffers; anything else falls back to diffuse.
type MaterialKind uint32

const (
	Diffuse MaterialKind = iota
	Metal
	Dielectric
	// Gizmo is a non-physical overlay marker used for selection rings. It
	// only registers hits in a narrow tangent band and bypasses lighting.
	Gizmo
)

// Material is a tagged union: Fuzz is only meaningful for Metal,
// RefractionIndex only for Dielectric.
type Material struct {
	Kind            MaterialKind
	Fuzz            float32
	RefractionIndex float32
}

// An analytic sphere primitive, stored contiguously in the sphere buffer.
type Sphere struct {
	Center   types.Vec3
	Radius   float32
	Albedo   types.Vec3
	Material Material
}

// A triangle primitive with per-vertex shading normals.
type Triangle struct {
	V0, V1, V2 types.Vec3
	N0, N1, N2 types.Vec3
	Albedo     types.Vec3
	Material   Material
}

// A flattened BVH node.
//
// TriangleCount == 0 marks an internal node whose children are at
// LeftChildIndex and LeftChildIndex+1. TriangleCount > 0 marks a leaf whose
// triangle indices occupy [LeftChildIndex, LeftChildIndex+TriangleCount) in
// the triangle index buffer.
type BVHNode struct {
	MinCorner      types.Vec3
	LeftChildIndex uint32
	MaxCorner      types.Vec3
	TriangleCount  uint32
}

// Environment supplies incoming radiance for rays that escape the scene.
// Implementations must return a finite RGB value for every direction.
type Environment interface {
	Sample(dir types.Vec3) types.Vec3
}

// Scene holds the read-only buffers consumed by the kernel. All slices are
// immutable for the lifetime of a frame; replacing them between frames is
// the host's responsibility.
type Scene struct {
	Spheres []Sphere

	Triangles       []Triangle
	TriangleIndices []uint32
	Nodes           []BVHNode

	// Optional environment map; nil falls back to the procedural sky
	// gradient.
	Env Environment
}

// Transient result of an intersection test.
type HitRecord struct {
	Hit         bool
	T           float32
	Point       types.Vec3
	Normal      types.Vec3
	FrontFace   bool
	Attenuation types.Vec3
	Material    Material
}

// Background returns the radiance arriving along a ray that hit nothing.
func (s *Scene) Background(dir types.Vec3) types.Vec3 {
	if s.Env != nil {
		return s.Env.Sample(dir)
	}
	return SkyGradient(dir)
}

// SkyGradient is the procedural fallback sky: white at the horizon blending
// to light blue upwards.
func SkyGradient(dir types.Vec3) types.Vec3 {
	t := 0.5 * (dir.Normalize()[1] + 1.0)
	return types.Lerp(types.Vec3{1, 1, 1}, types.Vec3{0.5, 0.7, 1.0}, t)
}

// Hit finds the globally nearest intersection along the ray within
// (tMin, tMax), merging the sphere scan with the BVH mesh query.
func (s *Scene) Hit(r Ray, tMin, tMax float32) HitRecord {
	rec := s.hitSpheres(r, tMin, tMax)

	closest := tMax
	if rec.Hit {
		closest = rec.T
	}

	if meshRec := s.hitMesh(r, tMin, closest); meshRec.Hit {
		rec = meshRec
	}
	return rec
}

func (s *Scene) hitSpheres(r Ray, tMin, tMax float32) HitRecord {
	var rec HitRecord
	closest := tMax

	for i := range s.Spheres {
		if hit := hitSphere(&s.Spheres[i], r, tMin, closest); hit.Hit {
			closest = hit.T
			rec = hit
		}
	}
	return rec
}

func (s *Scene) hitMesh(r Ray, tMin, tMax float32) HitRecord {
	if len(s.Triangles) == 0 {
		return HitRecord{}
	}
	if len(s.Nodes) == 0 {
		// No acceleration structure bound; degrade to the exhaustive scan.
		return s.hitTrianglesLinear(r, tMin, tMax)
	}
	return s.traverseBVH(r, tMin, tMax)
}

// hitTrianglesLinear tests every triangle in the scene. It is the reference
// the BVH traversal is validated against and the fallback when no BVH is
// bound.
func (s *Scene) hitTrianglesLinear(r Ray, tMin, tMax float32) HitRecord {
	var rec HitRecord
	closest := tMax

	for i := range s.Triangles {
		if hit := hitTriangle(&s.Triangles[i], r, tMin, closest); hit.Hit {
			closest = hit.T
			rec = hit
		}
	}
	return rec
}
