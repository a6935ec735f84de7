package kernel

import (
	"math"

	"github.com/landris006/path-tracer/types"
)

const (
	// Rays closer to parallel than this to a triangle plane never hit it.
	triangleDetEpsilon = 1e-5

	// Gizmo spheres only register hits when the ray grazes the surface:
	// dot(direction, outward normal) must fall inside this band.
	gizmoTangentBand = 0.2

	// Distance reported for AABBs the ray misses. Any real hit is closer.
	missDistance = float32(math.MaxFloat32)
)

// hitSphere solves the ray-sphere quadratic in the half-b form and returns
// the nearest root inside (tMin, tMax). A negative discriminant or two
// out-of-range roots yield a zero (miss) record, never an error.
func hitSphere(sp *Sphere, r Ray, tMin, tMax float32) HitRecord {
	oc := r.Origin.Sub(sp.Center)
	a := r.Direction.Len2()
	halfB := oc.Dot(r.Direction)
	c := oc.Len2() - sp.Radius*sp.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}
	}

	sqrtD := float32(math.Sqrt(float64(discriminant)))
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return HitRecord{}
		}
	}

	point := r.At(root)
	outward := point.Sub(sp.Center).Mul(1.0 / sp.Radius)

	// Selection-ring overlays are thin: reject everything outside the
	// tangent band so only the silhouette of the sphere lights up.
	if sp.Material.Kind == Gizmo {
		facing := r.Direction.Normalize().Dot(outward)
		if facing < -gizmoTangentBand || facing > gizmoTangentBand {
			return HitRecord{}
		}
	}

	rec := HitRecord{
		Hit:         true,
		T:           root,
		Point:       point,
		Attenuation: sp.Albedo,
		Material:    sp.Material,
	}
	rec.setFaceNormal(r, outward)
	return rec
}

// hitTriangle runs the Moller-Trumbore intersection test. The shading normal
// is the barycentric blend of the vertex normals.
func hitTriangle(tri *Triangle, r Ray, tMin, tMax float32) HitRecord {
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)

	pvec := r.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -triangleDetEpsilon && det < triangleDetEpsilon {
		return HitRecord{}
	}

	invDet := 1.0 / det
	tvec := r.Origin.Sub(tri.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return HitRecord{}
	}

	qvec := tvec.Cross(edge1)
	v := r.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return HitRecord{}
	}

	t := edge2.Dot(qvec) * invDet
	if t <= tMin || t >= tMax {
		return HitRecord{}
	}

	normal := tri.N0.Mul(1.0 - u - v).
		Add(tri.N1.Mul(u)).
		Add(tri.N2.Mul(v)).
		Normalize()

	rec := HitRecord{
		Hit:         true,
		T:           t,
		Point:       r.At(t),
		Attenuation: tri.Albedo,
		Material:    tri.Material,
	}
	rec.setFaceNormal(r, normal)
	return rec
}

// hitAABB runs the slab test against a node's bounding box and returns the
// entry distance, or missDistance when the ray misses the box entirely.
// Zero direction components produce infinite slabs through IEEE division,
// which the min/max folding handles without special casing.
func hitAABB(node *BVHNode, r Ray, invDir types.Vec3) float32 {
	t1 := node.MinCorner.Sub(r.Origin).MulVec(invDir)
	t2 := node.MaxCorner.Sub(r.Origin).MulVec(invDir)

	lo := types.MinVec3(t1, t2)
	hi := types.MaxVec3(t1, t2)

	tNear := max32(max32(lo[0], lo[1]), lo[2])
	tFar := min32(min32(hi[0], hi[1]), hi[2])

	if tNear > tFar || tFar < 0 {
		return missDistance
	}
	return tNear
}

// setFaceNormal stores a normal that always faces the ray origin's side and
// records which side was hit.
func (rec *HitRecord) setFaceNormal(r Ray, outward types.Vec3) {
	rec.FrontFace = r.Direction.Dot(outward) < 0
	if rec.FrontFace {
		rec.Normal = outward
	} else {
		rec.Normal = outward.Neg()
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
