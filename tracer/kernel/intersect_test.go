package kernel

import (
	"math"
	"testing"

	"github.com/landris006/path-tracer/types"
)

func TestSphereHitThroughCenter(t *testing.T) {
	type spec struct {
		center types.Vec3
		radius float32
		origin types.Vec3
	}
	specs := []spec{
		{types.Vec3{0, 0, -1}, 0.5, types.Vec3{0, 0, 0}},
		{types.Vec3{3, 2, -5}, 1.25, types.Vec3{0, 0, 0}},
		{types.Vec3{-2, 0, 4}, 0.1, types.Vec3{-2, 0, -10}},
	}

	for index, s := range specs {
		sp := &Sphere{Center: s.center, Radius: s.radius, Albedo: types.Vec3{1, 1, 1}}
		r := Ray{Origin: s.origin, Direction: s.center.Sub(s.origin).Normalize()}

		rec := hitSphere(sp, r, 0.001, 1e9)
		if !rec.Hit {
			t.Fatalf("[spec %d] expected hit through sphere center", index)
		}

		// The hit point must lie on the sphere surface.
		if delta := rec.Point.Sub(s.center).Len() - s.radius; delta > 1e-4 || delta < -1e-4 {
			t.Fatalf("[spec %d] hit point not on surface; distance error %f", index, delta)
		}
		if !rec.FrontFace {
			t.Fatalf("[spec %d] expected front face hit from outside", index)
		}
	}
}

func TestSphereNearRootPreferred(t *testing.T) {
	sp := &Sphere{Center: types.Vec3{0, 0, -3}, Radius: 1}
	r := Ray{Origin: types.Vec3{0, 0, 0}, Direction: types.Vec3{0, 0, -1}}

	rec := hitSphere(sp, r, 0.001, 1e9)
	if !rec.Hit || rec.T < 1.99 || rec.T > 2.01 {
		t.Fatalf("expected near surface at t=2; got hit=%t t=%f", rec.Hit, rec.T)
	}

	// Starting inside the sphere only the far root is in range and the
	// stored normal must flip towards the origin.
	inside := Ray{Origin: types.Vec3{0, 0, -3}, Direction: types.Vec3{0, 0, -1}}
	rec = hitSphere(sp, inside, 0.001, 1e9)
	if !rec.Hit || rec.T < 0.99 || rec.T > 1.01 {
		t.Fatalf("expected far root at t=1 from inside; got hit=%t t=%f", rec.Hit, rec.T)
	}
	if rec.FrontFace {
		t.Fatal("expected back face hit from inside the sphere")
	}
	if rec.Normal[2] < 0.99 {
		t.Fatalf("expected flipped normal towards ray origin; got %v", rec.Normal)
	}
}

func TestSphereMiss(t *testing.T) {
	sp := &Sphere{Center: types.Vec3{0, 0, -3}, Radius: 0.5}

	// Ray pointing away from the sphere.
	if rec := hitSphere(sp, Ray{types.Vec3{0, 0, 0}, types.Vec3{0, 0, 1}}, 0.001, 1e9); rec.Hit {
		t.Fatal("expected miss for ray pointing away")
	}
	// Both roots outside (tMin, tMax).
	if rec := hitSphere(sp, Ray{types.Vec3{0, 0, 0}, types.Vec3{0, 0, -1}}, 0.001, 1.0); rec.Hit {
		t.Fatal("expected miss when both roots exceed tMax")
	}
}

func TestGizmoTangentBand(t *testing.T) {
	sp := &Sphere{
		Center:   types.Vec3{0, 0, -3},
		Radius:   1,
		Albedo:   types.Vec3{1, 0.6, 0},
		Material: Material{Kind: Gizmo},
	}

	// A ray through the center hits head-on: dot(dir, normal) = -1, well
	// outside the tangent band, so the overlay must not register.
	if rec := hitSphere(sp, Ray{types.Vec3{0, 0, 0}, types.Vec3{0, 0, -1}}, 0.001, 1e9); rec.Hit {
		t.Fatal("expected head-on ray to miss the gizmo band")
	}

	// A grazing ray aimed just inside the silhouette (impact parameter
	// 0.99 of the radius) is nearly perpendicular to the outward normal
	// and must register.
	grazing := Ray{types.Vec3{0, 0, 0}, types.Vec3{0.33, 0, -0.944}.Normalize()}
	if rec := hitSphere(sp, grazing, 0.001, 1e9); !rec.Hit {
		t.Fatal("expected grazing ray to hit the gizmo band")
	}
}

func TestTriangleHit(t *testing.T) {
	n := types.Vec3{0, 0, 1}
	tri := &Triangle{
		V0: types.Vec3{-1, -1, 0},
		V1: types.Vec3{1, -1, 0},
		V2: types.Vec3{0, 1, 0},
		N0: n, N1: n, N2: n,
		Albedo: types.Vec3{1, 1, 1},
	}

	centroid := tri.V0.Add(tri.V1).Add(tri.V2).Mul(1.0 / 3.0)

	// A ray aimed at the centroid along the negated face normal hits.
	r := Ray{Origin: centroid.Add(n.Mul(5)), Direction: n.Neg()}
	rec := hitTriangle(tri, r, 0.001, 1e9)
	if !rec.Hit {
		t.Fatal("expected centroid ray to hit")
	}
	if delta := rec.T - 5.0; delta > 1e-4 || delta < -1e-4 {
		t.Fatalf("expected hit at t=5; got %f", rec.T)
	}
	if rec.Normal != n {
		t.Fatalf("expected face normal %v; got %v", n, rec.Normal)
	}

	// A ray parallel to the triangle plane never hits.
	parallel := Ray{Origin: types.Vec3{0, 0, 1}, Direction: types.Vec3{1, 0, 0}}
	if rec := hitTriangle(tri, parallel, 0.001, 1e9); rec.Hit {
		t.Fatal("expected parallel ray to miss")
	}

	// Outside the barycentric bounds.
	outside := Ray{Origin: types.Vec3{5, 5, 5}, Direction: types.Vec3{0, 0, -1}}
	if rec := hitTriangle(tri, outside, 0.001, 1e9); rec.Hit {
		t.Fatal("expected ray outside barycentric bounds to miss")
	}
}

func TestTriangleNormalInterpolation(t *testing.T) {
	// Vertex normals fan outwards; a hit near a vertex should lean
	// towards that vertex's normal.
	tri := &Triangle{
		V0: types.Vec3{-1, 0, 0},
		V1: types.Vec3{1, 0, 0},
		V2: types.Vec3{0, 2, 0},
		N0: types.Vec3{-1, 0, 1}.Normalize(),
		N1: types.Vec3{1, 0, 1}.Normalize(),
		N2: types.Vec3{0, 1, 1}.Normalize(),
	}

	r := Ray{Origin: types.Vec3{0.9, 0.05, 5}, Direction: types.Vec3{0, 0, -1}}
	rec := hitTriangle(tri, r, 0.001, 1e9)
	if !rec.Hit {
		t.Fatal("expected hit near vertex 1")
	}
	if rec.Normal[0] <= 0 {
		t.Fatalf("expected interpolated normal leaning towards +x; got %v", rec.Normal)
	}
	if delta := rec.Normal.Len() - 1.0; delta > 1e-4 || delta < -1e-4 {
		t.Fatalf("interpolated normal not unit length: %f", rec.Normal.Len())
	}
}

func TestAABBSlab(t *testing.T) {
	node := &BVHNode{MinCorner: types.Vec3{-1, -1, -1}, MaxCorner: types.Vec3{1, 1, 1}}

	type spec struct {
		ray    Ray
		expHit bool
	}
	specs := []spec{
		{Ray{types.Vec3{0, 0, 5}, types.Vec3{0, 0, -1}}, true},
		{Ray{types.Vec3{0, 0, 5}, types.Vec3{0, 0, 1}}, false},
		{Ray{types.Vec3{5, 5, 5}, types.Vec3{0, 0, -1}}, false},
		// Axis-aligned ray with zero direction components exercises the
		// IEEE infinity slab arithmetic.
		{Ray{types.Vec3{0.5, 0.5, 5}, types.Vec3{0, 0, -1}}, true},
		// Ray starting inside the box.
		{Ray{types.Vec3{0, 0, 0}, types.Vec3{1, 0, 0}}, true},
	}

	for index, s := range specs {
		d := hitAABB(node, s.ray, s.ray.Direction.Recip())
		if hit := d != missDistance; hit != s.expHit {
			t.Fatalf("[spec %d] expected hit=%t; got distance %f", index, s.expHit, d)
		}
		if math.IsNaN(float64(d)) {
			t.Fatalf("[spec %d] slab test produced NaN", index)
		}
	}
}
