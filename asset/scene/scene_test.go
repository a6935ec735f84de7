package scene

import (
	"testing"

	"github.com/landris006/path-tracer/tracer/kernel"
	"github.com/landris006/path-tracer/types"
)

func TestCameraMove(t *testing.T) {
	type spec struct {
		dir      CameraDirection
		amount   float32
		expDelta types.Vec3
	}
	specs := []spec{
		{Forward, 2, types.Vec3{0, 0, -2}},
		{Backward, 1, types.Vec3{0, 0, 1}},
		{Left, 0.5, types.Vec3{-0.5, 0, 0}},
		{Right, 3, types.Vec3{3, 0, 0}},
	}

	for index, s := range specs {
		cam := NewCamera(45)
		cam.Move(s.dir, s.amount)
		if cam.Origin != s.expDelta {
			t.Fatalf("[spec %d] expected origin %v; got %v", index, s.expDelta, cam.Origin)
		}
	}
}

func TestCameraKernelView(t *testing.T) {
	cam := NewCamera(60)
	cam.Move(Forward, 1)

	k := cam.Kernel()
	if k.Origin != cam.Origin || k.Forward != cam.Forward {
		t.Fatal("kernel camera does not mirror the scene camera")
	}
	if k.VerticalFov != 60 || k.FocalLength != 1 {
		t.Fatalf("unexpected projection parameters: fov %f focal %f", k.VerticalFov, k.FocalLength)
	}
}

func TestPlaneTriangles(t *testing.T) {
	p := Plane{
		Q:      types.Vec3{0, 0, 0},
		U:      types.Vec3{2, 0, 0},
		V:      types.Vec3{0, 2, 0},
		Albedo: types.Vec3{1, 0, 0},
	}

	tris := p.Triangles()
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles; got %d", len(tris))
	}

	n := p.Normal()
	if n != (types.Vec3{0, 0, 1}) {
		t.Fatalf("expected normal +Z; got %v", n)
	}
	for index, tri := range tris {
		if tri.NA != n || tri.NB != n || tri.NC != n {
			t.Fatalf("[spec %d] vertex normals do not match the face normal", index)
		}
	}

	// Together the triangles must span all four parallelogram corners.
	corners := map[types.Vec3]bool{}
	for _, tri := range tris {
		corners[tri.A] = true
		corners[tri.B] = true
		corners[tri.C] = true
	}
	for _, c := range []types.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}, {2, 2, 0}} {
		if !corners[c] {
			t.Fatalf("corner %v is not covered", c)
		}
	}
}

func TestTriangleCentroidAndBounds(t *testing.T) {
	tri := Triangle{
		A: types.Vec3{0, 0, 0},
		B: types.Vec3{3, 0, 0},
		C: types.Vec3{0, 3, -3},
	}

	if c := tri.Centroid(); c != (types.Vec3{1, 1, -1}) {
		t.Fatalf("expected centroid (1,1,-1); got %v", c)
	}

	lo, hi := tri.BBox()
	if lo != (types.Vec3{0, 0, -3}) || hi != (types.Vec3{3, 3, 0}) {
		t.Fatalf("unexpected bounds %v .. %v", lo, hi)
	}
}

func TestGizmoWrapsTarget(t *testing.T) {
	target := Sphere{
		Center:   types.Vec3{1, 2, -3},
		Radius:   0.5,
		Albedo:   types.Vec3{0.8, 0.3, 0.3},
		Material: kernel.Material{Kind: kernel.Metal, Fuzz: 0.2},
	}

	gizmo := NewGizmo(target, types.Vec3{1, 0.6, 0})
	if gizmo.Center != target.Center {
		t.Fatal("gizmo must share the target center")
	}
	if gizmo.Radius <= target.Radius {
		t.Fatalf("gizmo radius %f must exceed the target radius %f", gizmo.Radius, target.Radius)
	}
	if gizmo.Material.Kind != kernel.Gizmo {
		t.Fatalf("unexpected material kind %d", gizmo.Material.Kind)
	}
}

func TestSelectSphere(t *testing.T) {
	sc := Default()
	count := len(sc.Spheres)

	index := sc.SelectSphere(0, types.Vec3{1, 0.6, 0})
	if index != count {
		t.Fatalf("expected gizmo appended at %d; got %d", count, index)
	}
	if sc.Spheres[index].Material.Kind != kernel.Gizmo {
		t.Fatal("selection did not append a gizmo sphere")
	}
}
