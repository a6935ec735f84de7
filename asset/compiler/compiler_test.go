package compiler

import (
	"strings"
	"testing"

	"github.com/landris006/path-tracer/asset/scene"
	"github.com/landris006/path-tracer/tracer/kernel"
	"github.com/landris006/path-tracer/types"
)

func TestCompileDefaultScene(t *testing.T) {
	sc := scene.Default()

	compiled, err := Compile(sc)
	if err != nil {
		t.Fatal(err)
	}

	if len(compiled.Spheres) != len(sc.Spheres) {
		t.Fatalf("expected %d spheres; got %d", len(sc.Spheres), len(compiled.Spheres))
	}
	if len(compiled.Triangles) != len(sc.Triangles) {
		t.Fatalf("expected %d triangles; got %d", len(sc.Triangles), len(compiled.Triangles))
	}
	if len(compiled.Nodes) == 0 {
		t.Fatal("expected a bvh for the backdrop plane")
	}
	if len(compiled.TriangleIndices) != len(compiled.Triangles) {
		t.Fatalf("expected %d triangle indices; got %d", len(compiled.Triangles), len(compiled.TriangleIndices))
	}

	// The compiled world must actually be traceable: the center sphere sits
	// straight ahead of the default camera.
	r := kernel.Ray{Origin: types.Vec3{0, 0, 0}, Direction: types.Vec3{0, 0, -1}}
	rec := compiled.Hit(r, 0.001, 1e30)
	if !rec.Hit || rec.T < 0.49 || rec.T > 0.51 {
		t.Fatalf("expected hit at t~0.5; got hit=%v t=%f", rec.Hit, rec.T)
	}
}

func TestCompileNilScene(t *testing.T) {
	if _, err := Compile(nil); err == nil {
		t.Fatal("expected error for nil scene")
	}
}

func TestCompileSphereCap(t *testing.T) {
	sc := scene.New()
	for i := 0; i < MaxSpheres+10; i++ {
		sc.AddSphere(scene.Sphere{
			Center: types.Vec3{float32(i), 0, -2},
			Radius: 0.25,
			Albedo: types.Vec3{1, 1, 1},
		})
	}

	compiled, err := Compile(sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(compiled.Spheres) != MaxSpheres {
		t.Fatalf("expected sphere buffer capped at %d; got %d", MaxSpheres, len(compiled.Spheres))
	}
}

func TestCompileMeshlessScene(t *testing.T) {
	sc := scene.New()
	sc.AddSphere(scene.Sphere{Center: types.Vec3{0, 0, -1}, Radius: 0.5, Albedo: types.Vec3{1, 1, 1}})

	compiled, err := Compile(sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(compiled.Nodes) != 0 || len(compiled.TriangleIndices) != 0 {
		t.Fatal("expected no bvh buffers for a sphere-only scene")
	}
}

func TestStats(t *testing.T) {
	compiled, err := Compile(scene.Default())
	if err != nil {
		t.Fatal(err)
	}

	out := Stats(compiled)
	for _, want := range []string{"Spheres", "Triangles", "BVH nodes", "Total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats table is missing %q:\n%s", want, out)
		}
	}
}
