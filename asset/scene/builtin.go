package scene

import (
	"github.com/landris006/path-tracer/tracer/kernel"
	"github.com/landris006/path-tracer/types"
)

// Default builds the demo world: a stack of spheres in front of the camera
// over a large ground sphere, plus a two-triangle backdrop plane so the mesh
// path is exercised out of the box.
func Default() *Scene {
	sc := New()

	sc.Spheres = []Sphere{
		{
			Center:   types.Vec3{0, 0, -1},
			Radius:   0.5,
			Albedo:   types.Vec3{0.8, 0.3, 0.3},
			Material: kernel.Material{Kind: kernel.Diffuse},
		},
		{
			Center:   types.Vec3{1, 0, -1},
			Radius:   0.5,
			Albedo:   types.Vec3{1, 1, 1},
			Material: kernel.Material{Kind: kernel.Dielectric, RefractionIndex: 1.5},
		},
		{
			Center:   types.Vec3{-1, 0, -1},
			Radius:   0.5,
			Albedo:   types.Vec3{1, 1, 1},
			Material: kernel.Material{Kind: kernel.Dielectric, RefractionIndex: 1.5},
		},
		{
			Center:   types.Vec3{0, 1, -1},
			Radius:   0.5,
			Albedo:   types.Vec3{0.8, 0.3, 0.3},
			Material: kernel.Material{Kind: kernel.Diffuse},
		},
		{
			Center:   types.Vec3{0, 2, -1},
			Radius:   0.5,
			Albedo:   types.Vec3{0.8, 0.3, 0.3},
			Material: kernel.Material{Kind: kernel.Metal, Fuzz: 0.1},
		},
		{
			Center:   types.Vec3{0, -100.5, -1},
			Radius:   100,
			Albedo:   types.Vec3{0.8, 0.8, 0},
			Material: kernel.Material{Kind: kernel.Diffuse},
		},
	}

	sc.AddPlane(Plane{
		Q:        types.Vec3{-2.5, -0.5, -3},
		U:        types.Vec3{5, 0, 0},
		V:        types.Vec3{0, 3, 0},
		Albedo:   types.Vec3{0.6, 0.6, 0.7},
		Material: kernel.Material{Kind: kernel.Diffuse},
	})

	return sc
}
