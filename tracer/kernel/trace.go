package kernel

import "github.com/landris006/path-tracer/types"

const (
	// Workers are grouped in TileSize x TileSize tiles when dispatched
	// over the frame.
	TileSize = 16

	// A gizmo pass-through does not count against the bounce budget; the
	// budget is extended by one per pass-through up to this limit so the
	// loop stays bounded. One overlay ring needs at most two crossings.
	gizmoCorrectionLimit = 4
)

// TracePath follows a single ray through the scene for up to MaxBounces
// bounces and returns the radiance estimate carried back to the camera.
// The RNG state is threaded explicitly and returned alongside the color.
func TracePath(sc *Scene, settings Settings, r Ray, state RngState) (RngState, types.Vec3) {
	color := types.Vec3{1, 1, 1}
	correction := uint32(0)

	for depth := uint32(0); depth < settings.MaxBounces+correction; depth++ {
		rec := sc.Hit(r, settings.TMin, settings.TMax)
		if !rec.Hit {
			return state, color.MulVec(sc.Background(r.Direction))
		}

		if rec.Material.Kind == Gizmo {
			if depth == 0 {
				// Primary rays grazing the overlay show the marker color
				// directly, bypassing lighting.
				return state, rec.Attenuation
			}
			// Indirect rays pass through the overlay unchanged and the
			// crossing does not consume a bounce.
			if correction < gizmoCorrectionLimit {
				correction++
			}
			r = Ray{Origin: rec.Point.Add(r.Direction.Mul(surfaceBias)), Direction: r.Direction}
			continue
		}

		color = color.MulVec(rec.Attenuation)

		incident := r
		var result scatterResult
		state, r, result = scatter(rec, incident, state)
		if result == absorbed {
			return state, color.MulVec(sc.Background(incident.Direction))
		}
	}

	// Bounce budget exhausted: close the path with the background radiance
	// arriving along the last scattered direction.
	return state, color.MulVec(sc.Background(r.Direction))
}

// SamplePixel produces the pixel's color for one frame by averaging
// SamplesPerPixel jittered camera rays. Deterministic for a given pixel
// coordinate and frame counter.
func SamplePixel(sc *Scene, cam Camera, settings Settings, frameW, frameH, x, y, frame uint32) types.Vec3 {
	state := SeedRng(x, y, frame)

	var sum types.Vec3
	samples := settings.SamplesPerPixel
	if samples == 0 {
		samples = 1
	}

	for s := uint32(0); s < samples; s++ {
		var jx, jy float32
		state, jx = RandomRange(state, -0.5, 0.5)
		state, jy = RandomRange(state, -0.5, 0.5)

		ray := CameraRay(cam, frameW, frameH, x, y, jx, jy)

		var color types.Vec3
		state, color = TracePath(sc, settings, ray, state)
		sum = sum.Add(color)
	}

	return sum.Mul(1.0 / float32(samples))
}
