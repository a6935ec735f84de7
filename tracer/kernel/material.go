package kernel

import (
	"math"

	"github.com/landris006/path-tracer/types"
)

// Offset applied along the scatter direction when spawning bounce rays so
// they do not re-hit the surface they left. TMin provides the same guard;
// this only matters for gizmo pass-through rays that keep their direction.
const surfaceBias = 1e-4

// scatterResult tells the path loop what happened at a bounce.
type scatterResult uint8

const (
	// The ray bounced; keep tracing along the returned ray.
	scattered scatterResult = iota
	// The bounce direction fell below the surface; the path ends here.
	absorbed
)

// scatter produces the next bounce ray for a hit. Dispatch is a switch over
// the material kind with unknown kinds degrading to diffuse, never failing.
func scatter(rec HitRecord, in Ray, state RngState) (RngState, Ray, scatterResult) {
	switch rec.Material.Kind {
	case Metal:
		return scatterMetal(rec, in, state)
	case Dielectric:
		return scatterDielectric(rec, in, state)
	case Diffuse:
		return scatterDiffuse(rec, state)
	default:
		return scatterDiffuse(rec, state)
	}
}

func scatterDiffuse(rec HitRecord, state RngState) (RngState, Ray, scatterResult) {
	state, unit := RandomUnitVec3(state)
	dir := rec.Normal.Add(unit)

	// A direction with no component along the normal is degenerate or
	// below the surface; treat the bounce as absorbed.
	if dir.Dot(rec.Normal) <= 0 {
		return state, Ray{}, absorbed
	}

	out := Ray{Origin: rec.Point, Direction: dir.Normalize()}
	return state, out, scattered
}

func scatterMetal(rec HitRecord, in Ray, state RngState) (RngState, Ray, scatterResult) {
	reflected := in.Direction.Normalize().Reflect(rec.Normal)

	fuzz := rec.Material.Fuzz
	if fuzz > 0 {
		var unit types.Vec3
		state, unit = RandomUnitVec3(state)
		reflected = reflected.Add(unit.Mul(fuzz))
	}

	if reflected.Dot(rec.Normal) <= 0 {
		return state, Ray{}, absorbed
	}

	out := Ray{Origin: rec.Point, Direction: reflected.Normalize()}
	return state, out, scattered
}

func scatterDielectric(rec HitRecord, in Ray, state RngState) (RngState, Ray, scatterResult) {
	refractionIndex := rec.Material.RefractionIndex
	if refractionIndex == 0 {
		refractionIndex = 1.5
	}

	etaRatio := refractionIndex
	if rec.FrontFace {
		etaRatio = 1.0 / refractionIndex
	}

	unitDir := in.Direction.Normalize()
	cosTheta := min32(unitDir.Neg().Dot(rec.Normal), 1.0)
	sinTheta := float32(math.Sqrt(float64(1.0 - cosTheta*cosTheta)))

	cannotRefract := etaRatio*sinTheta > 1.0

	var draw float32
	state, draw = RandomFloat(state)

	var dir types.Vec3
	if cannotRefract || schlick(cosTheta, etaRatio) > draw {
		dir = unitDir.Reflect(rec.Normal)
	} else {
		dir = unitDir.Refract(rec.Normal, etaRatio)
	}

	out := Ray{Origin: rec.Point, Direction: dir.Normalize()}
	return state, out, scattered
}

// schlick approximates the Fresnel reflectance at an interface.
func schlick(cosine, etaRatio float32) float32 {
	r0 := (1.0 - etaRatio) / (1.0 + etaRatio)
	r0 = r0 * r0
	return r0 + (1.0-r0)*float32(math.Pow(float64(1.0-cosine), 5))
}
