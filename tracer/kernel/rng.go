package kernel

import (
	"math"

	"github.com/landris006/path-tracer/types"
)

// RngState holds the four words of the hybrid Tausworthe/LCG generator.
// States are passed and returned by value; a pixel worker threads its own
// state through successive draws and never shares it with other workers.
type RngState [4]uint32

// Combined period of the three Tausworthe steps and the LCG step is about
// 2^121. The generator is the hybrid one from GPU Gems 3 ch. 37; it is good
// enough for Monte-Carlo integration, not for cryptography.
func tausStep(z uint32, s1, s2, s3 uint32, m uint32) uint32 {
	b := ((z << s1) ^ z) >> s2
	return ((z & m) << s3) ^ b
}

func lcgStep(z uint32) uint32 {
	return z*1664525 + 1013904223
}

func wangHash(seed uint32) uint32 {
	seed = (seed ^ 61) ^ (seed >> 16)
	seed *= 9
	seed ^= seed >> 4
	seed *= 0x27d4eb2d
	seed ^= seed >> 15
	return seed
}

// SeedRng derives a generator state from a pixel coordinate and a frame
// counter so that adjacent pixels and successive frames draw decorrelated
// sequences. The Tausworthe words are forced above their shift-register
// thresholds; an all-zero state would be a fixed point.
func SeedRng(x, y, frame uint32) RngState {
	base := wangHash(x*1973 + y*9277 + frame*26699)
	return RngState{
		wangHash(base^0xa511e9b3) | 0x20,
		wangHash(base^0x63d83595) | 0x20,
		wangHash(base^0x8f1bbcdc) | 0x20,
		wangHash(base ^ 0xca62c1d6),
	}
}

// RandomFloat advances the generator and returns a uniform value in [0, 1).
// The top 24 bits of the combined word are used so the result is exactly
// representable as a float32 and can never round up to 1.0.
func RandomFloat(s RngState) (RngState, float32) {
	s[0] = tausStep(s[0], 13, 19, 12, 0xFFFFFFFE)
	s[1] = tausStep(s[1], 2, 25, 4, 0xFFFFFFF8)
	s[2] = tausStep(s[2], 3, 11, 17, 0xFFFFFFF0)
	s[3] = lcgStep(s[3])

	combined := s[0] ^ s[1] ^ s[2] ^ s[3]
	return s, float32(combined>>8) * (1.0 / (1 << 24))
}

// RandomRange returns a uniform value in [min, max).
func RandomRange(s RngState, min, max float32) (RngState, float32) {
	s, v := RandomFloat(s)
	return s, min + v*(max-min)
}

// RandomUnitVec3 returns a uniformly distributed point on the unit sphere.
func RandomUnitVec3(s RngState) (RngState, types.Vec3) {
	s, u := RandomFloat(s)
	s, v := RandomFloat(s)

	z := 1.0 - 2.0*u
	r := float32(math.Sqrt(math.Max(0, float64(1.0-z*z))))
	phi := 2.0 * math.Pi * float64(v)

	return s, types.Vec3{
		r * float32(math.Cos(phi)),
		r * float32(math.Sin(phi)),
		z,
	}
}
