package renderer

import "github.com/landris006/path-tracer/types"

// Number of progressive frames blended by default.
const defaultHistoryFrames = 16

// accumulator keeps a ring of recent frames and resolves their uniform
// average. A camera move invalidates the history: stale frames would smear
// the image, so Reset drops them and the average restarts from the next
// frame.
type accumulator struct {
	pixels  int
	history [][]types.Vec3
	next    int
	valid   int
}

func newAccumulator(pixels int, frames uint32) *accumulator {
	acc := &accumulator{
		pixels:  pixels,
		history: make([][]types.Vec3, frames),
	}
	for i := range acc.history {
		acc.history[i] = make([]types.Vec3, pixels)
	}
	return acc
}

// Append copies a rendered frame into the ring, evicting the oldest one once
// the window is full.
func (acc *accumulator) Append(frame []types.Vec3) {
	copy(acc.history[acc.next], frame)
	acc.next = (acc.next + 1) % len(acc.history)
	if acc.valid < len(acc.history) {
		acc.valid++
	}
}

// Resolve writes the uniform average of the valid frames into dst. With an
// empty history dst is zeroed.
func (acc *accumulator) Resolve(dst []types.Vec3) {
	if acc.valid == 0 {
		for i := range dst {
			dst[i] = types.Vec3{}
		}
		return
	}

	scale := 1.0 / float32(acc.valid)
	for i := 0; i < acc.pixels; i++ {
		var sum types.Vec3
		for f := 0; f < acc.valid; f++ {
			sum = sum.Add(acc.history[f][i])
		}
		dst[i] = sum.Mul(scale)
	}
}

// FrameCount reports how many frames currently contribute to the average.
func (acc *accumulator) FrameCount() int {
	return acc.valid
}

// Reset drops the accumulated history.
func (acc *accumulator) Reset() {
	acc.next = 0
	acc.valid = 0
}
