package renderer

import "time"

// Number of frame timings kept for the rolling average.
const frameTimeWindow = 100

type TracerStat struct {
	// The tracer id.
	Id string

	// True if this is the primary tracer.
	IsPrimary bool

	// The block height and the percentage of total frame area it represents.
	BlockH       uint32
	FramePercent float32

	// Render time for assigned block.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual tracer stats.
	Tracers []TracerStat

	// Total render time for entire frame.
	RenderTime time.Duration

	// Rolling average over the last frames.
	AvgRenderTime time.Duration
}

// A fixed-capacity window of frame timings.
type timeWindow struct {
	samples []time.Duration
	next    int
	valid   int
}

func newTimeWindow() *timeWindow {
	return &timeWindow{samples: make([]time.Duration, frameTimeWindow)}
}

func (w *timeWindow) Append(d time.Duration) {
	w.samples[w.next] = d
	w.next = (w.next + 1) % len(w.samples)
	if w.valid < len(w.samples) {
		w.valid++
	}
}

func (w *timeWindow) Avg() time.Duration {
	if w.valid == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < w.valid; i++ {
		total += w.samples[i]
	}
	return total / time.Duration(w.valid)
}
