package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling
// algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign to the pool
	// of tracers using feedback collected from previous frames.
	//
	// This function returns the block height assignment for each tracer
	// in the input list.
	Schedule(tracers []Tracer, frameH uint32) []uint32
}

// The naive scheduler distributes rows proportionally to the static speed
// estimate of each tracer.
type naiveScheduler struct {
	blockAssignment []uint32
}

// NaiveScheduler creates a scheduler that only uses static speed estimates.
func NaiveScheduler() BlockScheduler {
	return &naiveScheduler{}
}

func (sch *naiveScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = make([]uint32, len(tracers))
	}
	return scheduleBySpeed(sch.blockAssignment, tracers, frameH)
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same and uses the timings reported
// for the previous frame to rebalance row assignments.
type perfectScheduler struct {
	blockAssignment []uint32
}

// PerfectScheduler creates a feedback-driven scheduler. Until per-frame
// statistics become available it behaves like the naive scheduler.
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Schedule assigns block heights using the previous frame's throughput for
// tracer w: rows_w = frameH * (blockH_w / time_w) / Σ(blockH / time).
func (sch *perfectScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	// If this is the first time we try to schedule or the number of tracers
	// has changed we need to reset the block assignments.
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = make([]uint32, len(tracers))
		return scheduleBySpeed(sch.blockAssignment, tracers, frameH)
	}

	var total float64
	for _, tr := range tracers {
		stats := tr.Stats()
		total += float64(stats.BlockH) / float64(stats.RenderTime)
	}

	scaler := float64(frameH) / total
	var scheduledRows uint32
	for idx, tr := range tracers {
		stats := tr.Stats()
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(float64(stats.BlockH)/float64(stats.RenderTime)*scaler)))
		scheduledRows += sch.blockAssignment[idx]
	}

	// In case rows don't add up to the frame height append the missing ones
	// to the first tracer.
	sch.blockAssignment[0] += frameH - scheduledRows

	return sch.blockAssignment
}

// Distribute rows proportionally to each tracer's static speed estimate,
// giving every tracer at least one row and topping up the first tracer with
// any remainder.
func scheduleBySpeed(assignment []uint32, tracers []Tracer, frameH uint32) []uint32 {
	var total float64
	for _, tr := range tracers {
		total += float64(tr.Speed())
	}

	scaler := float64(frameH) / total
	var scheduledRows uint32
	for idx, tr := range tracers {
		assignment[idx] = uint32(math.Max(1.0, math.Floor(float64(tr.Speed())*scaler)))
		scheduledRows += assignment[idx]
	}
	assignment[0] += frameH - scheduledRows

	return assignment
}
