// Package tracer defines the tracing backend contract and the block
// schedulers that split frames across a pool of backends.
package tracer

import (
	"time"

	"github.com/landris006/path-tracer/types"
)

type UpdateType uint8

const (
	// SetScene replaces the compiled scene buffers (*kernel.Scene).
	SetScene UpdateType = iota
	// SetCamera replaces the camera uniform (kernel.Camera). It also resets
	// any accumulated sample history the tracer keeps.
	SetCamera
	// SetSettings replaces the per-pixel sampling parameters
	// (kernel.Settings).
	SetSettings
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// The number of emitted rays per traced pixel.
	SamplesPerPixel uint32

	// Number of sequential rendered frames from the current camera position.
	// Seeds the per-pixel random state together with the pixel coordinates.
	FrameCount uint32

	// Where traced radiance is written: one linear RGB triplet per pixel of
	// the full frame in row-major order. Concurrent blocks write disjoint
	// row ranges.
	Target []types.Vec3

	// A channel to signal on block completion with the number of completed
	// rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics.
type Stats struct {
	// The rendered block height.
	BlockH uint32

	// The time for rendering this block.
	RenderTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get the tracer's relative computation speed estimate. Used by the
	// schedulers until real per-frame timings become available.
	Speed() uint32

	// Setup the tracer for rendering frames of the given dimensions.
	Init(frameW, frameH uint32) error

	// Shutdown and cleanup tracer.
	Close()

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Queue a state change to be applied before the next enqueued block.
	Update(UpdateType, interface{})

	// Retrieve last frame statistics.
	Stats() *Stats
}
