// Package renderer drives a pool of tracing backends: it splits each frame
// into row blocks via a scheduler, collects the traced radiance, blends it
// into the progressive accumulation history and resolves the displayable
// image.
package renderer

import "image"

type Renderer interface {
	// Render frame.
	Render() error

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats

	// Resolve the progressively accumulated image.
	Image() *image.RGBA
}
