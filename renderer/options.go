package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of indirect bounces.
	NumBounces uint32

	// Number of samples per pixel per frame.
	SamplesPerPixel uint32

	// Exposure for tonemapping.
	Exposure float32

	// Ray parameter interval for intersection tests. Zeros select the
	// kernel defaults.
	TMin float32
	TMax float32

	// Number of progressive frames blended together. Zero selects the
	// default window.
	AccumulatedFrames uint32
}

// Fill in defaults for unset options.
func (o Options) withDefaults() Options {
	if o.NumBounces == 0 {
		o.NumBounces = 8
	}
	if o.SamplesPerPixel == 0 {
		o.SamplesPerPixel = 1
	}
	if o.Exposure == 0 {
		o.Exposure = 1.0
	}
	if o.AccumulatedFrames == 0 {
		o.AccumulatedFrames = defaultHistoryFrames
	}
	return o
}
