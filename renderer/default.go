package renderer

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/landris006/path-tracer/asset/scene"
	"github.com/landris006/path-tracer/log"
	"github.com/landris006/path-tracer/tracer"
	"github.com/landris006/path-tracer/tracer/kernel"
	"github.com/landris006/path-tracer/types"
)

type defaultRenderer struct {
	logger log.Logger

	options Options

	tracers   []tracer.Tracer
	scheduler tracer.BlockScheduler

	// The editable camera; moves reset the accumulation history.
	camera *scene.Camera

	// Per-frame traced radiance and the resolved accumulation output.
	radiance []types.Vec3
	resolved []types.Vec3

	accumulator *accumulator

	// Frames rendered from the current camera position. Seeds the kernel
	// RNG so successive frames draw different sample sets.
	frameCount uint32

	blockAssignments []uint32
	doneChan         chan uint32
	errChan          chan error

	stats      FrameStats
	frameTimes *timeWindow
}

// NewDefault creates a renderer that schedules row blocks over the supplied
// tracers. The compiled scene and the camera are uploaded to every tracer
// before the first frame.
func NewDefault(sc *kernel.Scene, camera *scene.Camera, scheduler tracer.BlockScheduler, tracers []tracer.Tracer, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if len(tracers) == 0 {
		return nil, ErrNoTracers
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrInvalidOptions
	}
	opts = opts.withDefaults()

	pixels := int(opts.FrameW) * int(opts.FrameH)
	r := &defaultRenderer{
		logger:           log.New("renderer"),
		options:          opts,
		tracers:          tracers,
		scheduler:        scheduler,
		camera:           camera,
		radiance:         make([]types.Vec3, pixels),
		resolved:         make([]types.Vec3, pixels),
		accumulator:      newAccumulator(pixels, opts.AccumulatedFrames),
		blockAssignments: make([]uint32, len(tracers)),
		doneChan:         make(chan uint32, len(tracers)),
		errChan:          make(chan error, len(tracers)),
		frameTimes:       newTimeWindow(),
	}
	r.stats.Tracers = make([]TracerStat, len(tracers))

	settings := kernel.DefaultSettings()
	settings.SamplesPerPixel = opts.SamplesPerPixel
	settings.MaxBounces = opts.NumBounces
	if opts.TMin > 0 {
		settings.TMin = opts.TMin
	}
	if opts.TMax > 0 {
		settings.TMax = opts.TMax
	}

	for _, tr := range tracers {
		if err := tr.Init(opts.FrameW, opts.FrameH); err != nil {
			return nil, err
		}
		tr.Update(tracer.SetScene, sc)
		tr.Update(tracer.SetCamera, camera.Kernel())
		tr.Update(tracer.SetSettings, settings)
	}
	r.logger.Infof("attached %d tracers for a %dx%d frame", len(tracers), opts.FrameW, opts.FrameH)

	return r, nil
}

// Render traces the next progressive frame and folds it into the
// accumulation history.
func (r *defaultRenderer) Render() error {
	start := time.Now()

	r.blockAssignments = r.scheduler.Schedule(r.tracers, r.options.FrameH)

	var blockY uint32
	for idx, tr := range r.tracers {
		tr.Enqueue(tracer.BlockRequest{
			BlockY:          blockY,
			BlockH:          r.blockAssignments[idx],
			SamplesPerPixel: r.options.SamplesPerPixel,
			FrameCount:      r.frameCount,
			Target:          r.radiance,
			DoneChan:        r.doneChan,
			ErrChan:         r.errChan,
		})
		blockY += r.blockAssignments[idx]
	}

	var pendingRows = r.options.FrameH
	for pendingRows > 0 {
		select {
		case rows := <-r.doneChan:
			pendingRows -= rows
		case err := <-r.errChan:
			return err
		}
	}

	r.accumulator.Append(r.radiance)
	r.frameCount++

	r.stats.RenderTime = time.Since(start)
	r.frameTimes.Append(r.stats.RenderTime)
	r.stats.AvgRenderTime = r.frameTimes.Avg()
	for idx, tr := range r.tracers {
		trStats := tr.Stats()
		r.stats.Tracers[idx] = TracerStat{
			Id:           tr.Id(),
			IsPrimary:    idx == 0,
			BlockH:       trStats.BlockH,
			FramePercent: float32(trStats.BlockH) * 100.0 / float32(r.options.FrameH),
			RenderTime:   trStats.RenderTime,
		}
	}

	return nil
}

// MoveCamera translates the camera, uploads the new uniform to every tracer
// and drops the stale accumulation history.
func (r *defaultRenderer) MoveCamera(dir scene.CameraDirection, amount float32) {
	r.camera.Move(dir, amount)

	for _, tr := range r.tracers {
		tr.Update(tracer.SetCamera, r.camera.Kernel())
	}

	r.accumulator.Reset()
	r.frameCount = 0
}

// Image resolves the accumulated radiance into a displayable frame:
// exposure scaling, clamping and gamma 2 encoding, with opaque alpha.
func (r *defaultRenderer) Image() *image.RGBA {
	r.accumulator.Resolve(r.resolved)

	img := image.NewRGBA(image.Rect(0, 0, int(r.options.FrameW), int(r.options.FrameH)))
	for i, px := range r.resolved {
		img.SetRGBA(i%int(r.options.FrameW), i/int(r.options.FrameW), color.RGBA{
			R: encodeChannel(px[0] * r.options.Exposure),
			G: encodeChannel(px[1] * r.options.Exposure),
			B: encodeChannel(px[2] * r.options.Exposure),
			A: 255,
		})
	}
	return img
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
}

// Map linear radiance to an 8-bit channel with gamma 2 encoding.
func encodeChannel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(float32(math.Sqrt(float64(v))) * 255.0)
}
