// Package cpu implements the tracing backend contract on the host CPU. A
// block request is split into square tiles which a pool of goroutines traces
// in parallel, one pixel at a time through the sampling kernel.
package cpu

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/landris006/path-tracer/log"
	"github.com/landris006/path-tracer/tracer"
	"github.com/landris006/path-tracer/tracer/kernel"
)

// ErrNoSceneData is returned for block requests that arrive before a scene
// has been attached via Update(SetScene).
var ErrNoSceneData = errors.New("cpu tracer: no scene data")

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer id.
	id string

	// A buffer for queuing updates. Updates are grouped by type and
	// latest updates always overwrite the previous ones.
	updateBuffer map[tracer.UpdateType]interface{}

	// A channel for receiving block requests from the renderer.
	blockReqChan chan tracer.BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for last rendered frame.
	stats *tracer.Stats

	// Number of tile workers, also used as the speed estimate.
	numWorkers int

	frameW uint32
	frameH uint32

	sceneData *kernel.Scene
	camera    kernel.Camera
	settings  kernel.Settings
}

// NewTracer creates a tracer that uses all available CPU cores.
func NewTracer(id string) tracer.Tracer {
	return &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		blockReqChan: make(chan tracer.BlockRequest, 0),
		updateBuffer: make(map[tracer.UpdateType]interface{}, 0),
		stats:        &tracer.Stats{},
		numWorkers:   runtime.NumCPU(),
		settings:     kernel.DefaultSettings(),
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Get the computation speed estimate.
func (tr *cpuTracer) Speed() uint32 {
	return uint32(tr.numWorkers)
}

// Initialize tracer.
func (tr *cpuTracer) Init(frameW, frameH uint32) error {
	tr.Lock()
	defer tr.Unlock()

	if frameW == 0 || frameH == 0 {
		return fmt.Errorf("cpu tracer: invalid frame dimensions %dx%d", frameW, frameH)
	}
	tr.frameW = frameW
	tr.frameH = frameH

	// Start worker
	if tr.closeChan == nil {
		tr.startWorker()
	}

	return nil
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan != nil {
		tr.closeChan <- struct{}{}

		// wait for worker to ack close and shutdown channel
		<-tr.closeChan
		close(tr.closeChan)
		tr.closeChan = nil
	}

	tr.sceneData = nil
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq tracer.BlockRequest) {
	select {
	case tr.blockReqChan <- blockReq:
	default:
		// drop the request if worker is not listening
		tr.logger.Error("request processor did not receive block request")
	}
}

// Queue a state change to be applied before the next enqueued block.
func (tr *cpuTracer) Update(updateType tracer.UpdateType, data interface{}) {
	tr.Lock()
	defer tr.Unlock()
	tr.updateBuffer[updateType] = data
}

// Retrieve last frame statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Commit queued changes.
func (tr *cpuTracer) commitUpdates() error {
	tr.Lock()
	defer tr.Unlock()

	for updateType, data := range tr.updateBuffer {
		switch updateType {
		case tracer.SetScene:
			sc, ok := data.(*kernel.Scene)
			if !ok {
				return fmt.Errorf("cpu tracer: SetScene expects *kernel.Scene; got %T", data)
			}
			tr.sceneData = sc
		case tracer.SetCamera:
			cam, ok := data.(kernel.Camera)
			if !ok {
				return fmt.Errorf("cpu tracer: SetCamera expects kernel.Camera; got %T", data)
			}
			tr.camera = cam
		case tracer.SetSettings:
			settings, ok := data.(kernel.Settings)
			if !ok {
				return fmt.Errorf("cpu tracer: SetSettings expects kernel.Settings; got %T", data)
			}
			tr.settings = settings
		default:
			return fmt.Errorf("cpu tracer: unsupported update type %d", updateType)
		}
	}

	tr.updateBuffer = make(map[tracer.UpdateType]interface{}, 0)
	return nil
}

// Spawn a go-routine to process block render requests.
func (tr *cpuTracer) startWorker() {
	readyChan := make(chan struct{}, 0)
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		var blockReq tracer.BlockRequest
		var startTime time.Time
		var err error
		close(readyChan)
		for {
			select {
			case blockReq = <-tr.blockReqChan:
				startTime = time.Now()

				// Apply any pending changes
				err = tr.commitUpdates()
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}

				// Render block and reply with our completion status
				err = tr.renderBlock(&blockReq)
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}

				// Update stats
				tr.stats.BlockH = blockReq.BlockH
				tr.stats.RenderTime = time.Since(startTime)

				blockReq.DoneChan <- blockReq.BlockH
			case <-tr.closeChan:
				// Ack close
				tr.closeChan <- struct{}{}
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// A square tile of the requested block, identified by its top-left pixel.
type tile struct {
	x, y uint32
}

// Render block by fanning its tiles out to the worker pool. Tiles never
// overlap so the workers write disjoint ranges of the target buffer.
func (tr *cpuTracer) renderBlock(blockReq *tracer.BlockRequest) error {
	if tr.sceneData == nil {
		return ErrNoSceneData
	}
	if uint64(len(blockReq.Target)) < uint64(tr.frameW)*uint64(tr.frameH) {
		return fmt.Errorf("cpu tracer: target buffer holds %d pixels; frame needs %d", len(blockReq.Target), tr.frameW*tr.frameH)
	}

	settings := tr.settings
	if blockReq.SamplesPerPixel != 0 {
		settings.SamplesPerPixel = blockReq.SamplesPerPixel
	}

	tileChan := make(chan tile, tr.numWorkers)
	var wg sync.WaitGroup
	for worker := 0; worker < tr.numWorkers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tileChan {
				tr.renderTile(blockReq, settings, t)
			}
		}()
	}

	blockEnd := blockReq.BlockY + blockReq.BlockH
	for y := blockReq.BlockY; y < blockEnd; y += kernel.TileSize {
		for x := uint32(0); x < tr.frameW; x += kernel.TileSize {
			tileChan <- tile{x: x, y: y}
		}
	}
	close(tileChan)
	wg.Wait()

	return nil
}

func (tr *cpuTracer) renderTile(blockReq *tracer.BlockRequest, settings kernel.Settings, t tile) {
	blockEnd := blockReq.BlockY + blockReq.BlockH

	for y := t.y; y < t.y+kernel.TileSize; y++ {
		if y >= blockEnd || y >= tr.frameH {
			return
		}
		for x := t.x; x < t.x+kernel.TileSize; x++ {
			if x >= tr.frameW {
				break
			}
			blockReq.Target[y*tr.frameW+x] = kernel.SamplePixel(
				tr.sceneData, tr.camera, settings,
				tr.frameW, tr.frameH, x, y, blockReq.FrameCount,
			)
		}
	}
}
