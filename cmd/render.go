package cmd

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/landris006/path-tracer/asset/compiler"
	"github.com/landris006/path-tracer/asset/envmap"
	"github.com/landris006/path-tracer/asset/scene"
	"github.com/landris006/path-tracer/renderer"
	"github.com/landris006/path-tracer/tracer"
	"github.com/landris006/path-tracer/tracer/cpu"
)

// Render a still frame by accumulating progressive samples of the demo
// scene and writing the resolved image to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.Options{
		FrameW:            uint32(ctx.Int("width")),
		FrameH:            uint32(ctx.Int("height")),
		SamplesPerPixel:   uint32(ctx.Int("spp")),
		NumBounces:        uint32(ctx.Int("num-bounces")),
		Exposure:          float32(ctx.Float64("exposure")),
		TMin:              float32(ctx.Float64("tmin")),
		TMax:              float32(ctx.Float64("tmax")),
		AccumulatedFrames: uint32(ctx.Int("frames")),
	}

	sc := scene.Default()
	if envFile := ctx.String("env"); envFile != "" {
		env, err := envmap.Load(envFile)
		if err != nil {
			return err
		}
		sc.Env = env
	}

	compiled, err := compiler.Compile(sc)
	if err != nil {
		return err
	}

	numTracers := ctx.Int("tracers")
	if numTracers < 1 {
		numTracers = 1
	}
	tracers := make([]tracer.Tracer, numTracers)
	for i := range tracers {
		tracers[i] = cpu.NewTracer(fmt.Sprintf("cpu-%d", i))
	}

	r, err := renderer.NewDefault(compiled, sc.Camera, tracer.PerfectScheduler(), tracers, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Noticef("rendering %d progressive frames", opts.AccumulatedFrames)
	start := time.Now()
	for frame := uint32(0); frame < opts.AccumulatedFrames; frame++ {
		if err = r.Render(); err != nil {
			return err
		}
	}
	logger.Noticef("rendered frame in %d ms", time.Since(start).Milliseconds())

	// Display stats
	displayFrameStats(r.Stats())

	// Export PNG
	imgFile := ctx.String("out")
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, r.Image()); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", imgFile)

	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Device", "Primary", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%t", stat.IsPrimary),
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
