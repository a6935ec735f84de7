package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/landris006/path-tracer/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "path-tracer"
	app.Usage = "render scenes using progressive path tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render scene",
			Subcommands: []cli.Command{
				{
					Name:        "frame",
					Usage:       "render single frame",
					Description: `Render a single frame by accumulating progressive samples.`,
					Flags: []cli.Flag{
						cli.IntFlag{
							Name:  "width",
							Value: 512,
							Usage: "frame width",
						},
						cli.IntFlag{
							Name:  "height",
							Value: 512,
							Usage: "frame height",
						},
						cli.IntFlag{
							Name:  "spp",
							Value: 4,
							Usage: "samples per pixel per progressive frame",
						},
						cli.IntFlag{
							Name:  "num-bounces",
							Value: 8,
							Usage: "number of indirect bounces",
						},
						cli.IntFlag{
							Name:  "frames",
							Value: 16,
							Usage: "number of progressive frames to accumulate",
						},
						cli.Float64Flag{
							Name:  "exposure",
							Value: 1.0,
							Usage: "camera exposure for tone-mapping",
						},
						cli.Float64Flag{
							Name:  "tmin",
							Usage: "minimum ray parameter for intersection tests",
						},
						cli.Float64Flag{
							Name:  "tmax",
							Usage: "maximum ray parameter for intersection tests",
						},
						cli.IntFlag{
							Name:  "tracers",
							Value: 1,
							Usage: "number of cpu tracers to attach",
						},
						cli.StringFlag{
							Name:  "env",
							Usage: "equirectangular environment map (.hdr) for escaped rays",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					},
					Action: cmd.RenderFrame,
				},
			},
		},
		{
			Name:   "scene-info",
			Usage:  "display buffer statistics for the built-in scene",
			Action: cmd.ShowSceneInfo,
		},
	}

	app.Run(os.Args)
}
