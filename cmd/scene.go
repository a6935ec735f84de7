package cmd

import (
	"github.com/urfave/cli"

	"github.com/landris006/path-tracer/asset/compiler"
	"github.com/landris006/path-tracer/asset/scene"
)

// Display compiled scene info for the built-in demo scene.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	compiled, err := compiler.Compile(scene.Default())
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", compiler.Stats(compiled))

	return nil
}
