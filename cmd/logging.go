package cmd

import (
	"github.com/urfave/cli"

	"github.com/landris006/path-tracer/log"
)

var logger = log.New("path-tracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
