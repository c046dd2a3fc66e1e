package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/log"
)

var logger = log.New("raytracer")

func setupLogging(ctx *cli.Context) {
	log.SetVerbosity(ctx.GlobalBool("v"), ctx.GlobalBool("vv"))
}
