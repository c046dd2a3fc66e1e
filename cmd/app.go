package cmd

import (
	"github.com/urfave/cli"
)

// NewApp builds the command line application with all subcommands registered
func NewApp() *cli.App {
	// -v is taken by verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-whitted-raytracer"
	app.Usage = "render scenes using recursive Whitted ray tracing"
	app.Version = "0.1.0"
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
			Usage: "render a single frame",
			Description: `
Render a built-in scene or a JSON scene file and write the frame to disk.

Settings come from the defaults, then the --config file, then the flags. A
scene may raise the depth budget and enable Fresnel or texture mapping when
it was designed for them.`,
			Flags:  RenderFlags,
			Action: RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: ListScenes,
		},
		{
			Name:   "serve",
			Usage:  "serve renders over HTTP",
			Flags:  ServeFlags,
			Action: Serve,
		},
	}
	return app
}
