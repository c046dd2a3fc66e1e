package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderFlags are the options of the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "glass-checker",
		Usage: "built-in scene name or path to a JSON scene file",
	},
	cli.IntFlag{
		Name:  "width",
		Value: renderer.DefaultWidth,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height; 0 derives it from the camera aspect ratio",
	},
	cli.StringFlag{
		Name:  "config, c",
		Usage: "JSON render configuration; flags override its values",
	},
	cli.IntFlag{
		Name:  "depth, d",
		Usage: "reflection depth budget",
	},
	cli.IntFlag{
		Name:  "aa",
		Usage: "antialiasing grid N, taking (N+1)x(N+1) samples per pixel",
	},
	cli.BoolFlag{
		Name:  "jitter",
		Usage: "take one randomly offset sample per pixel",
	},
	cli.BoolFlag{
		Name:  "fresnel",
		Usage: "weight transmission by 1 - Fresnel reflectance",
	},
	cli.BoolFlag{
		Name:  "texture",
		Usage: "replace shading with spherical texture lookups",
	},
	cli.BoolFlag{
		Name:  "symmetric-refraction",
		Usage: "make refraction consume depth like reflection",
	},
	cli.Float64Flag{
		Name:  "ambient",
		Usage: "ambient light intensity",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Usage: "render goroutines, 0 for one per CPU",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "jitter random seed",
	},
	cli.StringFlag{
		Name:  "background",
		Usage: "PNG, JPEG or BMP image sampled behind the scene",
	},
	cli.StringFlag{
		Name:  "texture-image",
		Usage: "PNG, JPEG or BMP image used by texture mapping",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "frame.png",
		Usage: "image filename for the rendered frame (.png, .bmp or .jpg)",
	},
}

// RenderFrame renders a single frame and writes it to disk.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	config, err := renderConfig(ctx)
	if err != nil {
		return err
	}

	rt := renderer.NewRaytracer(config, logger)
	if err := setupScene(rt, ctx.String("scene"), ctx.Int("width"), ctx.Int("height")); err != nil {
		return err
	}

	// Missing images only leave the background or texture black
	if path := ctx.String("background"); path != "" {
		if err := rt.LoadBackgroundImage(path); err != nil {
			logger.Warningf("%v", err)
		}
	}
	if path := ctx.String("texture-image"); path != "" {
		if err := rt.LoadTextureImage(path); err != nil {
			logger.Warningf("%v", err)
		}
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rt.Render(renderCtx); err != nil {
		return err
	}

	out := ctx.String("out")
	buffer, width, height := rt.Buffer()
	if err := loaders.SaveBuffer(out, buffer, width, height); err != nil {
		return err
	}

	var buf bytes.Buffer
	displayFrameStats(&buf, rt.Stats())
	logger.Noticef("frame statistics\n%s", buf.String())
	logger.Noticef("wrote %s", out)
	return nil
}

// renderConfig loads the optional config file, then applies the flags that were set
func renderConfig(ctx *cli.Context) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	if path := ctx.String("config"); path != "" {
		var err error
		if config, err = renderer.LoadConfig(path); err != nil {
			return config, err
		}
	}

	if ctx.IsSet("depth") {
		config.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("aa") {
		config.AntialiasGrid = ctx.Int("aa")
	}
	if ctx.IsSet("workers") {
		config.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("seed") {
		config.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("ambient") {
		config.AmbientLight = ctx.Float64("ambient")
	}
	config.Jitter = config.Jitter || ctx.Bool("jitter")
	config.Fresnel = config.Fresnel || ctx.Bool("fresnel")
	config.TextureMapping = config.TextureMapping || ctx.Bool("texture")
	config.SymmetricRefractionDepth = config.SymmetricRefractionDepth || ctx.Bool("symmetric-refraction")

	return config, config.Validate()
}

// isSceneFile reports whether name refers to a scene file rather than a built-in scene
func isSceneFile(name string) bool {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return true
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

// setupScene loads the scene, sizes the buffer and applies the scene's hints
func setupScene(rt *renderer.Raytracer, name string, width, height int) error {
	if width <= 0 {
		return fmt.Errorf("%w: width %d", renderer.ErrInvalidDimensions, width)
	}

	if isSceneFile(name) {
		if err := rt.LoadScene(name); err != nil {
			return err
		}
	} else {
		aspect := 1.0
		if height > 0 {
			aspect = float64(width) / float64(height)
		}
		sc, err := scene.Lookup(name, aspect)
		if err != nil {
			return err
		}
		rt.SetScene(sc)
	}

	sc := rt.Scene()
	if height <= 0 {
		_, height = renderer.BufferSize(width, sc.Camera.AspectRatio())
	} else {
		sc.SetAspectRatio(float64(width) / float64(height))
	}
	if err := rt.Setup(width, height); err != nil {
		return err
	}

	config := rt.Config()
	config.Config = sc.Hints.Apply(config.Config)
	rt.SetConfig(config)
	return nil
}

func displayFrameStats(w io.Writer, stats renderer.RenderStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Workers", "Samples/px", "Rays", "Reflections", "Refractions", "TIR", "Ceiling", "Max level", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%.1f", stats.SamplesPerPixel()),
		fmt.Sprintf("%d", stats.Tracer.Rays),
		fmt.Sprintf("%d", stats.Tracer.Reflections),
		fmt.Sprintf("%d", stats.Tracer.Refractions),
		fmt.Sprintf("%d", stats.Tracer.TotalInternalReflections),
		fmt.Sprintf("%d", stats.Tracer.CeilingHits),
		fmt.Sprintf("%d", stats.Tracer.MaxLevel),
		stats.Duration.String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "", "", "RAYS/SEC", fmt.Sprintf("%.0f", stats.RaysPerSecond())})
	table.Render()
}
