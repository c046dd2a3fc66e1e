package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ListScenes prints the built-in scene catalogue.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	displaySceneList(&buf, scene.List())
	logger.Noticef("built-in scenes\n%s", buf.String())
	return nil
}

func displaySceneList(w io.Writer, scenes []scene.SceneInfo) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Depth", "Description"})
	for _, info := range scenes {
		table.Append([]string{
			info.ID,
			info.DisplayName,
			fmt.Sprintf("%d", info.MaxDepth),
			info.Description,
		})
	}
	table.Render()
}
