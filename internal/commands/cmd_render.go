package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/framecut/framecut/internal/core/layout"
	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/render"
	"github.com/framecut/framecut/internal/store/jsonfile"
)

type RenderCmd struct {
	flags *Flags

	out    string
	width  int64
	height int64
	zoom   float64
	scroll int64
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Render the timeline to a PNG image",
		UsageText: "framecut render [--out PATH] [--width N] [--height N] [--zoom PPF] [--scroll FRAME]",
		Description: `Draws the sequence into a PNG: frame ruler on top, one lane band per
track, shots colored by lane type.

  framecut render --out timeline.png --zoom 4 --scroll 240`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output PNG path",
				Value:       "timeline.png",
				Destination: &cmd.out,
			},
			&cli.Int64Flag{
				Name:        "width",
				Usage:       "image width in pixels",
				Value:       1280,
				Destination: &cmd.width,
			},
			&cli.Int64Flag{
				Name:        "height",
				Usage:       "track area height in pixels (0 fits all tracks)",
				Destination: &cmd.height,
			},
			&cli.FloatFlag{
				Name:        "zoom",
				Usage:       "pixels per frame",
				Value:       0,
				Destination: &cmd.zoom,
			},
			&cli.Int64Flag{
				Name:        "scroll",
				Usage:       "leftmost visible frame",
				Destination: &cmd.scroll,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	store := jsonfile.NewProjectStore(cmd.flags.ProjectPath)
	p, err := store.Load()
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	cfg := cmd.flags.Config

	zoom := cmd.zoom
	if zoom == 0 {
		zoom = cfg.Zoom.Default
	}
	mapper := timecode.New(zoom, float64(cmd.scroll)*zoom)

	height := float64(cmd.height)
	if height == 0 {
		for _, tr := range p.Sequence.Tracks {
			height += float64(tr.Height)
		}
	}

	vp := layout.Viewport{
		Mapper: mapper,
		Width:  float64(cmd.width),
		Height: height,
	}
	lay := layout.Compute(p.Sequence, vp, cfg.LayoutSettings())

	r, err := render.New(render.Options{FPS: p.Sequence.FPS})
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	if err := r.WritePNG(ctx, lay, vp, cmd.out); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Wrote %s (%dx%d, %.2f px/frame)\n",
		cmd.out, cmd.width, int(height)+render.DefaultRulerHeight, zoom)
	return nil
}
