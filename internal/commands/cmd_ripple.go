package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/framecut/framecut/internal/core/edit"
	"github.com/framecut/framecut/internal/core/timeline"
	"github.com/framecut/framecut/internal/store/jsonfile"
)

type RippleCmd struct {
	flags *Flags

	edge       string
	delta      int64
	jsonOutput bool
}

// NewRippleCmd creates a new ripple command
func NewRippleCmd(flags *Flags) *RippleCmd {
	return &RippleCmd{flags: flags}
}

// Register adds the ripple command to the application
func (cmd *RippleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ripple",
		Usage:     "Ripple-trim a shot edge, shifting downstream shots",
		UsageText: "framecut ripple SHOT --edge start|end --delta FRAMES [--json]",
		Description: `Trims one edge of the shot and shifts every downstream shot by the same
amount so no gap opens or closes between neighbours.

A positive delta moves the edge right, a negative delta left:
  framecut ripple intro --edge end --delta -24`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "edge",
				Usage:       "which edge to trim (start or end)",
				Value:       "end",
				Destination: &cmd.edge,
			},
			&cli.Int64Flag{
				Name:        "delta",
				Aliases:     []string{"d"},
				Usage:       "frames to shift the edge by",
				Destination: &cmd.delta,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the resulting delta as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RippleCmd) run(_ context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected a SHOT argument")
	}
	id := c.Args().Get(0)

	if cmd.delta == 0 {
		return fmt.Errorf("--delta must be non-zero")
	}

	store := jsonfile.NewProjectStore(cmd.flags.ProjectPath)
	p, err := store.Load()
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	engine := edit.New(cmd.flags.Config.EditPolicy())

	var delta edit.Delta
	switch cmd.edge {
	case "start":
		delta = engine.RippleStart(p.Sequence.Shots, id, timeline.Frame(cmd.delta))
	case "end":
		delta = engine.RippleEnd(p.Sequence.Shots, id, timeline.Frame(cmd.delta))
	default:
		return fmt.Errorf("unknown edge %q: want start or end", cmd.edge)
	}

	return commitDelta(c.Root().Writer, store, p, delta, cmd.jsonOutput)
}
