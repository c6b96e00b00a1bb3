package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/framecut/framecut/internal/core/edit"
	"github.com/framecut/framecut/internal/core/timeline"
	"github.com/framecut/framecut/internal/store/jsonfile"
)

type SplitCmd struct {
	flags *Flags

	jsonOutput bool
}

// NewSplitCmd creates a new split command
func NewSplitCmd(flags *Flags) *SplitCmd {
	return &SplitCmd{flags: flags}
}

// Register adds the split command to the application
func (cmd *SplitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "split",
		Usage:     "Split a shot into two at a frame",
		UsageText: "framecut split SHOT FRAME [--json]",
		Description: `Cuts the shot in two at the given absolute frame. The frame must fall
strictly inside the shot; splitting at an edge is rejected.

The right half gets a freshly minted id:
  framecut split intro 120`,
		Flags: []cli.Flag{
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

func (cmd *SplitCmd) run(_ context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected SHOT and FRAME arguments")
	}
	id := c.Args().Get(0)
	frame, err := strconv.ParseInt(c.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("parse frame %q: %w", c.Args().Get(1), err)
	}

	store := jsonfile.NewProjectStore(cmd.flags.ProjectPath)
	p, err := store.Load()
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	engine := edit.New(cmd.flags.Config.EditPolicy())
	delta := engine.Split(p.Sequence.Shots, id, timeline.Frame(frame))
	return commitDelta(c.Root().Writer, store, p, delta, cmd.jsonOutput)
}
