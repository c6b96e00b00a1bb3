package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/core/timeline"
	"github.com/framecut/framecut/internal/store/jsonfile"
	"github.com/framecut/framecut/pkg/randid"
)

type MarkerCmd struct {
	flags *Flags

	position   int64
	markerType string
	label      string
}

// NewMarkerCmd creates a new marker command
func NewMarkerCmd(flags *Flags) *MarkerCmd {
	return &MarkerCmd{flags: flags}
}

// Register adds the marker command to the application
func (cmd *MarkerCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "marker",
		Usage:     "Manage sequence markers",
		UsageText: "framecut marker [add|rm]",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a marker at a frame",
				UsageText: "framecut marker add --position FRAME [--type TYPE] [--label TEXT]",
				Description: `Places a point annotation on the sequence. Markers live outside any
shot, so edits never move or delete them.

When --position is omitted, an interactive form prompts for input.`,
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:        "position",
						Aliases:     []string{"p"},
						Usage:       "frame to place the marker at",
						Value:       -1,
						Destination: &cmd.position,
					},
					&cli.StringFlag{
						Name:        "type",
						Usage:       "marker type (chapter, comment, todo, beat)",
						Value:       string(timeline.MarkerComment),
						Destination: &cmd.markerType,
					},
					&cli.StringFlag{
						Name:        "label",
						Aliases:     []string{"l"},
						Usage:       "marker label",
						Destination: &cmd.label,
					},
				},
				Action: cmd.runAdd,
			},
			{
				Name:      "rm",
				Usage:     "Remove a marker by id",
				UsageText: "framecut marker rm ID",
				Action:    cmd.runRemove,
			},
		},
	})

	return app
}

func (cmd *MarkerCmd) runAdd(_ context.Context, c *cli.Command) error {
	store := jsonfile.NewProjectStore(cmd.flags.ProjectPath)
	p, err := store.Load()
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	if cmd.position < 0 {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	mk := timeline.Marker{
		ID:       randid.Generate(8),
		Position: timeline.Frame(cmd.position),
		Type:     timeline.MarkerType(cmd.markerType),
		Label:    cmd.label,
	}
	if err := mk.Validate(); err != nil {
		return err
	}

	p.Sequence.Markers = append(p.Sequence.Markers, mk)
	slices.SortFunc(p.Sequence.Markers, func(a, b timeline.Marker) int {
		return int(a.Position - b.Position)
	})

	if err := store.Save(p); err != nil {
		return fmt.Errorf("write project: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Added %s marker %s at %s\n",
		mk.Type, mk.ID, timecode.FormatFrames(mk.Position, p.Sequence.FPS))
	return nil
}

func (cmd *MarkerCmd) runRemove(_ context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected a marker ID argument")
	}
	id := c.Args().Get(0)

	store := jsonfile.NewProjectStore(cmd.flags.ProjectPath)
	p, err := store.Load()
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	before := len(p.Sequence.Markers)
	p.Sequence.Markers = slices.DeleteFunc(p.Sequence.Markers, func(mk timeline.Marker) bool {
		return mk.ID == id
	})
	if len(p.Sequence.Markers) == before {
		return fmt.Errorf("marker %q not found", id)
	}

	if err := store.Save(p); err != nil {
		return fmt.Errorf("write project: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Removed marker %s\n", id)
	return nil
}

func (cmd *MarkerCmd) runForm() error {
	position := ""
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Position").
				Description("Frame number").
				Validate(validateFrame).
				Value(&position),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Comment", string(timeline.MarkerComment)),
					huh.NewOption("Chapter", string(timeline.MarkerChapter)),
					huh.NewOption("Todo", string(timeline.MarkerTodo)),
					huh.NewOption("Beat", string(timeline.MarkerBeat)),
				).
				Value(&cmd.markerType),
			huh.NewInput().
				Title("Label").
				Value(&cmd.label),
		),
	).Run()
	if err != nil {
		return err
	}

	cmd.position, err = strconv.ParseInt(position, 10, 64)
	return err
}

func validateFrame(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a non-negative frame number")
	}
	return nil
}
