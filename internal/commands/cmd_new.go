package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/framecut/framecut/internal/core/timeline"
	"github.com/framecut/framecut/internal/store/jsonfile"
)

type NewCmd struct {
	flags *Flags

	name   string
	fps    int64
	tracks string
	force  bool
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags) *NewCmd {
	return &NewCmd{flags: flags}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Create a new project file",
		UsageText: "framecut new [options]",
		Description: `Creates a project file with an empty sequence and one track per
requested lane type.

When --name is omitted, an interactive form prompts for input.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "sequence name",
				Destination: &cmd.name,
			},
			&cli.Int64Flag{
				Name:        "fps",
				Usage:       "display frame rate",
				Value:       24,
				Destination: &cmd.fps,
			},
			&cli.StringFlag{
				Name:        "tracks",
				Usage:       "comma-separated lane types (media,audio,effects,transitions,text,keyframes)",
				Value:       "media,audio",
				Destination: &cmd.tracks,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "overwrite an existing project file",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NewCmd) run(_ context.Context, c *cli.Command) error {
	store := jsonfile.NewProjectStore(cmd.flags.ProjectPath)

	if !cmd.force {
		if _, err := os.Stat(store.Path()); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", store.Path())
		}
	}

	if cmd.name == "" {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	seq := &timeline.Sequence{
		Name: cmd.name,
		FPS:  int(cmd.fps),
	}
	for _, raw := range strings.Split(cmd.tracks, ",") {
		lane := timeline.LayerType(strings.TrimSpace(raw))
		if !lane.Valid() {
			return fmt.Errorf("unknown track type %q", lane)
		}
		seq.Tracks = append(seq.Tracks, timeline.Track{
			ID:     string(lane),
			Type:   lane,
			Height: cmd.flags.Config.TrackHeight(lane),
		})
	}

	if err := store.Save(&jsonfile.Project{Version: jsonfile.FormatVersion, Sequence: seq}); err != nil {
		return fmt.Errorf("write project: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Created %s (%q, %d fps, %d tracks)\n",
		store.Path(), seq.Name, seq.FPS, len(seq.Tracks))
	return nil
}

func (cmd *NewCmd) runForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sequence name").
				Validate(validateName).
				Value(&cmd.name),
			huh.NewInput().
				Title("Tracks").
				Description("Comma-separated lane types").
				Value(&cmd.tracks),
		),
	).Run()
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
