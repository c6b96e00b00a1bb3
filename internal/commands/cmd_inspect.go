package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/core/timeline"
	"github.com/framecut/framecut/internal/store/jsonfile"
	"github.com/framecut/framecut/pkg/iojson"
)

var inspectTitleStyle = lipgloss.NewStyle().Bold(true)

type InspectCmd struct {
	flags *Flags

	jsonOutput bool
	filter     string
}

// NewInspectCmd creates a new inspect command
func NewInspectCmd(flags *Flags) *InspectCmd {
	return &InspectCmd{flags: flags}
}

// Register adds the inspect command to the application
func (cmd *InspectCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "inspect",
		Usage:     "List the shots in the project",
		UsageText: "framecut inspect [--json] [--filter GLOB]",
		Description: `Displays a table of all shots with their frame spans, timecodes, and
layer counts.

The --filter glob matches against shot ids and media sources:
  framecut inspect --filter 'intro*'
  framecut inspect --filter '**/*.mov'`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output shots as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "glob filter on shot id or media source",
				Destination: &cmd.filter,
			},
		},
		Action: cmd.run,
	})

	return app
}

// shotInfo is the JSON output format for framecut inspect --json.
type shotInfo struct {
	ID     string `json:"id"`
	Start  int64  `json:"start"`
	End    int64  `json:"end"`
	Frames int64  `json:"frames"`
	In     string `json:"in"`
	Out    string `json:"out"`
	Source string `json:"source,omitempty"`
	Layers int    `json:"layers"`
}

func (cmd *InspectCmd) run(_ context.Context, c *cli.Command) error {
	store := jsonfile.NewProjectStore(cmd.flags.ProjectPath)
	p, err := store.Load()
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	seq := p.Sequence
	seq.SortShots()

	var shots []timeline.Shot
	for _, sh := range seq.Shots {
		if cmd.matches(sh) {
			shots = append(shots, sh)
		}
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		infos := make([]shotInfo, 0, len(shots))
		for _, sh := range shots {
			infos = append(infos, buildShotInfo(sh, seq.FPS))
		}
		return iojson.WriteWith(out, os.Stderr, infos)
	}

	if len(shots) == 0 {
		fmt.Fprintln(os.Stderr, "No shots matched")
		return nil
	}

	fmt.Fprintln(out, inspectTitleStyle.Render(fmt.Sprintf("%s — %d fps, %d shots, ends %s",
		seq.Name, seq.FPS, len(seq.Shots), timecode.FormatFrames(seq.End(), seq.FPS))))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tIN\tOUT\tFRAMES\tSOURCE\tLAYERS")
	for _, sh := range shots {
		info := buildShotInfo(sh, seq.FPS)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\n",
			info.ID, info.In, info.Out, info.Frames, info.Source, info.Layers)
	}
	_ = w.Flush()

	if len(seq.Markers) > 0 || len(seq.Regions) > 0 {
		_, _ = fmt.Fprintf(out, "\n%d markers, %d regions\n", len(seq.Markers), len(seq.Regions))
	}
	return nil
}

func (cmd *InspectCmd) matches(sh timeline.Shot) bool {
	if cmd.filter == "" {
		return true
	}
	if ok, _ := doublestar.Match(cmd.filter, sh.ID); ok {
		return true
	}
	if media, ok := sh.MediaLayer(); ok && media.Media != nil {
		if ok, _ := doublestar.Match(cmd.filter, media.Media.Source); ok {
			return true
		}
	}
	return false
}

func buildShotInfo(sh timeline.Shot, fps int) shotInfo {
	info := shotInfo{
		ID:     sh.ID,
		Start:  int64(sh.StartTime),
		End:    int64(sh.End()),
		Frames: int64(sh.Duration),
		In:     timecode.FormatFrames(sh.StartTime, fps),
		Out:    timecode.FormatFrames(sh.End(), fps),
		Layers: len(sh.Layers),
	}
	if media, ok := sh.MediaLayer(); ok && media.Media != nil {
		info.Source = media.Media.Source
	}
	return info
}
