package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/framecut/framecut/internal/core/doctor"
	"github.com/framecut/framecut/internal/store/jsonfile"
	"github.com/framecut/framecut/pkg/iojson"
)

var (
	doctorPassStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	doctorWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	doctorFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	doctorNameStyle = lipgloss.NewStyle().Bold(true)
)

type DoctorCmd struct {
	flags *Flags

	jsonOutput bool
}

// NewDoctorCmd creates a new doctor command
func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

// Register adds the doctor command to the application
func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "doctor",
		Usage:     "Check the project file and config for problems",
		UsageText: "framecut doctor [--json]",
		Description: `Runs health checks: the project file must load and satisfy the sequence
invariants, and the config must describe a usable editor.

Exits non-zero when any check fails.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output results as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	checks := []doctor.Check{
		&doctor.ProjectCheck{Store: jsonfile.NewProjectStore(cmd.flags.ProjectPath)},
		&doctor.ConfigCheck{Config: cmd.flags.Config},
	}

	results := doctor.RunAll(ctx, checks)
	passed, warned, failed := doctor.Summary(results)

	out := c.Root().Writer

	if cmd.jsonOutput {
		if err := iojson.WriteWith(out, os.Stderr, results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			fmt.Fprintln(out, doctorNameStyle.Render(res.Name))
			for _, item := range res.Items {
				fmt.Fprintf(out, "  %s %s", statusIcon(item.Status), item.Label)
				if item.Detail != "" {
					fmt.Fprintf(out, " (%s)", item.Detail)
				}
				fmt.Fprintln(out)
			}
		}
		fmt.Fprintf(out, "\n%d passed, %d warnings, %d failed\n", passed, warned, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusPass:
		return doctorPassStyle.Render("✓")
	case doctor.StatusWarn:
		return doctorWarnStyle.Render("!")
	default:
		return doctorFailStyle.Render("✗")
	}
}
