package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/framecut/framecut/internal/store/jsonfile"
	"github.com/framecut/framecut/internal/tui"
	"github.com/framecut/framecut/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("FRAMECUT_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(int(cmd.flags.ProfilerPort))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	store := jsonfile.NewProjectStore(cmd.flags.ProjectPath)

	var warnings []string
	var reload <-chan jsonfile.ReloadEvent
	watcher, err := jsonfile.NewProjectWatcher(store.Path())
	if err != nil {
		log.Warn().Err(err).Msg("project file watching unavailable")
		warnings = append(warnings, "Live reload disabled: "+err.Error())
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close project watcher")
			}
		}()
		reload = watcher.Watch(ctx)
	}

	deps := tui.Deps{
		Config: cmd.flags.Config,
		Store:  store,
		Reload: reload,
	}
	opts := tui.Opts{
		Warnings: warnings,
	}

	m := tui.New(deps, opts)
	if err := m.Err(); err != nil {
		return fmt.Errorf("open project: %w", err)
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if final, ok := finalModel.(tui.Model); ok && final.Dirty() {
		fmt.Println("Exited with unsaved changes (press s in the editor to save)")
	}

	return nil
}
