package commands

import (
	"context"
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

//go:embed docs/*.md
var docsFS embed.FS

type DocsCmd struct {
	flags *Flags

	raw bool
}

// NewDocsCmd creates a new docs command
func NewDocsCmd(flags *Flags) *DocsCmd {
	return &DocsCmd{flags: flags}
}

// Register adds the docs command to the application
func (cmd *DocsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "docs",
		Usage:     "Show built-in guides",
		UsageText: "framecut docs [TOPIC]",
		Description: `Renders a built-in guide to the terminal. Run without a topic to list
what's available.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print the markdown without terminal rendering",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DocsCmd) run(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer

	if c.Args().Len() == 0 {
		topics, err := cmd.topics()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Available topics:")
		for _, t := range topics {
			fmt.Fprintf(out, "  framecut docs %s\n", t)
		}
		return nil
	}

	topic := c.Args().Get(0)
	raw, err := docsFS.ReadFile("docs/" + topic + ".md")
	if err != nil {
		topics, _ := cmd.topics()
		return fmt.Errorf("unknown topic %q (available: %s)", topic, strings.Join(topics, ", "))
	}

	if cmd.raw {
		_, err := out.Write(raw)
		return err
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = min(w, 100)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	rendered, err := r.Render(string(raw))
	if err != nil {
		return fmt.Errorf("render %s: %w", topic, err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func (cmd *DocsCmd) topics() ([]string, error) {
	entries, err := docsFS.ReadDir("docs")
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		topics = append(topics, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics, nil
}
