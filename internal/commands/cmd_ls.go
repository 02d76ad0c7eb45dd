package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/marginhq/margin/internal/core/notebook"
	"github.com/marginhq/margin/internal/core/styles"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List entities on the server",
		UsageText: "margin ls [--json]",
		Description: `Displays a table of all entities with their ID, name, and type.

Use --json for machine-friendly output, one entity per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	entities, err := cmd.flags.Client.ListEntities(ctx)
	if err != nil {
		return fmt.Errorf("list entities: %w", err)
	}

	if len(entities) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No entities found\n")
		}
		return nil
	}

	slices.SortFunc(entities, func(a, b notebook.EntitySummary) int {
		return a.ID - b.ID
	})

	out := c.Root().Writer

	if cmd.jsonOutput {
		enc := json.NewEncoder(out)
		for _, e := range entities {
			if err := enc.Encode(e); err != nil {
				return fmt.Errorf("encode entity: %w", err)
			}
		}
		return nil
	}

	// Only style headers when stdout is a terminal; piped output stays plain.
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	header := "ID\tNAME\tTYPE"
	if isTTY {
		header = styles.TextPrimaryStyle.Render("ID") + "\t" +
			styles.TextPrimaryStyle.Render("NAME") + "\t" +
			styles.TextPrimaryStyle.Render("TYPE")
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, header)
	for _, e := range entities {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, e.Name, strings.TrimSpace(e.Type))
	}
	return w.Flush()
}
