package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/marginhq/margin/internal/export"
)

type ExportCmd struct {
	flags *Flags

	// flags
	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export an entity to a markdown file",
		UsageText: "margin export <entity-id> [-o file.md]",
		Description: `Fetches an entity and writes it as a markdown document.

Image comments become markdown image links pointing at the server; table
comments become markdown tables. Without -o the document goes to stdout.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "destination file (default: stdout)",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one entity ID, got %d arguments", c.Args().Len())
	}

	entityID, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid entity ID %q", c.Args().First())
	}

	entity, err := cmd.flags.Client.GetEntity(ctx, entityID)
	if err != nil {
		return fmt.Errorf("get entity: %w", err)
	}

	doc, err := export.Markdown(entity, cmd.flags.Client.ImageURL)
	if err != nil {
		return fmt.Errorf("render entity: %w", err)
	}

	if cmd.output == "" {
		_, err := fmt.Fprintln(c.Root().Writer, doc)
		return err
	}

	if err := os.WriteFile(cmd.output, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cmd.output, err)
	}

	fmt.Fprintf(os.Stderr, "Exported entity %d to %s\n", entityID, cmd.output)
	return nil
}
