package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

type NewCmd struct {
	flags *Flags
}

// NewNewCmd creates a new "new" command
func NewNewCmd(flags *Flags) *NewCmd {
	return &NewCmd{flags: flags}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Create a new entity",
		UsageText: "margin new <name>",
		Action:    cmd.run,
	})
	return app
}

func (cmd *NewCmd) run(ctx context.Context, c *cli.Command) error {
	name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if name == "" {
		return fmt.Errorf("entity name is required")
	}

	summary, err := cmd.flags.Client.CreateEntity(ctx, name)
	if err != nil {
		return fmt.Errorf("create entity: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Created %q (ID %d)\n", summary.Name, summary.ID)
	return nil
}
