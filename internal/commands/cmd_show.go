package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/marginhq/margin/internal/core/styles"
	"github.com/marginhq/margin/internal/export"
)

type ShowCmd struct {
	flags *Flags

	// flags
	raw bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show an entity, or a single comment",
		UsageText: "margin show <entity-id> [comment-id] [--raw]",
		Description: `Fetches an entity (or one of its comments) and prints it as markdown.

Output is rendered for the terminal when stdout is a TTY; use --raw (or pipe
the output) to get plain markdown.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print plain markdown without terminal rendering",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() < 1 || c.Args().Len() > 2 {
		return fmt.Errorf("expected <entity-id> [comment-id], got %d arguments", c.Args().Len())
	}

	entityID, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid entity ID %q", c.Args().First())
	}

	var doc string
	if c.Args().Len() == 2 {
		commentID, err := strconv.Atoi(c.Args().Get(1))
		if err != nil {
			return fmt.Errorf("invalid comment ID %q", c.Args().Get(1))
		}

		comment, err := cmd.flags.Client.GetComment(ctx, entityID, commentID)
		if err != nil {
			return fmt.Errorf("get comment: %w", err)
		}

		doc, err = export.Comment(entityID, comment, cmd.flags.Client.ImageURL)
		if err != nil {
			return fmt.Errorf("render comment: %w", err)
		}
	} else {
		entity, err := cmd.flags.Client.GetEntity(ctx, entityID)
		if err != nil {
			return fmt.Errorf("get entity: %w", err)
		}

		doc, err = export.Markdown(entity, cmd.flags.Client.ImageURL)
		if err != nil {
			return fmt.Errorf("render entity: %w", err)
		}
	}

	out := c.Root().Writer

	if cmd.raw || !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err := fmt.Fprintln(out, doc)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = fmt.Fprint(out, rendered)
	return err
}
