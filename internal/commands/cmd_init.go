package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/marginhq/margin/internal/core/config"
	"github.com/marginhq/margin/internal/core/styles"
)

type InitCmd struct {
	flags *Flags

	// flags
	yes   bool
	force bool
}

// NewInitCmd creates a new init command
func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

// Register adds the init command to the application
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize margin configuration with an interactive wizard",
		UsageText: "margin init [options]",
		Description: `Sets up margin for first-time use.

The wizard asks for the notebook server URL and a color theme, then writes
~/.config/margin/config.yaml.

Use --yes to accept all defaults without prompts.
Use --force to overwrite existing configuration.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(_ context.Context, _ *cli.Command) error {
	path := cmd.flags.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !cmd.force {
		if cmd.yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", path)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(path + "\nOverwrite?").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Init cancelled")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if cmd.flags.ServerURL != "" {
		cfg.Server.URL = cmd.flags.ServerURL
	}

	if !cmd.yes {
		serverURL := cfg.Server.URL
		theme := cfg.TUI.Theme
		timeout := cfg.Server.Timeout.String()

		themeOptions := make([]huh.Option[string], 0)
		for _, name := range styles.ThemeNames() {
			themeOptions = append(themeOptions, huh.NewOption(name, name))
		}

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Server URL").
				Description("Base URL of the notebook server").
				Value(&serverURL),
			huh.NewInput().
				Title("Request timeout").
				Description("Go duration, e.g. 10s").
				Value(&timeout),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&theme),
		))
		if err := form.Run(); err != nil {
			return err
		}

		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}

		cfg.Server.URL = serverURL
		cfg.Server.Timeout = d
		cfg.TUI.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := config.Write(cfg, path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Run 'margin' to open the browser")
	return nil
}
