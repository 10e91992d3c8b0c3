package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/urfave/cli/v3"
)

type AuthCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewAuthCmd creates a new auth command
func NewAuthCmd(flags *Flags, app *tracker.App) *AuthCmd {
	return &AuthCmd{flags: flags, app: app}
}

// Register adds login, logout and whoami to the application
func (cmd *AuthCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:        "login",
			Usage:       "Start a local session",
			UsageText:   "techtrack login <username>",
			Description: "Records who is using the tracker. Nothing is verified.",
			Action:      cmd.runLogin,
		},
		&cli.Command{
			Name:   "logout",
			Usage:  "End the local session",
			Action: cmd.runLogout,
		},
		&cli.Command{
			Name:   "whoami",
			Usage:  "Show the current user",
			Action: cmd.runWhoami,
		},
	)
	return app
}

func (cmd *AuthCmd) runLogin(ctx context.Context, c *cli.Command) error {
	s, err := cmd.app.Auth.Login(ctx, joinArgs(c, 0))
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	printer.Ctx(ctx).Successf("Logged in as %s", s.CurrentUser)
	return nil
}

func (cmd *AuthCmd) runLogout(ctx context.Context, c *cli.Command) error {
	cmd.app.Auth.Logout(ctx)
	printer.Ctx(ctx).Infof("Logged out")
	return nil
}

func (cmd *AuthCmd) runWhoami(ctx context.Context, c *cli.Command) error {
	s := cmd.app.Auth.Current(ctx)
	if !s.IsAuthenticated {
		printer.Ctx(ctx).Infof("Not logged in")
		return nil
	}
	printer.Ctx(ctx).Println(s.CurrentUser)
	return nil
}
