package main

import (
	"context"
	"fmt"

	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges credentials for a token and stores the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	password := cmd.String("password")

	if username == "" || password == "" {
		return fmt.Errorf("%w: username and --password are required", shared.ErrMissingArgument)
	}

	r.logger.Info("logging in", "username", username)

	result, err := r.svc.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := r.session.SetSession(result.Token, result.User.Username); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	r.logger.Info("session stored", "path", r.session.Path())
	return r.writePlain("✓ Logged in as %s\n", result.User.Username)
}

// AuthRegister creates a new account. Does not log in; credentials are
// exchanged with a separate 'auth login'.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	details := models.Registration{
		Username:  cmd.StringArg("username"),
		Password:  cmd.String("password"),
		Email:     cmd.String("email"),
		Birthday:  cmd.String("birthday"),
		FirstName: cmd.String("first-name"),
		LastName:  cmd.String("last-name"),
	}

	if details.Username == "" || details.Password == "" || details.Email == "" {
		return fmt.Errorf("%w: username, --password and --email are required", shared.ErrMissingArgument)
	}

	r.logger.Info("registering account", "username", details.Username)

	user, err := r.svc.Register(ctx, details)
	if err != nil {
		return err
	}

	r.writePlain("✓ Account created: %s\n", user.Username)
	return r.writePlain("Run 'flix auth login %s --password <password>' to start a session.\n", user.Username)
}

// AuthLogout clears the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if !r.session.Authenticated() {
		return r.writePlain("No active session.\n")
	}

	username := r.session.Username()
	if err := r.session.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.logger.Info("session cleared", "username", username)
	return r.writePlain("✓ Logged out %s\n", username)
}

// AuthStatus reports whether a session is stored and still accepted by the server.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if !r.session.Authenticated() {
		return r.writePlain("✗ Not logged in\n")
	}

	username := r.session.Username()
	r.writePlain("✓ Session stored for %s\n", username)

	if _, err := r.svc.User(ctx, username); err != nil {
		r.writePlain("✗ Server rejected the stored token: %v\n", err)
		return nil
	}

	return r.writePlain("✓ Token accepted by server\n")
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and store the session token",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "birthday",
						Usage: "Birthday (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "first-name",
						Usage: "First name",
					},
					&cli.StringFlag{
						Name:  "last-name",
						Usage: "Last name",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show session state and verify the token against the server",
				Action: r.AuthStatus,
			},
		},
	}
}
