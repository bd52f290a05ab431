package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/myflix/flix/internal/models"
	"github.com/urfave/cli/v3"
)

// UserShow prints the current user's profile.
func (r *Runner) UserShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	username := r.session.Username()
	r.logger.Info("fetching profile", "username", username)

	user, err := r.svc.User(ctx, username)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Profile")
	r.writePlain("Username: %s\n", user.Username)
	r.writePlain("Email: %s\n", user.Email)
	if user.Birthday != "" {
		r.writePlain("Birthday: %s\n", user.Birthday)
	}
	r.writePlain("Favorites: %d movies\n", len(user.Favorites))
	return nil
}

// UserEdit updates the editable profile fields. The server replaces the whole
// editable set, so unset flags fall back to the current values.
func (r *Runner) UserEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	username := r.session.Username()

	current, err := r.svc.User(ctx, username)
	if err != nil {
		return err
	}

	details := models.ProfileEdit{
		Username:  current.Username,
		Email:     current.Email,
		Birthday:  current.Birthday,
		FirstName: current.FirstName,
		LastName:  current.LastName,
	}
	if v := cmd.String("username"); v != "" {
		details.Username = v
	}
	if v := cmd.String("password"); v != "" {
		details.Password = v
	}
	if v := cmd.String("email"); v != "" {
		details.Email = v
	}
	if v := cmd.String("birthday"); v != "" {
		details.Birthday = v
	}
	if v := cmd.String("first-name"); v != "" {
		details.FirstName = v
	}
	if v := cmd.String("last-name"); v != "" {
		details.LastName = v
	}

	r.logger.Info("updating profile", "username", username)

	user, err := r.svc.UpdateUser(ctx, username, details)
	if err != nil {
		return err
	}

	// A rename invalidates the stored username, keep the pair in step.
	if user.Username != username {
		if err := r.session.SetSession(r.session.Token(), user.Username); err != nil {
			return fmt.Errorf("profile updated but session not refreshed: %w", err)
		}
	}

	return r.writePlain("✓ Profile updated for %s\n", user.Username)
}

// UserDelete removes the account after an explicit confirmation.
func (r *Runner) UserDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	username := r.session.Username()

	if !cmd.Bool("yes") {
		r.writePlain("Delete account '%s' and all favorites permanently? [y/N] ", username)
		reader := bufio.NewReader(r.input)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			return r.writePlain("Aborted.\n")
		}
	}

	r.logger.Info("deleting account", "username", username)

	if err := r.svc.DeleteUser(ctx, username); err != nil {
		return err
	}

	if err := r.session.Clear(); err != nil {
		return fmt.Errorf("account deleted but session not cleared: %w", err)
	}

	return r.writePlain("✓ Account deleted: %s\n", username)
}

// userCommand handles profile operations
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "View and manage your profile",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the current profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.UserShow,
			},
			{
				Name:  "edit",
				Usage: "Update profile fields",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "username",
						Usage: "New username",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "New password",
					},
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "New email",
					},
					&cli.StringFlag{
						Name:  "birthday",
						Usage: "New birthday (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "first-name",
						Usage: "New first name",
					},
					&cli.StringFlag{
						Name:  "last-name",
						Usage: "New last name",
					},
				},
				Action: r.UserEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete the account permanently",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Skip the confirmation prompt",
					},
				},
				Action: r.UserDelete,
			},
		},
	}
}
