package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/shared"
	tu "github.com/myflix/flix/internal/testing"
	"github.com/urfave/cli/v3"
)

// runCommand runs the full CLI against the runner's registered commands.
func runCommand(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "flix",
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"flix"}, args...))
}

func TestAuthCommands(t *testing.T) {
	t.Run("login stores the session pair", func(t *testing.T) {
		svc := &tu.MockService{
			LoginFunc: func(ctx context.Context, username, password string) (*models.LoginResult, error) {
				if username != "alice" || password != "secret" {
					t.Errorf("unexpected credentials %s/%s", username, password)
				}
				return &models.LoginResult{
					Token: "tok123",
					User:  models.User{Username: "alice"},
				}, nil
			},
		}

		output := &bytes.Buffer{}
		store := testSession(t)
		runner := NewRunner(RunnerOpts{Service: svc, Session: store, Output: output})

		if err := runCommand(t, runner, "auth", "login", "alice", "--password", "secret"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if store.Token() != "tok123" || store.Username() != "alice" {
			t.Errorf("expected stored session, got token=%q user=%q", store.Token(), store.Username())
		}
		if !strings.Contains(output.String(), "Logged in as alice") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("failed login stores nothing", func(t *testing.T) {
		svc := &tu.MockService{
			LoginFunc: func(ctx context.Context, username, password string) (*models.LoginResult, error) {
				return nil, shared.ErrAPIRequest
			},
		}

		store := testSession(t)
		runner := NewRunner(RunnerOpts{Service: svc, Session: store, Output: &bytes.Buffer{}})

		err := runCommand(t, runner, "auth", "login", "alice", "--password", "wrong")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		if store.Authenticated() {
			t.Error("expected no stored session after a failed login")
		}
	})

	t.Run("logout clears the session", func(t *testing.T) {
		store := testSession(t)
		if err := store.SetSession("tok123", "alice"); err != nil {
			t.Fatalf("failed to store session: %v", err)
		}

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Service: &tu.MockService{}, Session: store, Output: output})

		if err := runCommand(t, runner, "auth", "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.Authenticated() {
			t.Error("expected session to be cleared")
		}
		if !strings.Contains(output.String(), "Logged out alice") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("logout without a session is a no-op", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Service: &tu.MockService{}, Session: testSession(t), Output: output})

		if err := runCommand(t, runner, "auth", "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "No active session") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("register does not log in", func(t *testing.T) {
		svc := &tu.MockService{
			RegisterFunc: func(ctx context.Context, details models.Registration) (*models.User, error) {
				if details.Email != "alice@example.com" {
					t.Errorf("unexpected email %q", details.Email)
				}
				return &models.User{Username: details.Username}, nil
			},
		}

		store := testSession(t)
		runner := NewRunner(RunnerOpts{Service: svc, Session: store, Output: &bytes.Buffer{}})

		err := runCommand(t, runner, "auth", "register", "alice",
			"--password", "secret", "--email", "alice@example.com")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.Authenticated() {
			t.Error("register must not create a session")
		}
	})
}
