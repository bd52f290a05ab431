package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/myflix/flix/internal/models"
	tu "github.com/myflix/flix/internal/testing"
)

func TestUserDelete(t *testing.T) {
	t.Run("declining the prompt issues no request", func(t *testing.T) {
		deleted := false
		svc := &tu.MockService{
			DeleteUserFunc: func(ctx context.Context, username string) error {
				deleted = true
				return nil
			},
		}

		store := testSession(t)
		if err := store.SetSession("tok123", "alice"); err != nil {
			t.Fatalf("failed to store session: %v", err)
		}

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Service: svc,
			Session: store,
			Output:  output,
			Input:   strings.NewReader("n\n"),
		})

		if err := runCommand(t, runner, "user", "delete"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if deleted {
			t.Error("declining the confirmation must not delete the account")
		}
		if !store.Authenticated() {
			t.Error("expected the session to survive an aborted delete")
		}
		if !strings.Contains(output.String(), "Aborted") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("confirming deletes and clears the session", func(t *testing.T) {
		deleted := false
		svc := &tu.MockService{
			DeleteUserFunc: func(ctx context.Context, username string) error {
				if username != "alice" {
					t.Errorf("expected username 'alice', got %q", username)
				}
				deleted = true
				return nil
			},
		}

		store := testSession(t)
		if err := store.SetSession("tok123", "alice"); err != nil {
			t.Fatalf("failed to store session: %v", err)
		}

		runner := NewRunner(RunnerOpts{
			Service: svc,
			Session: store,
			Output:  &bytes.Buffer{},
			Input:   strings.NewReader("y\n"),
		})

		if err := runCommand(t, runner, "user", "delete"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !deleted {
			t.Error("expected the account to be deleted")
		}
		if store.Authenticated() {
			t.Error("expected the session to be cleared")
		}
	})

	t.Run("--yes skips the prompt", func(t *testing.T) {
		deleted := false
		svc := &tu.MockService{
			DeleteUserFunc: func(ctx context.Context, username string) error {
				deleted = true
				return nil
			},
		}

		store := testSession(t)
		if err := store.SetSession("tok123", "alice"); err != nil {
			t.Fatalf("failed to store session: %v", err)
		}

		runner := NewRunner(RunnerOpts{Service: svc, Session: store, Output: &bytes.Buffer{}})

		if err := runCommand(t, runner, "user", "delete", "--yes"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !deleted {
			t.Error("expected the account to be deleted")
		}
	})
}

func TestUserEdit(t *testing.T) {
	t.Run("unset flags fall back to current values", func(t *testing.T) {
		svc := &tu.MockService{
			UserFunc: func(ctx context.Context, username string) (*models.User, error) {
				return &models.User{
					Username: "alice",
					Email:    "alice@example.com",
					Birthday: "1990-01-01",
				}, nil
			},
			UpdateUserFunc: func(ctx context.Context, username string, details models.ProfileEdit) (*models.User, error) {
				if details.Email != "new@example.com" {
					t.Errorf("expected the flag value, got %q", details.Email)
				}
				if details.Birthday != "1990-01-01" {
					t.Errorf("expected the current birthday, got %q", details.Birthday)
				}
				return &models.User{Username: details.Username, Email: details.Email}, nil
			},
		}

		store := testSession(t)
		if err := store.SetSession("tok123", "alice"); err != nil {
			t.Fatalf("failed to store session: %v", err)
		}

		runner := NewRunner(RunnerOpts{Service: svc, Session: store, Output: &bytes.Buffer{}})

		if err := runCommand(t, runner, "user", "edit", "--email", "new@example.com"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("name flags change names and preserve the rest", func(t *testing.T) {
		svc := &tu.MockService{
			UserFunc: func(ctx context.Context, username string) (*models.User, error) {
				return &models.User{
					Username:  "alice",
					Email:     "alice@example.com",
					FirstName: "Ada",
					LastName:  "Lovelace",
				}, nil
			},
			UpdateUserFunc: func(ctx context.Context, username string, details models.ProfileEdit) (*models.User, error) {
				if details.FirstName != "Grace" {
					t.Errorf("expected the flag value, got %q", details.FirstName)
				}
				if details.LastName != "Lovelace" {
					t.Errorf("expected the current last name, got %q", details.LastName)
				}
				return &models.User{Username: details.Username}, nil
			},
		}

		store := testSession(t)
		if err := store.SetSession("tok123", "alice"); err != nil {
			t.Fatalf("failed to store session: %v", err)
		}

		runner := NewRunner(RunnerOpts{Service: svc, Session: store, Output: &bytes.Buffer{}})

		if err := runCommand(t, runner, "user", "edit", "--first-name", "Grace"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("rename refreshes the stored username", func(t *testing.T) {
		svc := &tu.MockService{
			UserFunc: func(ctx context.Context, username string) (*models.User, error) {
				return &models.User{Username: "alice", Email: "alice@example.com"}, nil
			},
			UpdateUserFunc: func(ctx context.Context, username string, details models.ProfileEdit) (*models.User, error) {
				return &models.User{Username: details.Username, Email: details.Email}, nil
			},
		}

		store := testSession(t)
		if err := store.SetSession("tok123", "alice"); err != nil {
			t.Fatalf("failed to store session: %v", err)
		}

		runner := NewRunner(RunnerOpts{Service: svc, Session: store, Output: &bytes.Buffer{}})

		if err := runCommand(t, runner, "user", "edit", "--username", "alice2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if store.Username() != "alice2" {
			t.Errorf("expected stored username 'alice2', got %q", store.Username())
		}
		if store.Token() != "tok123" {
			t.Errorf("expected the token to survive the rename, got %q", store.Token())
		}
	})
}
