package favorites

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/shared"
	tu "github.com/myflix/flix/internal/testing"
)

type staticUser string

func (u staticUser) Username() string { return string(u) }

func catalog() []models.Movie {
	return []models.Movie{
		{ID: "m1", Title: "Alien"},
		{ID: "m2", Title: "Heat"},
		{ID: "m3", Title: "Ran"},
	}
}

func profile(favs ...string) *models.User {
	return &models.User{Username: "alice", Favorites: favs}
}

func TestSync(t *testing.T) {
	ctx := context.Background()

	t.Run("Seed", func(t *testing.T) {
		t.Run("marks profile favorites", func(t *testing.T) {
			sync := NewSync(&tu.MockService{}, staticUser("alice"))
			sync.Seed(profile("m2"), catalog())

			if sync.IsFavorite("m1") {
				t.Error("m1 should not be a favorite")
			}
			if !sync.IsFavorite("m2") {
				t.Error("m2 should be a favorite")
			}
			if sync.Status("m3") != NotFavorite {
				t.Errorf("expected NotFavorite, got %v", sync.Status("m3"))
			}
		})

		t.Run("unknown ids report NotFavorite", func(t *testing.T) {
			sync := NewSync(&tu.MockService{}, staticUser("alice"))
			if sync.Status("nope") != NotFavorite {
				t.Errorf("expected NotFavorite, got %v", sync.Status("nope"))
			}
		})
	})

	t.Run("Toggle", func(t *testing.T) {
		t.Run("add flips to Favorite and calls the server by title", func(t *testing.T) {
			var gotUser, gotTitle string
			svc := &tu.MockService{
				AddFavoriteFunc: func(ctx context.Context, username, title string) (*models.User, error) {
					gotUser, gotTitle = username, title
					return profile("m1"), nil
				},
			}

			sync := NewSync(svc, staticUser("alice"))
			sync.Seed(profile(), catalog())

			status, err := sync.Toggle(ctx, catalog()[0])
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if status != Favorite {
				t.Errorf("expected Favorite, got %v", status)
			}
			if gotUser != "alice" {
				t.Errorf("expected username 'alice', got %q", gotUser)
			}
			if gotTitle != "Alien" {
				t.Errorf("expected title 'Alien', got %q", gotTitle)
			}
		})

		t.Run("failed add rolls back", func(t *testing.T) {
			svc := &tu.MockService{
				AddFavoriteFunc: func(ctx context.Context, username, title string) (*models.User, error) {
					return nil, shared.ErrAPIRequest
				},
			}

			sync := NewSync(svc, staticUser("alice"))
			sync.Seed(profile(), catalog())

			status, err := sync.Toggle(ctx, catalog()[0])
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if status != NotFavorite {
				t.Errorf("expected rollback to NotFavorite, got %v", status)
			}
			if sync.IsFavorite("m1") {
				t.Error("failed add must not leave the movie favorited")
			}
		})

		t.Run("remove flips to NotFavorite on success", func(t *testing.T) {
			svc := &tu.MockService{
				RemoveFavoriteFunc: func(ctx context.Context, username, title string) (*models.User, error) {
					return profile(), nil
				},
			}

			sync := NewSync(svc, staticUser("alice"))
			sync.Seed(profile("m1"), catalog())

			status, err := sync.Toggle(ctx, catalog()[0])
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if status != NotFavorite {
				t.Errorf("expected NotFavorite, got %v", status)
			}
		})

		t.Run("failed remove keeps the favorite", func(t *testing.T) {
			svc := &tu.MockService{
				RemoveFavoriteFunc: func(ctx context.Context, username, title string) (*models.User, error) {
					return nil, shared.ErrAPIRequest
				},
			}

			sync := NewSync(svc, staticUser("alice"))
			sync.Seed(profile("m1"), catalog())

			status, err := sync.Toggle(ctx, catalog()[0])
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if status != Favorite {
				t.Errorf("expected Favorite after failed remove, got %v", status)
			}
			if !sync.IsFavorite("m1") {
				t.Error("failed remove must keep the movie favorited")
			}
		})

		t.Run("without a session nothing changes", func(t *testing.T) {
			called := false
			svc := &tu.MockService{
				AddFavoriteFunc: func(ctx context.Context, username, title string) (*models.User, error) {
					called = true
					return profile(), nil
				},
			}

			sync := NewSync(svc, staticUser(""))
			sync.Seed(profile(), catalog())

			_, err := sync.Toggle(ctx, catalog()[0])
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
			if called {
				t.Error("no request may be issued without a session")
			}
			if sync.Status("m1") != NotFavorite {
				t.Errorf("state must be unchanged, got %v", sync.Status("m1"))
			}
		})

		t.Run("second toggle while in flight is rejected", func(t *testing.T) {
			started := make(chan struct{})
			release := make(chan struct{})
			svc := &tu.MockService{
				AddFavoriteFunc: func(ctx context.Context, username, title string) (*models.User, error) {
					close(started)
					<-release
					return profile("m1"), nil
				},
			}

			sync := NewSync(svc, staticUser("alice"))
			sync.Seed(profile(), catalog())

			done := make(chan struct{})
			go func() {
				defer close(done)
				if _, err := sync.Toggle(ctx, catalog()[0]); err != nil {
					t.Errorf("first toggle failed: %v", err)
				}
			}()

			<-started

			// The optimistic flip is already visible while the add is pending.
			if !sync.IsFavorite("m1") {
				t.Error("pending add should count as favorited")
			}
			if sync.Status("m1") != PendingAdd {
				t.Errorf("expected PendingAdd, got %v", sync.Status("m1"))
			}

			if _, err := sync.Toggle(ctx, catalog()[0]); !errors.Is(err, shared.ErrToggleInFlight) {
				t.Errorf("expected ErrToggleInFlight, got %v", err)
			}

			// Reseeding must not clobber the pending state.
			sync.Seed(profile(), catalog())
			if sync.Status("m1") != PendingAdd {
				t.Errorf("reseed must preserve pending state, got %v", sync.Status("m1"))
			}

			close(release)
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("first toggle did not finish")
			}

			if sync.Status("m1") != Favorite {
				t.Errorf("expected Favorite after settle, got %v", sync.Status("m1"))
			}
		})
	})

	t.Run("Favorites", func(t *testing.T) {
		sync := NewSync(&tu.MockService{}, staticUser("alice"))
		sync.Seed(profile("m1", "m3"), catalog())

		ids := sync.Favorites()
		if len(ids) != 2 {
			t.Fatalf("expected 2 favorites, got %d", len(ids))
		}
		seen := map[string]bool{}
		for _, id := range ids {
			seen[id] = true
		}
		if !seen["m1"] || !seen["m3"] {
			t.Errorf("expected m1 and m3, got %v", ids)
		}
	})
}
