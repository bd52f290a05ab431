// package services defines interface Service for the MyFlix catalog API
package services

import (
	"context"

	"github.com/myflix/flix/internal/models"
	"golang.org/x/oauth2"
)

// TokenProvider supplies the bearer token for authenticated calls.
// A nil [oauth2.TokenSource] means no session: the request fires without an
// Authorization header.
type TokenProvider interface {
	TokenSource() oauth2.TokenSource
}

// Service defines one operation per remote MyFlix action.
type Service interface {
	// Register creates a new user account. Unauthenticated.
	Register(ctx context.Context, details models.Registration) (*models.User, error)

	// Login exchanges credentials for a token and user payload. Unauthenticated.
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)

	// Movies retrieves the full catalog.
	Movies(ctx context.Context) ([]models.Movie, error)

	// Movie retrieves a single catalog entry by title.
	Movie(ctx context.Context, title string) (*models.Movie, error)

	// Director retrieves a director's details by name.
	Director(ctx context.Context, name string) (*models.Director, error)

	// Genre retrieves genre information by name.
	Genre(ctx context.Context, name string) (*models.Genre, error)

	// User retrieves the profile for the given username.
	User(ctx context.Context, username string) (*models.User, error)

	// UpdateUser replaces the editable profile fields and returns the updated profile.
	UpdateUser(ctx context.Context, username string, details models.ProfileEdit) (*models.User, error)

	// DeleteUser removes the account. The caller is responsible for the
	// explicit confirmation step that precedes it.
	DeleteUser(ctx context.Context, username string) error

	// AddFavorite adds one movie (by title) to the user's favorites and
	// returns the updated profile.
	AddFavorite(ctx context.Context, username, title string) (*models.User, error)

	// RemoveFavorite removes one movie (by title) from the user's favorites
	// and returns the updated profile.
	RemoveFavorite(ctx context.Context, username, title string) (*models.User, error)

	// Name returns the name of the remote service.
	Name() string
}
