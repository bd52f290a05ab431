// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/myflix/flix/internal/models"
)

// MockService is a test double for [services.Service].
//
// Each operation delegates to the corresponding func field when set and
// returns zero values otherwise.
type MockService struct {
	RegisterFunc       func(ctx context.Context, details models.Registration) (*models.User, error)
	LoginFunc          func(ctx context.Context, username, password string) (*models.LoginResult, error)
	MoviesFunc         func(ctx context.Context) ([]models.Movie, error)
	MovieFunc          func(ctx context.Context, title string) (*models.Movie, error)
	DirectorFunc       func(ctx context.Context, name string) (*models.Director, error)
	GenreFunc          func(ctx context.Context, name string) (*models.Genre, error)
	UserFunc           func(ctx context.Context, username string) (*models.User, error)
	UpdateUserFunc     func(ctx context.Context, username string, details models.ProfileEdit) (*models.User, error)
	DeleteUserFunc     func(ctx context.Context, username string) error
	AddFavoriteFunc    func(ctx context.Context, username, title string) (*models.User, error)
	RemoveFavoriteFunc func(ctx context.Context, username, title string) (*models.User, error)
}

func (m *MockService) Register(ctx context.Context, details models.Registration) (*models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, details)
	}
	return &models.User{}, nil
}

func (m *MockService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return &models.LoginResult{}, nil
}

func (m *MockService) Movies(ctx context.Context) ([]models.Movie, error) {
	if m.MoviesFunc != nil {
		return m.MoviesFunc(ctx)
	}
	return []models.Movie{}, nil
}

func (m *MockService) Movie(ctx context.Context, title string) (*models.Movie, error) {
	if m.MovieFunc != nil {
		return m.MovieFunc(ctx, title)
	}
	return nil, nil
}

func (m *MockService) Director(ctx context.Context, name string) (*models.Director, error) {
	if m.DirectorFunc != nil {
		return m.DirectorFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockService) Genre(ctx context.Context, name string) (*models.Genre, error) {
	if m.GenreFunc != nil {
		return m.GenreFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockService) User(ctx context.Context, username string) (*models.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockService) UpdateUser(ctx context.Context, username string, details models.ProfileEdit) (*models.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, username, details)
	}
	return nil, nil
}

func (m *MockService) DeleteUser(ctx context.Context, username string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, username)
	}
	return nil
}

func (m *MockService) AddFavorite(ctx context.Context, username, title string) (*models.User, error) {
	if m.AddFavoriteFunc != nil {
		return m.AddFavoriteFunc(ctx, username, title)
	}
	return &models.User{}, nil
}

func (m *MockService) RemoveFavorite(ctx context.Context, username, title string) (*models.User, error) {
	if m.RemoveFavoriteFunc != nil {
		return m.RemoveFavoriteFunc(ctx, username, title)
	}
	return &models.User{}, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
