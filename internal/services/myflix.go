// MyFlix catalog API implementation of [Service]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/shared"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://movie-flix19-efb939257bd3.herokuapp.com"

// MyFlixService implements [Service] for the MyFlix REST API.
// Bearer tokens come from the injected [TokenProvider]; requests without a
// session fire without an Authorization header.
type MyFlixService struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	logger     *log.Logger
}

// MyFlixOpts contains configuration options for creating a MyFlixService.
type MyFlixOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenProvider
	Logger     *log.Logger
	Timeout    time.Duration
}

// NewMyFlixService creates a new MyFlix API client.
func NewMyFlixService(opts MyFlixOpts) *MyFlixService {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	if opts.Timeout > 0 {
		clone := *client
		clone.Timeout = opts.Timeout
		client = &clone
	}
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &MyFlixService{
		baseURL:    baseURL,
		httpClient: client,
		tokens:     opts.Tokens,
		logger:     logger,
	}
}

func (s *MyFlixService) Name() string { return "MyFlix" }

// client returns the HTTP client for a request. When a token source is
// available the [oauth2] client wraps the base transport and attaches the
// Authorization: Bearer header.
func (s *MyFlixService) client(ctx context.Context) *http.Client {
	if s.tokens == nil {
		return s.httpClient
	}
	ts := s.tokens.TokenSource()
	if ts == nil {
		return s.httpClient
	}
	return oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, s.httpClient), ts)
}

// doRequest performs one HTTP request and decodes the JSON response into result.
// Transport failures and HTTP error statuses are both normalized into
// [shared.ErrAPIRequest]; the original cause is logged, never returned.
func (s *MyFlixService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	apiURL := s.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client(ctx).Do(req)
	if err != nil {
		s.logger.Error("network error", "method", method, "endpoint", endpoint, "error", err)
		return shared.ErrAPIRequest
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("api error", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "body", string(respBody))
		return shared.ErrAPIRequest
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			s.logger.Error("decode error", "method", method, "endpoint", endpoint, "error", err)
			return shared.ErrAPIRequest
		}
	}

	return nil
}

// Register creates a new user account.
func (s *MyFlixService) Register(ctx context.Context, details models.Registration) (*models.User, error) {
	var user models.User
	if err := s.doRequest(ctx, http.MethodPost, "/users", details, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token and user payload.
func (s *MyFlixService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	payload := map[string]string{"username": username, "password": password}

	var result models.LoginResult
	if err := s.doRequest(ctx, http.MethodPost, "/login", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Movies retrieves the full catalog.
func (s *MyFlixService) Movies(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := s.doRequest(ctx, http.MethodGet, "/movies", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Movie retrieves a single catalog entry by title.
func (s *MyFlixService) Movie(ctx context.Context, title string) (*models.Movie, error) {
	var movie models.Movie
	endpoint := fmt.Sprintf("/movies/%s", url.PathEscape(title))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Director retrieves a director's details by name.
func (s *MyFlixService) Director(ctx context.Context, name string) (*models.Director, error) {
	var director models.Director
	endpoint := fmt.Sprintf("/directors/%s", url.PathEscape(name))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &director); err != nil {
		return nil, err
	}
	return &director, nil
}

// Genre retrieves genre information by name.
func (s *MyFlixService) Genre(ctx context.Context, name string) (*models.Genre, error) {
	var genre models.Genre
	endpoint := fmt.Sprintf("/genres/%s", url.PathEscape(name))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &genre); err != nil {
		return nil, err
	}
	return &genre, nil
}

// User retrieves the profile for the given username.
func (s *MyFlixService) User(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	endpoint := fmt.Sprintf("/users/%s", url.PathEscape(username))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces the editable profile fields.
func (s *MyFlixService) UpdateUser(ctx context.Context, username string, details models.ProfileEdit) (*models.User, error) {
	var user models.User
	endpoint := fmt.Sprintf("/users/%s", url.PathEscape(username))
	if err := s.doRequest(ctx, http.MethodPut, endpoint, details, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the account.
func (s *MyFlixService) DeleteUser(ctx context.Context, username string) error {
	endpoint := fmt.Sprintf("/users/%s", url.PathEscape(username))
	return s.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// AddFavorite adds one movie (by title) to the user's favorites.
func (s *MyFlixService) AddFavorite(ctx context.Context, username, title string) (*models.User, error) {
	var user models.User
	endpoint := fmt.Sprintf("/users/%s/favorites/%s", url.PathEscape(username), url.PathEscape(title))
	if err := s.doRequest(ctx, http.MethodPost, endpoint, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RemoveFavorite removes one movie (by title) from the user's favorites.
func (s *MyFlixService) RemoveFavorite(ctx context.Context, username, title string) (*models.User, error) {
	var user models.User
	endpoint := fmt.Sprintf("/users/%s/favorites/%s", url.PathEscape(username), url.PathEscape(title))
	if err := s.doRequest(ctx, http.MethodDelete, endpoint, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
