// Raw HTTP access to the MyFlix API for debugging
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RawService provides methods for making raw HTTP requests to the MyFlix API.
// Unlike [MyFlixService], responses are returned as-is without normalization,
// for use by the `flix api` debugging commands.
type RawService struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

// NewRawService creates a new raw API client.
func NewRawService(baseURL string, client *http.Client, tokens TokenProvider) *RawService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &RawService{
		baseURL:    baseURL,
		httpClient: client,
		tokens:     tokens,
	}
}

// RawResponse represents a raw API response with status and body.
type RawResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

func (r *RawService) do(ctx context.Context, method, path string, data []byte) (*RawResponse, error) {
	fullURL := r.baseURL + path

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.tokens != nil {
		if ts := r.tokens.TokenSource(); ts != nil {
			if token, err := ts.Token(); err == nil {
				token.SetAuthHeader(req)
			}
		}
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	rawResp := &RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	var jsonData any
	if err := json.Unmarshal(respBody, &jsonData); err == nil {
		rawResp.IsJSON = true
		rawResp.JSONData = jsonData
	}

	return rawResp, nil
}

// Get performs a GET request to the specified path and returns the raw response.
func (r *RawService) Get(ctx context.Context, path string) (*RawResponse, error) {
	return r.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (r *RawService) Post(ctx context.Context, path string, data []byte) (*RawResponse, error) {
	return r.do(ctx, http.MethodPost, path, data)
}
