package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tu "github.com/myflix/flix/internal/testing"
)

func TestRawService(t *testing.T) {
	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		t.Run("returns JSON responses parsed", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/movies" {
					t.Errorf("expected path '/movies', got %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"title":"Alien"}`))
			}))
			defer server.Close()

			svc := NewRawService(server.URL, nil, nil)
			resp, err := svc.Get(ctx, "/movies")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON {
				t.Error("expected IsJSON to be true")
			}
			data, ok := resp.JSONData.(map[string]any)
			if !ok {
				t.Fatalf("expected object, got %T", resp.JSONData)
			}
			if data["title"] != "Alien" {
				t.Errorf("expected title 'Alien', got %v", data["title"])
			}
		})

		t.Run("returns non-JSON responses verbatim", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("plain text body"))
			}))
			defer server.Close()

			svc := NewRawService(server.URL, nil, nil)
			resp, err := svc.Get(ctx, "/")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected IsJSON to be false")
			}
			if string(resp.Body) != "plain text body" {
				t.Errorf("unexpected body %q", resp.Body)
			}
		})

		t.Run("preserves error statuses", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "not found", http.StatusNotFound)
			}))
			defer server.Close()

			svc := NewRawService(server.URL, nil, nil)
			resp, err := svc.Get(ctx, "/missing")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("expected 404, got %d", resp.StatusCode)
			}
		})

		t.Run("returns transport failures", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
			}

			svc := NewRawService("http://example.com", client, nil)
			_, err := svc.Get(ctx, "/movies")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), "request failed") {
				t.Errorf("unexpected error %v", err)
			}
		})

		t.Run("returns body read failures", func(t *testing.T) {
			failing := &http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
				Header:     http.Header{},
			}
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(failing, nil),
			}

			svc := NewRawService("http://example.com", client, nil)
			_, err := svc.Get(ctx, "/movies")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("unexpected error %v", err)
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("sends the payload with a JSON content type", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if got := r.Header.Get("Content-Type"); got != "application/json" {
					t.Errorf("expected JSON content type, got %q", got)
				}
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"ok":true}`))
			}))
			defer server.Close()

			svc := NewRawService(server.URL, nil, nil)
			resp, err := svc.Post(ctx, "/users", []byte(`{"username":"alice"}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("expected 201, got %d", resp.StatusCode)
			}
		})
	})

	t.Run("attaches bearer token when available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
				t.Errorf("expected 'Bearer tok123', got %q", got)
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		svc := NewRawService(server.URL, nil, &staticTokens{token: "tok123"})
		if _, err := svc.Get(ctx, "/movies"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}
