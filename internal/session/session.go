// Package session persists the login session (bearer token + username) for the flix client.
//
// The session is the local record of authentication for this machine, the
// terminal analog of origin-scoped browser storage: it survives process
// restarts and is cleared only by explicit logout or account deletion.
// Logout is purely local; the token is not invalidated server-side.
//
// Token and username are always written and removed together. The on-disk
// file (TOML, mode 0600) is replaced with a temp-file-plus-rename so no
// reader ever observes one field without the other.
package session

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/myflix/flix/internal/shared"
	"golang.org/x/oauth2"
)

// DefaultPath is where the session file lives unless configured otherwise.
const DefaultPath = "~/.flix/session.toml"

// sessionFile is the on-disk shape. Two string entries, exactly.
type sessionFile struct {
	Token string `toml:"token"`
	User  string `toml:"user"`
}

// Store holds the current session in memory and mirrors it to disk.
// Safe for concurrent use; the TUI's command goroutines read it while the
// update loop writes.
type Store struct {
	mu   sync.RWMutex
	path string
	cur  sessionFile
}

// NewStore creates a session store backed by the file at path and loads any
// existing session. A missing file means no session; a corrupt file is
// treated the same but reported.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	resolved, err := shared.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session path: %w", err)
	}

	s := &Store{path: resolved}

	data, err := os.ReadFile(resolved)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var f sessionFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return s, fmt.Errorf("%w: %v", shared.ErrSessionCorrupt, err)
	}

	// A half-written session is never valid: token and username are only
	// meaningful together.
	if f.Token != "" && f.User != "" {
		s.cur = f
	}

	return s, nil
}

// SetSession records the token and username from a successful login.
// Both fields are stored in the same synchronous call.
func (s *Store) SetSession(token, username string) error {
	if token == "" || username == "" {
		return fmt.Errorf("%w: token and username are required", shared.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = sessionFile{Token: token, User: username}
	return s.persist()
}

// Clear removes the session. Both fields are cleared together.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = sessionFile{}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// Username returns the stored username, or "" when logged out.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.User
}

// Authenticated reports whether a session is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token != "" && s.cur.User != ""
}

// TokenSource returns an [oauth2.TokenSource] for the current session, or nil
// when logged out. Authenticated requests built from a nil source fire
// without an Authorization header and rely on the server's own rejection.
func (s *Store) TokenSource() oauth2.TokenSource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cur.Token == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.cur.Token})
}

// Path returns the resolved session file location.
func (s *Store) Path() string {
	return s.path
}

// persist writes the current session to disk. Callers hold s.mu.
func (s *Store) persist() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.cur); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	data := buf.Bytes()

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set session file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
