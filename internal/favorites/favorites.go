// Package favorites reconciles the logged-in user's favorite-movie set
// between local view-state and the MyFlix server.
//
// Each tracked movie carries an explicit status rather than a boolean:
//
//  1. NotFavorite: toggle moves to PendingAdd, then Favorite on success or
//     back to NotFavorite on failure
//  2. Favorite: toggle moves to PendingRemove, then NotFavorite on success or
//     back to Favorite on failure
//
// Adds are optimistic: the view-state flips to favorited immediately and a
// failed request rolls it back, keeping local state consistent with the
// server. Removes are pessimistic: the view-state only changes in the success
// path. A failed toggle is terminal; it is reported once and never retried
// automatically.
//
// The pending statuses double as a per-movie in-flight guard: a second toggle
// for the same movie is rejected while a request is outstanding, so rapid
// double-toggles cannot produce lost updates.
package favorites

import (
	"context"
	"fmt"
	"sync"

	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/services"
	"github.com/myflix/flix/internal/shared"
)

// Status is the favorite state of one movie from the viewpoint of the
// current user session.
type Status int

const (
	NotFavorite Status = iota
	Favorite
	PendingAdd
	PendingRemove
)

func (s Status) String() string {
	switch s {
	case NotFavorite:
		return "not favorite"
	case Favorite:
		return "favorite"
	case PendingAdd:
		return "adding"
	case PendingRemove:
		return "removing"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// UserSource supplies the username the favorites endpoints are scoped to.
// Implemented by the session store.
type UserSource interface {
	Username() string
}

// Sync tracks per-movie favorite status and issues add/remove requests.
// Safe for concurrent use: the TUI calls Toggle from command goroutines while
// the update loop reads IsFavorite.
type Sync struct {
	mu     sync.RWMutex
	svc    services.Service
	users  UserSource
	states map[string]Status // movie id -> status
	titles map[string]string // movie id -> title (favorites endpoints address by title)
}

// NewSync creates a synchronizer bound to the given API service and session.
func NewSync(svc services.Service, users UserSource) *Sync {
	return &Sync{
		svc:    svc,
		users:  users,
		states: make(map[string]Status),
		titles: make(map[string]string),
	}
}

// Seed populates per-movie state from the user profile's favorites id set.
// Movies in the set start as Favorite, all others as NotFavorite. No network
// calls are made. Pending operations survive a reseed untouched so an
// in-flight request cannot be double-issued.
func (s *Sync) Seed(user *models.User, movies []models.Movie) {
	favs := make(map[string]bool, len(user.Favorites))
	for _, id := range user.Favorites {
		favs[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, movie := range movies {
		s.titles[movie.ID] = movie.Title
		if cur, ok := s.states[movie.ID]; ok && (cur == PendingAdd || cur == PendingRemove) {
			continue
		}
		if favs[movie.ID] {
			s.states[movie.ID] = Favorite
		} else {
			s.states[movie.ID] = NotFavorite
		}
	}
}

// IsFavorite reports whether the movie id is favorited in the current
// view-state. O(1); never re-fetches. Pending adds count as favorited
// (the optimistic update is already applied); pending removes stay favorited
// until the server confirms.
func (s *Sync) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.states[id] {
	case Favorite, PendingAdd, PendingRemove:
		return true
	default:
		return false
	}
}

// Status returns the tracked status for a movie id. Untracked ids report
// NotFavorite.
func (s *Sync) Status(id string) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[id]
}

// Favorites returns the ids currently favorited in view-state.
func (s *Sync) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, st := range s.states {
		if st == Favorite || st == PendingAdd || st == PendingRemove {
			ids = append(ids, id)
		}
	}
	return ids
}

// Toggle flips the favorite state of one movie, issuing the matching server
// request. It returns the settled status. Errors are returned exactly once;
// the caller surfaces them as a transient notification and the operation is
// considered terminally failed until re-triggered.
func (s *Sync) Toggle(ctx context.Context, movie models.Movie) (Status, error) {
	username := s.users.Username()
	if username == "" {
		return s.Status(movie.ID), shared.ErrNotAuthenticated
	}

	s.mu.Lock()
	s.titles[movie.ID] = movie.Title

	switch s.states[movie.ID] {
	case PendingAdd, PendingRemove:
		st := s.states[movie.ID]
		s.mu.Unlock()
		return st, shared.ErrToggleInFlight

	case Favorite:
		// Remove commits only in the success path.
		s.states[movie.ID] = PendingRemove
		s.mu.Unlock()

		_, err := s.svc.RemoveFavorite(ctx, username, movie.Title)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.states[movie.ID] = Favorite
			return Favorite, err
		}
		s.states[movie.ID] = NotFavorite
		return NotFavorite, nil

	default:
		// Optimistic add: view-state flips immediately, rolled back on failure.
		s.states[movie.ID] = PendingAdd
		s.mu.Unlock()

		_, err := s.svc.AddFavorite(ctx, username, movie.Title)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.states[movie.ID] = NotFavorite
			return NotFavorite, err
		}
		s.states[movie.ID] = Favorite
		return Favorite, nil
	}
}
