package models

import (
	"fmt"
	"time"
)

// CachedMovie is the persistent form of a catalog [Movie], stored in the local
// SQLite cache by `flix cache sync`.
type CachedMovie struct {
	id        string
	sequence  int
	movie     Movie
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewCachedMovie creates a cache entry for the given catalog movie.
// The row id is assigned by the repository on Create.
func NewCachedMovie(sequence int, movie Movie) *CachedMovie {
	now := time.Now()
	return &CachedMovie{
		sequence:  sequence,
		movie:     movie,
		createdAt: now,
		updatedAt: now,
	}
}

func (m *CachedMovie) ID() string           { return m.id }
func (m *CachedMovie) Sequence() int        { return m.sequence }
func (m *CachedMovie) Movie() Movie         { return m.movie }
func (m *CachedMovie) RemoteID() string     { return m.movie.ID }
func (m *CachedMovie) Title() string        { return m.movie.Title }
func (m *CachedMovie) CreatedAt() time.Time { return m.createdAt }
func (m *CachedMovie) UpdatedAt() time.Time { return m.updatedAt }
func (m *CachedMovie) DeletedAt() *time.Time {
	return m.deletedAt
}

func (m *CachedMovie) SetID(id string)           { m.id = id }
func (m *CachedMovie) SetSequence(seq int)       { m.sequence = seq }
func (m *CachedMovie) SetMovie(movie Movie)      { m.movie = movie }
func (m *CachedMovie) SetCreatedAt(t time.Time)  { m.createdAt = t }
func (m *CachedMovie) SetUpdatedAt(t time.Time)  { m.updatedAt = t }
func (m *CachedMovie) SetDeletedAt(t *time.Time) { m.deletedAt = t }

// Validate checks that the cache entry carries the minimum catalog data.
func (m *CachedMovie) Validate() error {
	if m.movie.ID == "" {
		return fmt.Errorf("cached movie missing remote id")
	}
	if m.movie.Title == "" {
		return fmt.Errorf("cached movie missing title")
	}
	return nil
}
