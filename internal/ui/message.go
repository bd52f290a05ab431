package ui

import (
	"github.com/myflix/flix/internal/favorites"
	"github.com/myflix/flix/internal/models"
)

type loginResultMsg struct {
	result *models.LoginResult
	err    error
}

type registerResultMsg struct {
	user *models.User
	err  error
}

type moviesFetchedMsg struct {
	movies []models.Movie
	err    error
}

type genreFetchedMsg struct {
	genre *models.Genre
	err   error
}

type directorFetchedMsg struct {
	director *models.Director
	err      error
}

type profileFetchedMsg struct {
	user *models.User
	err  error
}

type favoriteToggledMsg struct {
	movieID string
	status  favorites.Status
	err     error
}

type profileUpdatedMsg struct {
	user *models.User
	err  error
}

type accountDeletedMsg struct {
	err error
}

// toastExpiredMsg dismisses the toast with the matching id. A stale id means a
// newer toast replaced this one and the dismissal is ignored.
type toastExpiredMsg struct {
	id int
}
