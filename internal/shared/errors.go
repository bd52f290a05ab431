package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session and authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrNoSession        = fmt.Errorf("no active session")
	ErrSessionCorrupt   = fmt.Errorf("session file corrupt")

	// API and catalog errors
	ErrAPIRequest         = fmt.Errorf("something bad happened; please try again later")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMovieNotFound      = fmt.Errorf("movie not found")
	ErrUserNotFound       = fmt.Errorf("user not found")

	// Favorites errors
	ErrToggleInFlight = fmt.Errorf("favorite toggle already in flight")
	ErrUnknownMovie   = fmt.Errorf("movie not tracked by synchronizer")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
