// package models defines the data model for the flix catalog client
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the flix client.
// Implementations include CachedMovie.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Genre describes a movie's genre as returned by the catalog.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Director describes a movie's director as returned by the catalog.
type Director struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Movie represents a catalog entry. Read-only from the client's perspective.
type Movie struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       Genre    `json:"genre"`
	Director    Director `json:"director"`
}

// User represents the logged-in user's profile.
// Favorites holds movie ids, not titles.
type User struct {
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Birthday  string   `json:"birthday"`
	Favorites []string `json:"favorites"`
}

// Registration carries the fields submitted to POST /users.
type Registration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	Birthday  string `json:"birthday,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// ProfileEdit carries the editable profile fields submitted to PUT /users/{username}.
// The server replaces all editable fields with this payload.
type ProfileEdit struct {
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Email     string `json:"email"`
	Birthday  string `json:"birthday,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// LoginResult represents the response of POST /login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
