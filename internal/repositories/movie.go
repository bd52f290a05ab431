package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/shared"
)

// MovieRepository implements [models.Repository] for [models.CachedMovie] persistence.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new [MovieRepository] with the given database connection
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts a new cached movie into the database with generated ID and sequence
func (r *MovieRepository) Create(movie *models.CachedMovie) error {
	sequence, err := NextSequence(r.db, "movies")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	movie.SetID(id)
	movie.SetSequence(sequence)

	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	m := movie.Movie()
	query := `
		INSERT INTO movies (
			id, sequence, remote_id, title, description,
			genre_name, genre_description, director_name, director_bio,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		m.ID,
		m.Title,
		m.Description,
		m.Genre.Name,
		m.Genre.Description,
		m.Director.Name,
		m.Director.Bio,
		movie.CreatedAt(),
		movie.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	return nil
}

// Get retrieves a cached movie by ID, excluding soft-deleted rows
func (r *MovieRepository) Get(id string) (*models.CachedMovie, error) {
	query := `
		SELECT id, sequence, remote_id, title, description,
			genre_name, genre_description, director_name, director_bio,
			created_at, updated_at, deleted_at
		FROM movies
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a cached movie by its catalog id
func (r *MovieRepository) GetByRemoteID(remoteID string) (*models.CachedMovie, error) {
	query := `
		SELECT id, sequence, remote_id, title, description,
			genre_name, genre_description, director_name, director_bio,
			created_at, updated_at, deleted_at
		FROM movies
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing cached movie in the database
func (r *MovieRepository) Update(movie *models.CachedMovie) error {
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	movie.SetUpdatedAt(now)

	m := movie.Movie()
	query := `
		UPDATE movies
		SET title = ?, description = ?, genre_name = ?, genre_description = ?,
			director_name = ?, director_bio = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		m.Title,
		m.Description,
		m.Genre.Name,
		m.Genre.Description,
		m.Director.Name,
		m.Director.Bio,
		now,
		movie.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("movie not found or already deleted: %s", movie.ID())
	}

	return nil
}

// Delete soft-deletes a cached movie by ID
func (r *MovieRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE movies
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("movie not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all cached movies matching the given criteria, excluding soft-deleted rows
func (r *MovieRepository) List(criteria map[string]any) ([]*models.CachedMovie, error) {
	query := `
		SELECT id, sequence, remote_id, title, description,
			genre_name, genre_description, director_name, director_bio,
			created_at, updated_at, deleted_at
		FROM movies
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if title, ok := criteria["title"].(string); ok && title != "" {
		query += " AND title = ?"
		args = append(args, title)
	}

	if genre, ok := criteria["genre"].(string); ok && genre != "" {
		query += " AND genre_name = ?"
		args = append(args, genre)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var movies []*models.CachedMovie
	for rows.Next() {
		movie, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// Upsert caches a catalog movie, inserting a new row or refreshing the
// existing one keyed by remote id. Used by the library sync task.
func (r *MovieRepository) Upsert(movie models.Movie) error {
	existing, err := r.GetByRemoteID(movie.ID)
	if err != nil {
		cached := models.NewCachedMovie(0, movie)
		return r.Create(cached)
	}

	existing.SetMovie(movie)
	return r.Update(existing)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *MovieRepository) scanOne(row rowScanner) (*models.CachedMovie, error) {
	var (
		id          string
		sequence    int
		remoteID    string
		title       string
		description string
		genreName   string
		genreDesc   string
		direcName   string
		direcBio    string
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &remoteID, &title, &description,
		&genreName, &genreDesc, &direcName, &direcBio,
		&createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	movie := models.NewCachedMovie(sequence, models.Movie{
		ID:          remoteID,
		Title:       title,
		Description: description,
		Genre:       models.Genre{Name: genreName, Description: genreDesc},
		Director:    models.Director{Name: direcName, Bio: direcBio},
	})
	movie.SetID(id)
	movie.SetCreatedAt(createdAt)
	movie.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		movie.SetDeletedAt(&deletedAt.Time)
	}

	return movie, nil
}

func (r *MovieRepository) scanRow(rows *sql.Rows) (*models.CachedMovie, error) {
	return r.scanOne(rows)
}
