package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/shared"
	tu "github.com/myflix/flix/internal/testing"
)

// fakeCache is an in-memory MovieCacher keyed by remote id.
type fakeCache struct {
	movies    map[string]*models.CachedMovie
	failTitle string
}

func newFakeCache() *fakeCache {
	return &fakeCache{movies: make(map[string]*models.CachedMovie)}
}

func (c *fakeCache) seed(movie models.Movie) {
	cached := models.NewCachedMovie(len(c.movies)+1, movie)
	cached.SetID("local-" + movie.ID)
	c.movies[movie.ID] = cached
}

func (c *fakeCache) Upsert(movie models.Movie) error {
	if movie.Title == c.failTitle {
		return errors.New("disk full")
	}
	c.seed(movie)
	return nil
}

func (c *fakeCache) List(criteria map[string]any) ([]*models.CachedMovie, error) {
	var out []*models.CachedMovie
	for _, m := range c.movies {
		out = append(out, m)
	}
	return out, nil
}

func (c *fakeCache) Delete(id string) error {
	for remoteID, m := range c.movies {
		if m.ID() == id {
			delete(c.movies, remoteID)
			return nil
		}
	}
	return fmt.Errorf("not cached: %s", id)
}

func catalog(titles ...string) []models.Movie {
	movies := make([]models.Movie, len(titles))
	for i, title := range titles {
		movies[i] = models.Movie{
			ID:    fmt.Sprintf("m%d", i+1),
			Title: title,
		}
	}
	return movies
}

func TestLibrarySync(t *testing.T) {
	ctx := context.Background()

	t.Run("caches every catalog movie", func(t *testing.T) {
		svc := &tu.MockService{
			MoviesFunc: func(ctx context.Context) ([]models.Movie, error) {
				return catalog("Alien", "Heat", "Ran"), nil
			},
		}
		cache := newFakeCache()

		sync := NewLibrarySync(svc, cache, 0)
		result, err := sync.Run(ctx, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.TotalMovies != 3 {
			t.Errorf("expected 3 total movies, got %d", result.TotalMovies)
		}
		if result.CachedCount != 3 {
			t.Errorf("expected 3 cached, got %d", result.CachedCount)
		}
		if result.FailedCount != 0 {
			t.Errorf("expected 0 failures, got %d", result.FailedCount)
		}
		if len(cache.movies) != 3 {
			t.Errorf("expected 3 cache entries, got %d", len(cache.movies))
		}
	})

	t.Run("records failed writes and continues", func(t *testing.T) {
		svc := &tu.MockService{
			MoviesFunc: func(ctx context.Context) ([]models.Movie, error) {
				return catalog("Alien", "Heat", "Ran"), nil
			},
		}
		cache := newFakeCache()
		cache.failTitle = "Heat"

		sync := NewLibrarySync(svc, cache, 0)
		result, err := sync.Run(ctx, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.CachedCount != 2 {
			t.Errorf("expected 2 cached, got %d", result.CachedCount)
		}
		if result.FailedCount != 1 {
			t.Errorf("expected 1 failure, got %d", result.FailedCount)
		}
		if len(result.FailedTitles) != 1 || result.FailedTitles[0] != "Heat" {
			t.Errorf("expected failed title 'Heat', got %v", result.FailedTitles)
		}
	})

	t.Run("prunes movies dropped from the catalog", func(t *testing.T) {
		svc := &tu.MockService{
			MoviesFunc: func(ctx context.Context) ([]models.Movie, error) {
				return catalog("Alien"), nil
			},
		}
		cache := newFakeCache()
		cache.seed(models.Movie{ID: "m1", Title: "Alien"})
		cache.seed(models.Movie{ID: "stale", Title: "Withdrawn"})

		sync := NewLibrarySync(svc, cache, 0)
		result, err := sync.Run(ctx, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.PrunedCount != 1 {
			t.Errorf("expected 1 pruned, got %d", result.PrunedCount)
		}
		if _, ok := cache.movies["stale"]; ok {
			t.Error("expected the stale entry to be removed")
		}
		if _, ok := cache.movies["m1"]; !ok {
			t.Error("expected the current entry to remain")
		}
	})

	t.Run("catalog fetch failure aborts the sync", func(t *testing.T) {
		svc := &tu.MockService{
			MoviesFunc: func(ctx context.Context) ([]models.Movie, error) {
				return nil, shared.ErrAPIRequest
			},
		}

		sync := NewLibrarySync(svc, newFakeCache(), 0)
		if _, err := sync.Run(ctx, nil); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("missing dependencies", func(t *testing.T) {
		sync := NewLibrarySync(nil, newFakeCache(), 0)
		if _, err := sync.Run(ctx, nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}

		sync = NewLibrarySync(&tu.MockService{}, nil, 0)
		if _, err := sync.Run(ctx, nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("emits progress updates", func(t *testing.T) {
		svc := &tu.MockService{
			MoviesFunc: func(ctx context.Context) ([]models.Movie, error) {
				return catalog("Alien", "Heat"), nil
			},
		}

		progress := make(chan ProgressUpdate, 16)
		sync := NewLibrarySync(svc, newFakeCache(), 0)
		if _, err := sync.Run(ctx, progress); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(progress)

		phases := make(map[Phase]int)
		for update := range progress {
			phases[update.Phase]++
		}

		if phases[FetchCatalog] == 0 {
			t.Error("expected fetch catalog updates")
		}
		if phases[CacheMovies] != 2 {
			t.Errorf("expected 2 cache updates, got %d", phases[CacheMovies])
		}
		if phases[Prune] != 1 {
			t.Errorf("expected 1 prune update, got %d", phases[Prune])
		}
	})

	t.Run("full progress channel never blocks", func(t *testing.T) {
		svc := &tu.MockService{
			MoviesFunc: func(ctx context.Context) ([]models.Movie, error) {
				return catalog("Alien", "Heat", "Ran"), nil
			},
		}

		// Unbuffered channel with no reader: every send hits the default case.
		progress := make(chan ProgressUpdate)
		sync := NewLibrarySync(svc, newFakeCache(), 0)
		result, err := sync.Run(ctx, progress)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.CachedCount != 3 {
			t.Errorf("expected 3 cached, got %d", result.CachedCount)
		}
	})

	t.Run("respects context cancellation while rate limited", func(t *testing.T) {
		svc := &tu.MockService{
			MoviesFunc: func(ctx context.Context) ([]models.Movie, error) {
				return catalog("Alien", "Heat", "Ran"), nil
			},
		}

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		sync := NewLibrarySync(svc, newFakeCache(), 0.001)
		if _, err := sync.Run(cancelled, nil); err == nil {
			t.Error("expected an error from the cancelled context")
		}
	})
}
