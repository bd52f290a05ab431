// package tasks implements the local catalog cache sync.
//
// The core abstraction is SyncEngine, which pulls the full movie catalog from
// the remote service and reconciles the local cache against it. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/services"
	"github.com/myflix/flix/internal/shared"
	"golang.org/x/time/rate"
)

// SyncResult contains all data from a full catalog sync operation.
type SyncResult struct {
	TotalMovies  int      // Movies returned by the catalog endpoint
	CachedCount  int      // Movies written to the cache
	FailedCount  int      // Movies that failed to cache
	PrunedCount  int      // Cached movies no longer in the catalog
	FailedTitles []string // Titles of movies that failed to cache
}

// MovieCacher defines the cache writes the sync performs.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type MovieCacher interface {
	Upsert(movie models.Movie) error
	List(criteria map[string]any) ([]*models.CachedMovie, error)
	Delete(id string) error
}

// SyncEngine defines operations for syncing the movie catalog into the local cache.
type SyncEngine interface {
	// Run performs a full catalog sync by fetching every movie and upserting it
	// into the cache, then pruning entries the catalog no longer contains.
	Run(ctx context.Context, progress chan<- ProgressUpdate) (*SyncResult, error)
}

// LibrarySync implements SyncEngine against the MyFlix catalog service.
type LibrarySync struct {
	svc     services.Service
	cache   MovieCacher
	limiter *rate.Limiter
}

// NewLibrarySync creates a LibrarySync writing at most writesPerSecond cache
// writes per second. A non-positive rate disables limiting.
func NewLibrarySync(svc services.Service, cache MovieCacher, writesPerSecond float64) *LibrarySync {
	var limiter *rate.Limiter
	if writesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(writesPerSecond), 1)
	}
	return &LibrarySync{
		svc:     svc,
		cache:   cache,
		limiter: limiter,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LibrarySync) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run performs a full catalog sync.
func (e *LibrarySync) Run(ctx context.Context, progress chan<- ProgressUpdate) (*SyncResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if e.cache == nil {
		return nil, fmt.Errorf("%w: movie cache not initialized", shared.ErrServiceUnavailable)
	}

	result := &SyncResult{}

	e.sendProgress(progress, fetchCatalogUpdate(1, 1))

	movies, err := e.svc.Movies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	total := len(movies)
	result.TotalMovies = total
	e.sendProgress(progress, catalogFetchedUpdate(1, 1, total))

	seen := make(map[string]bool, total)
	for i, movie := range movies {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return result, err
			}
		}

		seen[movie.ID] = true
		if err := e.cache.Upsert(movie); err != nil {
			result.FailedCount++
			result.FailedTitles = append(result.FailedTitles, movie.Title)
			e.sendProgress(progress, cacheFailedUpdate(i+1, total, movie.Title, err))
			continue
		}

		result.CachedCount++
		e.sendProgress(progress, cacheMovieUpdate(i+1, total, movie.Title))
	}

	pruned, err := e.prune(seen)
	if err != nil {
		return result, fmt.Errorf("failed to prune cache: %w", err)
	}
	result.PrunedCount = pruned
	e.sendProgress(progress, pruneUpdate(1, 1, pruned))

	return result, nil
}

// prune soft-deletes cached movies absent from the latest catalog fetch.
func (e *LibrarySync) prune(seen map[string]bool) (int, error) {
	cached, err := e.cache.List(nil)
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, m := range cached {
		if seen[m.RemoteID()] {
			continue
		}
		if err := e.cache.Delete(m.ID()); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}
