package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	CacheMovies
	Prune
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case CacheMovies:
		return "cache_movies"
	case Prune:
		return "prune"
	default:
		return ""
	}
}

func fetchCatalogUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    step,
		Total:   total,
		Message: "Fetching movie catalog...",
	}
}

func catalogFetchedUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Catalog fetched (%d movies)", count),
	}
}

func cacheMovieUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, title),
	}
}

func cacheFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}

func pruneUpdate(step, total, pruned int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Prune,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Pruned %d stale entries", pruned),
	}
}
