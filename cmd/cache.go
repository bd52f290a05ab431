package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/myflix/flix/internal/repositories"
	"github.com/myflix/flix/internal/shared"
	"github.com/myflix/flix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// openCache opens the local movie cache database and ensures migrations ran.
func (r *Runner) openCache() (*sql.DB, error) {
	dbPath, err := shared.ExpandPath(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// CacheSync pulls the full catalog into the local cache.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	db, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewMovieRepository(db)
	engine := tasks.NewLibrarySync(r.svc, repo, cmd.Float64("rate"))

	r.logger.Info("starting catalog sync")
	r.writePlain("Syncing catalog to local cache...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchCatalog:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.CacheMovies:
				r.writePlain("   %s\n", update.Message)
			case tasks.Prune:
				r.writePlain("🧹 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete")
	r.writePlain("Catalog: %d movies\n", result.TotalMovies)
	r.writePlain("Cached: %d\n", result.CachedCount)
	r.writePlain("Pruned: %d\n", result.PrunedCount)

	if result.FailedCount > 0 {
		r.writePlain("\nFailed to cache %d movies:\n", result.FailedCount)
		for _, title := range result.FailedTitles {
			r.writePlain("  - %s\n", title)
		}
	}

	return nil
}

// CacheList prints the locally cached catalog without touching the network.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewMovieRepository(db)

	criteria := map[string]any{}
	if genre := cmd.String("genre"); genre != "" {
		criteria["genre"] = genre
	}
	if title := cmd.String("title"); title != "" {
		criteria["title"] = title
	}

	cached, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		movies := make([]any, 0, len(cached))
		for _, m := range cached {
			movies = append(movies, m.Movie())
		}
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	if len(cached) == 0 {
		return r.writePlain("Cache is empty. Run 'flix cache sync' first.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Cached Catalog (%d movies)", len(cached)))
	for i, m := range cached {
		movie := m.Movie()
		r.writePlain("%d. %s - %s", i+1, movie.Title, movie.Director.Name)
		if movie.Genre.Name != "" {
			r.writePlain(" (%s)", movie.Genre.Name)
		}
		r.writePlain("\n")
	}
	return nil
}

// cacheCommand handles the local movie cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Sync and browse the local movie cache",
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "Pull the full catalog into the local cache",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "rate",
						Usage: "Maximum cache writes per second (0 disables limiting)",
						Value: 50,
					},
				},
				Action: r.CacheSync,
			},
			{
				Name:  "list",
				Usage: "List cached movies without network access",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Filter by genre name",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Filter by exact title",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.CacheList,
			},
		},
	}
}
