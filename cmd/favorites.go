package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/myflix/flix/internal/favorites"
	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/shared"
	"github.com/urfave/cli/v3"
)

// seedFavorites loads the profile and catalog so favorite ids resolve to titles.
func (r *Runner) seedFavorites(ctx context.Context) ([]models.Movie, *models.User, error) {
	user, err := r.svc.User(ctx, r.session.Username())
	if err != nil {
		return nil, nil, err
	}

	movies, err := r.svc.Movies(ctx)
	if err != nil {
		return nil, nil, err
	}

	r.favs.Seed(user, movies)
	return movies, user, nil
}

// FavoritesList prints the user's favorite movies.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	r.logger.Info("listing favorites", "username", r.session.Username())

	movies, _, err := r.seedFavorites(ctx)
	if err != nil {
		return err
	}

	var favored []models.Movie
	for _, movie := range movies {
		if r.favs.IsFavorite(movie.ID) {
			favored = append(favored, movie)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(favored, cmd.Bool("pretty"))
	}

	if len(favored) == 0 {
		return r.writePlain("No favorite movies yet.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(favored)))
	for i, movie := range favored {
		r.writePlain("%d. ★ %s - %s\n", i+1, movie.Title, movie.Director.Name)
	}
	return nil
}

// findMovie resolves a title against the catalog, case-insensitively.
func findMovie(movies []models.Movie, title string) (*models.Movie, error) {
	for i := range movies {
		if strings.EqualFold(movies[i].Title, title) {
			return &movies[i], nil
		}
	}
	return nil, fmt.Errorf("%w: '%s' is not in the catalog", shared.ErrUnknownMovie, title)
}

// FavoritesToggle flips the favorite state of one movie.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: movie title is required", shared.ErrMissingArgument)
	}

	movies, _, err := r.seedFavorites(ctx)
	if err != nil {
		return err
	}

	movie, err := findMovie(movies, title)
	if err != nil {
		return err
	}

	r.logger.Info("toggling favorite", "title", movie.Title)

	status, err := r.favs.Toggle(ctx, *movie)
	if err != nil {
		return err
	}

	if status == favorites.Favorite {
		return r.writePlain("✓ Added to favorites: %s\n", movie.Title)
	}
	return r.writePlain("✓ Removed from favorites: %s\n", movie.Title)
}

// FavoritesAdd adds a movie to favorites. Adding a movie that is already a
// favorite is reported, not retried.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: movie title is required", shared.ErrMissingArgument)
	}

	movies, _, err := r.seedFavorites(ctx)
	if err != nil {
		return err
	}

	movie, err := findMovie(movies, title)
	if err != nil {
		return err
	}

	if r.favs.IsFavorite(movie.ID) {
		return r.writePlain("Already a favorite: %s\n", movie.Title)
	}

	if _, err := r.favs.Toggle(ctx, *movie); err != nil {
		return err
	}
	return r.writePlain("✓ Added to favorites: %s\n", movie.Title)
}

// FavoritesRemove removes a movie from favorites.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: movie title is required", shared.ErrMissingArgument)
	}

	movies, _, err := r.seedFavorites(ctx)
	if err != nil {
		return err
	}

	movie, err := findMovie(movies, title)
	if err != nil {
		return err
	}

	if !r.favs.IsFavorite(movie.ID) {
		return r.writePlain("Not a favorite: %s\n", movie.Title)
	}

	if _, err := r.favs.Toggle(ctx, *movie); err != nil {
		return err
	}
	return r.writePlain("✓ Removed from favorites: %s\n", movie.Title)
}

// favoritesCommand handles favorites operations
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorite movies",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List favorite movies",
				Flags: []cli.Flag{
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
				Action: r.FavoritesList,
			},
			{
				Name:  "add",
				Usage: "Add a movie to favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
				},
				Action: r.FavoritesAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a movie from favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
				},
				Action: r.FavoritesRemove,
			},
			{
				Name:  "toggle",
				Usage: "Toggle a movie's favorite state",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
				},
				Action: r.FavoritesToggle,
			},
		},
	}
}
