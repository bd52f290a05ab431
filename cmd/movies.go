package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/myflix/flix/internal/formatter"
	"github.com/myflix/flix/internal/shared"
	"github.com/urfave/cli/v3"
)

// MoviesList prints the full catalog.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	genre := cmd.String("genre")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("fetching catalog")

	movies, err := r.svc.Movies(ctx)
	if err != nil {
		return err
	}

	if genre != "" {
		filtered := movies[:0]
		for _, movie := range movies {
			if strings.EqualFold(movie.Genre.Name, genre) {
				filtered = append(filtered, movie)
			}
		}
		movies = filtered
	}

	if useJSON {
		return r.writeJSON(movies, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Catalog (%d movies)", len(movies)))
	for i, movie := range movies {
		r.writePlain("%d. %s - %s", i+1, movie.Title, movie.Director.Name)
		if movie.Genre.Name != "" {
			r.writePlain(" (%s)", movie.Genre.Name)
		}
		r.writePlain("\n")
	}

	return nil
}

// MoviesGet prints a single movie with its synopsis.
func (r *Runner) MoviesGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: movie title is required", shared.ErrMissingArgument)
	}

	r.logger.Info("fetching movie", "title", title)

	movie, err := r.svc.Movie(ctx, title)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, cmd.Bool("pretty"))
	}

	r.writePlainHeader(movie.Title)
	r.writePlain("Director: %s\n", movie.Director.Name)
	r.writePlain("Genre: %s\n", movie.Genre.Name)
	return r.writePlainln("%s", movie.Description)
}

// MoviesDirector prints a director's details.
func (r *Runner) MoviesDirector(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: director name is required", shared.ErrMissingArgument)
	}

	r.logger.Info("fetching director", "name", name)

	director, err := r.svc.Director(ctx, name)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(director, cmd.Bool("pretty"))
	}

	r.writePlainHeader(director.Name)
	return r.writePlainln("%s", director.Bio)
}

// MoviesGenre prints genre information.
func (r *Runner) MoviesGenre(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: genre name is required", shared.ErrMissingArgument)
	}

	r.logger.Info("fetching genre", "name", name)

	genre, err := r.svc.Genre(ctx, name)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(genre, cmd.Bool("pretty"))
	}

	r.writePlainHeader(genre.Name)
	return r.writePlainln("%s", genre.Description)
}

// MoviesExport writes the catalog to a file in the chosen format.
func (r *Runner) MoviesExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	format := cmd.String("format")
	output := cmd.String("output")

	r.logger.Info("exporting catalog", "format", format)

	movies, err := r.svc.Movies(ctx)
	if err != nil {
		return err
	}

	export := &formatter.MovieExport{Title: "MyFlix Catalog", Movies: movies}

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d movies\n", len(movies))
		r.writePlain("  %s\n", result.MoviesFile)
		return r.writePlain("  %s\n", result.MetadataFile)
	case "md", "markdown":
		file, err := formatter.WriteMarkdownExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported %d movies to %s\n", len(movies), file)
	case "txt", "text":
		file, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported %d movies to %s\n", len(movies), file)
	default:
		return fmt.Errorf("%w: unknown format '%s' (must be csv, md or txt)", shared.ErrInvalidArgument, format)
	}
}

// moviesCommand handles catalog operations
func moviesCommand(r *Runner) *cli.Command {
	jsonFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}

	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all movies in the catalog",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Only show movies in this genre",
					},
				}, jsonFlags...),
				Action: r.MoviesList,
			},
			{
				Name:  "get",
				Usage: "Show a single movie with synopsis",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
				},
				Flags:  jsonFlags,
				Action: r.MoviesGet,
			},
			{
				Name:  "director",
				Usage: "Show a director's bio",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags:  jsonFlags,
				Action: r.MoviesDirector,
			},
			{
				Name:  "genre",
				Usage: "Show genre information",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags:  jsonFlags,
				Action: r.MoviesGenre,
			},
			{
				Name:  "export",
				Usage: "Export the catalog to CSV, Markdown or plain text",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, md, txt)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.MoviesExport,
			},
		},
	}
}
