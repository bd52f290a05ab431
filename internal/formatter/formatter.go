// package formatter provides functions to export movie lists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/shared"
)

// synopsisWidth caps description length in Markdown and text exports.
const synopsisWidth = 120

// MovieExport bundles a movie list with a display title for export.
type MovieExport struct {
	Title  string         `json:"title"`
	Movies []models.Movie `json:"movies"`
}

// ExportToCSV converts a MovieExport to CSV format with columns: ID, Title, Director, Genre, Description
func ExportToCSV(export *MovieExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Director", "Genre", "Description"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range export.Movies {
		record := []string{
			movie.ID,
			movie.Title,
			movie.Director.Name,
			movie.Genre.Name,
			movie.Description,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a MovieExport to Markdown format
func ExportToMarkdown(export *MovieExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Title))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(export.Movies)))

	buf.WriteString("## Movies\n\n")
	for i, movie := range export.Movies {
		genrePart := ""
		if movie.Genre.Name != "" {
			genrePart = fmt.Sprintf(" (%s)", movie.Genre.Name)
		}
		buf.WriteString(fmt.Sprintf("%d. **%s**%s - %s\n", i+1, movie.Title, genrePart, movie.Director.Name))
		if movie.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", shared.Truncate(movie.Description, synopsisWidth)))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a MovieExport to plain text format
func ExportToText(export *MovieExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Catalog: %s\n", export.Title))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(export.Movies)))

	for i, movie := range export.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, movie.Title, movie.Director.Name))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of the export without descriptions
func ToMetadataJSON(export *MovieExport) ([]byte, error) {
	type entry struct {
		ID       string `json:"_id"`
		Title    string `json:"title"`
		Director string `json:"director"`
		Genre    string `json:"genre"`
	}
	meta := struct {
		Title  string  `json:"title"`
		Count  int     `json:"count"`
		Movies []entry `json:"movies"`
	}{Title: export.Title, Count: len(export.Movies)}
	for _, m := range export.Movies {
		meta.Movies = append(meta.Movies, entry{
			ID:       m.ID,
			Title:    m.Title,
			Director: m.Director.Name,
			Genre:    m.Genre.Name,
		})
	}
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	MoviesFile   string
	MetadataFile string
}

// WriteCSVExport exports a movie list to CSV format with accompanying metadata JSON file.
//
// Defaults to "movies" as the base filename & creates {base}_movies.csv and {base}_metadata.json
func WriteCSVExport(export *MovieExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "movies"
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	moviesFile := baseFilepath + "_movies.csv"
	if err := os.WriteFile(moviesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		MoviesFile:   moviesFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports a movie list to Markdown format.
//
// Defaults to movies.md as the filename.
func WriteMarkdownExport(export *MovieExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = "movies.md"
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports a movie list to plain text format.
//
// Defaults to movies.txt as the filename.
func WriteTextExport(export *MovieExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = "movies.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
