// Copyright Younes Elhjouji, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YounesElhjouji/language-period-analysis/internal/index"
	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the searchable book index (build, query, export, list)",
	Long: `Index manages a local SQLite index of extracted books, split into
passages with FTS5 full-text search. Use subcommands to build the index
from the processed directory, query passages, list indexed books, or
export.`,
}

// --- build subcommand ---

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Index extracted books into the passage database",
	Long: `Build reads the aggregated metadata and per-book texts from the
processed directory, splits each book into passages, and indexes them
with FTS5. Books whose text is unchanged since the last build are
skipped.`,
	RunE: runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	cfg, processedDir := indexConfig(cmd)

	store, err := index.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Build(context.Background(), processedDir, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d book(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- query subcommand ---

var indexQueryCmd = &cobra.Command{
	Use:   "query [terms]",
	Short: "Search indexed passages with full-text search and filters",
	Long: `Query searches book passages using FTS5 full-text search, structured
filters (author, section, book, death-year cutoff), or a combination of
both. Results include the book title, author, and passage section.`,
	RunE: runIndexQuery,
}

func runIndexQuery(cmd *cobra.Command, args []string) error {
	cfg, _ := indexConfig(cmd)

	store, err := index.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --author, --section, --book, or --max-death-year")
	}

	results, err := store.Query(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []index.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-25s  %-20s  %-15s  %s\n",
		"Rank", "Book", "Author", "Section", "Passage")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-25s  %-20s  %-15s  %s\n",
			i+1, truncate(r.BookTitle, 25), truncate(r.BookAuthor, 20),
			truncate(r.Section, 15), truncate(r.Content, 40))
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// truncate shortens s to max runes with an ellipsis. Arabic titles are
// multi-byte, so this counts runes rather than bytes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// --- list subcommand ---

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed books with passage counts",
	RunE:  runIndexList,
}

func runIndexList(cmd *cobra.Command, args []string) error {
	cfg, _ := indexConfig(cmd)

	store, err := index.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	books, err := store.ListBooks(context.Background())
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Println("No books indexed.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-25s  %-10s  %-15s  %s\n",
		"Book", "Author", "Died", "Section", "Passages")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 95))
	for _, b := range books {
		fmt.Fprintf(os.Stdout, "%-30s  %-25s  %-10s  %-15s  %d\n",
			truncate(b.Title, 30), truncate(b.Author, 25),
			b.DeathYear, truncate(b.Section, 15), b.Passages)
	}
	fmt.Fprintf(os.Stdout, "\n%d books\n", len(books))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export indexed passages to YAML or JSON",
	Long: `Export writes the full passage index (or a filtered subset) to
export.yaml or export.json in the index directory. Supports the same
filter flags as query for partial exports.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, _ := indexConfig(cmd)
	store, err := index.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.yaml\n", cfg.IndexDir)
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.json\n", cfg.IndexDir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func indexConfig(cmd *cobra.Command) (types.IndexConfig, string) {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = "data/index"
	}
	processedDir, _ := cmd.Flags().GetString("processed-dir")
	if processedDir == "" {
		processedDir = "data/processed"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := types.IndexConfig{
		IndexDir:   indexDir,
		MaxResults: maxResults,
	}
	return cfg, processedDir
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) index.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	author, _ := cmd.Flags().GetString("author")
	section, _ := cmd.Flags().GetString("section")
	bookID, _ := cmd.Flags().GetString("book")
	maxDeathYear, _ := cmd.Flags().GetInt("max-death-year")
	limit, _ := cmd.Flags().GetInt("limit")

	return index.QueryOptions{
		Query:        queryText,
		Author:       author,
		Section:      section,
		BookID:       bookID,
		MaxDeathYear: maxDeathYear,
		MaxResults:   limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("index-dir", "data/index", "directory for the SQLite database and exports")
	indexCmd.PersistentFlags().String("processed-dir", "data/processed", "directory holding extracted texts and metadata.json")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Query flags.
	indexQueryCmd.Flags().String("query", "", "full-text search query")
	indexQueryCmd.Flags().String("author", "", "filter by author substring")
	indexQueryCmd.Flags().String("section", "", "filter by library section")
	indexQueryCmd.Flags().String("book", "", "filter by book ID")
	indexQueryCmd.Flags().Int("max-death-year", 0, "only passages of authors who died before this Hijri year")
	indexQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	indexExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	indexExportCmd.Flags().String("author", "", "filter by author substring for partial export")
	indexExportCmd.Flags().String("section", "", "filter by library section for partial export")
	indexExportCmd.Flags().String("book", "", "filter by book ID for partial export")
	indexExportCmd.Flags().Int("max-death-year", 0, "only authors who died before this Hijri year")
	indexExportCmd.Flags().Int("limit", 0, "maximum passages to export (0 = all)")

	// Wire subcommands.
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexQueryCmd)
	indexCmd.AddCommand(indexListCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
