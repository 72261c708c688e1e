// Copyright Younes Elhjouji, 2026. All rights reserved.

// Package corpus assembles a period corpus from processed books. Books are
// selected by the author's death year so that each corpus holds texts from
// a single historical period, then copied into a flat directory readable
// by plain-text corpus tools.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

// DefaultMaxDeathYear is the exclusive Hijri cutoff separating the
// pre-colonial period: 1214 AH marks the French landing in Egypt.
const DefaultMaxDeathYear = 1214

// unsafeNameRe matches characters stripped from book names when building
// corpus file names.
var unsafeNameRe = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)

// Info describes an assembled corpus. It is written as
// corpus_metadata.json (and .yaml) in the corpus directory.
type Info struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Books       int         `json:"books" yaml:"books"`
	BookList    []BookEntry `json:"book_list" yaml:"book_list"`
}

// BookEntry is the per-book record in the corpus metadata.
type BookEntry struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Author    string `json:"author" yaml:"author"`
	DeathYear string `json:"death_year" yaml:"death_year"`
	Section   string `json:"section" yaml:"section"`
	Length    int    `json:"length" yaml:"length"`
}

// Builder assembles a corpus from a processed directory.
type Builder struct {
	processedDir string
	outputDir    string
	maxDeathYear int
}

// NewBuilder returns a Builder. A maxDeathYear of zero uses the default
// cutoff.
func NewBuilder(processedDir, outputDir string, maxDeathYear int) *Builder {
	if maxDeathYear <= 0 {
		maxDeathYear = DefaultMaxDeathYear
	}
	return &Builder{
		processedDir: processedDir,
		outputDir:    outputDir,
		maxDeathYear: maxDeathYear,
	}
}

// Select returns the books from meta whose author death year parses as an
// integer strictly below the cutoff, sorted by death year then title for
// stable output. Books with missing or unparseable years are excluded with
// a warning.
func (b *Builder) Select(meta types.Metadata, w io.Writer) []*types.Book {
	var selected []*types.Book
	for id, book := range meta {
		if book.AuthorDeathYear == "" {
			continue
		}
		year, err := strconv.Atoi(book.AuthorDeathYear)
		if err != nil {
			fmt.Fprintf(w, "  warning: invalid death year %q for book %s\n", book.AuthorDeathYear, id)
			continue
		}
		if year < b.maxDeathYear {
			selected = append(selected, book)
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		yi, _ := strconv.Atoi(selected[i].AuthorDeathYear)
		yj, _ := strconv.Atoi(selected[j].AuthorDeathYear)
		if yi != yj {
			return yi < yj
		}
		if selected[i].Name != selected[j].Name {
			return selected[i].Name < selected[j].Name
		}
		return selected[i].ID < selected[j].ID
	})
	return selected
}

// Build selects books from meta and copies their texts into the output
// directory, writing the README and corpus metadata files. Books whose
// text file is missing are skipped with a warning.
func (b *Builder) Build(meta types.Metadata, w io.Writer) (Info, error) {
	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return Info{}, fmt.Errorf("creating corpus directory: %w", err)
	}

	selected := b.Select(meta, w)

	info := Info{
		Name: "Shamela Classical Arabic Corpus",
		Description: fmt.Sprintf(
			"Arabic texts from Shamela books with author death year before %d Hijri", b.maxDeathYear),
	}

	for _, book := range selected {
		textPath := book.TextPath
		if textPath == "" {
			textPath = filepath.Join(b.processedDir, book.ID+".txt")
		}

		content, err := os.ReadFile(textPath)
		if err != nil {
			fmt.Fprintf(w, "  warning: skipping %q: %v\n", book.Name, err)
			continue
		}

		target := filepath.Join(b.outputDir, CorpusFileName(book))
		if err := os.WriteFile(target, content, 0o644); err != nil {
			return Info{}, fmt.Errorf("writing %s: %w", target, err)
		}

		info.BookList = append(info.BookList, BookEntry{
			ID:        book.ID,
			Title:     book.Name,
			Author:    book.Author,
			DeathYear: book.AuthorDeathYear,
			Section:   book.Section,
			Length:    book.ContentLength,
		})
		fmt.Fprintf(w, "added: %s (d. %s)\n", book.Name, book.AuthorDeathYear)
	}

	info.Books = len(info.BookList)

	if err := b.writeReadme(info); err != nil {
		return Info{}, err
	}
	if err := b.writeMetadata(info); err != nil {
		return Info{}, err
	}

	fmt.Fprintf(w, "\nCorpus assembled: %d books in %s\n", info.Books, b.outputDir)
	return info, nil
}

// CorpusFileName builds the corpus file name for a book: the sanitized
// title joined with the book ID, so that same-titled books cannot collide.
func CorpusFileName(book *types.Book) string {
	name := unsafeNameRe.ReplaceAllString(book.Name, "")
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		name = "book"
	}
	return name + "_" + book.ID + ".txt"
}

func (b *Builder) writeReadme(info Info) error {
	var sb strings.Builder
	sb.WriteString("Shamela Corpus\n")
	sb.WriteString("==============\n\n")
	sb.WriteString(info.Description + ".\n\n")
	sb.WriteString("Book List:\n")
	for _, entry := range info.BookList {
		fmt.Fprintf(&sb, "- %s by %s (d. %s)\n", entry.Title, entry.Author, entry.DeathYear)
	}

	path := filepath.Join(b.outputDir, "README")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}
	return nil
}

func (b *Builder) writeMetadata(info Info) error {
	jsonData, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling corpus metadata: %w", err)
	}
	jsonPath := filepath.Join(b.outputDir, "corpus_metadata.json")
	if err := os.WriteFile(jsonPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", jsonPath, err)
	}

	yamlData, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshaling corpus metadata: %w", err)
	}
	yamlPath := filepath.Join(b.outputDir, "corpus_metadata.yaml")
	if err := os.WriteFile(yamlPath, yamlData, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", yamlPath, err)
	}
	return nil
}
