// Copyright Younes Elhjouji, 2026. All rights reserved.

// Package report renders an HTML review document for books whose required
// metadata could not be extracted. The document embeds each book's first
// source page so the missing fields can be filled in by hand.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/YounesElhjouji/language-period-analysis/internal/extract"
	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

// Entry is one book in the review document.
type Entry struct {
	BookName string
	Missing  []string
	// PageHTML is the book's first page, embedded verbatim. Empty when the
	// source file could not be located.
	PageHTML template.HTML
	Note     string
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="UTF-8">
<title>Books with Missing Metadata</title>
<style>
body { font-family: Arial, sans-serif; padding: 20px; }
.book { margin-bottom: 30px; border-bottom: 1px solid #ccc; padding-bottom: 20px; }
.book-info { margin-bottom: 10px; font-weight: bold; }
.missing-fields { color: red; margin-bottom: 10px; }
</style>
</head>
<body>
<h1>Books with Missing Metadata ({{len .}})</h1>
{{range .}}
<div class="book">
<div class="book-info">Book: {{.BookName}}</div>
<div class="missing-fields">Missing fields: {{.MissingList}}</div>
{{if .PageHTML}}{{.PageHTML}}{{else}}<p>{{.Note}}</p>{{end}}
</div>
{{end}}
</body>
</html>
`))

// MissingList joins the entry's missing field names for display.
func (e Entry) MissingList() string {
	return strings.Join(e.Missing, ", ")
}

// MissingMetadata returns the books in meta that lack required fields,
// sorted by book name for stable output.
func MissingMetadata(meta types.Metadata) []*types.Book {
	var books []*types.Book
	for _, book := range meta {
		if len(book.MissingFields()) > 0 {
			books = append(books, book)
		}
	}
	sort.Slice(books, func(i, j int) bool {
		if books[i].Name != books[j].Name {
			return books[i].Name < books[j].Name
		}
		return books[i].ID < books[j].ID
	})
	return books
}

// Generate writes the review document for meta to out, locating each
// book's source page under inputDir. Books whose source cannot be found
// are still listed, with a note instead of an embedded page. The returned
// count is the number of books in the document.
func Generate(meta types.Metadata, inputDir string, out io.Writer, w io.Writer) (int, error) {
	books := MissingMetadata(meta)
	if len(books) == 0 {
		return 0, nil
	}

	entries := make([]Entry, 0, len(books))
	for _, book := range books {
		entry := Entry{
			BookName: book.Name,
			Missing:  book.MissingFields(),
		}

		srcPath := findSourceFile(book, inputDir)
		if srcPath == "" {
			entry.Note = fmt.Sprintf("Could not find source HTML for book: %s", book.Name)
			fmt.Fprintf(w, "  warning: no source found for %q\n", book.Name)
		} else {
			page, err := firstPageHTML(srcPath)
			if err != nil {
				entry.Note = fmt.Sprintf("Error loading source HTML: %v", err)
				fmt.Fprintf(w, "  warning: %s: %v\n", srcPath, err)
			} else {
				entry.PageHTML = template.HTML(page)
			}
		}

		entries = append(entries, entry)
	}

	if err := reportTemplate.Execute(out, entries); err != nil {
		return 0, fmt.Errorf("rendering report: %w", err)
	}
	return len(entries), nil
}

// findSourceFile locates the HTML file a book was extracted from. The
// recorded source path is tried first; otherwise the input directory is
// searched for a file mentioning the book name, checking multi-file book
// directories before loose files.
func findSourceFile(book *types.Book, inputDir string) string {
	if book.SourcePath != "" {
		if info, err := os.Stat(book.SourcePath); err == nil {
			if info.IsDir() {
				return filepath.Join(book.SourcePath, "000.htm")
			}
			return book.SourcePath
		}
	}

	if book.Name == "" {
		return ""
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return ""
	}

	// Multi-file books first: the opening file holds the metadata page.
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		for _, name := range []string{"000.htm", "001.htm"} {
			candidate := filepath.Join(inputDir, entry.Name(), name)
			if fileMentions(candidate, book.Name) {
				return candidate
			}
		}
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".htm") {
			continue
		}
		candidate := filepath.Join(inputDir, entry.Name())
		if fileMentions(candidate, book.Name) {
			return candidate
		}
	}

	return ""
}

func fileMentions(path, needle string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte(needle))
}

// firstPageHTML renders the first .PageText element of the file at path.
func firstPageHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	page := extract.FirstPage(doc)
	if page == nil {
		return "", fmt.Errorf("no page content in %s", path)
	}

	var sb strings.Builder
	if err := html.Render(&sb, page); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return sb.String(), nil
}
