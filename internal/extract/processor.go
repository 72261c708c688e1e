// Copyright Younes Elhjouji, 2026. All rights reserved.

package extract

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
	"golang.org/x/net/html"

	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

// aggregateFile is the combined metadata file written next to the per-book
// outputs, keyed by book ID. Downstream stages (corpus, index, report)
// read this file.
const aggregateFile = "metadata.json"

var numberedFileRe = regexp.MustCompile(`^00[1-9]\.htm$`)

// Summary holds counts from a batch extraction run.
type Summary struct {
	Processed int
	Failed    int
	Skipped   int
}

// Total returns the number of books handled.
func (s Summary) Total() int {
	return s.Processed + s.Failed + s.Skipped
}

// HasFailures reports whether any books failed extraction.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Processor extracts books into an output directory and accumulates their
// metadata for the aggregate file.
type Processor struct {
	outDir string
	books  types.Metadata
}

// NewProcessor returns a Processor writing into outDir.
func NewProcessor(outDir string) *Processor {
	return &Processor{
		outDir: outDir,
		books:  types.Metadata{},
	}
}

// Books returns the metadata accumulated so far, keyed by book ID.
func (p *Processor) Books() types.Metadata {
	return p.books
}

// IsMultiFileBook reports whether dir holds a single book split across
// numbered HTML files. Such directories start at 000.htm and have at least
// one further numbered file.
func IsMultiFileBook(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "000.htm")); err != nil {
		return false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if numberedFileRe.MatchString(entry.Name()) {
			return true
		}
	}
	return false
}

// BookFiles returns the HTML files of a multi-file book in numeric order.
func BookFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading book directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".htm") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return fileNumber(files[i]) < fileNumber(files[j])
	})
	return files, nil
}

// fileNumber parses the numeric stem of a book file name. Files with
// non-numeric stems sort last.
func fileNumber(path string) int {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	n, err := strconv.Atoi(stem)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}

// ProcessPath extracts path, which may be a single .htm file, a multi-file
// book directory, or a directory tree of either. It prints per-book status
// to w and continues past individual failures.
func (p *Processor) ProcessPath(path string, w io.Writer) (Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Summary{}, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(p.outDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory: %w", err)
	}

	var summary Summary
	p.processPath(path, info.IsDir(), p.outDir, w, &summary)

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		summary.Processed, summary.Skipped, summary.Failed, summary.Total())
	return summary, nil
}

func (p *Processor) processPath(path string, isDir bool, outDir string, w io.Writer, summary *Summary) {
	if !isDir {
		if !strings.HasSuffix(path, ".htm") {
			fmt.Fprintf(w, "skipped: %s (not a Shamela HTML file)\n", filepath.Base(path))
			summary.Skipped++
			return
		}
		p.processOne(path, outDir, w, summary, p.extractSingleFile)
		return
	}

	if IsMultiFileBook(path) {
		p.processOne(path, outDir, w, summary, p.extractBookDir)
		return
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
		summary.Failed++
		return
	}

	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			childOut := filepath.Join(outDir, entry.Name())
			if IsMultiFileBook(child) {
				// Book directories write into the current output level.
				childOut = outDir
			} else if err := os.MkdirAll(childOut, 0o755); err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", child, err)
				summary.Failed++
				continue
			}
			p.processPath(child, true, childOut, w, summary)
			continue
		}
		if strings.HasSuffix(entry.Name(), ".htm") {
			p.processOne(child, outDir, w, summary, p.extractSingleFile)
		}
	}
}

// extractFunc extracts one book from path and returns its record and body text.
type extractFunc func(path string) (*types.Book, string, error)

func (p *Processor) processOne(path, outDir string, w io.Writer, summary *Summary, extract extractFunc) {
	base := bookBase(path)

	book, content, err := extract(path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		summary.Failed++
		return
	}

	if missing := book.MissingFields(); len(missing) > 0 {
		fmt.Fprintf(w, "  warning: %s missing required metadata: %s\n", base, strings.Join(missing, ", "))
	}

	if err := p.writeBook(book, content, base, outDir); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		summary.Failed++
		return
	}

	p.books[book.ID] = book
	fmt.Fprintf(w, "extracted: %s (%d bytes)\n", base, book.ContentLength)
	summary.Processed++
}

// bookBase returns the output base name for a book source path.
func bookBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (p *Processor) extractSingleFile(path string) (*types.Book, string, error) {
	doc, err := parseFile(path)
	if err != nil {
		return nil, "", err
	}

	book, err := ExtractMetadata(doc)
	if err != nil {
		return nil, "", err
	}
	book.SourcePath = path

	content := ExtractContent(doc, true)
	book.ContentLength = len(content)
	return book, content, nil
}

func (p *Processor) extractBookDir(dir string) (*types.Book, string, error) {
	files, err := BookFiles(dir)
	if err != nil {
		return nil, "", err
	}
	if len(files) == 0 {
		return nil, "", fmt.Errorf("no HTML files in %s", dir)
	}

	firstDoc, err := parseFile(files[0])
	if err != nil {
		return nil, "", err
	}

	book, err := ExtractMetadata(firstDoc)
	if err != nil {
		return nil, "", err
	}
	book.SourcePath = dir

	var parts []string
	for i, file := range files {
		doc := firstDoc
		if i > 0 {
			if doc, err = parseFile(file); err != nil {
				return nil, "", err
			}
		}
		// Only the first file opens with the metadata page.
		parts = append(parts, ExtractContent(doc, i == 0))
	}

	content := CleanText(strings.Join(parts, "\n\n"))
	book.ContentLength = len(content)
	return book, content, nil
}

// writeBook writes the text file and YAML metadata sidecar for one book.
func (p *Processor) writeBook(book *types.Book, content, base, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	textPath := filepath.Join(outDir, base+"_text.txt")
	if err := os.WriteFile(textPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	book.TextPath = textPath

	metaPath := filepath.Join(outDir, base+"_metadata.yaml")
	data, err := yaml.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// WriteAggregate writes the accumulated metadata.json into the output
// directory.
func (p *Processor) WriteAggregate() error {
	data, err := json.MarshalIndent(p.books, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling aggregate metadata: %w", err)
	}
	path := filepath.Join(p.outDir, aggregateFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadAggregate reads a metadata.json written by WriteAggregate.
func LoadAggregate(path string) (types.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata file: %w", err)
	}
	var meta types.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata file %s: %w", path, err)
	}
	return meta, nil
}

func parseFile(path string) (*html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
