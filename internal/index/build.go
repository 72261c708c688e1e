// Copyright Younes Elhjouji, 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/YounesElhjouji/language-period-analysis/internal/extract"
	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

// Passage is one indexed unit of book text: a paragraph, tagged with the
// section heading it appears under.
type Passage struct {
	BookID  string `json:"book_id" yaml:"book_id"`
	Section string `json:"section" yaml:"section"`
	Seq     int    `json:"seq" yaml:"seq"`
	Content string `json:"content" yaml:"content"`
}

// BuildSummary holds counts from an index build run.
type BuildSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of books processed.
func (s BuildSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Build reads metadata.json and the per-book text files from processedDir
// and populates the database. Unchanged books are detected by text file
// modification time and skipped, so rebuilding is incremental.
func (s *Store) Build(ctx context.Context, processedDir string, w io.Writer) (BuildSummary, error) {
	meta, err := extract.LoadAggregate(filepath.Join(processedDir, "metadata.json"))
	if err != nil {
		return BuildSummary{}, err
	}

	ids := make([]string, 0, len(meta))
	for id := range meta {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var summary BuildSummary

	for _, id := range ids {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		book := meta[id]
		textPath := book.TextPath
		if textPath == "" {
			textPath = filepath.Join(processedDir, id+".txt")
		}

		info, err := os.Stat(textPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE book_id = ?`, id,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", id)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		data, err := os.ReadFile(textPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}

		passages := SplitPassages(id, string(data))

		if err := s.indexBook(ctx, book, passages, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d passages)\n", id, len(passages))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d passages)\n", id, len(passages))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// SplitPassages splits extracted book text into indexable passages.
// "## " lines open a new section; blank lines separate paragraphs within
// a section. Each paragraph becomes one passage.
func SplitPassages(bookID, text string) []Passage {
	var (
		passages []Passage
		section  string
		current  []string
		seq      int
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		passages = append(passages, Passage{
			BookID:  bookID,
			Section: section,
			Seq:     seq,
			Content: strings.Join(current, " "),
		})
		seq++
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "## ") {
			flush()
			section = strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		current = append(current, trimmed)
	}
	flush()

	return passages
}

func (s *Store) indexBook(ctx context.Context, book *types.Book, passages []Passage, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM passages WHERE book_id = ?`, book.ID); err != nil {
			return fmt.Errorf("deleting old passages: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO books (id, title, author, death_year, section, editor, publisher, source_path, content_length)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, author=excluded.author, death_year=excluded.death_year,
			section=excluded.section, editor=excluded.editor, publisher=excluded.publisher,
			source_path=excluded.source_path, content_length=excluded.content_length`,
		book.ID, book.Name, book.Author, book.AuthorDeathYear,
		book.Section, book.Editor, book.Publisher, book.SourcePath, book.ContentLength,
	)
	if err != nil {
		return fmt.Errorf("upserting book: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO passages (book_id, section, seq, content) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range passages {
		if _, err := stmt.ExecContext(ctx, p.BookID, p.Section, p.Seq, p.Content); err != nil {
			return fmt.Errorf("inserting passage %d: %w", p.Seq, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (book_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(book_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		book.ID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
