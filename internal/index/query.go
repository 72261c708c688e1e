// Copyright Younes Elhjouji, 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for corpus index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over passage content.
	Query string

	// Author filters by an author-name substring.
	Author string

	// Section filters by the book's library section.
	Section string

	// BookID filters by book.
	BookID string

	// MaxDeathYear keeps only books whose author died strictly before the
	// given Hijri year. Zero disables the filter.
	MaxDeathYear int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Author == "" && q.Section == "" &&
		q.BookID == "" && q.MaxDeathYear == 0
}

// QueryResult is a passage with its book's bibliographic fields joined in.
type QueryResult struct {
	Passage    `yaml:",inline"`
	BookTitle  string `json:"book_title" yaml:"book_title"`
	BookAuthor string `json:"book_author" yaml:"book_author"`
	DeathYear  string `json:"death_year" yaml:"death_year"`
}

// Query searches the index with optional full-text search and structured
// filters. Full-text results rank by FTS relevance; structured-only
// queries order by book and passage sequence.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.book_id, p.section, p.seq, p.content,
				b.title, b.author, b.death_year
			FROM passages_fts
			JOIN passages p ON p.rowid = passages_fts.rowid
			JOIN books b ON p.book_id = b.id
			WHERE passages_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.book_id, p.section, p.seq, p.content,
				b.title, b.author, b.death_year
			FROM passages p
			JOIN books b ON p.book_id = b.id
			WHERE 1=1`)
	}

	if opts.Author != "" {
		qb.WriteString(` AND b.author LIKE ?`)
		args = append(args, "%"+opts.Author+"%")
	}

	if opts.Section != "" {
		qb.WriteString(` AND b.section = ?`)
		args = append(args, opts.Section)
	}

	if opts.BookID != "" {
		qb.WriteString(` AND p.book_id = ?`)
		args = append(args, opts.BookID)
	}

	if opts.MaxDeathYear > 0 {
		qb.WriteString(` AND b.death_year GLOB '[0-9]*' AND CAST(b.death_year AS INTEGER) < ?`)
		args = append(args, opts.MaxDeathYear)
	}

	if useFTS {
		qb.WriteString(` ORDER BY passages_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.book_id, p.seq`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var qr QueryResult
		if err := rows.Scan(
			&qr.BookID, &qr.Passage.Section, &qr.Seq, &qr.Content,
			&qr.BookTitle, &qr.BookAuthor, &qr.DeathYear,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}

// BookSummary is one row of the index book listing.
type BookSummary struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Author    string `json:"author" yaml:"author"`
	DeathYear string `json:"death_year" yaml:"death_year"`
	Section   string `json:"section" yaml:"section"`
	Passages  int    `json:"passages" yaml:"passages"`
}

// ListBooks returns every indexed book with its passage count, ordered by
// death year then title.
func (s *Store) ListBooks(ctx context.Context) ([]BookSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.title, b.author, b.death_year, b.section,
			count(p.rowid)
		FROM books b
		LEFT JOIN passages p ON p.book_id = b.id
		GROUP BY b.id
		ORDER BY CAST(b.death_year AS INTEGER), b.title`)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	var books []BookSummary
	for rows.Next() {
		var b BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.DeathYear, &b.Section, &b.Passages); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		books = append(books, b)
	}

	return books, rows.Err()
}
