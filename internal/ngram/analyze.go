// Copyright Younes Elhjouji, 2026. All rights reserved.

package ngram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

const summaryFile = "ngram_analysis_summary.txt"

// Analyzer runs n-gram analysis over the .txt files of a corpus directory.
type Analyzer struct {
	corpusDir string
	cfg       types.NgramConfig
}

// NewAnalyzer returns an Analyzer. Zero config values fall back to the
// defaults: n from 1 to 6, top 100.
func NewAnalyzer(corpusDir string, cfg types.NgramConfig) *Analyzer {
	if cfg.MinN <= 0 {
		cfg.MinN = 1
	}
	if cfg.MaxN <= 0 {
		cfg.MaxN = 6
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 100
	}
	return &Analyzer{corpusDir: corpusDir, cfg: cfg}
}

// corpusFiles returns the corpus .txt files in sorted order.
func (a *Analyzer) corpusFiles() ([]string, error) {
	entries, err := os.ReadDir(a.corpusDir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory %s: %w", a.corpusDir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".txt") {
			files = append(files, filepath.Join(a.corpusDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Analyze counts n-grams of a single size across the corpus, one file at
// a time, and returns the top entries.
func (a *Analyzer) Analyze(n int) ([]Freq, error) {
	files, err := a.corpusFiles()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		Count(Tokenize(string(data), a.cfg.Fold), n, counts)
	}

	return TopK(counts, a.cfg.TopK), nil
}

// Run analyzes every n-gram size in the configured range, writing the
// per-size text and JSON reports plus a summary into the output directory.
func (a *Analyzer) Run(w io.Writer) error {
	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tops := make(map[int][]Freq)
	for n := a.cfg.MinN; n <= a.cfg.MaxN; n++ {
		start := time.Now()
		top, err := a.Analyze(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "analyzed %d-grams: %d distinct, top %d kept (%.2fs)\n",
			n, len(top), a.cfg.TopK, time.Since(start).Seconds())

		if len(top) == 0 {
			fmt.Fprintf(w, "  warning: no %d-grams found\n", n)
			continue
		}
		tops[n] = top

		if err := a.writeTextReport(n, top); err != nil {
			return err
		}
		if err := a.writeJSONReport(n, top); err != nil {
			return err
		}
	}

	if err := a.writeSummary(tops); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nReports written to %s\n", a.cfg.OutputDir)
	return nil
}

func (a *Analyzer) writeTextReport(n int, top []Freq) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Top %d %d-grams in the corpus\n", len(top), n)
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	for i, entry := range top {
		fmt.Fprintf(&sb, "%d. %s (Frequency: %d)\n", i+1, entry.Ngram, entry.Frequency)
	}

	path := filepath.Join(a.cfg.OutputDir, reportName(n, "txt"))
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (a *Analyzer) writeJSONReport(n int, top []Freq) error {
	data, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %d-gram report: %w", n, err)
	}

	path := filepath.Join(a.cfg.OutputDir, reportName(n, "json"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (a *Analyzer) writeSummary(tops map[int][]Freq) error {
	var sb strings.Builder
	sb.WriteString("Corpus N-gram Analysis Summary\n")
	sb.WriteString("==============================\n\n")
	fmt.Fprintf(&sb, "Analysis range: %d-grams to %d-grams\n", a.cfg.MinN, a.cfg.MaxN)
	fmt.Fprintf(&sb, "Top %d n-grams reported for each n\n", a.cfg.TopK)

	for n := a.cfg.MinN; n <= a.cfg.MaxN; n++ {
		top, ok := tops[n]
		if !ok {
			fmt.Fprintf(&sb, "\nNo data available for %d-grams\n", n)
			continue
		}

		fmt.Fprintf(&sb, "\nTop 10 %d-grams:\n", n)
		sb.WriteString(strings.Repeat("-", 30) + "\n")
		for i, entry := range top {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&sb, "%d. %s (Frequency: %d)\n", i+1, entry.Ngram, entry.Frequency)
		}
	}

	path := filepath.Join(a.cfg.OutputDir, summaryFile)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func reportName(n int, ext string) string {
	return fmt.Sprintf("top_%dgrams.%s", n, ext)
}
