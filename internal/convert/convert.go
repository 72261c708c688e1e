// Copyright Younes Elhjouji, 2026. All rights reserved.

// Package convert turns legacy BOK book files into UTF-8 plain text.
// Source files carry no encoding declaration, so conversion detects the
// byte encoding per file before transcoding.
package convert

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

// bokExt is the input extension handled by this stage.
const bokExt = ".bok"

// Status indicates the outcome of a single file conversion.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns the default output path for an input file: the same
// name with a .txt extension.
func OutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".txt"
}

// ConvertFile decodes a single BOK file and writes it as UTF-8 text.
// When outPath is empty the input path with a .txt extension is used.
// If the output already exists conversion is skipped.
func ConvertFile(d Decoder, inPath, outPath string, cfg types.ConvertConfig, w io.Writer) Status {
	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	if outPath == "" {
		outPath = OutputPath(inPath)
	}

	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return StatusSkipped
	}

	raw, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	text, encName, err := d.Decode(raw)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	if cfg.CorpusLines {
		text = filterCorpusLines(text)
	}

	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s (%s)\n", base, encName)
	return StatusConverted
}

// ConvertTree converts every .bok file under root. Without cfg.Recursive
// only the top level of the directory is scanned. Individual failures do
// not stop the walk.
func ConvertTree(d Decoder, root string, cfg types.ConvertConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if !cfg.Recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), bokExt) {
			return nil
		}

		switch ConvertFile(d, path, "", cfg, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("walking %s: %w", root, err)
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// filterCorpusLines drops blank lines and #-prefixed comment lines, and
// trims surrounding whitespace from the rest. This matches the line shape
// expected by plain-text corpus readers.
func filterCorpusLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" || strings.HasPrefix(clean, "#") {
			continue
		}
		kept = append(kept, clean)
	}
	return strings.Join(kept, "\n")
}
