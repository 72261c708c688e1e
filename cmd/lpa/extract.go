// Copyright Younes Elhjouji, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YounesElhjouji/language-period-analysis/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [paths...]",
	Short: "Extract text and metadata from Shamela book HTML",
	Long: `Extract parses Shamela book HTML files, pulls out the book metadata
(title, author, death year, section) and the cleaned body text, and
writes per-book text files and YAML metadata sidecars into the output
directory. Multi-file books (000.htm plus numbered continuations) are
joined into one text.

An aggregated metadata.json covering every extracted book is written to
the output directory; later stages read it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output-dir")

	p := extract.NewProcessor(outputDir)

	var total extract.Summary
	for _, path := range args {
		summary, err := p.ProcessPath(path, os.Stdout)
		if err != nil {
			return err
		}
		total.Processed += summary.Processed
		total.Failed += summary.Failed
		total.Skipped += summary.Skipped
	}

	if err := p.WriteAggregate(); err != nil {
		return err
	}

	fmt.Printf("\nExtracted %d book(s), %d failed, %d skipped\n",
		total.Processed, total.Failed, total.Skipped)
	if total.HasFailures() {
		return fmt.Errorf("%d book(s) failed extraction", total.Failed)
	}
	return nil
}

func init() {
	extractCmd.Flags().String("output-dir", "data/processed", "directory for extracted texts and metadata")

	rootCmd.AddCommand(extractCmd)
}
