// Copyright Younes Elhjouji, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/YounesElhjouji/language-period-analysis/internal/extract"
	"github.com/YounesElhjouji/language-period-analysis/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an HTML report of books with missing metadata",
	Long: `Report scans the aggregated metadata for books missing required fields
(title, author, section) and writes an HTML report embedding each book's
source first page, so the missing values can be read off and filled in
by hand.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	processedDir, _ := cmd.Flags().GetString("processed-dir")
	inputDir, _ := cmd.Flags().GetString("input-dir")
	outPath, _ := cmd.Flags().GetString("out")

	meta, err := extract.LoadAggregate(filepath.Join(processedDir, "metadata.json"))
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	n, err := report.Generate(meta, inputDir, f, os.Stdout)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Println("No books with missing metadata.")
		os.Remove(outPath)
		return nil
	}

	fmt.Printf("Report for %d book(s) written to %s\n", n, outPath)
	return nil
}

func init() {
	reportCmd.Flags().String("processed-dir", "data/processed", "directory holding extracted metadata.json")
	reportCmd.Flags().String("input-dir", "data/raw", "directory holding the source book HTML")
	reportCmd.Flags().String("out", "missing_metadata.html", "output HTML file")

	rootCmd.AddCommand(reportCmd)
}
