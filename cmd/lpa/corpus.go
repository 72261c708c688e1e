// Copyright Younes Elhjouji, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/YounesElhjouji/language-period-analysis/internal/corpus"
	"github.com/YounesElhjouji/language-period-analysis/internal/extract"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Assemble a period corpus from extracted books",
	Long: `Corpus selects extracted books whose author died before the cutoff year
(1214 AH by default) and copies their texts into a corpus directory under
readable names, together with a README and corpus metadata in JSON and
YAML.

Books with a missing or unparseable death year are excluded with a
warning.`,
	RunE: runCorpus,
}

func runCorpus(cmd *cobra.Command, args []string) error {
	processedDir, _ := cmd.Flags().GetString("processed-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	maxDeathYear, _ := cmd.Flags().GetInt("max-death-year")

	meta, err := extract.LoadAggregate(filepath.Join(processedDir, "metadata.json"))
	if err != nil {
		return err
	}

	b := corpus.NewBuilder(processedDir, outputDir, maxDeathYear)
	info, err := b.Build(meta, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("\nCorpus of %d book(s) assembled in %s\n", info.Books, outputDir)
	return nil
}

func init() {
	corpusCmd.Flags().String("processed-dir", "data/processed", "directory holding extracted texts and metadata.json")
	corpusCmd.Flags().String("output-dir", "data/corpus", "directory the corpus is assembled into")
	corpusCmd.Flags().Int("max-death-year", 0, "exclusive Hijri cutoff for author death years (0 = default 1214)")

	rootCmd.AddCommand(corpusCmd)
}
