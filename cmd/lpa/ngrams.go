// Copyright Younes Elhjouji, 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/YounesElhjouji/language-period-analysis/internal/ngram"
	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

var ngramsCmd = &cobra.Command{
	Use:   "ngrams",
	Short: "Run n-gram frequency analysis over a corpus",
	Long: `Ngrams segments every corpus text into words and counts n-gram
frequencies for each n in [min-n, max-n]. For each n it writes a ranked
text report and a JSON report, plus a summary showing the top n-grams
across all sizes.

With --fold, Arabic orthography is normalized before counting: diacritics
and tatweel are dropped and alef and ya variants are unified.`,
	RunE: runNgrams,
}

func runNgrams(cmd *cobra.Command, args []string) error {
	corpusDir, _ := cmd.Flags().GetString("corpus-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	minN, _ := cmd.Flags().GetInt("min-n")
	maxN, _ := cmd.Flags().GetInt("max-n")
	topK, _ := cmd.Flags().GetInt("top-k")
	fold, _ := cmd.Flags().GetBool("fold")

	cfg := types.NgramConfig{
		MinN:      minN,
		MaxN:      maxN,
		TopK:      topK,
		Fold:      fold,
		OutputDir: outputDir,
	}

	a := ngram.NewAnalyzer(corpusDir, cfg)
	return a.Run(os.Stdout)
}

func init() {
	ngramsCmd.Flags().String("corpus-dir", "data/corpus", "directory holding corpus .txt files")
	ngramsCmd.Flags().String("output-dir", "data/ngrams", "directory for frequency reports")
	ngramsCmd.Flags().Int("min-n", 0, "smallest n-gram size (0 = default 1)")
	ngramsCmd.Flags().Int("max-n", 0, "largest n-gram size (0 = default 6)")
	ngramsCmd.Flags().Int("top-k", 0, "top n-grams reported per n (0 = default 100)")
	ngramsCmd.Flags().Bool("fold", false, "normalize Arabic orthography before counting")

	rootCmd.AddCommand(ngramsCmd)
}
