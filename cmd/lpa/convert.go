// Copyright Younes Elhjouji, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YounesElhjouji/language-period-analysis/internal/convert"
	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [paths...]",
	Short: "Convert legacy-encoded .bok files to UTF-8 text",
	Long: `Convert decodes Shamela .bok files from their legacy encoding
(Windows-1256, ISO-8859-6, or whatever detection finds) and writes UTF-8
.txt files next to the sources. Paths can be individual files or
directories; directories convert every .bok file they contain.

Already converted files are skipped. With --corpus-lines, blank lines
and #-comment lines are dropped from the output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	encodingName, _ := cmd.Flags().GetString("encoding")
	corpusLines, _ := cmd.Flags().GetBool("corpus-lines")
	recursive, _ := cmd.Flags().GetBool("recursive")
	outPath, _ := cmd.Flags().GetString("output")

	if outPath != "" && len(args) != 1 {
		return fmt.Errorf("--output requires exactly one input file")
	}

	cfg := types.ConvertConfig{
		Encoding:    encodingName,
		CorpusLines: corpusLines,
		Recursive:   recursive,
	}

	var decoder convert.Decoder
	if encodingName != "" {
		d, err := convert.NewFixedDecoder(encodingName)
		if err != nil {
			return err
		}
		decoder = d
	} else {
		decoder = convert.NewDetectDecoder()
	}

	var failed int
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if outPath != "" {
				return fmt.Errorf("--output cannot be used with a directory input")
			}
			result, err := convert.ConvertTree(decoder, path, cfg, os.Stdout)
			if err != nil {
				return err
			}
			failed += result.Failed
			continue
		}

		if !strings.EqualFold(filepath.Ext(path), ".bok") {
			return fmt.Errorf("%s is not a .bok file", path)
		}
		status := convert.ConvertFile(decoder, path, outPath, cfg, os.Stdout)
		if status == convert.StatusFailed {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed conversion", failed)
	}
	return nil
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file for a single input (default: input with .txt)")
	convertCmd.Flags().String("encoding", "", "force a source encoding by IANA name (default: detect)")
	convertCmd.Flags().Bool("corpus-lines", false, "drop blank lines and #-comment lines from output")
	convertCmd.Flags().Bool("recursive", false, "descend into subdirectories")

	rootCmd.AddCommand(convertCmd)
}
