// Copyright Younes Elhjouji, 2026. All rights reserved.

// Package ngram counts word n-gram frequencies over a plain-text corpus
// directory and writes ranked frequency reports.
package ngram

import (
	"sort"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"github.com/YounesElhjouji/language-period-analysis/internal/arabic"
)

// Freq is one ranked n-gram.
type Freq struct {
	Ngram     string   `json:"ngram" yaml:"ngram"`
	Tokens    []string `json:"tokens" yaml:"tokens"`
	Frequency int      `json:"frequency" yaml:"frequency"`
}

// Tokenize splits text into word tokens using UAX #29 segmentation,
// keeping only tokens that contain a letter or digit. With fold set,
// Arabic orthography folding is applied first.
func Tokenize(text string, fold bool) []string {
	if fold {
		text = arabic.Fold(text)
	}

	var tokens []string
	iter := words.FromString(text)
	for iter.Next() {
		token := iter.Value()
		if isWord(token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func isWord(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Count adds the n-grams of tokens to counts, keyed by the space-joined
// token sequence. Documents shorter than n contribute nothing.
func Count(tokens []string, n int, counts map[string]int) {
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
}

// TopK returns the k most frequent n-grams from counts. Ties break
// lexicographically so reports are deterministic.
func TopK(counts map[string]int, k int) []Freq {
	ranked := make([]Freq, 0, len(counts))
	for ngram, freq := range counts {
		ranked = append(ranked, Freq{
			Ngram:     ngram,
			Tokens:    strings.Split(ngram, " "),
			Frequency: freq,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Frequency != ranked[j].Frequency {
			return ranked[i].Frequency > ranked[j].Frequency
		}
		return ranked[i].Ngram < ranked[j].Ngram
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
