// Copyright Younes Elhjouji, 2026. All rights reserved.

package ngram

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		fold bool
		want []string
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "arabic words",
			in:   "قال رسول الله",
			want: []string{"قال", "رسول", "الله"},
		},
		{
			name: "punctuation dropped",
			in:   "قال: «نعم»، ثم سكت.",
			want: []string{"قال", "نعم", "ثم", "سكت"},
		},
		{
			name: "section markers dropped",
			in:   "## باب الصلاة\nالصلاة عماد الدين",
			want: []string{"باب", "الصلاة", "الصلاة", "عماد", "الدين"},
		},
		{
			name: "folding normalizes variants",
			in:   "أَحْمَد احمد",
			fold: true,
			want: []string{"احمد", "احمد"},
		},
		{
			name: "digits kept",
			in:   "سنة 204 هجرية",
			want: []string{"سنة", "204", "هجرية"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in, tt.fold)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tokens := []string{"a", "b", "a", "b", "c"}

	counts := make(map[string]int)
	Count(tokens, 2, counts)

	want := map[string]int{
		"a b": 2,
		"b a": 1,
		"b c": 1,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("Count mismatch (-want +got):\n%s", diff)
	}

	// Shorter than n contributes nothing.
	counts = make(map[string]int)
	Count([]string{"only"}, 2, counts)
	if len(counts) != 0 {
		t.Errorf("counts = %v, want empty", counts)
	}
}

func TestTopK(t *testing.T) {
	counts := map[string]int{
		"ب": 3,
		"أ": 3,
		"ج": 5,
		"د": 1,
	}

	top := TopK(counts, 3)

	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	// Frequency descending, ties lexicographic.
	if top[0].Ngram != "ج" || top[1].Ngram != "أ" || top[2].Ngram != "ب" {
		t.Errorf("order = %s, %s, %s", top[0].Ngram, top[1].Ngram, top[2].Ngram)
	}
	if top[0].Frequency != 5 {
		t.Errorf("top frequency = %d, want 5", top[0].Frequency)
	}
}

func TestAnalyzerRun(t *testing.T) {
	corpusDir, outDir := t.TempDir(), t.TempDir()

	files := map[string]string{
		"one.txt": "قال رسول الله صلى الله عليه وسلم",
		"two.txt": "قال رسول الله في الحديث",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(corpusDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Non-txt files are ignored.
	if err := os.WriteFile(filepath.Join(corpusDir, "README"), []byte("not text"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := NewAnalyzer(corpusDir, types.NgramConfig{MinN: 1, MaxN: 3, TopK: 5, OutputDir: outDir})
	var log bytes.Buffer
	if err := a.Run(&log); err != nil {
		t.Fatal(err)
	}

	// Per-size reports plus the summary.
	for _, name := range []string{
		"top_1grams.txt", "top_1grams.json",
		"top_2grams.txt", "top_2grams.json",
		"top_3grams.txt", "top_3grams.json",
		"ngram_analysis_summary.txt",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing report %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(outDir, "top_3grams.json"))
	if err != nil {
		t.Fatal(err)
	}
	var top []Freq
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatal(err)
	}
	if len(top) == 0 {
		t.Fatal("empty 3-gram report")
	}
	// "قال رسول الله" appears in both files; n-grams do not cross files.
	if top[0].Ngram != "قال رسول الله" || top[0].Frequency != 2 {
		t.Errorf("top 3-gram = %+v", top[0])
	}
	if len(top[0].Tokens) != 3 {
		t.Errorf("tokens = %v", top[0].Tokens)
	}
	if strings.Contains(string(data), "README") {
		t.Error("non-txt file leaked into analysis")
	}
}

// Deterministic output: two runs over the same corpus produce identical
// reports.
func TestAnalyzerDeterministic(t *testing.T) {
	corpusDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(corpusDir, "a.txt"),
		[]byte("كلمة أولى كلمة ثانية كلمة أولى"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := func() string {
		outDir := t.TempDir()
		a := NewAnalyzer(corpusDir, types.NgramConfig{MinN: 2, MaxN: 2, TopK: 10, OutputDir: outDir})
		if err := a.Run(io.Discard); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(filepath.Join(outDir, "top_2grams.txt"))
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	if first, second := run(), run(); first != second {
		t.Error("reports differ between runs")
	}
}
