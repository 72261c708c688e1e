// Copyright Younes Elhjouji, 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := types.IndexConfig{
		IndexDir:   filepath.Join(tmpDir, "index"),
		MaxResults: 20,
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

// writeProcessed writes a processed directory with metadata.json and the
// given per-book texts.
func writeProcessed(t *testing.T, tmpDir string, books map[*types.Book]string) string {
	t.Helper()
	processedDir := filepath.Join(tmpDir, "processed")
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		t.Fatal(err)
	}

	meta := types.Metadata{}
	for book, text := range books {
		textPath := filepath.Join(processedDir, book.ID+".txt")
		if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		book.TextPath = textPath
		meta[book.ID] = book
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(processedDir, "metadata.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	return processedDir
}

func sampleBooks() map[*types.Book]string {
	return map[*types.Book]string{
		{ID: "ayn", Name: "العين", Author: "الخليل بن أحمد", AuthorDeathYear: "170", Section: "معاجم"}: "## باب العين\nالعين حرف حلقي\n\nفقرة ثانية عن العين",
		{ID: "muq", Name: "المقدمة", Author: "ابن خلدون", AuthorDeathYear: "808", Section: "تاريخ"}:    "العمران البشري أصل الاجتماع",
		{ID: "mod", Name: "حديث", Author: "مؤلف حديث", AuthorDeathYear: "1350", Section: "أدب"}:        "نص حديث العهد",
	}
}

func TestSplitPassages(t *testing.T) {
	text := "## باب الأول\nسطر أول\nسطر ثان\n\nفقرة جديدة\n## باب الثاني\nنص الباب الثاني"

	got := SplitPassages("b1", text)

	want := []Passage{
		{BookID: "b1", Section: "باب الأول", Seq: 0, Content: "سطر أول سطر ثان"},
		{BookID: "b1", Section: "باب الأول", Seq: 1, Content: "فقرة جديدة"},
		{BookID: "b1", Section: "باب الثاني", Seq: 2, Content: "نص الباب الثاني"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitPassages mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitPassagesNoSections(t *testing.T) {
	got := SplitPassages("b", "فقرة واحدة بلا أبواب")
	if len(got) != 1 || got[0].Section != "" {
		t.Errorf("got %v", got)
	}
}

func TestBuildAndQuery(t *testing.T) {
	store, tmpDir := testSetup(t)
	processedDir := writeProcessed(t, tmpDir, sampleBooks())
	ctx := context.Background()

	var log strings.Builder
	summary, err := store.Build(ctx, processedDir, &log)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Indexed != 3 || summary.Failed != 0 {
		t.Fatalf("summary = %+v\nlog:\n%s", summary, log.String())
	}

	t.Run("full-text search", func(t *testing.T) {
		results, err := store.Query(ctx, QueryOptions{Query: "العمران"})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		r := results[0]
		if r.BookID != "muq" || r.BookTitle != "المقدمة" || r.BookAuthor != "ابن خلدون" {
			t.Errorf("result = %+v", r)
		}
	})

	t.Run("structured filters", func(t *testing.T) {
		results, err := store.Query(ctx, QueryOptions{Author: "الخليل"})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2 passages of العين", len(results))
		}
		// Structured-only queries order by book and sequence.
		if results[0].Seq != 0 || results[1].Seq != 1 {
			t.Errorf("order = %d, %d", results[0].Seq, results[1].Seq)
		}
	})

	t.Run("death year cutoff", func(t *testing.T) {
		results, err := store.Query(ctx, QueryOptions{MaxDeathYear: 1214, MaxResults: 100})
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range results {
			if r.BookID == "mod" {
				t.Errorf("book past cutoff returned: %+v", r)
			}
		}
		if len(results) != 3 {
			t.Errorf("got %d results, want 3 (two of ayn, one of muq)", len(results))
		}
	})

	t.Run("list books", func(t *testing.T) {
		books, err := store.ListBooks(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(books) != 3 {
			t.Fatalf("got %d books, want 3", len(books))
		}
		// Ordered by death year.
		if books[0].ID != "ayn" || books[2].ID != "mod" {
			t.Errorf("order = %s..%s", books[0].ID, books[2].ID)
		}
		if books[0].Passages != 2 {
			t.Errorf("ayn passages = %d, want 2", books[0].Passages)
		}
	})
}

func TestBuildIncremental(t *testing.T) {
	store, tmpDir := testSetup(t)
	books := sampleBooks()
	processedDir := writeProcessed(t, tmpDir, books)
	ctx := context.Background()

	var log strings.Builder
	if _, err := store.Build(ctx, processedDir, &log); err != nil {
		t.Fatal(err)
	}

	// Second build with nothing changed skips everything.
	summary, err := store.Build(ctx, processedDir, &log)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 3 || summary.Indexed != 0 {
		t.Fatalf("summary = %+v, want 3 skipped", summary)
	}

	// Touch one book's text: only that book reindexes, and its old
	// passages are replaced rather than duplicated.
	ayznPath := filepath.Join(processedDir, "ayn.txt")
	if err := os.WriteFile(ayznPath, []byte("نص معدل واحد"), 0o644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(ayznPath, later, later); err != nil {
		t.Fatal(err)
	}

	summary, err = store.Build(ctx, processedDir, &log)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Updated != 1 || summary.Skipped != 2 {
		t.Fatalf("summary = %+v, want 1 updated, 2 skipped", summary)
	}

	results, err := store.Query(ctx, QueryOptions{BookID: "ayn", MaxResults: 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Content != "نص معدل واحد" {
		t.Errorf("results = %+v, want single replaced passage", results)
	}

	// FTS indexes the new content and no longer matches the old.
	if results, err = store.Query(ctx, QueryOptions{Query: "معدل"}); err != nil || len(results) != 1 {
		t.Errorf("new content not searchable: %v, %v", results, err)
	}
	if results, err = store.Query(ctx, QueryOptions{Query: "حلقي"}); err != nil || len(results) != 0 {
		t.Errorf("stale content still searchable: %v, %v", results, err)
	}
}

func TestBuildMissingText(t *testing.T) {
	store, tmpDir := testSetup(t)
	processedDir := writeProcessed(t, tmpDir, map[*types.Book]string{
		{ID: "ok", Name: "كتاب", Author: "مؤلف", AuthorDeathYear: "500", Section: "قسم"}: "نص",
	})

	// Break one book's text path after metadata is written.
	meta, err := os.ReadFile(filepath.Join(processedDir, "metadata.json"))
	if err != nil {
		t.Fatal(err)
	}
	broken := strings.Replace(string(meta), "ok.txt", "gone.txt", 1)
	if err := os.WriteFile(filepath.Join(processedDir, "metadata.json"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	var log strings.Builder
	summary, err := store.Build(context.Background(), processedDir, &log)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 failed", summary)
	}
	if !strings.Contains(log.String(), "failed  ok") {
		t.Errorf("missing failure line, log:\n%s", log.String())
	}
}

func TestExport(t *testing.T) {
	store, tmpDir := testSetup(t)
	processedDir := writeProcessed(t, tmpDir, sampleBooks())
	ctx := context.Background()

	var log strings.Builder
	if _, err := store.Build(ctx, processedDir, &log); err != nil {
		t.Fatal(err)
	}

	if err := store.ExportJSON(ctx, QueryOptions{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(tmpDir, "index", "export.json"))
	if err != nil {
		t.Fatal(err)
	}

	var results []QueryResult
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Errorf("exported %d passages, want 4", len(results))
	}

	if err := store.ExportYAML(ctx, QueryOptions{MaxDeathYear: 1214}); err != nil {
		t.Fatal(err)
	}
	yamlData, err := os.ReadFile(filepath.Join(tmpDir, "index", "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(yamlData), "حديث العهد") {
		t.Error("filtered export contains post-cutoff book")
	}
}
