// Copyright Younes Elhjouji, 2026. All rights reserved.

package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const bookPage = `<html><body>
<div class="PageText">
<span class="title">الكتاب:</span> الرسالة<br>
<span class="title">المؤلف:</span> الشافعي (ت 204 هـ)<br>
<span class="title">القسم:</span> أصول الفقه<br>
</div>
<div class="PageText"><p>نص الكتاب الأول</p></div>
</body></html>`

const continuationPage = `<html><body>
<div class="PageText"><p>نص التكملة</p></div>
</body></html>`

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestProcessSingleFile(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	src := filepath.Join(inDir, "resala.htm")
	writeFixture(t, src, bookPage)

	p := NewProcessor(outDir)
	var log bytes.Buffer
	summary, err := p.ProcessPath(src, &log)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Processed != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 1 processed", summary)
	}

	text, err := os.ReadFile(filepath.Join(outDir, "resala_text.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "نص الكتاب الأول" {
		t.Errorf("text = %q", text)
	}

	if _, err := os.Stat(filepath.Join(outDir, "resala_metadata.yaml")); err != nil {
		t.Errorf("metadata sidecar not written: %v", err)
	}

	if len(p.Books()) != 1 {
		t.Fatalf("aggregated books = %d, want 1", len(p.Books()))
	}
	for _, book := range p.Books() {
		if book.Name != "الرسالة" || book.AuthorDeathYear != "204" {
			t.Errorf("book = %+v", book)
		}
		if book.ContentLength != len("نص الكتاب الأول") {
			t.Errorf("ContentLength = %d", book.ContentLength)
		}
	}
}

func TestProcessMultiFileBook(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	bookDir := filepath.Join(inDir, "resala")
	writeFixture(t, filepath.Join(bookDir, "000.htm"), bookPage)
	writeFixture(t, filepath.Join(bookDir, "001.htm"), continuationPage)

	if !IsMultiFileBook(bookDir) {
		t.Fatal("IsMultiFileBook = false, want true")
	}

	p := NewProcessor(outDir)
	var log bytes.Buffer
	summary, err := p.ProcessPath(bookDir, &log)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Processed != 1 {
		t.Fatalf("summary = %+v, want 1 processed", summary)
	}

	text, err := os.ReadFile(filepath.Join(outDir, "resala_text.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "نص الكتاب الأول\n\nنص التكملة"
	if string(text) != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestBookFilesOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"010.htm", "000.htm", "002.htm", "notes.txt"} {
		writeFixture(t, filepath.Join(dir, name), "x")
	}

	files, err := BookFiles(dir)
	if err != nil {
		t.Fatal(err)
	}

	var bases []string
	for _, f := range files {
		bases = append(bases, filepath.Base(f))
	}
	want := []string{"000.htm", "002.htm", "010.htm"}
	if strings.Join(bases, ",") != strings.Join(want, ",") {
		t.Errorf("BookFiles order = %v, want %v", bases, want)
	}
}

func TestProcessDirectoryTree(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	writeFixture(t, filepath.Join(inDir, "single.htm"), bookPage)
	writeFixture(t, filepath.Join(inDir, "fiqh", "other.htm"), bookPage)
	writeFixture(t, filepath.Join(inDir, "multi", "000.htm"), bookPage)
	writeFixture(t, filepath.Join(inDir, "multi", "001.htm"), continuationPage)
	writeFixture(t, filepath.Join(inDir, "ignore.txt"), "not html")

	p := NewProcessor(outDir)
	var log bytes.Buffer
	summary, err := p.ProcessPath(inDir, &log)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Processed != 3 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 3 processed\nlog:\n%s", summary, log.String())
	}

	// Nested single files mirror the directory structure; book dirs flatten.
	for _, path := range []string{
		filepath.Join(outDir, "single_text.txt"),
		filepath.Join(outDir, "fiqh", "other_text.txt"),
		filepath.Join(outDir, "multi_text.txt"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output %s: %v", path, err)
		}
	}

	if err := p.WriteAggregate(); err != nil {
		t.Fatal(err)
	}
	meta, err := LoadAggregate(filepath.Join(outDir, "metadata.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(meta) != 3 {
		t.Errorf("aggregate has %d books, want 3", len(meta))
	}
	for id, book := range meta {
		if book.ID != id {
			t.Errorf("aggregate key %s != book ID %s", id, book.ID)
		}
	}
}

func TestProcessMissingMetadataWarning(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	src := filepath.Join(inDir, "anon.htm")
	writeFixture(t, src, `<html><body>
<div class="PageText"><span class="title">الكتاب:</span> كتاب مجهول<br></div>
<div class="PageText"><p>نص</p></div>
</body></html>`)

	p := NewProcessor(outDir)
	var log bytes.Buffer
	summary, err := p.ProcessPath(src, &log)
	if err != nil {
		t.Fatal(err)
	}

	// Missing required fields warn but still extract.
	if summary.Processed != 1 {
		t.Fatalf("summary = %+v, want 1 processed", summary)
	}
	if !strings.Contains(log.String(), "warning:") || !strings.Contains(log.String(), "author") {
		t.Errorf("expected missing-metadata warning, log:\n%s", log.String())
	}
}
