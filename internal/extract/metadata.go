// Copyright Younes Elhjouji, 2026. All rights reserved.

// Package extract pulls book metadata and body text out of Shamela HTML
// exports. A Shamela export is a sequence of .PageText page divs; the
// first page lists the book's bibliographic fields as Arabic labels in
// span.title elements, and the remaining pages hold the body.
package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

// ErrNoMetadataPage is returned when the document has no .PageText page to
// read bibliographic fields from.
var ErrNoMetadataPage = errors.New("no metadata page found")

// fieldLabels maps the Arabic field labels printed on the first page to
// Book fields. Matching is by substring because labels appear with varying
// punctuation.
var fieldLabels = []struct {
	label string
	field string
}{
	{"الكتاب", "book_name"},
	{"المؤلف", "author"},
	{"القسم", "section"},
	{"تحقيق", "editor"},
	{"الناشر", "publisher"},
	{"الطبعة", "edition"},
	{"عدد الصفحات", "pages"},
	{"تاريخ النشر", "publication_date"},
}

var (
	// numberRe matches the first run of digits, including Arabic-Indic
	// digits as they appear in Shamela pages.
	numberRe = regexp.MustCompile(`[0-9\x{0660}-\x{0669}]+`)

	// parenRe matches parenthesized annotations in author lines, which
	// usually hold the death year.
	parenRe = regexp.MustCompile(`\([^)]*\)`)
)

// asciiDigits converts Arabic-Indic digits to their ASCII counterparts.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x0660 && r <= 0x0669 {
			return '0' + (r - 0x0660)
		}
		return r
	}, s)
}

// firstNumber returns the first digit run in s as ASCII digits, or "".
func firstNumber(s string) string {
	return asciiDigits(numberRe.FindString(s))
}

// ExtractMetadata reads the bibliographic fields from the first .PageText
// page of doc and returns a Book with a freshly generated ID. Missing
// optional fields are left empty; callers decide how to treat missing
// required fields via Book.MissingFields.
func ExtractMetadata(doc *html.Node) (*types.Book, error) {
	firstPage := findFirstClass(doc, "PageText")
	if firstPage == nil {
		return nil, ErrNoMetadataPage
	}

	book := &types.Book{ID: uuid.NewString()}

	for _, span := range findAllClass(firstPage, "title") {
		if !isElement(span, "span") {
			continue
		}
		labelText := nodeText(span)

		field := ""
		for _, fl := range fieldLabels {
			if strings.Contains(labelText, fl.label) {
				field = fl.field
				break
			}
		}

		switch field {
		case "author":
			applyAuthor(book, span)
		case "":
			// Unrecognized label: skip.
		default:
			next := span.NextSibling
			if next == nil {
				continue
			}
			value := nodeText(next)
			if value == "" {
				continue
			}
			switch field {
			case "book_name":
				book.Name = value
			case "section":
				book.Section = value
			case "editor":
				book.Editor = value
			case "publisher":
				book.Publisher = value
			case "edition":
				book.Edition = value
			case "pages":
				if num := firstNumber(value); num != "" {
					book.Pages = num
				} else {
					book.Pages = value
				}
			case "publication_date":
				book.PublicationDate = value
			}
		}
	}

	// Pages without an explicit الكتاب label still open with the title in
	// the first .title span.
	if book.Name == "" {
		if first := findFirstClass(firstPage, "title"); first != nil {
			book.Name = nodeText(first)
		}
	}

	return book, nil
}

// applyAuthor fills the author name and death year from the siblings
// following the المؤلف label. The author line may span several text nodes
// and inline elements before the next span or paragraph, and carries the
// death year as the first number, usually parenthesized.
func applyAuthor(book *types.Book, span *html.Node) {
	var parts []string
	for cur := span.NextSibling; cur != nil; cur = cur.NextSibling {
		if isElement(cur, "span") || isElement(cur, "p") {
			break
		}
		if text := nodeText(cur); text != "" {
			parts = append(parts, text)
		}
	}

	authorText := strings.Join(parts, " ")
	if authorText == "" {
		return
	}

	if year := firstNumber(authorText); year != "" {
		book.AuthorDeathYear = year
	}
	book.Author = strings.TrimSpace(parenRe.ReplaceAllString(authorText, ""))
}
