// Copyright Younes Elhjouji, 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var multiNewlineRe = regexp.MustCompile(`\n{3,}`)

// pageText extracts the text of a single .PageText page. Page headers are
// dropped, span.title elements become "## " section markers, and paragraph
// elements and bare text nodes become lines.
func pageText(page *html.Node) string {
	var sb strings.Builder

	for child := page.FirstChild; child != nil; child = child.NextSibling {
		if hasClass(child, "PageHead") {
			continue
		}

		if isElement(child, "span") && hasClass(child, "title") {
			if title := nodeText(child); title != "" {
				sb.WriteString("\n## " + title + "\n")
			}
			continue
		}

		if isElement(child, "p") {
			if text := nodeText(child); text != "" {
				sb.WriteString(text + "\n")
			}
			continue
		}

		if child.Type == html.TextNode {
			if text := strings.TrimSpace(child.Data); text != "" {
				sb.WriteString(text + "\n")
			}
		}
	}

	return sb.String()
}

// CleanText normalizes extracted body text: newline runs collapse to
// paragraph breaks, the ellipsis character becomes three dots, and control
// characters are stripped.
func CleanText(text string) string {
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	text = strings.ReplaceAll(text, "…", "...")
	text = strings.Map(dropControl, text)
	return strings.TrimSpace(text)
}

// dropControl removes C0 and C1 control characters, keeping tab, newline,
// and carriage return.
func dropControl(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r < 0x20, r >= 0x7F && r <= 0x9F:
		return -1
	}
	return r
}

// ExtractContent returns the cleaned body text of doc. With skipFirstPage
// set the first .PageText page (the metadata page) is excluded.
func ExtractContent(doc *html.Node, skipFirstPage bool) string {
	pages := findAllClass(doc, "PageText")
	if skipFirstPage && len(pages) > 0 {
		pages = pages[1:]
	}

	var sb strings.Builder
	for _, page := range pages {
		sb.WriteString(pageText(page))
		sb.WriteString("\n")
	}

	return CleanText(sb.String())
}
