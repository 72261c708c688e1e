// Copyright Younes Elhjouji, 2026. All rights reserved.

package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// hasClass reports whether an element node carries the given class.
func hasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// findAllClass returns every element under n (in document order) carrying
// the given class.
func findAllClass(n *html.Node, class string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if hasClass(node, class) {
			found = append(found, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// findFirstClass returns the first element under n carrying the given
// class, or nil.
func findFirstClass(n *html.Node, class string) *html.Node {
	if hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// FirstPage returns the first .PageText page element of doc, or nil.
// The first page of a Shamela export holds the bibliographic fields.
func FirstPage(doc *html.Node) *html.Node {
	return findFirstClass(doc, "PageText")
}

// isElement reports whether n is an element with the given tag name.
func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// nodeText returns the concatenated text content of n, trimmed.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
