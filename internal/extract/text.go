// Package extract pulls links, body text and metadata out of archive pages.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseHTML parses a page into a goquery document.
func ParseHTML(content string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}

// VisibleText flattens the subtrees of the selection into newline-joined
// text runs. Every text node is trimmed and empty runs are dropped, which
// keeps paragraph-like breaks without depending on the exact markup.
func VisibleText(sel *goquery.Selection) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, "\n")
}

// inlineText is VisibleText collapsed onto a single line.
func inlineText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(VisibleText(sel)), " ")
}
