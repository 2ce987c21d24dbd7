package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkRules decide which anchors on a listing page are document links.
type LinkRules struct {
	BaseURL         string
	DocumentPrefix  string
	ExcludePrefixes []string
	// ListingSelector narrows the search to the listing container when the
	// page has one.
	ListingSelector string
}

// LinkExtractor finds document links and pagination controls on listing pages.
type LinkExtractor struct {
	base  *url.URL
	rules LinkRules
}

// NewLinkExtractor validates the base URL of rules.
func NewLinkExtractor(rules LinkRules) (*LinkExtractor, error) {
	base, err := url.Parse(rules.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute: %q", rules.BaseURL)
	}
	return &LinkExtractor{base: base, rules: rules}, nil
}

// ExtractDocumentLinks returns the absolute document links of a listing page
// in document order. Duplicates are kept.
func (e *LinkExtractor) ExtractDocumentLinks(htmlContent string) ([]string, error) {
	doc, err := ParseHTML(htmlContent)
	if err != nil {
		return nil, err
	}
	return e.DocumentLinks(doc), nil
}

// DocumentLinks is ExtractDocumentLinks over an already parsed page.
func (e *LinkExtractor) DocumentLinks(doc *goquery.Document) []string {
	scope := doc.Selection
	if e.rules.ListingSelector != "" {
		if container := doc.Find(e.rules.ListingSelector).First(); container.Length() > 0 {
			scope = container
		}
	}

	var links []string
	scope.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		resolved := resolveURL(e.base, strings.TrimSpace(href))
		if resolved == nil || !e.IsDocumentLink(resolved) {
			return
		}
		links = append(links, resolved.String())
	})
	return links
}

// IsDocumentLink reports whether u lives in the document namespace of the
// archive and outside every excluded prefix.
func (e *LinkExtractor) IsDocumentLink(u *url.URL) bool {
	if !strings.EqualFold(u.Host, e.base.Host) {
		return false
	}
	if !strings.HasPrefix(u.Path, e.rules.DocumentPrefix) {
		return false
	}
	for _, prefix := range e.rules.ExcludePrefixes {
		if strings.HasPrefix(u.Path, prefix) {
			return false
		}
	}
	return true
}

// FindNextPage returns the target of the first anchor whose visible text
// contains "next", resolved against pageURL.
func (e *LinkExtractor) FindNextPage(htmlContent, pageURL string) (string, bool, error) {
	doc, err := ParseHTML(htmlContent)
	if err != nil {
		return "", false, err
	}
	next, ok := e.NextPage(doc, pageURL)
	return next, ok, nil
}

// NextPage is FindNextPage over an already parsed page.
func (e *LinkExtractor) NextPage(doc *goquery.Document, pageURL string) (string, bool) {
	base := e.base
	if parsed, err := url.Parse(pageURL); err == nil && parsed.IsAbs() {
		base = parsed
	}

	var next string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(a.Text()), "next") {
			return true
		}
		href, ok := a.Attr("href")
		if ok {
			if resolved := resolveURL(base, strings.TrimSpace(href)); resolved != nil {
				next = resolved.String()
			}
		}
		return false
	})
	return next, next != ""
}

// resolveURL resolves href against base. Fragments, javascript: and mailto:
// links and non-HTTP schemes resolve to nil.
func resolveURL(base *url.URL, href string) *url.URL {
	if href == "" || strings.HasPrefix(href, "#") {
		return nil
	}
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") {
		return nil
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil
	}
	return resolved
}
