package extract

import (
	"net/url"
	"regexp"
	"strings"
)

var slugRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// FileNameFromURL derives the text file name of a document from the last
// segment of its escaped URL path, so percent-escapes stay part of the slug.
// The result is lowercase and ends in ".txt".
func FileNameFromURL(rawURL string) string {
	path := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		path = parsed.EscapedPath()
	}
	path = strings.TrimRight(path, "/")

	slug := path[strings.LastIndex(path, "/")+1:]
	if slug == "" {
		slug = "speech"
	}
	slug = strings.Trim(slugRe.ReplaceAllString(slug, "_"), "_")
	if slug == "" {
		slug = "speech"
	}
	return strings.ToLower(slug) + ".txt"
}
