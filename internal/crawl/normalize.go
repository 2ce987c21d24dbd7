package crawl

import (
	"net/url"
	"strings"
)

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// NormalizeURL returns the identity key of a URL: scheme and host
// lowercased, default port and fragment removed, trailing slash trimmed.
// The query is kept since listing pages are paginated through it.
// Unparseable input is returned trimmed.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	host := strings.ToLower(parsed.Hostname())
	if port := parsed.Port(); port != "" && defaultPorts[parsed.Scheme] != port {
		host += ":" + port
	}
	parsed.Host = host
	parsed.Fragment = ""
	parsed.RawFragment = ""
	if len(parsed.Path) > 1 {
		parsed.Path = strings.TrimRight(parsed.Path, "/")
		parsed.RawPath = ""
	}
	if parsed.Path == "/" {
		parsed.Path = ""
	}
	return parsed.String()
}

// urlSet is an insertion-ordered set keyed by NormalizeURL.
type urlSet struct {
	seen  map[string]struct{}
	order []string
}

func newURLSet() *urlSet {
	return &urlSet{seen: make(map[string]struct{})}
}

// add records u and reports whether it was new.
func (s *urlSet) add(u string) bool {
	key := NormalizeURL(u)
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, u)
	return true
}

func (s *urlSet) has(u string) bool {
	_, ok := s.seen[NormalizeURL(u)]
	return ok
}

func (s *urlSet) len() int { return len(s.order) }
