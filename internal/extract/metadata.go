package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/speechset/internal/model"
)

var (
	bylineRe = regexp.MustCompile(`(?i)\bby\s+([^\n]+)$`)
	longDate = regexp.MustCompile(`\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+(19|20)\d{2}\b`)
	yearRe   = regexp.MustCompile(`(19|20)\d{2}`)
)

// DefaultPeopleSelector matches anchors pointing at speaker pages.
const DefaultPeopleSelector = `a[href*="/people/"]`

// DefaultDateSelectors are tried in order when looking for a document date.
var DefaultDateSelectors = []string{
	".doc-date",
	".field--name-field-docs-date",
	".field-docs-date",
	".date-display-single",
	".field--name-field-date",
}

// MetadataDeriver infers speaker and year from a document page. Every field
// it cannot find is left empty.
type MetadataDeriver struct {
	PeopleSelector string
	DateSelectors  []string
}

// NewMetadataDeriver returns a deriver, filling empty options with defaults.
func NewMetadataDeriver(peopleSelector string, dateSelectors []string) *MetadataDeriver {
	if peopleSelector == "" {
		peopleSelector = DefaultPeopleSelector
	}
	if len(dateSelectors) == 0 {
		dateSelectors = DefaultDateSelectors
	}
	return &MetadataDeriver{PeopleSelector: peopleSelector, DateSelectors: dateSelectors}
}

// Derive parses the page at pageURL and returns its metadata row.
func (d *MetadataDeriver) Derive(htmlContent, pageURL string) (model.DocumentMetadata, error) {
	doc, err := ParseHTML(htmlContent)
	if err != nil {
		return model.DocumentMetadata{}, err
	}
	return model.DocumentMetadata{
		FileName: FileNameFromURL(pageURL),
		URL:      pageURL,
		Speaker:  d.DeriveSpeaker(doc),
		Year:     d.DeriveYear(doc),
	}, nil
}

type textAttempt func(doc *goquery.Document) string

func firstNonEmpty(doc *goquery.Document, attempts ...textAttempt) string {
	for _, attempt := range attempts {
		if s := attempt(doc); s != "" {
			return s
		}
	}
	return ""
}

// DeriveSpeaker returns the first people link with text, else the name in a
// trailing "by <name>" of the page heading.
func (d *MetadataDeriver) DeriveSpeaker(doc *goquery.Document) string {
	return firstNonEmpty(doc, d.speakerFromPeopleLinks, speakerFromHeading)
}

func (d *MetadataDeriver) speakerFromPeopleLinks(doc *goquery.Document) string {
	var speaker string
	doc.Find(d.PeopleSelector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		speaker = inlineText(a)
		return speaker == ""
	})
	return speaker
}

func speakerFromHeading(doc *goquery.Document) string {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return ""
	}
	m := bylineRe.FindStringSubmatch(inlineText(h1))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// DeriveYear finds a date string, first from the date selectors and then
// from a "Month D, YYYY" date anywhere on the page, and returns its year.
// The first stage that yields a date decides the result.
func (d *MetadataDeriver) DeriveYear(doc *goquery.Document) string {
	date := firstNonEmpty(doc, d.dateFromSelectors, dateFromPageText)
	return yearRe.FindString(date)
}

func (d *MetadataDeriver) dateFromSelectors(doc *goquery.Document) string {
	for _, sel := range d.DateSelectors {
		if text := inlineText(doc.Find(sel).First()); text != "" {
			return text
		}
	}
	return ""
}

func dateFromPageText(doc *goquery.Document) string {
	return longDate.FindString(VisibleText(doc.Selection))
}
