// Package segment cleans extracted speech text and cuts it into labelable units.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Bracketed editorial asides such as [laughter] or [applause]. Single line.
	bracketRe        = regexp.MustCompile(`\[.*?\]`)
	sentenceEndRe    = regexp.MustCompile(`[.!?]\s+`)
	paragraphBreakRe = regexp.MustCompile(`\n\s*\n+`)
)

// Clean removes bracketed annotations, collapses every whitespace run to a
// single space and trims the result.
func Clean(text string) string {
	text = bracketRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// Segment splits cleaned text into units of at least minLength characters.
//
// With chunkSize > 0 the text is split into sentences and grouped into
// windows of chunkSize sentences; the length filter applies to whole windows,
// so a short trailing sentence survives when its window is long enough.
// With chunkSize <= 0 the text is split on blank lines instead.
func Segment(text string, minLength, chunkSize int) []string {
	var units []string
	if chunkSize > 0 {
		units = Chunk(SplitSentences(text), chunkSize)
	} else {
		units = SplitParagraphs(text)
	}

	out := make([]string, 0, len(units))
	for _, u := range units {
		u = strings.TrimSpace(u)
		if u == "" || utf8.RuneCountInString(u) < minLength {
			continue
		}
		out = append(out, u)
	}
	return out
}

// SplitSentences breaks text after '.', '!' or '?' when followed by
// whitespace. Empty sentences are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		sentences = appendTrimmed(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	return appendTrimmed(sentences, text[start:])
}

// SplitParagraphs splits text on one or more blank lines.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range paragraphBreakRe.Split(text, -1) {
		paragraphs = appendTrimmed(paragraphs, p)
	}
	return paragraphs
}

// Chunk joins consecutive sentences into windows of size n. The last window
// may be shorter.
func Chunk(sentences []string, n int) []string {
	if len(sentences) == 0 {
		return nil
	}
	if n <= 0 {
		return []string{strings.Join(sentences, " ")}
	}
	chunks := make([]string, 0, (len(sentences)+n-1)/n)
	for i := 0; i < len(sentences); i += n {
		end := min(i+n, len(sentences))
		chunks = append(chunks, strings.Join(sentences[i:end], " "))
	}
	return chunks
}

func appendTrimmed(dst []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		dst = append(dst, s)
	}
	return dst
}
