package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_PreferredSelector(t *testing.T) {
	page := `<html><head><title>Title</title></head><body>
	<article>Article text</article>
	<div class="field-docs-content">
		<p>Para one.</p>
		<p>Para <b>two</b> here.</p>
		<script>track()</script>
		<style>p { color: red }</style>
	</div></body></html>`

	text, err := ExtractText(page, "div.field-docs-content")
	require.NoError(t, err)
	assert.Equal(t, "Para one.\nPara\ntwo\nhere.", text)
}

func TestExtractText_FallbackChain(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "article",
			page: `<body><nav>Menu</nav><main>Main text</main><article><p>Article text</p></article></body>`,
			want: "Article text",
		},
		{
			name: "main",
			page: `<body><nav>Menu</nav><main><p>Main text</p></main></body>`,
			want: "Main text",
		},
		{
			name: "body",
			page: `<html><head><title>Ignored</title></head><body><nav>Menu</nav><p>Body text</p></body></html>`,
			want: "Menu\nBody text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractText(tt.page, "div.field-docs-content")
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestContentExtractor_EmptySelectorSkipsToFallback(t *testing.T) {
	c, err := NewContentExtractor(ContentOptions{}).Extract(`<article>Only article</article>`, "")
	require.NoError(t, err)
	assert.Equal(t, StrategyFallback, c.Strategy)
	assert.Equal(t, "article", c.Selector)
	assert.Equal(t, "Only article", c.Text)
}

func TestContentExtractor_WholePage(t *testing.T) {
	e := NewContentExtractor(ContentOptions{Selector: ".missing", FallbackSelectors: []string{}})

	c, err := e.Extract(`<html><head><title>Page title</title></head><body><p>Text</p></body></html>`, "")
	require.NoError(t, err)
	assert.Equal(t, StrategyPage, c.Strategy)
	assert.Equal(t, "Page title\nText", c.Text)
}

func TestContentExtractor_SelectorMatch(t *testing.T) {
	e := NewContentExtractor(ContentOptions{Selector: "div.field-docs-content", Readability: true})

	c, err := e.Extract(`<div class="field-docs-content">Speech</div>`, "https://example.com/documents/x")
	require.NoError(t, err)
	assert.Equal(t, StrategySelector, c.Strategy)
	assert.Equal(t, "Speech", c.Text)
}

func TestContentExtractor_Readability(t *testing.T) {
	paragraph := strings.Repeat("Fellow citizens, we gather today to renew the promise of our founding and to carry it forward. ", 8)
	page := `<html><head><title>Inaugural Address</title></head><body>
		<div class="sidebar"><a href="/a">Link</a> <a href="/b">Link</a></div>
		<div id="content">
			<p>` + paragraph + `</p>
			<p>` + paragraph + `</p>
			<p>` + paragraph + `</p>
		</div>
	</body></html>`

	e := NewContentExtractor(ContentOptions{Selector: ".missing", Readability: true})
	c, err := e.Extract(page, "https://example.com/documents/inaugural")
	require.NoError(t, err)
	assert.Equal(t, StrategyReadability, c.Strategy)
	assert.Contains(t, c.Text, "Fellow citizens")
}
