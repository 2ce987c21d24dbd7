package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deriveFrom(t *testing.T, page string) (speaker, year string) {
	t.Helper()
	doc, err := ParseHTML(page)
	require.NoError(t, err)
	d := NewMetadataDeriver("", nil)
	return d.DeriveSpeaker(doc), d.DeriveYear(doc)
}

func TestDeriveSpeaker(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "people link",
			page: `<h1>Address by Someone Else</h1>
				<a href="/people/president/x"><img src="x.png"></a>
				<a href="/people/president/abraham-lincoln"> Abraham   Lincoln </a>`,
			want: "Abraham Lincoln",
		},
		{
			name: "heading byline",
			page: `<h1>Address to the Nation BY President Lincoln</h1>`,
			want: "President Lincoln",
		},
		{
			name: "heading without byline",
			page: `<h1>Inaugural Address</h1>`,
			want: "",
		},
		{
			name: "nothing",
			page: `<p>No heading</p>`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speaker, _ := deriveFrom(t, tt.page)
			assert.Equal(t, tt.want, speaker)
		})
	}
}

func TestDeriveYear(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "date selector",
			page: `<span class="date-display-single">January 20, 2021</span>`,
			want: "2021",
		},
		{
			name: "blank selector skipped",
			page: `<span class="doc-date"> </span><span class="field--name-field-date">July 4, 1976</span>`,
			want: "1976",
		},
		{
			name: "page text",
			page: `<p>Delivered on March 4, 1933 in Washington.</p>`,
			want: "1933",
		},
		{
			name: "selector wins without a year",
			page: `<span class="doc-date">Undated</span><p>March 4, 1933</p>`,
			want: "",
		},
		{
			name: "year outside range",
			page: `<p>Signed July 4, 1776.</p>`,
			want: "",
		},
		{
			name: "nothing",
			page: `<p>No date here</p>`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, year := deriveFrom(t, tt.page)
			assert.Equal(t, tt.want, year)
		})
	}
}

func TestMetadataDeriver_Derive(t *testing.T) {
	page := `<h1>Remarks</h1>
		<a href="/people/president/harry-s-truman">Harry S. Truman</a>
		<div class="field-docs-start-date-time"><span class="date-display-single">March 12, 1947</span></div>`

	meta, err := NewMetadataDeriver("", nil).Derive(page, "https://www.presidency.ucsb.edu/documents/special-message-the-congress-greece-and-turkey")
	require.NoError(t, err)
	assert.Equal(t, "special-message-the-congress-greece-and-turkey.txt", meta.FileName)
	assert.Equal(t, "Harry S. Truman", meta.Speaker)
	assert.Equal(t, "1947", meta.Year)
}
