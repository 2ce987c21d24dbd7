package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.presidency.ucsb.edu/documents/inaugural-address-42", "inaugural-address-42.txt"},
		{"https://example.com/documents/Address%20Before%20Congress/", "address_20before_20congress.txt"},
		{"https://example.com/documents/caf%C3%A9-remarks", "caf_c3_a9-remarks.txt"},
		{"https://example.com/documents/a%2Fb", "a_2fb.txt"},
		{"https://example.com/documents/remarks.html", "remarks_html.txt"},
		{"https://example.com/documents/a--b__c", "a--b__c.txt"},
		{"https://example.com/", "speech.txt"},
		{"https://example.com/documents/!!!", "speech.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, FileNameFromURL(tt.url))
		})
	}
}
