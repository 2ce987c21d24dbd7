package model

// DocumentMetadata describes one fetched document, keyed by FileName.
// Speaker and Year are empty when they could not be derived.
type DocumentMetadata struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
	Speaker  string `json:"speaker"`
	Year     string `json:"year"`
}

// MetadataColumns is the header of the metadata table.
var MetadataColumns = []string{"file_name", "url", "speaker", "year"}

// Segment is one labelable unit of text.
type Segment struct {
	ID        string `json:"id"`
	SpeechID  int    `json:"speech_id"`
	FileName  string `json:"file_name"`
	SegmentID int    `json:"segment_id"`
	Text      string `json:"text"`
}

// DatasetRow is a segment joined with its document metadata plus the
// annotation columns, in label column order.
type DatasetRow struct {
	Segment
	URL     string   `json:"url"`
	Speaker string   `json:"speaker"`
	Year    string   `json:"year"`
	Labels  []string `json:"labels"`
}

// URLGroup is a named, ordered list of document URLs.
type URLGroup struct {
	Name string
	URLs []string
}
