package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/speechset/internal/model"
)

const longParagraph = "We hold these truths to be self-evident, and we gather here [applause] to renew them together."

func testOptions(t *testing.T) Options {
	t.Helper()
	root := t.TempDir()
	return Options{
		RawDir:       filepath.Join(root, "raw"),
		CleanDir:     filepath.Join(root, "cleaned"),
		SegmentedDir: filepath.Join(root, "segmented"),
		DatasetDir:   filepath.Join(root, "dataset"),
		MetadataCSV:  filepath.Join(root, "metadata", "speeches_metadata.csv"),
		MinLength:    50,
		Seed:         42,
	}
}

func writeRaw(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestAssemble_TwoDocumentsWithMetadata(t *testing.T) {
	opts := testOptions(t)
	writeRaw(t, opts.RawDir, "second-address.txt", longParagraph)
	writeRaw(t, opts.RawDir, "first-address.txt", longParagraph+"\n"+longParagraph)
	require.NoError(t, WriteMetadata(opts.MetadataCSV, []model.DocumentMetadata{
		{FileName: "first-address.txt", URL: "https://example.com/documents/first-address", Speaker: "Abraham Lincoln", Year: "1861"},
		{FileName: "second-address.txt", URL: "https://example.com/documents/second-address", Speaker: "Abraham Lincoln", Year: "1865"},
	}))

	res, err := NewAssembler(opts, nil).Assemble()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Documents)
	require.Len(t, res.Rows, 2)

	first := res.Rows[0]
	assert.Equal(t, "first-address-1", first.ID)
	assert.Equal(t, 1, first.SpeechID)
	assert.Equal(t, 1, first.SegmentID)
	assert.Equal(t, "1861", first.Year)
	assert.Equal(t, "second-address-1", res.Rows[1].ID)
	assert.Equal(t, 2, res.Rows[1].SpeechID)
	assert.NotContains(t, first.Text, "[applause]")

	table, err := ReadCSV(res.CSVPath)
	require.NoError(t, err)
	assert.Equal(t, Columns(model.DefaultLabelColumns), table.Header)
	require.Len(t, table.Records, 2)
	for i := range table.Records {
		assert.NotEmpty(t, table.Value(i, "speaker"))
		for _, label := range model.DefaultLabelColumns {
			assert.Empty(t, table.Value(i, label))
		}
	}

	cleaned, err := os.ReadFile(filepath.Join(opts.CleanDir, "first-address.txt"))
	require.NoError(t, err)
	assert.NotContains(t, string(cleaned), "\n")
	assert.FileExists(t, filepath.Join(opts.SegmentedDir, "second-address.txt"))
}

func TestAssemble_SentenceChunks(t *testing.T) {
	opts := testOptions(t)
	opts.MinLength = 0
	opts.ChunkSentences = 2
	writeRaw(t, opts.RawDir, "remarks.txt", "One. Two. Three. Four. Five.")

	res, err := NewAssembler(opts, nil).Assemble()
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "remarks-3", res.Rows[2].ID)
	assert.Equal(t, "Five.", res.Rows[2].Text)

	segmented, err := os.ReadFile(filepath.Join(opts.SegmentedDir, "remarks.txt"))
	require.NoError(t, err)
	assert.Equal(t, "One. Two.\n\nThree. Four.\n\nFive.", string(segmented))
}

func TestAssemble_WithoutMetadata(t *testing.T) {
	opts := testOptions(t)
	writeRaw(t, opts.RawDir, "speech.txt", longParagraph)

	res, err := NewAssembler(opts, nil).Assemble()
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Empty(t, res.Rows[0].URL)
	assert.Empty(t, res.Rows[0].Speaker)
	assert.Empty(t, res.Rows[0].Year)
}

func TestAssemble_NoRawFiles(t *testing.T) {
	opts := testOptions(t)
	writeRaw(t, opts.RawDir, "notes.md", "not a speech")

	_, err := NewAssembler(opts, nil).Assemble()
	assert.True(t, errors.Is(err, ErrNoDocuments))
}

func TestAssemble_Reproducible(t *testing.T) {
	opts := testOptions(t)
	opts.MinLength = 10
	opts.ChunkSentences = 1
	opts.SampleSize = 4
	opts.XLSX = true
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeRaw(t, opts.RawDir, name, strings.Repeat("This is one sentence of text. ", 3))
	}

	res, err := NewAssembler(opts, nil).Assemble()
	require.NoError(t, err)
	assert.Equal(t, 9, res.Segments)
	assert.Len(t, res.Rows, 4)
	first, err := os.ReadFile(res.CSVPath)
	require.NoError(t, err)

	_, err = NewAssembler(opts, nil).Assemble()
	require.NoError(t, err)
	second, err := os.ReadFile(res.CSVPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	book, err := ReadXLSX(res.XLSXPath)
	require.NoError(t, err)
	assert.Equal(t, Columns(model.DefaultLabelColumns), book.Header)
	assert.Len(t, book.Records, 4)
}

func TestAssemble_CustomLabels(t *testing.T) {
	opts := testOptions(t)
	opts.LabelColumns = []string{"stance"}
	writeRaw(t, opts.RawDir, "speech.txt", longParagraph)

	res, err := NewAssembler(opts, nil).Assemble()
	require.NoError(t, err)
	table, err := ReadCSV(res.CSVPath)
	require.NoError(t, err)
	assert.Equal(t, "stance", table.Header[len(table.Header)-1])
	assert.Len(t, table.Header, len(model.BaseColumns)+1)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(model.DefaultConfig())
	assert.Equal(t, "data/raw", opts.RawDir)
	assert.Equal(t, 50, opts.MinLength)
	assert.Equal(t, 1, opts.ChunkSentences)
	assert.Equal(t, uint64(42), opts.Seed)
}
