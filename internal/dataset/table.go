// Package dataset reads and writes the flat tables of the pipeline and
// assembles the final labelable dataset.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is a header plus string records, the in-memory form of a CSV file.
type Table struct {
	Header  []string
	Records [][]string
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Value returns the named column of record i, or "" when the column is
// absent or the record is short.
func (t *Table) Value(i int, name string) string {
	col := t.Index(name)
	if col < 0 || col >= len(t.Records[i]) {
		return ""
	}
	return t.Records[i][col]
}

// ReadCSV reads a CSV file with a header row. Ragged rows are accepted.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return DecodeCSV(f)
}

// DecodeCSV reads a CSV stream with a header row.
func DecodeCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	// Strip a UTF-8 byte order mark written by spreadsheet tools.
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return &Table{Header: header, Records: records}, nil
}

// WriteCSV writes t to path, creating parent directories. Fields are quoted
// only when they contain a delimiter, quote or line break.
func WriteCSV(path string, t *Table) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close file: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(t.Records); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
