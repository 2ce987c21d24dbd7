// Package validate gates an assembled dataset before annotation.
package validate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ppiankov/speechset/internal/dataset"
	"github.com/ppiankov/speechset/internal/model"
)

// ErrDatasetNotFound is returned by ValidateFile for a missing dataset file.
var ErrDatasetNotFound = errors.New("dataset not found")

// MissingColumnsError lists required columns absent from the dataset.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
}

// EmptyTextError counts rows whose text is empty or whitespace.
type EmptyTextError struct {
	Count int
}

func (e *EmptyTextError) Error() string {
	return fmt.Sprintf("empty text rows detected: %d", e.Count)
}

// DuplicateIDError counts id values that repeat an earlier row.
type DuplicateIDError struct {
	Count int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id values found: %d", e.Count)
}

// Report summarises a dataset that passed validation. Label counts are
// informational; a dataset with no labels passes.
type Report struct {
	Rows           int
	LabelColumns   []string
	NonEmptyLabels int
	PerLabel       map[string]int
}

// Validator checks a dataset table against the expected schema.
type Validator struct {
	labels []string
}

// NewValidator returns a validator for the given label columns. Empty
// means the default six.
func NewValidator(labelColumns []string) *Validator {
	if len(labelColumns) == 0 {
		labelColumns = model.DefaultLabelColumns
	}
	labels := append([]string(nil), labelColumns...)
	sort.Strings(labels)
	return &Validator{labels: labels}
}

// Validate runs, in order, the column, text and id checks and then counts
// filled labels. The first failing check is returned.
func (v *Validator) Validate(t *dataset.Table) (*Report, error) {
	if missing := v.missingColumns(t); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	textCol := t.Index("text")
	empty := 0
	for _, rec := range t.Records {
		if textCol >= len(rec) || strings.TrimSpace(rec[textCol]) == "" {
			empty++
		}
	}
	if empty > 0 {
		return nil, &EmptyTextError{Count: empty}
	}

	seen := make(map[string]bool, len(t.Records))
	dups := 0
	for i := range t.Records {
		id := t.Value(i, "id")
		if seen[id] {
			dups++
		}
		seen[id] = true
	}
	if dups > 0 {
		return nil, &DuplicateIDError{Count: dups}
	}

	report := &Report{
		Rows:         len(t.Records),
		LabelColumns: v.labels,
		PerLabel:     make(map[string]int, len(v.labels)),
	}
	for _, label := range v.labels {
		n := 0
		for i := range t.Records {
			if isFilled(t.Value(i, label)) {
				n++
			}
		}
		report.PerLabel[label] = n
		report.NonEmptyLabels += n
	}
	return report, nil
}

func (v *Validator) missingColumns(t *dataset.Table) []string {
	present := make(map[string]bool, len(t.Header))
	for _, h := range t.Header {
		present[h] = true
	}
	var missing []string
	for _, col := range append(append([]string(nil), model.BaseColumns...), v.labels...) {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

func isFilled(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "nan")
}

// ValidateFile reads a dataset (.csv, or .xlsx written by the assembler)
// and validates it.
func (v *Validator) ValidateFile(path string) (*Report, error) {
	var (
		t   *dataset.Table
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		t, err = dataset.ReadXLSX(path)
	} else {
		t, err = dataset.ReadCSV(path)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return v.Validate(t)
}

// Render writes the pass report and a per-label table to w.
func (r *Report) Render(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Validation passed")
	_, _ = fmt.Fprintf(w, "Rows: %d\n", r.Rows)
	_, _ = fmt.Fprintf(w, "Label columns: %s\n", strings.Join(r.LabelColumns, ", "))
	_, _ = fmt.Fprintf(w, "Non-empty labels: %d\n", r.NonEmptyLabels)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Label", "Filled", "Empty"})
	for _, label := range r.LabelColumns {
		filled := r.PerLabel[label]
		tw.AppendRow(table.Row{label, filled, r.Rows - filled})
	}
	tw.AppendFooter(table.Row{"Total", r.NonEmptyLabels, r.Rows*len(r.LabelColumns) - r.NonEmptyLabels})
	tw.Render()
}
