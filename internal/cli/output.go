package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ppiankov/speechset/internal/dataset"
	"github.com/ppiankov/speechset/internal/model"
	"github.com/ppiankov/speechset/internal/worker"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderGroups(w io.Writer, groups []model.URLGroup) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Group", "URLs"})
	total := 0
	for _, g := range groups {
		t.AppendRow(table.Row{g.Name, len(g.URLs)})
		total += len(g.URLs)
	}
	t.AppendFooter(table.Row{"Total", total})
	t.Render()
}

func renderBatch(w io.Writer, name string, res *worker.BatchResult) {
	fmt.Fprintf(w, "%s: %d documents in %s\n", name, res.Processed, res.Elapsed.Round(time.Millisecond))
}

func renderMetadata(w io.Writer, rows []model.DocumentMetadata) {
	var speakers, years int
	for _, r := range rows {
		if r.Speaker != "" {
			speakers++
		}
		if r.Year != "" {
			years++
		}
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Documents", "With speaker", "With year"})
	t.AppendRow(table.Row{len(rows), speakers, years})
	t.Render()
}

func renderDataset(w io.Writer, res *dataset.Result) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Documents", "Segments", "Rows", "CSV", "XLSX"})
	t.AppendRow(table.Row{res.Documents, res.Segments, len(res.Rows), res.CSVPath, res.XLSXPath})
	t.Render()
}
