package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/speechset/internal/logger"
	"github.com/ppiankov/speechset/internal/model"
	"github.com/ppiankov/speechset/internal/segment"
)

// ErrNoDocuments is returned when the raw directory holds no .txt files.
var ErrNoDocuments = errors.New("no raw .txt files found")

// Options configure an Assembler.
type Options struct {
	RawDir       string
	CleanDir     string
	SegmentedDir string
	DatasetDir   string
	MetadataCSV  string

	MinLength      int
	ChunkSentences int
	SampleSize     int
	Seed           uint64
	LabelColumns   []string
	XLSX           bool
}

// OptionsFromConfig collects the assembler settings of cfg.
func OptionsFromConfig(cfg *model.Config) Options {
	return Options{
		RawDir:         cfg.Paths.RawDir,
		CleanDir:       cfg.Paths.CleanDir,
		SegmentedDir:   cfg.Paths.SegmentedDir,
		DatasetDir:     cfg.Paths.DatasetDir,
		MetadataCSV:    cfg.Paths.MetadataCSV,
		MinLength:      cfg.Segment.MinLength,
		ChunkSentences: cfg.Segment.ChunkSentences,
		SampleSize:     cfg.Dataset.SampleSize,
		Seed:           cfg.Dataset.Seed,
		LabelColumns:   cfg.Dataset.LabelColumns,
		XLSX:           cfg.Dataset.XLSX,
	}
}

// Result describes an assembled dataset.
type Result struct {
	Documents int
	Segments  int
	Rows      []model.DatasetRow
	CSVPath   string
	XLSXPath  string
}

// Assembler turns raw document text into the dataset table.
type Assembler struct {
	opts Options
	log  logger.Logger
}

// NewAssembler returns an assembler. Empty LabelColumns means the default
// six label columns.
func NewAssembler(opts Options, log logger.Logger) *Assembler {
	if len(opts.LabelColumns) == 0 {
		opts.LabelColumns = model.DefaultLabelColumns
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Assembler{opts: opts, log: log}
}

// Assemble cleans and segments every raw document in name order, joins the
// segments with document metadata, optionally samples the rows and writes
// the dataset.
func (a *Assembler) Assemble() (*Result, error) {
	files, err := RawFiles(a.opts.RawDir)
	if err != nil {
		return nil, err
	}

	meta, err := LoadMetadata(a.opts.MetadataCSV)
	if err != nil {
		return nil, err
	}
	if len(meta) == 0 {
		a.log.Warn("No metadata available, url/speaker/year left empty", logger.String("path", a.opts.MetadataCSV))
	}

	for _, dir := range []string{a.opts.CleanDir, a.opts.SegmentedDir, a.opts.DatasetDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	var segments []model.Segment
	for i, path := range files {
		docSegments, err := a.processDocument(i+1, path)
		if err != nil {
			return nil, err
		}
		segments = append(segments, docSegments...)
	}

	rows := Join(segments, meta, len(a.opts.LabelColumns))
	total := len(rows)
	rows = Sample(rows, a.opts.SampleSize, a.opts.Seed)

	res := &Result{
		Documents: len(files),
		Segments:  total,
		Rows:      rows,
		CSVPath:   filepath.Join(a.opts.DatasetDir, model.DatasetFile),
	}
	table := ToTable(rows, a.opts.LabelColumns)
	if err := WriteCSV(res.CSVPath, table); err != nil {
		return nil, fmt.Errorf("write dataset: %w", err)
	}
	if a.opts.XLSX {
		res.XLSXPath = filepath.Join(a.opts.DatasetDir, model.DatasetXLSX)
		if err := WriteXLSX(res.XLSXPath, table); err != nil {
			return nil, fmt.Errorf("write dataset workbook: %w", err)
		}
	}

	a.log.Info("Dataset assembled",
		logger.Int("documents", res.Documents),
		logger.Int("segments", res.Segments),
		logger.Int("rows", len(rows)),
		logger.String("path", res.CSVPath),
	)
	return res, nil
}

func (a *Assembler) processDocument(speechID int, path string) ([]model.Segment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)

	cleaned := segment.Clean(strings.ToValidUTF8(string(raw), ""))
	if err := os.WriteFile(filepath.Join(a.opts.CleanDir, name), []byte(cleaned), 0o644); err != nil {
		return nil, fmt.Errorf("write cleaned %s: %w", name, err)
	}

	units := segment.Segment(cleaned, a.opts.MinLength, a.opts.ChunkSentences)
	if err := os.WriteFile(filepath.Join(a.opts.SegmentedDir, name), []byte(strings.Join(units, "\n\n")), 0o644); err != nil {
		return nil, fmt.Errorf("write segmented %s: %w", name, err)
	}
	if len(units) == 0 {
		a.log.Warn("Document produced no segments", logger.String("file", name))
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	out := make([]model.Segment, 0, len(units))
	for i, text := range units {
		out = append(out, model.Segment{
			ID:        stem + "-" + strconv.Itoa(i+1),
			SpeechID:  speechID,
			FileName:  name,
			SegmentID: i + 1,
			Text:      text,
		})
	}
	return out, nil
}

// RawFiles lists the .txt files of dir sorted by name.
func RawFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list raw files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoDocuments)
	}
	sort.Strings(files)
	return files, nil
}

// Join left-joins segments with metadata on file name. Unmatched segments
// get empty url, speaker and year. Each row gets labels empty label values.
func Join(segments []model.Segment, meta MetadataIndex, labels int) []model.DatasetRow {
	rows := make([]model.DatasetRow, 0, len(segments))
	for _, s := range segments {
		m := meta[s.FileName]
		rows = append(rows, model.DatasetRow{
			Segment: s,
			URL:     m.URL,
			Speaker: m.Speaker,
			Year:    m.Year,
			Labels:  make([]string, labels),
		})
	}
	return rows
}

// Columns returns the dataset header for the given label columns.
func Columns(labelColumns []string) []string {
	cols := make([]string, 0, len(model.BaseColumns)+len(labelColumns))
	cols = append(cols, model.BaseColumns...)
	return append(cols, labelColumns...)
}

// ToTable renders rows in dataset column order.
func ToTable(rows []model.DatasetRow, labelColumns []string) *Table {
	t := &Table{Header: Columns(labelColumns), Records: make([][]string, 0, len(rows))}
	for _, r := range rows {
		rec := []string{
			r.ID,
			strconv.Itoa(r.SpeechID),
			r.FileName,
			strconv.Itoa(r.SegmentID),
			r.Text,
			r.URL,
			r.Speaker,
			r.Year,
		}
		for i := range labelColumns {
			var v string
			if i < len(r.Labels) {
				v = r.Labels[i]
			}
			rec = append(rec, v)
		}
		t.Records = append(t.Records, rec)
	}
	return t
}
