package dataset

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ppiankov/speechset/internal/model"
)

// WriteMetadata writes the metadata table.
func WriteMetadata(path string, rows []model.DocumentMetadata) error {
	t := &Table{Header: model.MetadataColumns, Records: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Records = append(t.Records, []string{r.FileName, r.URL, r.Speaker, r.Year})
	}
	return WriteCSV(path, t)
}

// MetadataIndex maps file names to their metadata row.
type MetadataIndex map[string]model.DocumentMetadata

// LoadMetadata reads the metadata table at path. A missing file, or a file
// without a file_name column, yields an empty index. When a file name
// repeats, the first row wins.
func LoadMetadata(path string) (MetadataIndex, error) {
	index := MetadataIndex{}
	if path == "" {
		return index, nil
	}

	t, err := ReadCSV(path)
	if errors.Is(err, fs.ErrNotExist) {
		return index, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}
	if t.Index("file_name") < 0 {
		return index, nil
	}

	for i := range t.Records {
		name := t.Value(i, "file_name")
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = model.DocumentMetadata{
			FileName: name,
			URL:      t.Value(i, "url"),
			Speaker:  t.Value(i, "speaker"),
			Year:     t.Value(i, "year"),
		}
	}
	return index, nil
}
