package dataset

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/speechset/internal/model"
)

func rowsN(n int) []model.DatasetRow {
	rows := make([]model.DatasetRow, n)
	for i := range rows {
		rows[i].ID = "doc-" + strconv.Itoa(i+1)
	}
	return rows
}

func ids(rows []model.DatasetRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestSample(t *testing.T) {
	rows := rowsN(20)

	got := Sample(rows, 5, 42)
	assert.Len(t, got, 5)
	assert.Equal(t, ids(got), ids(Sample(rows, 5, 42)), "same seed, same sample")

	seen := map[string]bool{}
	for _, id := range ids(got) {
		assert.False(t, seen[id], "drawn without replacement")
		seen[id] = true
	}
}

func TestSample_Bounds(t *testing.T) {
	rows := rowsN(3)
	assert.Equal(t, rows, Sample(rows, 0, 1))
	assert.Equal(t, rows, Sample(rows, -1, 1))
	assert.ElementsMatch(t, ids(rows), ids(Sample(rows, 10, 1)))
	assert.Empty(t, Sample(nil, 3, 1))
}
