package dataset

import (
	"math/rand/v2"

	"github.com/ppiankov/speechset/internal/model"
)

// Sample draws n rows without replacement using a PCG source seeded with
// seed, returning them in draw order. n <= 0 returns rows unchanged and n is
// capped at len(rows).
func Sample(rows []model.DatasetRow, n int, seed uint64) []model.DatasetRow {
	if n <= 0 {
		return rows
	}
	n = min(n, len(rows))

	r := rand.New(rand.NewPCG(seed, seed))
	perm := r.Perm(len(rows))

	out := make([]model.DatasetRow, n)
	for i, j := range perm[:n] {
		out[i] = rows[j]
	}
	return out
}
