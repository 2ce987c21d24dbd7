package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/speechset/internal/logger"
)

// Task handles one URL of a batch. index is zero-based.
type Task func(ctx context.Context, index int, url string) error

// BatchResult summarises a finished batch.
type BatchResult struct {
	Processed int
	Elapsed   time.Duration
}

// BatchProcessor runs a task over URLs one at a time, in order. The first
// failing URL aborts the batch.
type BatchProcessor struct {
	name string
	log  logger.Logger
	// progressEvery controls how often progress is logged at info level.
	progressEvery int
}

// NewBatchProcessor returns a processor whose log lines carry name.
func NewBatchProcessor(name string, log logger.Logger) *BatchProcessor {
	if log == nil {
		log = logger.NewNop()
	}
	return &BatchProcessor{name: name, log: log.With(logger.String("stage", name)), progressEvery: 10}
}

// ProcessURLs runs task for every URL and stops at the first error.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string, task Task) (*BatchResult, error) {
	start := time.Now()
	result := &BatchResult{}

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%s: %w", b.name, err)
		}
		if err := task(ctx, i, url); err != nil {
			b.log.Error("Batch aborted", logger.String("url", url), logger.Int("index", i), logger.Error(err))
			return result, fmt.Errorf("%s %s: %w", b.name, url, err)
		}
		result.Processed++
		if result.Processed%b.progressEvery == 0 || result.Processed == len(urls) {
			b.log.Info("Batch progress", logger.Int("done", result.Processed), logger.Int("total", len(urls)))
		}
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// ProcessFiles reads URL list files and runs task over the combined list.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string, task Task) (*BatchResult, error) {
	urls, err := ReadURLFiles(paths)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.ProcessURLs(ctx, urls, task)
}
