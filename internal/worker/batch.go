package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/clauseguard/clauseguard/internal/model"
)

// Reviewer defines the interface for reviewing one contract document.
type Reviewer interface {
	ReviewText(ctx context.Context, documentID, text string) (*model.DocumentResult, error)
}

// ReviewJob reviews a single contract file
type ReviewJob struct {
	Path     string
	Reviewer Reviewer
}

// Execute executes the review job
func (j *ReviewJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &ReviewResult{Path: j.Path, Error: fmt.Errorf("read %s: %w", j.Path, err)}
	}

	result, err := j.Reviewer.ReviewText(ctx, filepath.Base(j.Path), string(data))
	if err != nil {
		return &ReviewResult{Path: j.Path, Error: err}
	}
	return &ReviewResult{Path: j.Path, Result: result}
}

// ReviewResult represents the result of a review job
type ReviewResult struct {
	Path   string
	Result *model.DocumentResult
	Error  error
}

// GetError returns the error from the review result
func (r *ReviewResult) GetError() error {
	return r.Error
}

// BatchProcessor reviews multiple contract files concurrently
type BatchProcessor struct {
	reviewer    Reviewer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(reviewer Reviewer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		reviewer:    reviewer,
		concurrency: concurrency,
	}
}

// ProcessFiles reviews the given files concurrently. Results come back
// sorted by path, not completion order, so batch output is stable.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*ReviewResult {
	if len(paths) == 0 {
		return []*ReviewResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ReviewJob{
			Path:     path,
			Reviewer: b.reviewer,
		})
	}

	results := pool.Wait()

	out := make([]*ReviewResult, 0, len(results))
	for _, result := range results {
		out = append(out, result.(*ReviewResult))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out
}

// ProcessDir reviews every .txt and .md file directly under dir.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*ReviewResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".txt", ".md":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	return b.ProcessFiles(ctx, paths), nil
}
