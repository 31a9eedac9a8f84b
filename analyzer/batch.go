package analyzer

import (
	"context"
	"path/filepath"

	"github.com/abiiranathan/docsearch/document"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// FileResult is the outcome of analyzing one file. A failure is local to its
// file: Err is set, Document carries a failed-analysis placeholder so that
// document counts stay accurate, and the rest of the batch is unaffected.
type FileResult struct {
	Path     string
	Document document.Document
	Err      error
}

// AnalyzeAll analyzes the given files, at most maxConcurrency at a time.
// Results are returned in input order. The batch itself never fails; check
// each FileResult's Err.
func (c *Client) AnalyzeAll(ctx context.Context, paths []string, maxConcurrency int) []FileResult {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	results := make([]FileResult, len(paths))
	semaphore := make(chan struct{}, maxConcurrency)

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path

		semaphore <- struct{}{}
		g.Go(func() error {
			defer func() { <-semaphore }()

			resp, err := c.AnalyzeDocument(ctx, path)
			if err != nil {
				results[i] = FileResult{
					Path: path,
					Err:  err,
					Document: document.Document{
						ID:       uuid.NewString(),
						Name:     filepath.Base(path),
						Analysis: document.Analysis{Status: document.AnalysisFailed, Err: err.Error()},
					},
				}
				return nil
			}
			results[i] = FileResult{Path: path, Document: resp.Document()}
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()
	return results
}

// Documents collects the documents of all results, including the failed
// placeholders, ready to hand to a search engine snapshot.
func Documents(results []FileResult) []document.Document {
	docs := make([]document.Document, 0, len(results))
	for _, r := range results {
		docs = append(docs, r.Document)
	}
	return docs
}
