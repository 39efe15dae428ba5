package signal

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AnalyzeBatch analyzes every input with at most the configured number of
// analyses in flight. Results keep the order of inputs; a failing input
// yields a Result with Error set and does not affect the others.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []string) []Result {
	results := make([]Result, len(inputs))
	var g errgroup.Group
	g.SetLimit(a.maxConcurrency)
	for i, in := range inputs {
		g.Go(func() error {
			results[i] = a.Analyze(ctx, in)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
