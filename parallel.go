package warpsearch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/warpsearch/queue"
)

// knnParallel partitions the dataset into contiguous chunks, one per
// worker, and runs the sequential scan independently on each chunk. Every
// worker owns a local best-set and prunes only against its own locally
// best threshold; this does strictly less pruning than the sequential
// path, but the merged result set is identical because each worker still
// computes the true distance for every candidate it cannot prune locally
// and the final merge is exact. The merge runs only after all workers
// have joined.
func (e *Engine) knnParallel(ctx context.Context, query []float64, dataset [][]float64, k int) ([]Result, SearchStats, error) {
	n := len(dataset)
	workers := e.workers()
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	partials := make([][]queue.Item, workers)
	partStats := make([]SearchStats, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			best := queue.NewBestSet(k)
			if err := e.scanKNN(gctx, query, dataset[start:end], start, best, &partStats[w]); err != nil {
				return err
			}
			partials[w] = best.Drain()
			return nil
		})
	}
	// First failure cancels gctx; remaining workers observe it and bail
	// out, and Wait does not return before all of them have.
	if err := g.Wait(); err != nil {
		return nil, SearchStats{}, err
	}

	global := queue.NewBestSet(k)
	var st SearchStats
	for w := range partials {
		global.Merge(partials[w])
		st.merge(partStats[w])
	}
	return toResults(global.Drain()), st, nil
}

// BatchKNearest runs KNearest independently for every query and returns
// one result list per query, in input order. In parallel mode each worker
// owns one whole query's search end to end; no merge step is needed
// beyond collecting the per-query lists.
func (e *Engine) BatchKNearest(ctx context.Context, queries [][]float64, dataset [][]float64, k int) ([][]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	out := make([][]Result, len(queries))

	if !e.opts.parallel || e.workers() < 2 || len(queries) < 2 {
		for i, q := range queries {
			r, err := e.knearest(ctx, q, dataset, k, false)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())
	for i, q := range queries {
		g.Go(func() error {
			r, err := e.knearest(gctx, q, dataset, k, false)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
