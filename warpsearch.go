package warpsearch

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/hupe1980/warpsearch/dtw"
	"github.com/hupe1980/warpsearch/lowerbound"
	"github.com/hupe1980/warpsearch/queue"
)

// Result is one neighbor: the candidate's index in the dataset and its
// DTW distance to the query. Result lists are ordered ascending by
// distance, index as tie-break, regardless of execution mode.
type Result struct {
	Index    int
	Distance float64
}

// Engine performs DTW similarity search. It is immutable after
// construction and safe for concurrent use; every search call owns its
// own scratch state.
type Engine struct {
	opts options

	// lbRadius is the envelope radius handed to the cascade. It matches
	// the band radius of the configured constraint; unconstrained and
	// parallelogram configurations use the global envelope (-1), which
	// stays sound because their reachable regions are supersets of any
	// band.
	lbRadius int
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{opts: o, lbRadius: -1}
	if r, ok := o.constraint.BandRadius(); ok {
		e.lbRadius = r
	}
	return e
}

// ComputeDistance returns the DTW distance between a and b under the
// engine's constraint. Used directly by clustering and classification
// callers needing a single pairwise distance.
func (e *Engine) ComputeDistance(a, b []float64) float64 {
	return dtw.Distance(a, b, e.opts.constraint)
}

// ComputeDistanceWithPath returns the DTW distance and the optimal
// warping alignment. Used by centroid and averaging procedures that need
// the alignment, not just its cost.
func (e *Engine) ComputeDistanceWithPath(a, b []float64) (float64, dtw.Path) {
	return dtw.DistanceWithPath(a, b, e.opts.constraint)
}

// ComputeDistanceMulti returns the DTW distance between two multivariate
// sequences under the engine's constraint.
func (e *Engine) ComputeDistanceMulti(a, b [][]float64) (float64, error) {
	return dtw.DistanceMulti(a, b, e.opts.constraint)
}

// KNearest returns the k candidates of dataset closest to query,
// ascending by distance. k is clamped to the dataset size; a non-positive
// k is an error and an empty dataset yields an empty result.
func (e *Engine) KNearest(ctx context.Context, query []float64, dataset [][]float64, k int) ([]Result, error) {
	return e.knearest(ctx, query, dataset, k, true)
}

func (e *Engine) knearest(ctx context.Context, query []float64, dataset [][]float64, k int, allowParallel bool) ([]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(dataset) == 0 {
		return []Result{}, nil
	}
	if k > len(dataset) {
		k = len(dataset)
	}

	start := time.Now()
	var (
		results []Result
		st      SearchStats
		err     error
	)
	if allowParallel && e.opts.parallel && e.workers() > 1 && len(dataset) > 1 {
		results, st, err = e.knnParallel(ctx, query, dataset, k)
	} else {
		best := queue.NewBestSet(k)
		if err = e.scanKNN(ctx, query, dataset, 0, best, &st); err == nil {
			results = toResults(best.Drain())
		}
	}
	if err != nil {
		return nil, err
	}

	st.Duration = time.Since(start)
	e.opts.stats.RecordSearch(st)
	e.opts.logger.Debug("knn search complete",
		"k", k,
		"candidates", st.Comparisons,
		"dtw_evals", st.DTWEvaluations,
		"pruned", st.Pruned(),
		"duration", st.Duration,
	)
	return results, nil
}

// RadiusSearch returns every candidate whose DTW distance to query is at
// most radius, ascending by distance. The radius is the pruning threshold
// for every candidate from the start; no warm-up phase is needed.
func (e *Engine) RadiusSearch(ctx context.Context, query []float64, dataset [][]float64, radius float64) ([]Result, error) {
	if radius < 0 {
		return nil, ErrInvalidRadius
	}
	if len(dataset) == 0 {
		return []Result{}, nil
	}

	start := time.Now()
	var st SearchStats
	// Candidates at exactly radius belong to the result set, so the
	// cascade prunes strictly above it.
	cascadeThr := math.Nextafter(radius, math.Inf(1))

	var hits []Result
	for i, cand := range dataset {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st.Comparisons++
		if e.opts.useLowerBounds {
			if _, level := lowerbound.Cascade(query, cand, e.lbRadius, cascadeThr); level != lowerbound.LevelNone {
				st.prune(level)
				continue
			}
		}
		st.DTWEvaluations++
		if d, ok := dtw.DistanceWithin(query, cand, e.opts.constraint, radius); ok {
			hits = append(hits, Result{Index: i, Distance: d})
		}
	}
	sortResults(hits)

	st.Duration = time.Since(start)
	e.opts.stats.RecordSearch(st)
	e.opts.logger.Debug("radius search complete",
		"radius", radius,
		"hits", len(hits),
		"candidates", st.Comparisons,
		"dtw_evals", st.DTWEvaluations,
		"pruned", st.Pruned(),
		"duration", st.Duration,
	)
	if hits == nil {
		hits = []Result{}
	}
	return hits, nil
}

// scanKNN runs the sequential bound-then-evaluate loop over one chunk of
// the dataset, offering survivors to best. base is the dataset index of
// chunk[0]. The caller owns best and st exclusively for the duration of
// the scan.
func (e *Engine) scanKNN(ctx context.Context, query []float64, chunk [][]float64, base int, best *queue.BestSet, st *SearchStats) error {
	for i, cand := range chunk {
		if err := ctx.Err(); err != nil {
			return err
		}
		st.Comparisons++
		worst := best.Worst()

		// Until the set holds k entries there is no threshold to prune
		// against; every candidate gets a full evaluation.
		if math.IsInf(worst, 1) {
			st.DTWEvaluations++
			best.Push(base+i, dtw.Distance(query, cand, e.opts.constraint))
			continue
		}

		if e.opts.useLowerBounds {
			// Strictly-above threshold: a candidate at exactly the
			// current worst distance can still win its index tie-break.
			thr := math.Nextafter(worst, math.Inf(1))
			if _, level := lowerbound.Cascade(query, cand, e.lbRadius, thr); level != lowerbound.LevelNone {
				st.prune(level)
				continue
			}
		}
		st.DTWEvaluations++
		if d, ok := dtw.DistanceWithin(query, cand, e.opts.constraint, worst); ok {
			best.Push(base+i, d)
		}
	}
	return nil
}

func (e *Engine) workers() int {
	if e.opts.numWorkers < 1 {
		return 1
	}
	return e.opts.numWorkers
}

func toResults(items []queue.Item) []Result {
	out := make([]Result, len(items))
	for i, it := range items {
		out[i] = Result{Index: it.Index, Distance: it.Distance}
	}
	return out
}

func sortResults(rs []Result) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Distance != rs[j].Distance {
			return rs[i].Distance < rs[j].Distance
		}
		return rs[i].Index < rs[j].Index
	})
}
