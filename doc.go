// Package warpsearch provides similarity search over collections of time
// series using Dynamic Time Warping (DTW) as the ground-truth distance.
//
// Exact DTW is quadratic per pair, so the engine accelerates search with a
// cascade of cheap lower-bound estimators (endpoint, aggregate-segment,
// envelope, and symmetric-improved bounds) that skip the full recurrence
// whenever a candidate provably cannot enter the result set, plus an
// early-abandoning DTW variant for the candidates that survive. Datasets
// and query batches can additionally be scanned with data-parallel
// workers; sequential and parallel execution return identical result
// sets.
//
// # Quick Start
//
//	ctx := context.Background()
//	engine := warpsearch.New(
//	    warpsearch.WithConstraint(dtw.Band(10)),
//	    warpsearch.WithParallel(true),
//	)
//
//	results, err := engine.KNearest(ctx, query, dataset, 5)
//	if err != nil {
//	    panic(err)
//	}
//	for _, r := range results {
//	    fmt.Println(r.Index, r.Distance)
//	}
//
// Or with the fluent builder:
//
//	results, err := engine.Search(query, dataset).KNN(5).Execute(ctx)
//	within, err := engine.Search(query, dataset).Within(2.5).Execute(ctx)
//
// # Search Modes
//
//   - KNearest: the k closest candidates, ascending by distance.
//   - RadiusSearch: every candidate within a fixed radius.
//   - BatchKNearest: independent k-NN per query, input order preserved.
//
// Pairwise distances and alignment paths for clustering or classification
// callers are exposed directly via ComputeDistance and
// ComputeDistanceWithPath.
package warpsearch
