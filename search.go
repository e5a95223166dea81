// Package warpsearch provides DTW similarity search over time series.
//
// This file implements a fluent search API over KNearest and RadiusSearch.
package warpsearch

import (
	"context"
	"errors"
)

// ErrNoResult is returned by First when the search matches nothing.
var ErrNoResult = errors.New("no result")

// Search creates a fluent search builder for the given query against
// dataset.
//
// Example:
//
//	results, err := engine.Search(query, dataset).KNN(10).Execute(ctx)
//
//	nearest, err := engine.Search(query, dataset).First(ctx)
//
//	within, err := engine.Search(query, dataset).Within(2.5).Execute(ctx)
func (e *Engine) Search(query []float64, dataset [][]float64) *SearchBuilder {
	return &SearchBuilder{
		engine:  e,
		query:   query,
		dataset: dataset,
		k:       10, // Default k
	}
}

// SearchBuilder is a fluent builder for constructing search queries.
type SearchBuilder struct {
	engine   *Engine
	query    []float64
	dataset  [][]float64
	k        int
	radius   float64
	byRadius bool
}

// KNN selects top-k mode with the given number of nearest neighbors.
func (sb *SearchBuilder) KNN(k int) *SearchBuilder {
	sb.k = k
	sb.byRadius = false
	return sb
}

// Within selects radius mode: every candidate within the given DTW
// distance is returned.
func (sb *SearchBuilder) Within(radius float64) *SearchBuilder {
	sb.radius = radius
	sb.byRadius = true
	return sb
}

// Execute runs the search and returns the results.
func (sb *SearchBuilder) Execute(ctx context.Context) ([]Result, error) {
	if sb.byRadius {
		return sb.engine.RadiusSearch(ctx, sb.query, sb.dataset, sb.radius)
	}
	return sb.engine.KNearest(ctx, sb.query, sb.dataset, sb.k)
}

// MustExecute runs the search, panicking on error.
// Use this only in tests or when you're certain the query is valid.
func (sb *SearchBuilder) MustExecute(ctx context.Context) []Result {
	results, err := sb.Execute(ctx)
	if err != nil {
		panic(err)
	}
	return results
}

// First returns only the nearest result, or ErrNoResult if none found.
func (sb *SearchBuilder) First(ctx context.Context) (Result, error) {
	if !sb.byRadius {
		sb.k = 1
	}
	results, err := sb.Execute(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(results) == 0 {
		return Result{}, ErrNoResult
	}
	return results[0], nil
}

// Count executes the search and returns the number of results.
func (sb *SearchBuilder) Count(ctx context.Context) (int, error) {
	results, err := sb.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// Exists checks if at least one result matches the search.
func (sb *SearchBuilder) Exists(ctx context.Context) (bool, error) {
	results, err := sb.Execute(ctx)
	if err != nil {
		return false, err
	}
	return len(results) > 0, nil
}
