// Package queue provides the bounded best-set used by neighbor search: a
// fixed-capacity max-oriented heap retaining the k smallest distances
// seen so far.
package queue

import (
	"container/heap"
	"math"
	"sort"
)

// Item is one search result held by a BestSet: a candidate's dataset
// index and its distance to the query.
type Item struct {
	Index    int
	Distance float64
}

// worse reports whether a should be evicted before b. Ties on distance
// are broken by dataset index, larger index first, so that among equal
// distances the set deterministically retains the smallest indices.
// Sequential and parallel search rely on this to return identical result
// sets.
func worse(a, b Item) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	return a.Index > b.Index
}

// Compile time check to ensure maxHeap satisfies the heap interface.
var _ heap.Interface = (*maxHeap)(nil)

type maxHeap []Item

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)        { *h = append(*h, x.(Item)) }

func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// BestSet is a bounded max-oriented priority structure of capacity k. It
// never holds more than k items after any public operation. A BestSet is
// owned by a single goroutine; it is created per query (or per worker
// partition), populated incrementally, and drained once at the end of a
// search.
type BestSet struct {
	k     int
	items maxHeap
}

// NewBestSet creates a BestSet retaining the k smallest distances.
// k must be positive.
func NewBestSet(k int) *BestSet {
	return &BestSet{k: k, items: make(maxHeap, 0, k)}
}

// Len returns the number of items currently held.
func (b *BestSet) Len() int { return len(b.items) }

// Full reports whether the set has reached its capacity.
func (b *BestSet) Full() bool { return len(b.items) >= b.k }

// Worst returns the largest distance currently retained, the live pruning
// threshold for the search. Until the set is full there is no threshold
// to prune against and Worst returns +Inf.
func (b *BestSet) Worst() float64 {
	if !b.Full() {
		return math.Inf(1)
	}
	return b.items[0].Distance
}

// Push offers a candidate to the set. When the set is full the offer is
// accepted only if it beats the current worst item, which is then
// evicted.
func (b *BestSet) Push(index int, distance float64) {
	it := Item{Index: index, Distance: distance}
	if !b.Full() {
		heap.Push(&b.items, it)
		return
	}
	if worse(b.items[0], it) {
		b.items[0] = it
		heap.Fix(&b.items, 0)
	}
}

// Merge offers every item of other to b. Used by the parallel merge step
// after all workers have completed.
func (b *BestSet) Merge(items []Item) {
	for _, it := range items {
		b.Push(it.Index, it.Distance)
	}
}

// Drain empties the set and returns its items sorted ascending by
// distance, index as tie-break. The set must not be reused afterwards.
func (b *BestSet) Drain() []Item {
	out := []Item(b.items)
	b.items = nil
	sort.Slice(out, func(i, j int) bool { return worse(out[j], out[i]) })
	return out
}
