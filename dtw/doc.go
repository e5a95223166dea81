// Package dtw implements Dynamic Time Warping distance computation for
// numeric sequences.
//
// DTW measures similarity between two sequences that may vary in speed by
// finding the minimum-cost monotonic alignment between them. The package
// supports unconstrained alignment as well as Sakoe-Chiba band and Itakura
// parallelogram global constraints, optional path recovery, and an
// early-abandoning variant used by the search layer.
//
// All distances follow the rooted convention: the local cost of aligning
// two elements is their squared difference, and the returned distance is
// the square root of the accumulated cost along the optimal path. The
// lower bounds in package lowerbound are calibrated to the same convention.
package dtw
