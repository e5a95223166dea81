// Package lowerbound provides cheap underestimates of the DTW distance and
// the pruning cascade that combines them.
//
// Each estimator returns a value calibrated to the rooted convention of
// package dtw (square root of accumulated squared cost), so estimator
// values and DTW distances compare directly against one threshold. The
// cascade evaluates estimators cheapest-first and short-circuits the
// moment any of them proves the distance exceeds the threshold, letting
// the search layer skip the full recurrence entirely.
package lowerbound
