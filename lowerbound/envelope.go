package lowerbound

import "gonum.org/v1/gonum/floats"

// Envelope computes the rolling upper and lower envelope of s: for each
// position i, the maximum and minimum of s within the window
// [i-radius, i+radius]. A negative radius (or one covering the whole
// sequence) degenerates to the global maximum and minimum, matching an
// unconstrained DTW configuration.
//
// The sliding extrema are maintained with monotonic deques, so the whole
// envelope costs O(n) regardless of radius.
func Envelope(s []float64, radius int) (upper, lower []float64) {
	n := len(s)
	if n == 0 {
		return nil, nil
	}
	upper = make([]float64, n)
	lower = make([]float64, n)

	if radius < 0 || radius >= n {
		hi, lo := floats.Max(s), floats.Min(s)
		for i := range s {
			upper[i] = hi
			lower[i] = lo
		}
		return upper, lower
	}

	slidingExtrema(s, radius, upper, func(a, b float64) bool { return a <= b })
	slidingExtrema(s, radius, lower, func(a, b float64) bool { return a >= b })
	return upper, lower
}

// slidingExtrema fills out[i] with the window extremum of s over
// [i-radius, i+radius]. evict reports whether a deque tail value a is
// superseded by an incoming value b.
func slidingExtrema(s []float64, radius int, out []float64, evict func(a, b float64) bool) {
	n := len(s)
	dq := make([]int, 0, n)
	next := 0
	for i := 0; i < n; i++ {
		hi := i + radius
		if hi > n-1 {
			hi = n - 1
		}
		for ; next <= hi; next++ {
			for len(dq) > 0 && evict(s[dq[len(dq)-1]], s[next]) {
				dq = dq[:len(dq)-1]
			}
			dq = append(dq, next)
		}
		for dq[0] < i-radius {
			dq = dq[1:]
		}
		out[i] = s[dq[0]]
	}
}
