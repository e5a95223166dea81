package lowerbound

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Kim is the endpoint bound: the rooted sum of squared differences of the
// two sequences' first and last element pairs. O(1). Every complete
// alignment contains the (0,0) cell and the final cell, so the bound
// never exceeds the DTW distance. Either side being empty yields zero
// (the trivial bound), mirroring the degenerate handling of package dtw.
func Kim(q, c []float64) float64 {
	if len(q) == 0 || len(c) == 0 {
		return 0
	}
	d0 := q[0] - c[0]
	sum := d0 * d0
	if len(q) > 1 || len(c) > 1 {
		dn := q[len(q)-1] - c[len(c)-1]
		sum += dn * dn
	}
	return math.Sqrt(sum)
}

// PAA is the aggregate-segment bound: both sequences are partitioned into
// equal-width contiguous segments (ceiling-divided width), each segment is
// averaged, and the squared differences of segment averages are
// accumulated weighted by segment length. Requires equal-length inputs.
// O(n).
//
// PAA lower-bounds the pointwise alignment (the Euclidean distance,
// equivalently DTW under Band(0)). Once warping is allowed it is no
// longer a valid bound, which is why the cascade's aggregate stage uses
// a range-based form instead.
func PAA(q, c []float64, segments int) (float64, error) {
	if len(q) != len(c) {
		return 0, &ErrLengthMismatch{Query: len(q), Candidate: len(c)}
	}
	n := len(q)
	if n == 0 {
		return 0, nil
	}
	if segments < 1 {
		segments = 1
	}
	if segments > n {
		segments = n
	}
	width := (n + segments - 1) / segments

	var sum float64
	for start := 0; start < n; start += width {
		end := start + width
		if end > n {
			end = n
		}
		w := float64(end - start)
		d := floats.Sum(q[start:end])/w - floats.Sum(c[start:end])/w
		sum += w * d * d
	}
	return math.Sqrt(sum), nil
}

// Keogh is the envelope bound: the rooted sum of squared excursions of q
// outside the rolling envelope of c built with the given band radius.
// The radius must match the DTW configuration's band radius for the bound
// to stay below the constrained DTW distance; pass a negative radius for
// an unconstrained configuration (global min/max envelope). Requires
// equal-length inputs. O(n).
func Keogh(q, c []float64, radius int) (float64, error) {
	if len(q) != len(c) {
		return 0, &ErrLengthMismatch{Query: len(q), Candidate: len(c)}
	}
	if len(q) == 0 {
		return 0, nil
	}
	upper, lower := Envelope(c, radius)
	return math.Sqrt(keoghSquared(q, upper, lower)), nil
}

// Improved is the symmetric envelope bound: the maximum of the Keogh
// bound computed in both directions. It is never looser than either
// one-directional bound.
func Improved(q, c []float64, radius int) (float64, error) {
	if len(q) != len(c) {
		return 0, &ErrLengthMismatch{Query: len(q), Candidate: len(c)}
	}
	if len(q) == 0 {
		return 0, nil
	}
	uq, lq := Envelope(q, radius)
	uc, lc := Envelope(c, radius)
	return math.Sqrt(math.Max(keoghSquared(q, uc, lc), keoghSquared(c, uq, lq))), nil
}

// keoghSquared accumulates squared excursions of q outside the envelope.
func keoghSquared(q, upper, lower []float64) float64 {
	var sum float64
	for i, v := range q {
		switch {
		case v > upper[i]:
			d := v - upper[i]
			sum += d * d
		case v < lower[i]:
			d := lower[i] - v
			sum += d * d
		}
	}
	return sum
}
