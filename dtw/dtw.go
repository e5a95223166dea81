package dtw

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Step is one cell of an alignment path, pairing index I of the first
// sequence with index J of the second.
type Step struct {
	I int
	J int
}

// Path is the optimal warping alignment, ordered from (0,0) to
// (len(a)-1, len(b)-1).
type Path []Step

// Distance computes the DTW distance between a and b under the given
// constraint, using two-row rolling storage (O(min-band) memory, no path).
//
// Sequences need not share a length. If one side is empty and the other is
// not, the distance degenerates to the Euclidean norm of the non-empty
// side; two empty sequences have distance zero. A constraint that leaves
// no complete alignment reachable (e.g. Band(0) on unequal lengths)
// yields +Inf.
func Distance(a, b []float64, c Constraint) float64 {
	if d, done := degenerate(a, b); done {
		return d
	}
	return math.Sqrt(squared(a, b, c, 0))
}

// DistanceWithin computes the DTW distance between a and b, abandoning the
// recurrence as soon as the distance provably exceeds threshold. It
// returns (distance, true) when the distance is at most threshold, and
// (0, false) otherwise.
//
// This is the variant the search layer uses behind its pruning cascade;
// Distance is the user-facing default.
func DistanceWithin(a, b []float64, c Constraint, threshold float64) (float64, bool) {
	if threshold < 0 {
		return 0, false
	}
	if d, done := degenerate(a, b); done {
		if d > threshold {
			return 0, false
		}
		return d, true
	}
	sq := squared(a, b, c, threshold*threshold)
	if math.IsInf(sq, 1) {
		return 0, false
	}
	d := math.Sqrt(sq)
	if d > threshold {
		return 0, false
	}
	return d, true
}

// DistanceWithPath computes the DTW distance and the optimal alignment
// path. It keeps the full cost matrix in memory for backtracking; callers
// that only need the distance should use Distance.
//
// When the constraint leaves no complete alignment reachable, the distance
// is +Inf and the path is nil.
func DistanceWithPath(a, b []float64, c Constraint) (float64, Path) {
	if d, done := degenerate(a, b); done {
		return d, nil
	}
	n, m := len(a), len(b)
	inf := math.Inf(1)

	dp := make([][]float64, n+1)
	for i := range dp {
		dp[i] = make([]float64, m+1)
		for j := range dp[i] {
			dp[i][j] = inf
		}
	}
	dp[0][0] = 0

	for i := 1; i <= n; i++ {
		lo, hi := c.rowBounds(i-1, n, m)
		for j := lo + 1; j <= hi+1; j++ {
			best := min3(dp[i-1][j], dp[i][j-1], dp[i-1][j-1])
			if math.IsInf(best, 1) {
				continue
			}
			d := a[i-1] - b[j-1]
			dp[i][j] = d*d + best
		}
	}

	total := dp[n][m]
	if math.IsInf(total, 1) {
		return inf, nil
	}
	return math.Sqrt(total), backtrack(dp, n, m)
}

// DistanceMulti computes the DTW distance between two multivariate
// sequences. Each element is a feature vector; the local cost is the
// squared Euclidean distance between element vectors. All elements of
// both sequences must share one feature width, otherwise an
// ErrDimensionMismatch is returned before any computation.
func DistanceMulti(a, b [][]float64, c Constraint) (float64, error) {
	if err := validateWidths(a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 && len(b) == 0 {
		return 0, nil
	}
	if len(a) == 0 {
		return normMulti(b), nil
	}
	if len(b) == 0 {
		return normMulti(a), nil
	}

	n, m := len(a), len(b)
	inf := math.Inf(1)
	prev := make([]float64, m+1)
	cur := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	for i := 1; i <= n; i++ {
		cur[0] = inf
		lo, hi := c.rowBounds(i-1, n, m)
		for j := 1; j <= m; j++ {
			if j-1 < lo || j-1 > hi {
				cur[j] = inf
				continue
			}
			best := min3(prev[j], cur[j-1], prev[j-1])
			if math.IsInf(best, 1) {
				cur[j] = inf
				continue
			}
			d := floats.Distance(a[i-1], b[j-1], 2)
			cur[j] = d*d + best
		}
		prev, cur = cur, prev
	}
	return math.Sqrt(prev[m]), nil
}

// squared runs the rolling two-row recurrence and returns the accumulated
// squared cost of the optimal alignment, or +Inf when no alignment is
// reachable under the constraint. When limit > 0 the recurrence abandons
// with +Inf as soon as every cell of a row exceeds limit: any complete
// alignment passes through every row, so its total cost can only grow
// from there.
func squared(a, b []float64, c Constraint, limit float64) float64 {
	n, m := len(a), len(b)
	inf := math.Inf(1)
	prev := make([]float64, m+1)
	cur := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	for i := 1; i <= n; i++ {
		cur[0] = inf
		lo, hi := c.rowBounds(i-1, n, m)
		rowMin := inf
		for j := 1; j <= m; j++ {
			if j-1 < lo || j-1 > hi {
				cur[j] = inf
				continue
			}
			best := min3(prev[j], cur[j-1], prev[j-1])
			if math.IsInf(best, 1) {
				cur[j] = inf
				continue
			}
			d := a[i-1] - b[j-1]
			cur[j] = d*d + best
			if cur[j] < rowMin {
				rowMin = cur[j]
			}
		}
		if limit > 0 && rowMin > limit {
			return inf
		}
		prev, cur = cur, prev
	}
	return prev[m]
}

// backtrack recovers the optimal path from a filled padded cost matrix,
// walking predecessors from (n,m) to (1,1) and preferring the diagonal on
// ties so the path is deterministic.
func backtrack(dp [][]float64, n, m int) Path {
	path := make(Path, 0, n+m)
	i, j := n, m
	for i > 1 || j > 1 {
		path = append(path, Step{I: i - 1, J: j - 1})
		diag, up, left := dp[i-1][j-1], dp[i-1][j], dp[i][j-1]
		switch {
		case diag <= up && diag <= left:
			i--
			j--
		case up <= left:
			i--
		default:
			j--
		}
	}
	path = append(path, Step{I: 0, J: 0})
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// degenerate handles the empty-sequence cases shared by all entry points.
func degenerate(a, b []float64) (float64, bool) {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0, true
	case len(a) == 0:
		return floats.Norm(b, 2), true
	case len(b) == 0:
		return floats.Norm(a, 2), true
	}
	return 0, false
}

func validateWidths(a, b [][]float64) error {
	width := -1
	for _, seqs := range [2][][]float64{a, b} {
		for _, v := range seqs {
			if width < 0 {
				width = len(v)
				continue
			}
			if len(v) != width {
				return &ErrDimensionMismatch{Expected: width, Actual: len(v)}
			}
		}
	}
	return nil
}

func normMulti(s [][]float64) float64 {
	var sum float64
	for _, v := range s {
		sum += floats.Dot(v, v)
	}
	return math.Sqrt(sum)
}

func min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
