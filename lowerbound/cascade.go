package lowerbound

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Level identifies the cascade stage that pruned a candidate.
type Level int

const (
	// LevelNone means no stage reached the threshold; the candidate
	// survived the cascade.
	LevelNone Level = iota
	LevelKim
	LevelPAA
	LevelKeogh
	LevelImproved
)

func (l Level) String() string {
	switch l {
	case LevelKim:
		return "kim"
	case LevelPAA:
		return "paa"
	case LevelKeogh:
		return "keogh"
	case LevelImproved:
		return "improved"
	default:
		return "none"
	}
}

// coarseSegments is the segment count the cascade uses for the PAA stage.
func coarseSegments(n int) int {
	s := (n + 9) / 10
	if s < 1 {
		s = 1
	}
	return s
}

// Cascade evaluates the lower-bound estimators cheapest-first (Kim, then
// the coarse aggregate-segment stage, then Keogh, then Improved) and
// short-circuits the moment any estimator's value meets or exceeds
// threshold, returning that value and the pruning level. If no estimator
// reaches the threshold, it returns the tightest bound computed and
// LevelNone; the caller may use that value as a best-effort estimate but
// must not treat it as the true distance.
//
// radius is the band radius of the matching DTW configuration; pass a
// negative radius for an unconstrained configuration. Stages requiring
// equal-length inputs are skipped when the lengths differ, so unequal
// candidates fall through to the exact computation instead of failing.
func Cascade(q, c []float64, radius int, threshold float64) (float64, Level) {
	tightest := Kim(q, c)
	if tightest >= threshold {
		return tightest, LevelKim
	}
	if len(q) != len(c) || len(q) == 0 {
		return tightest, LevelNone
	}

	agg := aggregate(q, c, coarseSegments(len(q)))
	if agg >= threshold {
		return agg, LevelPAA
	}
	if agg > tightest {
		tightest = agg
	}

	uc, lc := Envelope(c, radius)
	forward := keoghSquared(q, uc, lc)
	keogh := math.Sqrt(forward)
	if keogh >= threshold {
		return keogh, LevelKeogh
	}
	if keogh > tightest {
		tightest = keogh
	}

	uq, lq := Envelope(q, radius)
	improved := math.Sqrt(math.Max(forward, keoghSquared(c, uq, lq)))
	if improved >= threshold {
		return improved, LevelImproved
	}
	if improved > tightest {
		tightest = improved
	}
	return tightest, LevelNone
}

// aggregate is the cascade's aggregate-segment stage: coarse segment
// averages of each side measured against the other side's global value
// range, symmetrized by taking the larger direction. Under warping an
// element may align anywhere in the other sequence, so segment averages
// of the two sides cannot be compared directly (PAA is only a bound for
// the pointwise alignment); the range-based form stays below the DTW
// distance for every constraint because each element still has to align
// with some value inside the other side's range.
func aggregate(q, c []float64, segments int) float64 {
	minQ, maxQ := floats.Min(q), floats.Max(q)
	minC, maxC := floats.Min(c), floats.Max(c)
	return math.Sqrt(math.Max(
		rangeExcursion(q, minC, maxC, segments),
		rangeExcursion(c, minQ, maxQ, segments),
	))
}

// rangeExcursion accumulates squared excursions of s's segment averages
// outside [lo, hi], weighted by segment length.
func rangeExcursion(s []float64, lo, hi float64, segments int) float64 {
	n := len(s)
	width := (n + segments - 1) / segments
	var sum float64
	for start := 0; start < n; start += width {
		end := start + width
		if end > n {
			end = n
		}
		w := float64(end - start)
		mean := floats.Sum(s[start:end]) / w
		switch {
		case mean > hi:
			d := mean - hi
			sum += w * d * d
		case mean < lo:
			d := lo - mean
			sum += w * d * d
		}
	}
	return sum
}
