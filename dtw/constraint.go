package dtw

import (
	"fmt"
	"math"
)

type constraintKind int

const (
	kindNone constraintKind = iota
	kindBand
	kindParallelogram
)

// Constraint restricts which alignment cells (i, j) the DTW recurrence may
// visit. It is a closed set of cases: no constraint, a Sakoe-Chiba band of
// fixed radius around the diagonal, or an Itakura parallelogram bounded by
// a slope parameter. Both the recurrence and the envelope lower bound
// branch on the same constraint value, keeping the two calibrated.
//
// The zero value is equivalent to None().
type Constraint struct {
	kind   constraintKind
	radius int
	slope  float64
}

// None returns the unconstrained configuration: the full cost matrix is
// reachable.
func None() Constraint {
	return Constraint{kind: kindNone}
}

// Band returns a Sakoe-Chiba band constraint: only cells with |i-j| <= radius
// are reachable. A negative radius is treated as unconstrained.
func Band(radius int) Constraint {
	if radius < 0 {
		return None()
	}
	return Constraint{kind: kindBand, radius: radius}
}

// Parallelogram returns an Itakura parallelogram constraint with the given
// slope (> 1). The reachable region is the intersection of slope and
// inverse-slope cones anchored at both endpoints of the alignment. A slope
// <= 1 is treated as unconstrained.
func Parallelogram(slope float64) Constraint {
	if slope <= 1 {
		return None()
	}
	return Constraint{kind: kindParallelogram, slope: slope}
}

// BandRadius returns the band radius and true if c is a band constraint.
func (c Constraint) BandRadius() (int, bool) {
	return c.radius, c.kind == kindBand
}

func (c Constraint) String() string {
	switch c.kind {
	case kindBand:
		return fmt.Sprintf("Band(%d)", c.radius)
	case kindParallelogram:
		return fmt.Sprintf("Parallelogram(%g)", c.slope)
	default:
		return "None"
	}
}

// rowBounds returns the inclusive range [lo, hi] of candidate indices j
// reachable for query index i, both zero-based, for sequences of lengths
// n and m. It returns lo > hi when no cell in the row is reachable.
func (c Constraint) rowBounds(i, n, m int) (lo, hi int) {
	lo, hi = 0, m-1
	switch c.kind {
	case kindBand:
		if i-c.radius > lo {
			lo = i - c.radius
		}
		if i+c.radius < hi {
			hi = i + c.radius
		}
	case kindParallelogram:
		// Intersection of the slope cones from (0,0) and (n-1,m-1).
		// Near the origin j may grow at most slope*i and must grow at
		// least i/slope; symmetrically from the far corner.
		s := c.slope
		fi, fn, fm := float64(i), float64(n-1), float64(m-1)
		l1 := fi / s
		l2 := fm - (fn-fi)*s
		h1 := fi * s
		h2 := fm - (fn-fi)/s
		if l2 > l1 {
			l1 = l2
		}
		if h2 < h1 {
			h1 = h2
		}
		if li := int(math.Ceil(l1)); li > lo {
			lo = li
		}
		if hi2 := int(math.Floor(h1)); hi2 < hi {
			hi = hi2
		}
	}
	return lo, hi
}
