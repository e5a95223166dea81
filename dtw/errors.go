package dtw

import "fmt"

// ErrDimensionMismatch indicates that two multivariate sequences carry
// elements of different feature widths, or that a single sequence is
// ragged (not all elements share one width).
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dtw: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}
