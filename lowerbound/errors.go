package lowerbound

import "fmt"

// ErrLengthMismatch indicates that an estimator requiring equal-length
// inputs was handed sequences of different lengths.
type ErrLengthMismatch struct {
	Query     int
	Candidate int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("lowerbound: length mismatch: query %d, candidate %d", e.Query, e.Candidate)
}
