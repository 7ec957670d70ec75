package milp

import (
	"context"
	"math"
)

// Status is the outcome of a solve attempt.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnbounded
	StatusTimedOut
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusTimedOut:
		return "TimedOut"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Solution holds the result of a solve. Variable values and the
// objective are meaningful only when Status is StatusOptimal; Reason
// carries diagnostic text for StatusError and StatusTimedOut.
type Solution struct {
	Status    Status
	Objective float64
	Reason    string

	values []float64
}

// Value returns the solved value of a variable.
func (s *Solution) Value(v *Var) float64 {
	if s.values == nil || v.index >= len(s.values) {
		return 0
	}
	return s.values[v.index]
}

// IntValue returns the solved value of an integer variable rounded to
// the nearest whole number.
func (s *Solution) IntValue(v *Var) int64 {
	return int64(math.Round(s.Value(v)))
}

// Solver abstracts a MILP backend so the solving engine can be swapped
// without touching model construction or reporting. Solve honors ctx
// cancellation and deadlines by returning StatusTimedOut; the model is
// never mutated.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}
