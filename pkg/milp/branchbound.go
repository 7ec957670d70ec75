package milp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// BranchBound is the default MILP backend: depth-first branch and
// bound over LP relaxations solved with gonum's simplex method.
//
// Tie-breaking is deterministic so that repeated solves of the same
// model return identical solutions: branching always picks the
// lowest-index fractional variable, the floor branch is explored
// first, and the first incumbent found at the best objective is kept.
type BranchBound struct {
	// IntTol is the distance from a whole number within which a
	// relaxation value counts as integral.
	IntTol float64
	// MaxNodes caps the search tree size; exceeded means StatusError.
	MaxNodes int
}

// NewBranchBound creates a backend with default tolerances.
func NewBranchBound() *BranchBound {
	return &BranchBound{
		IntTol:   1e-6,
		MaxNodes: 200000,
	}
}

// Verify interface compliance
var _ Solver = (*BranchBound)(nil)

const objTol = 1e-9

// row is a constraint in "coefs · x <= rhs" form.
type row struct {
	coefs []float64
	rhs   float64
}

// node is a subproblem defined by per-variable bounds.
type node struct {
	lower []float64
	upper []float64
}

// Solve runs branch and bound on the model.
func (b *BranchBound) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if m == nil {
		return nil, fmt.Errorf("nil model")
	}

	n := m.NumVars()
	c := m.objectiveVector()

	baseRows, infeasible := normalizeConstraints(m)
	if infeasible != "" {
		return &Solution{Status: StatusInfeasible, Reason: infeasible}, nil
	}

	upper := make([]float64, n)
	lower := make([]float64, n)
	for i, v := range m.Vars() {
		if v.Kind == Binary {
			upper[i] = 1
		} else {
			upper[i] = math.Inf(1)
		}
	}

	// A variable appearing in no constraint and carrying no implicit
	// cap either makes the model unbounded (negative cost) or sits at
	// zero in any optimum; pin it so the LP matrix has no zero column.
	covered := make([]bool, n)
	for _, r := range baseRows {
		for i, coef := range r.coefs {
			if coef != 0 {
				covered[i] = true
			}
		}
	}
	for i, v := range m.Vars() {
		if covered[i] || !math.IsInf(upper[i], 1) {
			continue
		}
		if c[i] < 0 {
			return &Solution{
				Status: StatusUnbounded,
				Reason: fmt.Sprintf("variable %s has negative cost and no cap", v.Name),
			}, nil
		}
		unit := make([]float64, n)
		unit[i] = 1
		baseRows = append(baseRows, row{coefs: unit, rhs: 0})
	}

	if n == 0 {
		return &Solution{Status: StatusOptimal, Objective: 0}, nil
	}

	var (
		bestObj   float64
		bestX     []float64
		found     bool
		nodeCount int
	)

	stack := []node{{lower: lower, upper: upper}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return &Solution{Status: StatusTimedOut, Reason: err.Error()}, nil
		}
		nodeCount++
		if nodeCount > b.MaxNodes {
			return &Solution{
				Status: StatusError,
				Reason: fmt.Sprintf("node limit %d exceeded", b.MaxNodes),
			}, nil
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		obj, x, err := solveRelaxation(c, baseRows, nd)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			continue
		case errors.Is(err, lp.ErrUnbounded):
			return &Solution{Status: StatusUnbounded, Reason: "LP relaxation is unbounded"}, nil
		case err != nil:
			return &Solution{
				Status: StatusError,
				Reason: fmt.Sprintf("simplex: %v", err),
			}, nil
		}

		if found && obj >= bestObj-objTol {
			continue
		}

		branchVar := b.fractionalVar(m, x)
		if branchVar < 0 {
			// Integer feasible; round off simplex noise and score.
			rounded := make([]float64, n)
			objExact := 0.0
			for i, v := range m.Vars() {
				rounded[i] = x[i]
				if v.Kind != Continuous {
					rounded[i] = math.Round(x[i])
				}
				objExact += c[i] * rounded[i]
			}
			if !found || objExact < bestObj-objTol {
				bestObj = objExact
				bestX = rounded
				found = true
			}
			continue
		}

		floorBranch := node{lower: clone(nd.lower), upper: clone(nd.upper)}
		ceilBranch := node{lower: clone(nd.lower), upper: clone(nd.upper)}
		floorBranch.upper[branchVar] = math.Floor(x[branchVar])
		ceilBranch.lower[branchVar] = math.Ceil(x[branchVar])

		// Push ceil first so the floor branch is explored first.
		stack = append(stack, ceilBranch, floorBranch)
	}

	if !found {
		return &Solution{Status: StatusInfeasible}, nil
	}
	return &Solution{Status: StatusOptimal, Objective: bestObj, values: bestX}, nil
}

// fractionalVar returns the lowest index of an integer-kind variable
// with a fractional relaxation value, or -1 when all are integral.
func (b *BranchBound) fractionalVar(m *Model, x []float64) int {
	for i, v := range m.Vars() {
		if v.Kind == Continuous {
			continue
		}
		if math.Abs(x[i]-math.Round(x[i])) > b.IntTol {
			return i
		}
	}
	return -1
}

// normalizeConstraints rewrites every constraint into <= rows.
// Equality becomes a pair of opposing rows. Rows whose left side is
// the constant zero are resolved here: satisfied ones are dropped,
// violated ones make the whole model infeasible.
func normalizeConstraints(m *Model) (rows []row, infeasibleReason string) {
	n := m.NumVars()
	for _, con := range m.Constraints() {
		coefs := make([]float64, n)
		for _, t := range con.Terms {
			coefs[t.Var.index] += t.Coef
		}
		zero := true
		for _, coef := range coefs {
			if coef != 0 {
				zero = false
				break
			}
		}

		if zero {
			violated := false
			switch con.Rel {
			case LessEq:
				violated = con.RHS < -objTol
			case GreaterEq:
				violated = con.RHS > objTol
			case Eq:
				violated = math.Abs(con.RHS) > objTol
			}
			if violated {
				return nil, fmt.Sprintf("constraint %s cannot be satisfied by any assignment", con.Name)
			}
			continue
		}

		switch con.Rel {
		case LessEq:
			rows = append(rows, row{coefs: coefs, rhs: con.RHS})
		case GreaterEq:
			rows = append(rows, row{coefs: negate(coefs), rhs: -con.RHS})
		case Eq:
			rows = append(rows, row{coefs: coefs, rhs: con.RHS})
			rows = append(rows, row{coefs: negate(coefs), rhs: -con.RHS})
		}
	}
	return rows, ""
}

// solveRelaxation solves the LP relaxation of a node. The standard
// form handed to simplex is minimize c·z s.t. [G|I]z = h, z >= 0,
// where G collects the base rows plus the node's bound rows; the
// identity block holds the slack variables, so the matrix always has
// full row rank.
func solveRelaxation(c []float64, baseRows []row, nd node) (float64, []float64, error) {
	n := len(c)

	rows := baseRows
	for i := 0; i < n; i++ {
		if nd.lower[i] > 0 {
			unit := make([]float64, n)
			unit[i] = -1
			rows = append(rows, row{coefs: unit, rhs: -nd.lower[i]})
		}
		if !math.IsInf(nd.upper[i], 1) {
			unit := make([]float64, n)
			unit[i] = 1
			rows = append(rows, row{coefs: unit, rhs: nd.upper[i]})
		}
	}

	mRows := len(rows)
	if mRows == 0 {
		// No constraints and every cost non-negative: origin is optimal.
		return 0, make([]float64, n), nil
	}

	total := n + mRows
	data := make([]float64, mRows*total)
	h := make([]float64, mRows)
	for r, rw := range rows {
		copy(data[r*total:r*total+n], rw.coefs)
		data[r*total+n+r] = 1
		h[r] = rw.rhs
	}

	cExt := make([]float64, total)
	copy(cExt, c)

	a := mat.NewDense(mRows, total, data)
	optF, optZ, err := lp.Simplex(cExt, a, h, 1e-10, nil)
	if err != nil {
		return 0, nil, err
	}
	return optF, optZ[:n], nil
}

func negate(coefs []float64) []float64 {
	out := make([]float64, len(coefs))
	for i, v := range coefs {
		out[i] = -v
	}
	return out
}

func clone(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	return out
}
