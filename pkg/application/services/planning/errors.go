package planning

import (
	"fmt"
	"strings"

	"restock/pkg/domain/entities"
	"restock/pkg/milp"
)

// Suspect names an item and the constraint family suspected of making
// the model infeasible, with enough detail to fix the data without
// re-running the solver.
type Suspect struct {
	ItemID     entities.ItemID
	Constraint string
	Detail     string
}

// InfeasibleError reports that the solver proved no feasible purchase
// plan exists. Suspects carry the diagnosis; it may be empty when the
// conflict spans multiple constraint families.
type InfeasibleError struct {
	Suspects []Suspect
}

func (e *InfeasibleError) Error() string {
	if len(e.Suspects) == 0 {
		return "purchase model is infeasible"
	}
	parts := make([]string, 0, len(e.Suspects))
	for _, s := range e.Suspects {
		parts = append(parts, fmt.Sprintf("item %s (%s: %s)", s.ItemID, s.Constraint, s.Detail))
	}
	return "purchase model is infeasible: " + strings.Join(parts, "; ")
}

// UnboundedError reports an unbounded model. Supplier capacity caps
// make this structurally impossible, so it indicates a missing or
// malformed cap in model construction rather than bad input data.
type UnboundedError struct {
	Detail string
}

func (e *UnboundedError) Error() string {
	msg := "purchase model is unbounded: missing or malformed capacity cap"
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// SolverError reports that the solver failed to reach a conclusive
// status within its budget, even after a retry.
type SolverError struct {
	Status   milp.Status
	Reason   string
	Attempts int
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver failed after %d attempts: %s (%s)", e.Attempts, e.Status, e.Reason)
}
