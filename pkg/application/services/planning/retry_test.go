package planning

import (
	"context"
	"errors"
	"testing"

	"restock/pkg/milp"
)

// scriptedSolver returns canned statuses in sequence, recording how
// often it was invoked.
type scriptedSolver struct {
	statuses []milp.Status
	calls    int
}

func (s *scriptedSolver) Solve(ctx context.Context, m *milp.Model) (*milp.Solution, error) {
	status := s.statuses[len(s.statuses)-1]
	if s.calls < len(s.statuses) {
		status = s.statuses[s.calls]
	}
	s.calls++
	return &milp.Solution{Status: status}, nil
}

func TestPlanner_RetriesOnceOnTimeout(t *testing.T) {
	solver := &scriptedSolver{statuses: []milp.Status{milp.StatusTimedOut, milp.StatusOptimal}}
	planner := NewPlanner(solver, DefaultConfig())

	result, err := planner.Plan(context.Background(), singlePairCatalog(t))
	if err != nil {
		t.Fatalf("expected the retry to succeed, got %v", err)
	}
	if solver.calls != 2 {
		t.Errorf("expected 2 solve attempts, got %d", solver.calls)
	}
	if result == nil {
		t.Fatal("expected a result from the retried solve")
	}
}

func TestPlanner_GivesUpAfterSecondTransientFailure(t *testing.T) {
	solver := &scriptedSolver{statuses: []milp.Status{milp.StatusTimedOut, milp.StatusTimedOut}}
	planner := NewPlanner(solver, DefaultConfig())

	_, err := planner.Plan(context.Background(), singlePairCatalog(t))
	var solverErr *SolverError
	if !errors.As(err, &solverErr) {
		t.Fatalf("expected SolverError, got %T: %v", err, err)
	}
	if solver.calls != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", solver.calls)
	}
	if solverErr.Attempts != 2 {
		t.Errorf("expected Attempts=2, got %d", solverErr.Attempts)
	}
}

func TestPlanner_NeverRetriesInfeasible(t *testing.T) {
	solver := &scriptedSolver{statuses: []milp.Status{milp.StatusInfeasible}}
	planner := NewPlanner(solver, DefaultConfig())

	_, err := planner.Plan(context.Background(), singlePairCatalog(t))
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected InfeasibleError, got %T: %v", err, err)
	}
	if solver.calls != 1 {
		t.Errorf("infeasible must not be retried, got %d attempts", solver.calls)
	}
}

func TestPlanner_NeverRetriesUnbounded(t *testing.T) {
	solver := &scriptedSolver{statuses: []milp.Status{milp.StatusUnbounded}}
	planner := NewPlanner(solver, DefaultConfig())

	_, err := planner.Plan(context.Background(), singlePairCatalog(t))
	var unbounded *UnboundedError
	if !errors.As(err, &unbounded) {
		t.Fatalf("expected UnboundedError, got %T: %v", err, err)
	}
	if solver.calls != 1 {
		t.Errorf("unbounded must not be retried, got %d attempts", solver.calls)
	}
}
