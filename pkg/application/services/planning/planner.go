package planning

import (
	"context"
	"fmt"
	"time"

	"restock/pkg/application/dto"
	"restock/pkg/domain/entities"
	"restock/pkg/domain/repositories"
	"restock/pkg/milp"
)

// MinOrderPolicy decides how a supplier's minimum order quantity is
// enforced.
type MinOrderPolicy int

const (
	// MinOrderConditional enforces the minimum only when the supplier
	// receives any order, via a binary used-indicator.
	MinOrderConditional MinOrderPolicy = iota
	// MinOrderUnconditional enforces the minimum for every supplier
	// that prices at least one item, even when nothing is needed from
	// it.
	MinOrderUnconditional
)

func (p MinOrderPolicy) String() string {
	switch p {
	case MinOrderConditional:
		return "conditional"
	case MinOrderUnconditional:
		return "unconditional"
	default:
		return "unknown"
	}
}

// ParseMinOrderPolicy parses the policy names accepted on the CLI.
func ParseMinOrderPolicy(s string) (MinOrderPolicy, error) {
	switch s {
	case "conditional", "":
		return MinOrderConditional, nil
	case "unconditional":
		return MinOrderUnconditional, nil
	default:
		return 0, fmt.Errorf("unknown min order policy %q (want conditional or unconditional)", s)
	}
}

// Config holds the recognized planning options.
type Config struct {
	// HorizonDays is the demand planning window. Zero means each item
	// uses its own expiry window.
	HorizonDays int
	// SolverTimeLimit bounds one solve attempt. Zero means the
	// default of 30 seconds.
	SolverTimeLimit time.Duration
	// MinOrderPolicy selects conditional or unconditional supplier
	// minimums.
	MinOrderPolicy MinOrderPolicy
}

// DefaultConfig returns the default planning configuration.
func DefaultConfig() Config {
	return Config{
		HorizonDays:     0,
		SolverTimeLimit: 30 * time.Second,
		MinOrderPolicy:  MinOrderConditional,
	}
}

const defaultTimeLimit = 30 * time.Second

// Planner assembles the purchase MILP from a catalog, runs the
// solver, and extracts the purchase plan. A Planner holds no run
// state; concurrent Plan calls each build their own model.
type Planner struct {
	solver milp.Solver
	config Config
}

// NewPlanner creates a planner. A nil solver selects the default
// branch-and-bound backend.
func NewPlanner(solver milp.Solver, config Config) *Planner {
	if solver == nil {
		solver = milp.NewBranchBound()
	}
	return &Planner{solver: solver, config: config}
}

// Plan computes the cost-minimizing purchase plan for the catalog.
// Fatal conditions return typed errors: *entities.DataIntegrityError
// never reaches this point (the catalog rejects bad data on load),
// *InfeasibleError and *UnboundedError are structural and not retried,
// and *SolverError is returned only after a second attempt with a
// relaxed time budget has failed. No partial plan is ever returned.
func (p *Planner) Plan(ctx context.Context, catalog repositories.CatalogRepository) (*dto.PlanResult, error) {
	pm := buildModel(catalog, p.config)

	start := time.Now()
	sol, err := p.solveWithRetry(ctx, pm.model)
	if err != nil {
		return nil, err
	}
	solveTime := time.Since(start)

	switch sol.Status {
	case milp.StatusOptimal:
		result := extractResult(catalog, pm, sol, p.config)
		result.SolveTime = solveTime
		return result, nil
	case milp.StatusInfeasible:
		return nil, &InfeasibleError{Suspects: diagnoseInfeasibility(catalog, p.config)}
	case milp.StatusUnbounded:
		return nil, &UnboundedError{Detail: sol.Reason}
	default:
		return nil, &SolverError{Status: sol.Status, Reason: sol.Reason, Attempts: 2}
	}
}

// solveWithRetry runs the solver under the configured time limit and
// retries exactly once with a doubled budget on a transient outcome.
// Infeasible and Unbounded are structural and returned as-is.
func (p *Planner) solveWithRetry(ctx context.Context, m *milp.Model) (*milp.Solution, error) {
	budget := p.config.SolverTimeLimit
	if budget <= 0 {
		budget = defaultTimeLimit
	}

	sol, err := p.solveOnce(ctx, m, budget)
	if err != nil {
		return nil, err
	}
	if sol.Status == milp.StatusTimedOut || sol.Status == milp.StatusError {
		sol, err = p.solveOnce(ctx, m, 2*budget)
		if err != nil {
			return nil, err
		}
	}
	return sol, nil
}

func (p *Planner) solveOnce(ctx context.Context, m *milp.Model, budget time.Duration) (*milp.Solution, error) {
	solveCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()
	sol, err := p.solver.Solve(solveCtx, m)
	if err != nil {
		return nil, fmt.Errorf("solver invocation: %w", err)
	}
	return sol, nil
}

// diagnoseInfeasibility scans the catalog for items whose minimum
// stock is provably unreachable, so the caller learns which entity and
// constraint family to look at without re-running the solver. The
// checks are conservative: an empty result means the conflict spans
// families this scan cannot attribute.
func diagnoseInfeasibility(catalog repositories.CatalogRepository, cfg Config) []Suspect {
	var suspects []Suspect
	for _, item := range catalog.Items() {
		shortfall := item.Shortfall()
		if shortfall <= 0 {
			continue
		}

		suppliers := catalog.EligibleSuppliers(item.ID)
		if len(suppliers) == 0 {
			suspects = append(suspects, Suspect{
				ItemID:     item.ID,
				Constraint: "min_stock",
				Detail: fmt.Sprintf("needs %d units to reach min_stock but has no eligible suppliers",
					shortfall),
			})
			continue
		}

		// Upper bound on what the expiry caps and supplier caps allow
		// for this item across all of its suppliers.
		var reachable entities.Units
		for _, supplierID := range suppliers {
			supplier, err := catalog.Supplier(supplierID)
			if err != nil {
				continue
			}
			entry, _ := catalog.Pricing(item.ID, supplierID)

			sellable := ExpectedDemand(item, demandHorizon(item, cfg)) +
				ExpectedLeadTimeDemand(item, supplier) -
				float64(item.CurrentStock)
			capPallets := entities.Pallets(0)
			if sellable > 0 {
				capPallets = entities.Pallets(sellable / float64(entry.UnitsPerPallet))
			}
			if capPallets > supplier.MaxPallets {
				capPallets = supplier.MaxPallets
			}
			reachable += entry.UnitsFor(capPallets)
		}
		if reachable < shortfall {
			suspects = append(suspects, Suspect{
				ItemID:     item.ID,
				Constraint: "expiry",
				Detail: fmt.Sprintf("expiry and capacity caps allow at most %d units but min_stock needs %d",
					reachable, shortfall),
			})
		}
	}
	return suspects
}
