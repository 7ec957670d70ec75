// Package milp provides a small mixed-integer linear programming layer:
// a model representation, a backend-agnostic Solver interface, and a
// branch-and-bound backend built on gonum's simplex implementation.
package milp

// VarKind classifies a decision variable's domain. All variables are
// non-negative; Integer and Binary additionally restrict to whole
// numbers (Binary to {0, 1}).
type VarKind int

const (
	Continuous VarKind = iota
	Integer
	Binary
)

func (k VarKind) String() string {
	switch k {
	case Continuous:
		return "Continuous"
	case Integer:
		return "Integer"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// Var is a decision variable. Vars are created through a Model and
// indexed in creation order.
type Var struct {
	Name  string
	Kind  VarKind
	index int
}

// Term is a coefficient applied to a variable in a linear expression.
type Term struct {
	Var  *Var
	Coef float64
}

// Relation is the comparison operator of a linear constraint.
type Relation int

const (
	LessEq Relation = iota
	GreaterEq
	Eq
)

func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Eq:
		return "="
	default:
		return "?"
	}
}

// Constraint is a named linear constraint: sum(Terms) Rel RHS.
// Names exist so infeasibility can be discussed in terms of the
// entity that produced the constraint.
type Constraint struct {
	Name  string
	Terms []Term
	Rel   Relation
	RHS   float64
}

// Model is a minimization MILP instance: an ordered variable set, a
// linear objective and a set of named linear constraints. Models are
// not safe for concurrent mutation; build one per solve.
type Model struct {
	Name        string
	vars        []*Var
	constraints []*Constraint
	objective   []Term
}

// NewModel creates an empty minimization model.
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// NewIntVar adds a non-negative integer variable.
func (m *Model) NewIntVar(name string) *Var {
	return m.newVar(name, Integer)
}

// NewBinaryVar adds a {0, 1} variable.
func (m *Model) NewBinaryVar(name string) *Var {
	return m.newVar(name, Binary)
}

// NewContinuousVar adds a non-negative continuous variable.
func (m *Model) NewContinuousVar(name string) *Var {
	return m.newVar(name, Continuous)
}

func (m *Model) newVar(name string, kind VarKind) *Var {
	v := &Var{Name: name, Kind: kind, index: len(m.vars)}
	m.vars = append(m.vars, v)
	return v
}

// AddObjectiveTerm appends coef*v to the minimization objective.
func (m *Model) AddObjectiveTerm(v *Var, coef float64) {
	m.objective = append(m.objective, Term{Var: v, Coef: coef})
}

// AddConstraint appends a named linear constraint. A constraint with
// no terms is legal; its left side is the constant zero, so a row like
// "0 >= 5" makes the model infeasible by construction.
func (m *Model) AddConstraint(name string, terms []Term, rel Relation, rhs float64) *Constraint {
	c := &Constraint{Name: name, Terms: terms, Rel: rel, RHS: rhs}
	m.constraints = append(m.constraints, c)
	return c
}

// Vars returns the variables in creation order.
func (m *Model) Vars() []*Var { return m.vars }

// Constraints returns the constraints in creation order.
func (m *Model) Constraints() []*Constraint { return m.constraints }

// Objective returns the objective terms.
func (m *Model) Objective() []Term { return m.objective }

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int { return len(m.constraints) }

// objectiveVector expands the objective terms into a dense coefficient
// vector over the variable index space.
func (m *Model) objectiveVector() []float64 {
	c := make([]float64, len(m.vars))
	for _, t := range m.objective {
		c[t.Var.index] += t.Coef
	}
	return c
}
