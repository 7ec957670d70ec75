package milp

import "testing"

func TestModel_VariableCreationOrder(t *testing.T) {
	m := NewModel("test")
	x := m.NewIntVar("x")
	y := m.NewBinaryVar("y")
	z := m.NewContinuousVar("z")

	if m.NumVars() != 3 {
		t.Fatalf("expected 3 vars, got %d", m.NumVars())
	}
	vars := m.Vars()
	if vars[0] != x || vars[1] != y || vars[2] != z {
		t.Error("variables not returned in creation order")
	}
	if x.Kind != Integer || y.Kind != Binary || z.Kind != Continuous {
		t.Errorf("unexpected kinds: %v %v %v", x.Kind, y.Kind, z.Kind)
	}
}

func TestModel_ObjectiveVectorAccumulates(t *testing.T) {
	m := NewModel("test")
	x := m.NewIntVar("x")
	y := m.NewIntVar("y")
	m.AddObjectiveTerm(x, 2.5)
	m.AddObjectiveTerm(y, 1)
	m.AddObjectiveTerm(x, 0.5)

	c := m.objectiveVector()
	if c[0] != 3 || c[1] != 1 {
		t.Errorf("expected objective [3 1], got %v", c)
	}
}

func TestModel_ConstraintsKeepNames(t *testing.T) {
	m := NewModel("test")
	x := m.NewIntVar("x")
	m.AddConstraint("cap_x", []Term{{Var: x, Coef: 1}}, LessEq, 10)
	m.AddConstraint("floor_x", []Term{{Var: x, Coef: 1}}, GreaterEq, 2)

	cons := m.Constraints()
	if len(cons) != 2 {
		t.Fatalf("expected 2 constraints, got %d", len(cons))
	}
	if cons[0].Name != "cap_x" || cons[1].Name != "floor_x" {
		t.Errorf("constraint names lost: %q, %q", cons[0].Name, cons[1].Name)
	}
	if cons[1].Rel != GreaterEq || cons[1].RHS != 2 {
		t.Errorf("constraint shape lost: %v %v", cons[1].Rel, cons[1].RHS)
	}
}
