package planning

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"restock/pkg/application/dto"
	"restock/pkg/domain/entities"
	"restock/pkg/infrastructure/repositories/memory"
)

// singlePairCatalog is the reference scenario: one item short of its
// minimum, one supplier, one pricing entry.
func singlePairCatalog(t *testing.T) *memory.Catalog {
	t.Helper()
	catalog, err := memory.NewCatalog(
		[]entities.Item{
			{ID: "I001", Name: "Milk", MinStock: 10, MaxStock: 50, ExpiryDays: 30, CurrentStock: 5, AvgDailySales: 2},
		},
		[]entities.Supplier{
			{ID: "S001", Name: "Dairyland", MinPallets: 0, MaxPallets: 100, LeadTimeDays: 5},
		},
		[]entities.PricingEntry{
			{ItemID: "I001", SupplierID: "S001", CostPerPallet: decimal.NewFromInt(20), UnitsPerPallet: 10},
		},
	)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return catalog
}

func TestPlanner_ReferenceScenarioSatisfiesAllConstraintFamilies(t *testing.T) {
	catalog := singlePairCatalog(t)
	cfg := DefaultConfig()
	cfg.HorizonDays = 30

	result, err := NewPlanner(nil, cfg).Plan(context.Background(), catalog)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(result.Orders) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(result.Orders))
	}
	order := result.Orders[0]

	if order.PalletsOrdered <= 0 {
		t.Fatal("expected a nonzero order")
	}

	// Integrality and unit conversion.
	if order.UnitsOrdered != entities.Units(order.PalletsOrdered)*10 {
		t.Errorf("units/pallets mismatch: %d pallets, %d units", order.PalletsOrdered, order.UnitsOrdered)
	}

	// Stock bounds: current + ordered within [min, max].
	stockAfter := entities.Units(5) + order.UnitsOrdered
	if stockAfter < 10 || stockAfter > 50 {
		t.Errorf("stock after order %d outside [10, 50]", stockAfter)
	}

	// Supplier bounds in pallets.
	if order.PalletsOrdered > 100 {
		t.Errorf("order exceeds supplier max pallets: %d", order.PalletsOrdered)
	}

	// Expiry cap: ordered + current <= expected demand + lead-time demand.
	expectedDemand := 2.0 * 30  // avg_daily_sales x horizon
	leadTimeDemand := 2.0 * 5   // avg_daily_sales x lead_time
	if float64(order.UnitsOrdered)+5 > expectedDemand+leadTimeDemand {
		t.Errorf("expiry cap violated: %d units on hand after order", order.UnitsOrdered+5)
	}

	// Cheapest plan that reaches min stock is a single pallet.
	if order.PalletsOrdered != 1 {
		t.Errorf("expected 1 pallet, got %d", order.PalletsOrdered)
	}
	if !order.TotalCost.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected total cost 20, got %s", order.TotalCost)
	}
}

func TestPlanner_TotalCostMatchesObjective(t *testing.T) {
	catalog := singlePairCatalog(t)

	result, err := NewPlanner(nil, DefaultConfig()).Plan(context.Background(), catalog)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	sum := decimal.Zero
	for _, order := range result.Orders {
		if order.TotalCost.IsNegative() {
			t.Errorf("negative order cost: %s", order.TotalCost)
		}
		sum = sum.Add(order.TotalCost)
	}
	if !sum.Equal(result.TotalCost) {
		t.Errorf("grand total %s does not equal sum of orders %s", result.TotalCost, sum)
	}
	if diff := math.Abs(result.TotalCost.InexactFloat64() - result.Objective); diff > 1e-6 {
		t.Errorf("total cost %s diverges from solver objective %v", result.TotalCost, result.Objective)
	}
}

func TestPlanner_Idempotent(t *testing.T) {
	cfg := DefaultConfig()

	run := func() *dto.PlanResult {
		result, err := NewPlanner(nil, cfg).Plan(context.Background(), singlePairCatalog(t))
		if err != nil {
			t.Fatalf("Plan failed: %v", err)
		}
		return result
	}

	first := run()
	second := run()

	if len(first.Orders) != len(second.Orders) {
		t.Fatalf("order counts diverged: %d vs %d", len(first.Orders), len(second.Orders))
	}
	for i := range first.Orders {
		a, b := first.Orders[i], second.Orders[i]
		if a.ItemID != b.ItemID || a.SupplierID != b.SupplierID || a.PalletsOrdered != b.PalletsOrdered {
			t.Errorf("order %d diverged: %+v vs %+v", i, a, b)
		}
	}
	if !first.TotalCost.Equal(second.TotalCost) {
		t.Errorf("total cost diverged: %s vs %s", first.TotalCost, second.TotalCost)
	}
}

func TestPlanner_ConditionalPolicySkipsUnneededSupplier(t *testing.T) {
	catalog := twoSupplierCatalog(t, 3) // S002 has min_pallets=3 and worse prices

	result, err := NewPlanner(nil, DefaultConfig()).Plan(context.Background(), catalog)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	for _, order := range result.Orders {
		if order.SupplierID == "S002" {
			t.Errorf("conditional policy should not order from S002: %+v", order)
		}
	}
	if !result.TotalCost.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected total cost 10 (one cheap pallet), got %s", result.TotalCost)
	}
}

func TestPlanner_UnconditionalPolicyForcesMinimum(t *testing.T) {
	catalog := twoSupplierCatalog(t, 3)
	cfg := DefaultConfig()
	cfg.MinOrderPolicy = MinOrderUnconditional

	result, err := NewPlanner(nil, cfg).Plan(context.Background(), catalog)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	var palletsFromS2 entities.Pallets
	for _, order := range result.Orders {
		if order.SupplierID == "S002" {
			palletsFromS2 += order.PalletsOrdered
		}
	}
	if palletsFromS2 < 3 {
		t.Errorf("unconditional policy must force >= 3 pallets from S002, got %d", palletsFromS2)
	}
}

func TestPlanner_SupplierBoundsHoldWhenUsed(t *testing.T) {
	catalog := twoSupplierCatalog(t, 3)
	cfg := DefaultConfig()
	cfg.MinOrderPolicy = MinOrderUnconditional

	result, err := NewPlanner(nil, cfg).Plan(context.Background(), catalog)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	perSupplier := make(map[entities.SupplierID]entities.Pallets)
	for _, order := range result.Orders {
		perSupplier[order.SupplierID] += order.PalletsOrdered
	}
	for supplierID, pallets := range perSupplier {
		supplier, err := catalog.Supplier(supplierID)
		if err != nil {
			t.Fatalf("Supplier lookup failed: %v", err)
		}
		if pallets < supplier.MinPallets || pallets > supplier.MaxPallets {
			t.Errorf("supplier %s total %d outside [%d, %d]",
				supplierID, pallets, supplier.MinPallets, supplier.MaxPallets)
		}
	}
}

func TestPlanner_NoEligibleSupplierIsInfeasible(t *testing.T) {
	catalog, err := memory.NewCatalog(
		[]entities.Item{
			{ID: "I001", Name: "Milk", MinStock: 10, MaxStock: 50, ExpiryDays: 30, CurrentStock: 5, AvgDailySales: 2},
		},
		[]entities.Supplier{
			{ID: "S001", Name: "Dairyland", MaxPallets: 100, LeadTimeDays: 5},
		},
		nil, // no pricing: S(I001) is empty
	)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	_, err = NewPlanner(nil, DefaultConfig()).Plan(context.Background(), catalog)
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected InfeasibleError, got %T: %v", err, err)
	}
	if len(infeasible.Suspects) == 0 || infeasible.Suspects[0].ItemID != "I001" {
		t.Errorf("diagnosis should name item I001, got %+v", infeasible.Suspects)
	}
	if infeasible.Suspects[0].Constraint != "min_stock" {
		t.Errorf("expected min_stock suspect, got %s", infeasible.Suspects[0].Constraint)
	}
}

func TestPlanner_ExpiryCapCanMakeModelInfeasible(t *testing.T) {
	// Shelf life too short to ever sell enough to reach min stock.
	catalog, err := memory.NewCatalog(
		[]entities.Item{
			{ID: "I001", Name: "Oysters", MinStock: 100, MaxStock: 200, ExpiryDays: 10, CurrentStock: 0, AvgDailySales: 1},
		},
		[]entities.Supplier{
			{ID: "S001", Name: "SeaSide", MaxPallets: 100, LeadTimeDays: 0},
		},
		[]entities.PricingEntry{
			{ItemID: "I001", SupplierID: "S001", CostPerPallet: decimal.NewFromInt(50), UnitsPerPallet: 10},
		},
	)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	_, err = NewPlanner(nil, DefaultConfig()).Plan(context.Background(), catalog)
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected InfeasibleError, got %T: %v", err, err)
	}
	if len(infeasible.Suspects) == 0 || infeasible.Suspects[0].Constraint != "expiry" {
		t.Errorf("diagnosis should suspect the expiry cap, got %+v", infeasible.Suspects)
	}
}

func TestPlanner_BadInputNeverReachesSolver(t *testing.T) {
	// min_stock above max_stock is rejected at catalog construction,
	// before any model exists.
	_, err := memory.NewCatalog(
		[]entities.Item{
			{ID: "I001", Name: "Milk", MinStock: 60, MaxStock: 50, ExpiryDays: 30},
		},
		nil, nil,
	)
	var integrity *entities.DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected DataIntegrityError, got %T: %v", err, err)
	}
	if integrity.ID != "I001" {
		t.Errorf("expected offending item I001, got %s", integrity.ID)
	}
}

func TestPlanner_ReportsItemsNotOrdered(t *testing.T) {
	catalog, err := memory.NewCatalog(
		[]entities.Item{
			{ID: "I001", Name: "Milk", MinStock: 10, MaxStock: 50, ExpiryDays: 30, CurrentStock: 5, AvgDailySales: 2},
			{ID: "I002", Name: "Cheese", MinStock: 10, MaxStock: 50, ExpiryDays: 60, CurrentStock: 40, AvgDailySales: 1},
		},
		[]entities.Supplier{
			{ID: "S001", Name: "Dairyland", MaxPallets: 100, LeadTimeDays: 5},
		},
		[]entities.PricingEntry{
			{ItemID: "I001", SupplierID: "S001", CostPerPallet: decimal.NewFromInt(20), UnitsPerPallet: 10},
			{ItemID: "I002", SupplierID: "S001", CostPerPallet: decimal.NewFromInt(45), UnitsPerPallet: 10},
		},
	)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	result, err := NewPlanner(nil, DefaultConfig()).Plan(context.Background(), catalog)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	// Cheese is already above its minimum; the cheapest plan leaves it alone.
	for _, order := range result.Orders {
		if order.ItemID == "I002" {
			t.Errorf("did not expect an order for I002: %+v", order)
		}
	}
	if len(result.ItemsNotOrdered) != 1 || result.ItemsNotOrdered[0].ItemID != "I002" {
		t.Errorf("expected I002 in items-not-ordered, got %+v", result.ItemsNotOrdered)
	}
}
