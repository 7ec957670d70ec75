package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"restock/pkg/application/services/planning"
	"restock/pkg/domain/entities"
	"restock/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	items := []entities.Item{
		{ID: "I001", Name: "Milk 1L", MinStock: 100, MaxStock: 300, ExpiryDays: 14, CurrentStock: 40, AvgDailySales: 12},
		{ID: "I002", Name: "Bread", MinStock: 80, MaxStock: 200, ExpiryDays: 7, CurrentStock: 25, AvgDailySales: 15},
	}
	suppliers := []entities.Supplier{
		{ID: "S001", Name: "Dairyland", MinPallets: 0, MaxPallets: 40, LeadTimeDays: 2},
		{ID: "S002", Name: "FreshCo", MinPallets: 0, MaxPallets: 30, LeadTimeDays: 4},
	}
	pricing := []entities.PricingEntry{
		{ItemID: "I001", SupplierID: "S001", CostPerPallet: decimal.NewFromFloat(35.50), UnitsPerPallet: 24},
		{ItemID: "I001", SupplierID: "S002", CostPerPallet: decimal.NewFromFloat(33.00), UnitsPerPallet: 24},
		{ItemID: "I002", SupplierID: "S002", CostPerPallet: decimal.NewFromFloat(18.75), UnitsPerPallet: 20},
	}

	catalog, err := memory.NewCatalog(items, suppliers, pricing)
	if err != nil {
		fmt.Printf("❌ Bad input data: %v\n", err)
		return
	}

	fmt.Println("🛒 Planning restock order...")
	planner := planning.NewPlanner(nil, planning.DefaultConfig())
	result, err := planner.Plan(ctx, catalog)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}

	fmt.Printf("📊 Plan %s:\n", result.RunID)
	for _, order := range result.Orders {
		fmt.Printf("  %s (%s) from %s: %d pallets = %d units, $%s\n",
			order.ItemID, order.ItemName, order.SupplierName,
			order.PalletsOrdered, order.UnitsOrdered, order.TotalCost.StringFixed(2))
	}
	for _, item := range result.ItemsNotOrdered {
		fmt.Printf("  %s (%s): stock %d already covers minimum %d\n",
			item.ItemID, item.ItemName, item.CurrentStock, item.MinStock)
	}
	fmt.Printf("💰 Total cost: $%s (solved in %v)\n", result.TotalCost.StringFixed(2), result.SolveTime)
}
