package planning

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restock/pkg/application/dto"
	"restock/pkg/domain/entities"
	"restock/pkg/domain/repositories"
	"restock/pkg/milp"
)

// extractResult reads solved variable values back into domain terms:
// one PurchaseOrder per pair with a strictly positive order, unit and
// cost figures derived from the pricing entry, and an exact decimal
// grand total. Pairs are visited in model order, which is already
// sorted by (item, supplier).
func extractResult(catalog repositories.CatalogRepository, pm *purchaseModel, sol *milp.Solution, cfg Config) *dto.PlanResult {
	result := &dto.PlanResult{
		RunID:          uuid.NewString(),
		TotalCost:      decimal.Zero,
		Objective:      sol.Objective,
		HorizonDays:    cfg.HorizonDays,
		MinOrderPolicy: cfg.MinOrderPolicy.String(),
	}

	ordered := make(map[entities.ItemID]bool)
	for _, pair := range pm.pairs {
		pallets := entities.Pallets(sol.IntValue(pm.orders[pair]))
		if pallets <= 0 {
			continue
		}

		item, _ := catalog.Item(pair.item)
		supplier, _ := catalog.Supplier(pair.supplier)
		entry, _ := catalog.Pricing(pair.item, pair.supplier)

		cost := entry.CostFor(pallets)
		result.Orders = append(result.Orders, dto.PurchaseOrder{
			ItemID:         item.ID,
			ItemName:       item.Name,
			SupplierID:     supplier.ID,
			SupplierName:   supplier.Name,
			PalletsOrdered: pallets,
			UnitsOrdered:   entry.UnitsFor(pallets),
			CostPerPallet:  entry.CostPerPallet,
			TotalCost:      cost,
		})
		result.TotalCost = result.TotalCost.Add(cost)
		ordered[item.ID] = true
	}

	for _, item := range catalog.Items() {
		if ordered[item.ID] {
			continue
		}
		result.ItemsNotOrdered = append(result.ItemsNotOrdered, dto.UnorderedItem{
			ItemID:       item.ID,
			ItemName:     item.Name,
			CurrentStock: item.CurrentStock,
			MinStock:     item.MinStock,
		})
	}

	return result
}
