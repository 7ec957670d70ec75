package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"restock/pkg/domain/entities"
)

// PurchaseOrder is one line of the purchase plan: how many pallets of
// an item to order from a supplier, with the derived unit and cost
// figures. Only pairs with a strictly positive order are reported.
type PurchaseOrder struct {
	ItemID         entities.ItemID     `json:"item_id"`
	ItemName       string              `json:"item_name"`
	SupplierID     entities.SupplierID `json:"supplier_id"`
	SupplierName   string              `json:"supplier_name"`
	PalletsOrdered entities.Pallets    `json:"pallets_ordered"`
	UnitsOrdered   entities.Units      `json:"units_ordered"`
	CostPerPallet  decimal.Decimal     `json:"cost_per_pallet"`
	TotalCost      decimal.Decimal     `json:"total_cost"`
}

// UnorderedItem describes an item the optimal plan leaves alone,
// with the stock position explaining why no order was needed.
type UnorderedItem struct {
	ItemID       entities.ItemID `json:"item_id"`
	ItemName     string          `json:"item_name"`
	CurrentStock entities.Units  `json:"current_stock"`
	MinStock     entities.Units  `json:"min_stock"`
}

// PlanResult is the complete output of one optimization run. Orders
// are sorted by (item ID, supplier ID); TotalCost is the exact decimal
// sum of the order costs and matches the solver objective within
// floating-point tolerance.
type PlanResult struct {
	RunID           string          `json:"run_id"`
	Orders          []PurchaseOrder `json:"orders"`
	ItemsNotOrdered []UnorderedItem `json:"items_not_ordered"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Objective       float64         `json:"objective"`
	HorizonDays     int             `json:"horizon_days"`
	MinOrderPolicy  string          `json:"min_order_policy"`
	SolveTime       time.Duration   `json:"solve_time_ns"`
}

// TotalPallets sums pallets across all orders.
func (r *PlanResult) TotalPallets() entities.Pallets {
	var total entities.Pallets
	for _, order := range r.Orders {
		total += order.PalletsOrdered
	}
	return total
}

// TotalUnits sums units across all orders.
func (r *PlanResult) TotalUnits() entities.Units {
	var total entities.Units
	for _, order := range r.Orders {
		total += order.UnitsOrdered
	}
	return total
}
