package planning

import "restock/pkg/domain/entities"

// ExpectedDemand returns the units an item is expected to sell over
// the given horizon. Deterministic point estimate; no variability
// modeling.
func ExpectedDemand(item *entities.Item, horizonDays int) float64 {
	return item.AvgDailySales * float64(horizonDays)
}

// ExpectedLeadTimeDemand returns the units an item is expected to sell
// while an order from the given supplier is in transit.
func ExpectedLeadTimeDemand(item *entities.Item, supplier *entities.Supplier) float64 {
	return item.AvgDailySales * float64(supplier.LeadTimeDays)
}

// demandHorizon resolves the planning window for an item: the
// configured horizon when set, otherwise the item's own sellable
// window (its expiry days).
func demandHorizon(item *entities.Item, cfg Config) int {
	if cfg.HorizonDays > 0 {
		return cfg.HorizonDays
	}
	return item.ExpiryDays
}
