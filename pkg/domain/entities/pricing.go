package entities

import "github.com/shopspring/decimal"

// PricingEntry defines the terms under which an item can be ordered
// from a supplier. The existence of an entry is what makes an
// (item, supplier) pair eligible; without one, no order is possible.
type PricingEntry struct {
	ItemID         ItemID
	SupplierID     SupplierID
	CostPerPallet  decimal.Decimal
	UnitsPerPallet Units
}

// UnitsFor converts a pallet count into stock units for this entry.
func (p *PricingEntry) UnitsFor(pallets Pallets) Units {
	return Units(int64(pallets) * int64(p.UnitsPerPallet))
}

// CostFor returns the exact cost of ordering the given pallet count.
func (p *PricingEntry) CostFor(pallets Pallets) decimal.Decimal {
	return p.CostPerPallet.Mul(decimal.NewFromInt(int64(pallets)))
}
