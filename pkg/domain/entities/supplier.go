package entities

// SupplierID uniquely identifies a supplier.
type SupplierID string

// Pallets counts whole shipping pallets.
type Pallets int64

// Supplier represents a supplier with its order-quantity bounds and
// delivery lead time. Immutable during optimization.
type Supplier struct {
	ID           SupplierID
	Name         string
	MinPallets   Pallets
	MaxPallets   Pallets
	LeadTimeDays int
}
