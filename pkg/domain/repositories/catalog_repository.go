package repositories

import "restock/pkg/domain/entities"

// CatalogRepository provides access to validated item, supplier and
// pricing data, together with the eligibility indices derived from
// pricing entries. Implementations must return entities in a stable
// sorted order so that repeated optimization runs are deterministic.
type CatalogRepository interface {
	Item(id entities.ItemID) (*entities.Item, error)
	Items() []*entities.Item
	Supplier(id entities.SupplierID) (*entities.Supplier, error)
	Suppliers() []*entities.Supplier

	// Pricing returns the entry for an (item, supplier) pair, or false
	// when the pair is not eligible.
	Pricing(item entities.ItemID, supplier entities.SupplierID) (*entities.PricingEntry, bool)

	// EligibleSuppliers returns the suppliers that price the given item,
	// sorted by supplier ID.
	EligibleSuppliers(item entities.ItemID) []entities.SupplierID

	// EligibleItems returns the items priced by the given supplier,
	// sorted by item ID.
	EligibleItems(supplier entities.SupplierID) []entities.ItemID
}
