package memory

import (
	"fmt"
	"sort"

	"restock/pkg/domain/entities"
	"restock/pkg/domain/repositories"
)

// pairKey identifies an eligible (item, supplier) pair.
type pairKey struct {
	item     entities.ItemID
	supplier entities.SupplierID
}

// Catalog is an in-memory store of validated items, suppliers and
// pricing entries, with the eligibility adjacency built both ways.
// It is immutable after construction and safe to share across runs.
type Catalog struct {
	items     map[entities.ItemID]*entities.Item
	suppliers map[entities.SupplierID]*entities.Supplier
	pricing   map[pairKey]*entities.PricingEntry

	itemOrder     []entities.ItemID
	supplierOrder []entities.SupplierID

	suppliersByItem map[entities.ItemID][]entities.SupplierID
	itemsBySupplier map[entities.SupplierID][]entities.ItemID
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*Catalog)(nil)

// NewCatalog validates the input records and builds the lookup and
// eligibility indices. All validation happens at this single seam;
// any violation returns a *entities.DataIntegrityError naming the
// offending record.
func NewCatalog(items []entities.Item, suppliers []entities.Supplier, pricing []entities.PricingEntry) (*Catalog, error) {
	c := &Catalog{
		items:           make(map[entities.ItemID]*entities.Item, len(items)),
		suppliers:       make(map[entities.SupplierID]*entities.Supplier, len(suppliers)),
		pricing:         make(map[pairKey]*entities.PricingEntry, len(pricing)),
		suppliersByItem: make(map[entities.ItemID][]entities.SupplierID),
		itemsBySupplier: make(map[entities.SupplierID][]entities.ItemID),
	}

	for i := range items {
		item := items[i]
		if err := validateItem(&item); err != nil {
			return nil, err
		}
		if _, exists := c.items[item.ID]; exists {
			return nil, integrityErr("item", string(item.ID), "duplicate item ID")
		}
		c.items[item.ID] = &item
		c.itemOrder = append(c.itemOrder, item.ID)
	}

	for i := range suppliers {
		supplier := suppliers[i]
		if err := validateSupplier(&supplier); err != nil {
			return nil, err
		}
		if _, exists := c.suppliers[supplier.ID]; exists {
			return nil, integrityErr("supplier", string(supplier.ID), "duplicate supplier ID")
		}
		c.suppliers[supplier.ID] = &supplier
		c.supplierOrder = append(c.supplierOrder, supplier.ID)
	}

	for i := range pricing {
		entry := pricing[i]
		if err := c.validatePricing(&entry); err != nil {
			return nil, err
		}
		key := pairKey{entry.ItemID, entry.SupplierID}
		if _, exists := c.pricing[key]; exists {
			return nil, integrityErr("pricing", pairID(key), "duplicate pricing entry")
		}
		c.pricing[key] = &entry
		c.suppliersByItem[entry.ItemID] = append(c.suppliersByItem[entry.ItemID], entry.SupplierID)
		c.itemsBySupplier[entry.SupplierID] = append(c.itemsBySupplier[entry.SupplierID], entry.ItemID)
	}

	// Stable iteration order keeps model construction deterministic.
	sort.Slice(c.itemOrder, func(i, j int) bool { return c.itemOrder[i] < c.itemOrder[j] })
	sort.Slice(c.supplierOrder, func(i, j int) bool { return c.supplierOrder[i] < c.supplierOrder[j] })
	for _, ids := range c.suppliersByItem {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	for _, ids := range c.itemsBySupplier {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	return c, nil
}

// Item returns the item with the given ID.
func (c *Catalog) Item(id entities.ItemID) (*entities.Item, error) {
	item, exists := c.items[id]
	if !exists {
		return nil, fmt.Errorf("item not found: %s", id)
	}
	return item, nil
}

// Items returns all items sorted by ID.
func (c *Catalog) Items() []*entities.Item {
	items := make([]*entities.Item, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		items = append(items, c.items[id])
	}
	return items
}

// Supplier returns the supplier with the given ID.
func (c *Catalog) Supplier(id entities.SupplierID) (*entities.Supplier, error) {
	supplier, exists := c.suppliers[id]
	if !exists {
		return nil, fmt.Errorf("supplier not found: %s", id)
	}
	return supplier, nil
}

// Suppliers returns all suppliers sorted by ID.
func (c *Catalog) Suppliers() []*entities.Supplier {
	suppliers := make([]*entities.Supplier, 0, len(c.supplierOrder))
	for _, id := range c.supplierOrder {
		suppliers = append(suppliers, c.suppliers[id])
	}
	return suppliers
}

// Pricing returns the pricing entry for an (item, supplier) pair.
func (c *Catalog) Pricing(item entities.ItemID, supplier entities.SupplierID) (*entities.PricingEntry, bool) {
	entry, exists := c.pricing[pairKey{item, supplier}]
	return entry, exists
}

// EligibleSuppliers returns the suppliers that price the given item.
func (c *Catalog) EligibleSuppliers(item entities.ItemID) []entities.SupplierID {
	return c.suppliersByItem[item]
}

// EligibleItems returns the items priced by the given supplier.
func (c *Catalog) EligibleItems(supplier entities.SupplierID) []entities.ItemID {
	return c.itemsBySupplier[supplier]
}

func validateItem(item *entities.Item) error {
	id := string(item.ID)
	switch {
	case item.ID == "":
		return integrityErr("item", "(blank)", "empty item ID")
	case item.MinStock < 0:
		return integrityErr("item", id, "negative min_stock")
	case item.MaxStock < item.MinStock:
		return integrityErr("item", id, fmt.Sprintf("max_stock %d below min_stock %d", item.MaxStock, item.MinStock))
	case item.ExpiryDays <= 0:
		return integrityErr("item", id, "expiry_days must be positive")
	case item.CurrentStock < 0:
		return integrityErr("item", id, "negative current_stock")
	case item.AvgDailySales < 0:
		return integrityErr("item", id, "negative avg_daily_sales")
	}
	return nil
}

func validateSupplier(supplier *entities.Supplier) error {
	id := string(supplier.ID)
	switch {
	case supplier.ID == "":
		return integrityErr("supplier", "(blank)", "empty supplier ID")
	case supplier.MinPallets < 0:
		return integrityErr("supplier", id, "negative min_pallets")
	case supplier.MaxPallets < supplier.MinPallets:
		return integrityErr("supplier", id, fmt.Sprintf("max_pallets %d below min_pallets %d", supplier.MaxPallets, supplier.MinPallets))
	case supplier.LeadTimeDays < 0:
		return integrityErr("supplier", id, "negative lead_time_days")
	}
	return nil
}

func (c *Catalog) validatePricing(entry *entities.PricingEntry) error {
	id := pairID(pairKey{entry.ItemID, entry.SupplierID})
	if _, exists := c.items[entry.ItemID]; !exists {
		return integrityErr("pricing", id, fmt.Sprintf("unknown item %s", entry.ItemID))
	}
	if _, exists := c.suppliers[entry.SupplierID]; !exists {
		return integrityErr("pricing", id, fmt.Sprintf("unknown supplier %s", entry.SupplierID))
	}
	if entry.CostPerPallet.IsNegative() {
		return integrityErr("pricing", id, "negative cost_per_pallet")
	}
	if entry.UnitsPerPallet <= 0 {
		return integrityErr("pricing", id, "units_per_pallet must be positive")
	}
	return nil
}

func integrityErr(entity, id, reason string) *entities.DataIntegrityError {
	return &entities.DataIntegrityError{Entity: entity, ID: id, Reason: reason}
}

func pairID(key pairKey) string {
	return fmt.Sprintf("%s/%s", key.item, key.supplier)
}
