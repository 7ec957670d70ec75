package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"restock/pkg/domain/entities"
)

// Loader handles loading catalog data from CSV files. Parsing stops
// at syntax: range and referential checks belong to the catalog.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadItems loads items from a CSV file.
func (l *Loader) LoadItems(filename string) ([]entities.Item, error) {
	records, err := readAll(filename, "items")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"item_id", "name", "min_stock", "max_stock", "expiry_days", "current_stock", "avg_daily_sales"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("items CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var items []entities.Item
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("items CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadSuppliers loads suppliers from a CSV file.
func (l *Loader) LoadSuppliers(filename string) ([]entities.Supplier, error) {
	records, err := readAll(filename, "suppliers")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"supplier_id", "name", "min_pallets", "max_pallets", "lead_time_days"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("suppliers CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var suppliers []entities.Supplier
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("suppliers CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		supplier, err := parseSupplier(record)
		if err != nil {
			return nil, fmt.Errorf("suppliers CSV row %d: %w", i+2, err)
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, nil
}

// LoadPricing loads pricing entries from a CSV file.
func (l *Loader) LoadPricing(filename string) ([]entities.PricingEntry, error) {
	records, err := readAll(filename, "pricing")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"item_id", "supplier_id", "cost_per_pallet", "units_per_pallet"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("pricing CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var entries []entities.PricingEntry
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("pricing CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		entry, err := parsePricing(record)
		if err != nil {
			return nil, fmt.Errorf("pricing CSV row %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func parseItem(record []string) (entities.Item, error) {
	minStock, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return entities.Item{}, fmt.Errorf("invalid min_stock: %s", record[2])
	}
	maxStock, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return entities.Item{}, fmt.Errorf("invalid max_stock: %s", record[3])
	}
	expiryDays, err := strconv.Atoi(record[4])
	if err != nil {
		return entities.Item{}, fmt.Errorf("invalid expiry_days: %s", record[4])
	}
	currentStock, err := strconv.ParseInt(record[5], 10, 64)
	if err != nil {
		return entities.Item{}, fmt.Errorf("invalid current_stock: %s", record[5])
	}
	avgDailySales, err := strconv.ParseFloat(record[6], 64)
	if err != nil {
		return entities.Item{}, fmt.Errorf("invalid avg_daily_sales: %s", record[6])
	}

	return entities.Item{
		ID:            entities.ItemID(record[0]),
		Name:          record[1],
		MinStock:      entities.Units(minStock),
		MaxStock:      entities.Units(maxStock),
		ExpiryDays:    expiryDays,
		CurrentStock:  entities.Units(currentStock),
		AvgDailySales: avgDailySales,
	}, nil
}

func parseSupplier(record []string) (entities.Supplier, error) {
	minPallets, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return entities.Supplier{}, fmt.Errorf("invalid min_pallets: %s", record[2])
	}
	maxPallets, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return entities.Supplier{}, fmt.Errorf("invalid max_pallets: %s", record[3])
	}
	leadTimeDays, err := strconv.Atoi(record[4])
	if err != nil {
		return entities.Supplier{}, fmt.Errorf("invalid lead_time_days: %s", record[4])
	}

	return entities.Supplier{
		ID:           entities.SupplierID(record[0]),
		Name:         record[1],
		MinPallets:   entities.Pallets(minPallets),
		MaxPallets:   entities.Pallets(maxPallets),
		LeadTimeDays: leadTimeDays,
	}, nil
}

func parsePricing(record []string) (entities.PricingEntry, error) {
	cost, err := decimal.NewFromString(record[2])
	if err != nil {
		return entities.PricingEntry{}, fmt.Errorf("invalid cost_per_pallet: %s", record[2])
	}
	unitsPerPallet, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return entities.PricingEntry{}, fmt.Errorf("invalid units_per_pallet: %s", record[3])
	}

	return entities.PricingEntry{
		ItemID:         entities.ItemID(record[0]),
		SupplierID:     entities.SupplierID(record[1]),
		CostPerPallet:  cost,
		UnitsPerPallet: entities.Units(unitsPerPallet),
	}, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}
