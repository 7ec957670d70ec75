package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"restock/pkg/application/dto"
	"restock/pkg/domain/entities"
)

// Config holds configuration for output generation.
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// csvFileName matches the report file the planners before this one
// produced, so downstream consumers keep working.
const csvFileName = "optimal_purchasing_plan.csv"

// Generate renders the plan in the requested format.
func Generate(result *dto.PlanResult, config Config) error {
	switch config.Format {
	case "text", "":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output.
func generateTextOutput(result *dto.PlanResult, config Config) error {
	fmt.Printf("📊 Purchase Plan Summary\n")
	fmt.Printf("========================\n\n")

	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Orders: %d\n", len(result.Orders))
	fmt.Printf("Total pallets: %d\n", result.TotalPallets())
	fmt.Printf("Total units: %d\n", result.TotalUnits())
	fmt.Printf("Total cost: $%s\n", result.TotalCost.StringFixed(2))
	fmt.Printf("Solve time: %v\n\n", result.SolveTime)

	if len(result.Orders) > 0 {
		fmt.Printf("🛒 Orders:\n")
		fmt.Printf("%-10s %-15s %-10s %-15s %8s %8s %12s %12s\n",
			"Item", "Name", "Supplier", "Name", "Pallets", "Units", "Cost/Pallet", "Total")
		fmt.Printf("%-10s %-15s %-10s %-15s %8s %8s %12s %12s\n",
			"----------", "---------------", "----------", "---------------",
			"--------", "--------", "------------", "------------")

		for _, order := range result.Orders {
			fmt.Printf("%-10s %-15s %-10s %-15s %8d %8d %12s %12s\n",
				order.ItemID,
				order.ItemName,
				order.SupplierID,
				order.SupplierName,
				order.PalletsOrdered,
				order.UnitsOrdered,
				order.CostPerPallet.StringFixed(2),
				order.TotalCost.StringFixed(2))
		}
		fmt.Println()

		fmt.Printf("🚚 Orders by supplier:\n")
		for _, line := range supplierSummary(result) {
			fmt.Printf("  %s: %d pallets, $%s\n", line.supplierID, line.pallets, line.cost.StringFixed(2))
		}
		fmt.Println()
	}

	if len(result.ItemsNotOrdered) > 0 {
		fmt.Printf("✅ Items not ordered (%d):\n", len(result.ItemsNotOrdered))
		for _, item := range result.ItemsNotOrdered {
			fmt.Printf("  %s (%s): current stock = %d, min stock = %d\n",
				item.ItemID, item.ItemName, item.CurrentStock, item.MinStock)
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput writes the full result as JSON, to a file when an
// output directory is set and to stdout otherwise.
func generateJSONOutput(result *dto.PlanResult, config Config) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}

	path := filepath.Join(config.OutputDir, "purchase_plan.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	if config.Verbose {
		fmt.Printf("📄 JSON plan written to %s\n", path)
	}
	return nil
}

// generateCSVOutput writes the plan records as CSV.
func generateCSVOutput(result *dto.PlanResult, config Config) error {
	dir := config.OutputDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, csvFileName)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV output: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{"ItemID", "ItemName", "SupplierID", "SupplierName",
		"PalletsOrdered", "UnitsOrdered", "CostPerPallet", "TotalCost"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, order := range result.Orders {
		record := []string{
			string(order.ItemID),
			order.ItemName,
			string(order.SupplierID),
			order.SupplierName,
			fmt.Sprintf("%d", order.PalletsOrdered),
			fmt.Sprintf("%d", order.UnitsOrdered),
			order.CostPerPallet.StringFixed(2),
			order.TotalCost.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}

	fmt.Printf("Optimal purchasing plan saved to %s\n", path)
	fmt.Printf("Total cost: $%s\n", result.TotalCost.StringFixed(2))
	return nil
}

type supplierLine struct {
	supplierID entities.SupplierID
	pallets    entities.Pallets
	cost       decimal.Decimal
}

// supplierSummary groups order totals by supplier, in the order
// suppliers first appear in the sorted order list.
func supplierSummary(result *dto.PlanResult) []supplierLine {
	index := make(map[entities.SupplierID]int)
	var lines []supplierLine
	for _, order := range result.Orders {
		i, exists := index[order.SupplierID]
		if !exists {
			i = len(lines)
			index[order.SupplierID] = i
			lines = append(lines, supplierLine{supplierID: order.SupplierID, cost: decimal.Zero})
		}
		lines[i].pallets += order.PalletsOrdered
		lines[i].cost = lines[i].cost.Add(order.TotalCost)
	}
	return lines
}
