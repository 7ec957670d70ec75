package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"restock/pkg/application/services/planning"
	"restock/pkg/domain/entities"
	"restock/pkg/infrastructure/repositories/csv"
	"restock/pkg/infrastructure/repositories/memory"
	"restock/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command.
type Config struct {
	ScenarioDir   string
	ItemsFile     string
	SuppliersFile string
	PricingFile   string
	OutputDir     string
	Format        string
	HorizonDays   int
	TimeLimit     time.Duration
	Policy        string
	Verbose       bool
	Help          bool
}

// PlanCommand handles the main purchase-planning execution logic.
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a new plan command with the given configuration.
func NewPlanCommand(config Config) *PlanCommand {
	return &PlanCommand{config: config}
}

// Execute runs the plan command.
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	policy, err := planning.ParseMinOrderPolicy(c.config.Policy)
	if err != nil {
		return err
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("📂 Loading data from CSV files...")
	}

	loader := csv.NewLoader()
	items, err := loader.LoadItems(files["items"])
	if err != nil {
		return fmt.Errorf("error loading items: %w", err)
	}
	suppliers, err := loader.LoadSuppliers(files["suppliers"])
	if err != nil {
		return fmt.Errorf("error loading suppliers: %w", err)
	}
	pricing, err := loader.LoadPricing(files["pricing"])
	if err != nil {
		return fmt.Errorf("error loading pricing: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Data loaded successfully:\n")
		fmt.Printf("  Items: %d\n", len(items))
		fmt.Printf("  Suppliers: %d\n", len(suppliers))
		fmt.Printf("  Pricing entries: %d\n", len(pricing))
		fmt.Println()
	}

	catalog, err := memory.NewCatalog(items, suppliers, pricing)
	if err != nil {
		var integrity *entities.DataIntegrityError
		if errors.As(err, &integrity) {
			return fmt.Errorf("input data rejected: %w", err)
		}
		return err
	}

	if c.config.Verbose {
		fmt.Println("🧮 Building and solving purchase model...")
	}

	planner := planning.NewPlanner(nil, planning.Config{
		HorizonDays:     c.config.HorizonDays,
		SolverTimeLimit: c.config.TimeLimit,
		MinOrderPolicy:  policy,
	})

	result, err := planner.Plan(ctx, catalog)
	if err != nil {
		return describePlanError(err)
	}

	return output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}

// describePlanError keeps the typed error chain intact while adding a
// hint for the two structural outcomes.
func describePlanError(err error) error {
	var infeasible *planning.InfeasibleError
	if errors.As(err, &infeasible) {
		return fmt.Errorf("no feasible purchase plan exists; check the suspect constraints: %w", err)
	}
	var unbounded *planning.UnboundedError
	if errors.As(err, &unbounded) {
		return fmt.Errorf("model construction bug, please report: %w", err)
	}
	return err
}

// resolveInputFiles maps a scenario directory or explicit flags to the
// three input files.
func (c *PlanCommand) resolveInputFiles() (map[string]string, error) {
	if c.config.ScenarioDir != "" {
		files := map[string]string{
			"items":     filepath.Join(c.config.ScenarioDir, "items.csv"),
			"suppliers": filepath.Join(c.config.ScenarioDir, "suppliers.csv"),
			"pricing":   filepath.Join(c.config.ScenarioDir, "pricing.csv"),
		}
		for kind, path := range files {
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("scenario is missing %s file: %s", kind, path)
			}
		}
		return files, nil
	}

	if c.config.ItemsFile == "" || c.config.SuppliersFile == "" || c.config.PricingFile == "" {
		return nil, fmt.Errorf("provide -scenario or all of -items, -suppliers and -pricing")
	}
	return map[string]string{
		"items":     c.config.ItemsFile,
		"suppliers": c.config.SuppliersFile,
		"pricing":   c.config.PricingFile,
	}, nil
}

func (c *PlanCommand) showHelp() {
	fmt.Println("restock - cost-minimizing purchase planning")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  restock -scenario DIR [options]")
	fmt.Println("  restock -items F -suppliers F -pricing F [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -scenario DIR    Directory containing items.csv, suppliers.csv, pricing.csv")
	fmt.Println("  -items FILE      Items CSV file")
	fmt.Println("  -suppliers FILE  Suppliers CSV file")
	fmt.Println("  -pricing FILE    Pricing CSV file")
	fmt.Println("  -horizon N       Demand horizon in days (0 = per-item expiry window)")
	fmt.Println("  -time-limit D    Solver time limit, e.g. 30s")
	fmt.Println("  -policy P        Supplier minimum policy: conditional or unconditional")
	fmt.Println("  -format F        Output format: text, json, csv")
	fmt.Println("  -output DIR      Output directory for json/csv reports")
	fmt.Println("  -verbose         Verbose progress output")
}
