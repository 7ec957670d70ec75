package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"restock/pkg/interfaces/cli/commands"
)

func main() {
	// A .env file can set defaults; flags always win.
	_ = godotenv.Load()

	var (
		scenarioDir   = flag.String("scenario", "", "Path to scenario directory containing CSV files")
		itemsFile     = flag.String("items", "", "Path to items CSV file")
		suppliersFile = flag.String("suppliers", "", "Path to suppliers CSV file")
		pricingFile   = flag.String("pricing", "", "Path to pricing CSV file")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", "text", "Output format: text, json, csv")
		horizonDays   = flag.Int("horizon", envInt("RESTOCK_HORIZON_DAYS", 0), "Demand horizon in days (0 = per-item expiry window)")
		timeLimit     = flag.Duration("time-limit", envDuration("RESTOCK_TIME_LIMIT", 30*time.Second), "Solver time limit")
		policy        = flag.String("policy", os.Getenv("RESTOCK_MIN_ORDER_POLICY"), "Supplier minimum policy: conditional, unconditional")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ScenarioDir:   *scenarioDir,
		ItemsFile:     *itemsFile,
		SuppliersFile: *suppliersFile,
		PricingFile:   *pricingFile,
		OutputDir:     *outputDir,
		Format:        *format,
		HorizonDays:   *horizonDays,
		TimeLimit:     *timeLimit,
		Policy:        *policy,
		Verbose:       *verbose,
		Help:          *help,
	}

	cmd := commands.NewPlanCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
