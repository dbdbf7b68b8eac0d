package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/harshaash/bidalloc"
	"github.com/harshaash/bidalloc/highsolver"
	"github.com/harshaash/bidalloc/table"
)

type solveArgs struct {
	productsFile    string
	suppliersFile   string
	bidsFile        string
	outFile         string
	configFile      string
	maxSuppliers    int
	capabilityLimit int
	timeLimit       float64
	workers         int
	verbose         bool
}

// fileConfig is the yaml config file layout: the constraint limits plus
// the solve bounds.
type fileConfig struct {
	bidalloc.Config `yaml:",inline"`

	TimeLimit float64 `yaml:"time_limit"`
	Workers   int     `yaml:"workers"`
}

func doSolve(args solveArgs) error {
	cfg, err := loadConfig(args.configFile)
	if err != nil {
		return fmt.Errorf("load config file failed: %w", err)
	}

	// Flags override the config file.
	if args.maxSuppliers > 0 {
		cfg.MaxSuppliers = &args.maxSuppliers
	}
	if args.capabilityLimit >= 0 {
		cfg.CapabilityPercent = &args.capabilityLimit
	}
	if args.timeLimit > 0 {
		cfg.TimeLimit = args.timeLimit
	}
	if args.workers > 0 {
		cfg.Workers = args.workers
	}

	logger := zap.NewNop()
	if args.verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	products, err := loadTable(args.productsFile)
	if err != nil {
		return fmt.Errorf("load products file failed: %w", err)
	}
	suppliers, err := loadTable(args.suppliersFile)
	if err != nil {
		return fmt.Errorf("load suppliers file failed: %w", err)
	}
	bids, err := loadTable(args.bidsFile)
	if err != nil {
		return fmt.Errorf("load bids file failed: %w", err)
	}

	planner := &bidalloc.Planner{
		Config:    cfg.Config,
		Solver:    highsolver.New(),
		TimeLimit: cfg.TimeLimit,
		Workers:   cfg.Workers,
		Logger:    logger,
	}

	outcome, err := planner.Plan(products, suppliers, bids)
	if err != nil {
		return err
	}

	if !outcome.Status.HasSolution() {
		return fmt.Errorf("no solution (status %s): refine the constraints or check the data", outcome.Status)
	}

	if err := writeAllocations(args.outFile, outcome.Allocations); err != nil {
		return fmt.Errorf("write allocation file failed: %w", err)
	}

	fmt.Printf("status: %s\n", outcome.Status)
	fmt.Printf("total cost: %s\n", outcome.Metrics.TotalCost)
	fmt.Printf("savings vs mean-bid baseline: %s\n", outcome.Metrics.Savings)
	return nil
}

func loadConfig(file string) (fileConfig, error) {
	var cfg fileConfig
	if file == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadTable(file string) (*table.Table, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return table.ReadCSV(f)
}

func writeAllocations(file string, allocs []bidalloc.Allocation) error {
	t := table.New("prod_name", "supp_name", "allocation")
	for _, a := range allocs {
		if err := t.Append(a.Product, a.Supplier, strconv.FormatInt(a.Quantity, 10)); err != nil {
			return err
		}
	}

	if file == "" {
		return t.WriteCSV(os.Stdout)
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.WriteCSV(f)
}
