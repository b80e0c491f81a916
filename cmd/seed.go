package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/demoseed/internal/config"
	"github.com/Rana718/demoseed/internal/database"
	"github.com/Rana718/demoseed/internal/orchestrator"
	"github.com/Rana718/demoseed/internal/sink"
	"github.com/Rana718/demoseed/internal/types"
)

var (
	seedScale     float64
	seedCustomers int
	seedEmployees int
	seedValue     int64
	seedBatchSize int
	seedDryRun    bool
	seedStatsOut  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate and load synthetic banking data",
}

var seedAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every generation phase",
	Long: `Generate employees, customers, accounts, CRM activity, workforce records
and loans, and insert them into the configured databases in dependency order.

Each phase runs in its own transaction and is retried from scratch when the
database reports a unique-constraint violation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		warnIfUninitialized()
		applySeedFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		log := newLogger(cfg.Log)
		ctx := cmd.Context()

		var s sink.Sink
		var mem *sink.Memory
		if seedDryRun {
			mem = sink.NewMemory(types.UniqueKeys)
			s = mem
			color.Yellow("🧪 Dry run: records are kept in memory")
		} else {
			db, err := openDatabases(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			s = db
		}

		o, err := orchestrator.New(cfg.Options(), s,
			orchestrator.WithLogger(log),
			orchestrator.WithReporter(newColorReporter()))
		if err != nil {
			return err
		}

		color.Cyan("🌱 Starting database seeding...")
		summary, runErr := o.Run(ctx)

		if seedStatsOut != "" {
			if err := writeStats(seedStatsOut, summary); err != nil {
				return err
			}
			color.Cyan("📄 Stats written to %s", seedStatsOut)
		}

		if runErr != nil {
			if errors.Is(runErr, context.Canceled) {
				color.Yellow("\n⚠️  Seeding interrupted, phases committed so far were kept")
			}
			return runErr
		}

		printSummary(os.Stdout, summary)
		color.Green("\n✅ Database seeding completed successfully!")
		return nil
	},
}

func applySeedFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("scale") {
		cfg.Generation.ScaleFactor = seedScale
	}
	if flags.Changed("customers") {
		n := seedCustomers
		cfg.Generation.Customers = &n
	}
	if flags.Changed("employees") {
		n := seedEmployees
		cfg.Generation.Employees = &n
	}
	if flags.Changed("seed") {
		cfg.Generation.Seed = seedValue
	}
	if flags.Changed("batch-size") {
		cfg.Generation.BatchSize = seedBatchSize
	}
}

// warnIfUninitialized notes that only defaults and environment variables
// apply when neither --config nor a config file in the working directory is
// present.
func warnIfUninitialized() {
	if cfgFile == "" && !config.IsInitialized() {
		color.Yellow("⚠️  %s not found, using defaults and environment variables", config.FileName)
	}
}

func openDatabases(ctx context.Context, cfg *config.Config) (*database.Sink, error) {
	urls, err := cfg.DatabaseURLs()
	if err != nil {
		return nil, err
	}
	db, err := database.Open(ctx, cfg.Provider, urls, newLogger(cfg.Log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedAllCmd)

	seedAllCmd.Flags().Float64Var(&seedScale, "scale", 1.0, "Multiply the base counts (150 employees, 1200 customers)")
	seedAllCmd.Flags().IntVar(&seedCustomers, "customers", 0, "Number of customers, overrides --scale")
	seedAllCmd.Flags().IntVar(&seedEmployees, "employees", 0, "Number of employees, overrides --scale")
	seedAllCmd.Flags().Int64Var(&seedValue, "seed", 0, "Random seed (0 picks one from the clock)")
	seedAllCmd.Flags().IntVar(&seedBatchSize, "batch-size", sink.DefaultBatchSize, "Rows per INSERT statement")
	seedAllCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Generate into memory without touching any database")
	seedAllCmd.Flags().StringVar(&seedStatsOut, "stats-out", "", "Write the run summary as YAML to this file")
}
