package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/demoseed/internal/config"
	"github.com/Rana718/demoseed/internal/types"
)

var seedStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts of every seeded table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		warnIfUninitialized()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		ctx := cmd.Context()
		db, err := openDatabases(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		counts, err := db.Counts(ctx)
		if err != nil {
			return err
		}

		total, tables := 0, 0
		for _, name := range types.Databases() {
			order, err := types.TablesIn(name)
			if err != nil {
				return err
			}
			color.Cyan("📋 %s", name)
			for _, table := range order {
				n := counts[name][table]
				total += n
				tables++
				if n == 0 {
					color.Yellow("  ⚠️  %-24s %8d", table, n)
					continue
				}
				fmt.Printf("  ✅ %-24s %8d\n", table, n)
			}
		}
		color.Green("\n📊 %d rows across %d tables", total, tables)
		return nil
	},
}

func init() {
	seedCmd.AddCommand(seedStatusCmd)
}
