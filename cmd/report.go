package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/Rana718/demoseed/internal/orchestrator"
	"github.com/Rana718/demoseed/internal/types"
)

type colorReporter struct {
	phases int
}

func newColorReporter() colorReporter {
	return colorReporter{phases: len(orchestrator.PhaseNames())}
}

func (r colorReporter) Report(e orchestrator.Event) {
	switch e.Kind {
	case orchestrator.EventPhaseStarted:
		color.Cyan("\n📦 Phase %d/%d: %s", e.Phase, r.phases, e.Name)
	case orchestrator.EventTablePersisted:
		if e.Rows == 0 {
			color.Yellow("  ⚠️  %s.%s: nothing to seed", e.Database, e.Table)
			return
		}
		color.Green("  ✅ %s.%s seeded (%d records)", e.Database, e.Table, e.Rows)
	case orchestrator.EventPhaseRetry:
		color.Yellow("  🔄 %v", e.Err)
		color.Yellow("  🔄 Retrying %s (attempt %d)...", e.Name, e.Attempt)
	case orchestrator.EventPhaseCompleted:
		color.Cyan("🔓 %s committed in %s", e.Name, e.Elapsed.Round(time.Millisecond))
	case orchestrator.EventPhaseFailed:
		color.Red("❌ %s failed after %d attempt(s): %v", e.Name, e.Attempt, e.Err)
	}
}

func printSummary(w io.Writer, s *orchestrator.Summary) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "\n📊 Run %s (seed %d)\n", s.RunID, s.Seed)

	byDB := s.ByDatabase()
	for _, db := range types.Databases() {
		tables, ok := byDB[db]
		if !ok {
			continue
		}
		color.New(color.FgCyan).Fprintf(w, "  %s\n", db)
		for _, t := range tables {
			fmt.Fprintf(w, "    %-24s %8d\n", t.Table, t.Rows)
		}
	}

	stats := map[string]int{
		"employees":             s.Stats.Employees,
		"loan officers":         s.Stats.LoanOfficers,
		"insurance agents":      s.Stats.InsuranceAgents,
		"compliance officers":   s.Stats.ComplianceOfficers,
		"customers":             s.Stats.Customers,
		"accounts":              s.Stats.Accounts,
		"loan applications":     s.Stats.LoanApplications,
		"approved applications": s.Stats.ApprovedApplications,
		"loans":                 s.Stats.Loans,
	}
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	color.New(color.FgCyan).Fprintln(w, "  registry")
	for _, name := range names {
		fmt.Fprintf(w, "    %-24s %8d\n", name, stats[name])
	}
	bold.Fprintf(w, "  %d rows in %s\n", s.TotalRows(), s.Duration.Round(time.Millisecond))
}

func writeStats(path string, s *orchestrator.Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}
