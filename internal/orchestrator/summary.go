package orchestrator

import (
	"time"

	"github.com/rs/xid"

	"github.com/Rana718/demoseed/internal/registry"
	"github.com/Rana718/demoseed/internal/types"
)

// Dataset holds every record set produced by committed phases.
type Dataset struct {
	Departments      []types.Department
	Employees        []types.Employee
	TrainingPrograms []types.TrainingProgram

	Customers []types.Customer
	Profiles  []types.CustomerProfile

	Accounts      []types.Account
	Relationships []types.AccountRelationship
	Transactions  []types.Transaction

	Campaigns         []types.Campaign
	Interactions      []types.Interaction
	Surveys           []types.SatisfactionSurvey
	Complaints        []types.Complaint
	CampaignResponses []types.CampaignResponse

	Enrollments []types.EmployeeTraining
	Reviews     []types.PerformanceReview
	Assignments []types.EmployeeAssignment

	Applications       []types.LoanApplication
	Loans              []types.Loan
	Collateral         []types.Collateral
	RepaymentSchedules []types.RepaymentInstallment
	Guarantors         []types.LoanGuarantor
	RiskAssessments    []types.RiskAssessment
}

type TableCount struct {
	Database string `json:"database" yaml:"database"`
	Table    string `json:"table" yaml:"table"`
	Rows     int    `json:"rows" yaml:"rows"`
}

type PhaseResult struct {
	Number   int           `json:"number" yaml:"number"`
	Name     string        `json:"name" yaml:"name"`
	Attempts int           `json:"attempts" yaml:"attempts"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary aggregates a run. After a failed run it describes the phases
// committed before the failure.
type Summary struct {
	RunID     xid.ID         `json:"run_id" yaml:"run_id"`
	Seed      int64          `json:"seed" yaml:"seed"`
	StartedAt time.Time      `json:"started_at" yaml:"started_at"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
	Stats     registry.Stats `json:"stats" yaml:"stats"`
	Tables    []TableCount   `json:"tables" yaml:"tables"`
	Phases    []PhaseResult  `json:"phases" yaml:"phases"`

	Dataset *Dataset `json:"-" yaml:"-"`
}

// Rows returns the number of rows written to one table.
func (s *Summary) Rows(database, table string) int {
	for _, t := range s.Tables {
		if t.Database == database && t.Table == table {
			return t.Rows
		}
	}
	return 0
}

// TotalRows returns the number of rows written across all tables.
func (s *Summary) TotalRows() int {
	total := 0
	for _, t := range s.Tables {
		total += t.Rows
	}
	return total
}

// ByDatabase groups table counts per logical database.
func (s *Summary) ByDatabase() map[string][]TableCount {
	out := make(map[string][]TableCount)
	for _, t := range s.Tables {
		out[t.Database] = append(out[t.Database], t)
	}
	return out
}
