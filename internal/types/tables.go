package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Logical databases written by the generator.
const (
	EmployeesDB = "employees_db"
	CustomerDB  = "customer_db"
	AccountsDB  = "accounts_db"
	LoansDB     = "loans_db"
)

// Table names, grouped by logical database.
const (
	TableDepartments         = "departments"
	TableEmployees           = "employees"
	TableTrainingPrograms    = "training_programs"
	TableEmployeeTraining    = "employee_training"
	TablePerformanceReviews  = "performance_reviews"
	TableEmployeeAssignments = "employee_assignments"

	TableCustomerProfiles    = "customer_profiles"
	TableCampaigns           = "campaigns"
	TableInteractions        = "interactions"
	TableSatisfactionSurveys = "satisfaction_surveys"
	TableComplaints          = "complaints"
	TableCampaignResponses   = "campaign_responses"

	TableCustomers            = "customers"
	TableAccounts             = "accounts"
	TableAccountRelationships = "account_relationships"
	TableTransactions         = "transactions"

	TableLoanApplications   = "loan_applications"
	TableLoans              = "loans"
	TableCollateral         = "collateral"
	TableRepaymentSchedules = "repayment_schedules"
	TableLoanGuarantors     = "loan_guarantors"
	TableRiskAssessments    = "risk_assessments"
)

// Schema lists the tables of every logical database. TablesIn gives them in
// insertion order.
var Schema = map[string][]string{
	EmployeesDB: {TableDepartments, TableEmployees, TableTrainingPrograms, TableEmployeeTraining, TablePerformanceReviews, TableEmployeeAssignments},
	CustomerDB:  {TableCustomerProfiles, TableCampaigns, TableInteractions, TableSatisfactionSurveys, TableComplaints, TableCampaignResponses},
	AccountsDB:  {TableCustomers, TableAccounts, TableAccountRelationships, TableTransactions},
	LoansDB:     {TableLoanApplications, TableLoans, TableCollateral, TableRepaymentSchedules, TableLoanGuarantors, TableRiskAssessments},
}

// UniqueKeys lists, per table, the column sets that must be unique. It
// mirrors the constraints of the target schema.
var UniqueKeys = map[string][][]string{
	TableDepartments:         {{"department_id"}},
	TableEmployees:           {{"employee_id"}, {"employee_number"}, {"email"}},
	TableTrainingPrograms:    {{"program_id"}},
	TableEmployeeTraining:    {{"enrollment_id"}},
	TablePerformanceReviews:  {{"review_id"}},
	TableEmployeeAssignments: {{"assignment_id"}},

	TableCustomerProfiles:    {{"customer_id"}, {"email"}},
	TableCampaigns:           {{"campaign_id"}},
	TableInteractions:        {{"interaction_id"}},
	TableSatisfactionSurveys: {{"survey_id"}},
	TableComplaints:          {{"complaint_id"}},
	TableCampaignResponses:   {{"response_id"}},

	TableCustomers:            {{"customer_id"}, {"email"}},
	TableAccounts:             {{"account_id"}, {"account_number"}},
	TableAccountRelationships: {{"primary_account_id", "related_account_id"}},
	TableTransactions:         {{"transaction_id"}},

	TableLoanApplications:   {{"application_id"}},
	TableLoans:              {{"loan_id"}, {"loan_number"}, {"application_id"}},
	TableCollateral:         {{"collateral_id"}},
	TableRepaymentSchedules: {{"loan_id", "installment_number"}},
}

// Databases returns the logical database names in a stable order.
func Databases() []string {
	return []string{EmployeesDB, CustomerDB, AccountsDB, LoansDB}
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
