package orchestrator

import (
	"github.com/Rana718/demoseed/internal/generator"
	"github.com/Rana718/demoseed/internal/sink"
	"github.com/Rana718/demoseed/internal/types"
)

// phase is one ordered stage of a run. categories are the unique-value
// categories owned by the phase; they are reset before every attempt.
type phase struct {
	number     int
	name       string
	categories []string
	run        func(a *attempt, d *Dataset) error
}

var phases = []phase{
	{1, "employees", []string{generator.CategoryEmployeeEmail, generator.CategoryEmployeePhone}, employeesPhase},
	{2, "customers", []string{generator.CategoryCustomerEmail, generator.CategoryCustomerPhone}, customersPhase},
	{3, "accounts", nil, accountsPhase},
	{4, "crm", nil, crmPhase},
	{5, "workforce", nil, workforcePhase},
	{6, "loans", nil, loansPhase},
}

// PhaseNames lists the phases in execution order.
func PhaseNames() []string {
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.name
	}
	return names
}

func persist[T sink.Row](a *attempt, database, table string, rows []T) error {
	if err := a.checkOrder(table); err != nil {
		return err
	}
	n, err := sink.Insert(a.ctx, a.sink, database, table, rows, a.batchSize)
	if err != nil {
		return err
	}
	a.persisted(database, table, n)
	return nil
}

func employeesPhase(a *attempt, d *Dataset) error {
	g := generator.NewEmployeeGenerator(a.env, a.employees)

	d.Departments = g.Departments()
	if err := persist(a, types.EmployeesDB, types.TableDepartments, d.Departments); err != nil {
		return err
	}

	employees, err := g.Employees(d.Departments)
	if err != nil {
		return err
	}
	d.Employees = employees
	if err := persist(a, types.EmployeesDB, types.TableEmployees, d.Employees); err != nil {
		return err
	}

	d.TrainingPrograms = g.TrainingPrograms()
	return persist(a, types.EmployeesDB, types.TableTrainingPrograms, d.TrainingPrograms)
}

func customersPhase(a *attempt, d *Dataset) error {
	g := generator.NewCustomerGenerator(a.env, a.customers)

	customers, err := g.Customers()
	if err != nil {
		return err
	}
	d.Customers = customers
	if err := persist(a, types.AccountsDB, types.TableCustomers, d.Customers); err != nil {
		return err
	}

	d.Profiles = g.Profiles(d.Customers)
	return persist(a, types.CustomerDB, types.TableCustomerProfiles, d.Profiles)
}

func accountsPhase(a *attempt, d *Dataset) error {
	g := generator.NewAccountGenerator(a.env)

	d.Accounts = g.Accounts(d.Customers)
	if err := persist(a, types.AccountsDB, types.TableAccounts, d.Accounts); err != nil {
		return err
	}

	d.Relationships = g.Relationships(d.Accounts)
	if err := persist(a, types.AccountsDB, types.TableAccountRelationships, d.Relationships); err != nil {
		return err
	}

	d.Transactions = g.Transactions(d.Accounts)
	return persist(a, types.AccountsDB, types.TableTransactions, d.Transactions)
}

func crmPhase(a *attempt, d *Dataset) error {
	g := generator.NewCRMGenerator(a.env)

	d.Campaigns = g.Campaigns()
	if err := persist(a, types.CustomerDB, types.TableCampaigns, d.Campaigns); err != nil {
		return err
	}

	d.Interactions = g.Interactions(d.Customers)
	if err := persist(a, types.CustomerDB, types.TableInteractions, d.Interactions); err != nil {
		return err
	}

	d.Surveys = g.Surveys(d.Interactions)
	if err := persist(a, types.CustomerDB, types.TableSatisfactionSurveys, d.Surveys); err != nil {
		return err
	}

	d.Complaints = g.Complaints(d.Customers)
	if err := persist(a, types.CustomerDB, types.TableComplaints, d.Complaints); err != nil {
		return err
	}

	d.CampaignResponses = g.CampaignResponses(d.Customers, d.Campaigns)
	return persist(a, types.CustomerDB, types.TableCampaignResponses, d.CampaignResponses)
}

func workforcePhase(a *attempt, d *Dataset) error {
	g := generator.NewWorkforceGenerator(a.env)

	d.Enrollments = g.Enrollments(d.Employees, d.TrainingPrograms)
	if err := persist(a, types.EmployeesDB, types.TableEmployeeTraining, d.Enrollments); err != nil {
		return err
	}

	d.Reviews = g.Reviews(d.Employees)
	if err := persist(a, types.EmployeesDB, types.TablePerformanceReviews, d.Reviews); err != nil {
		return err
	}

	d.Assignments = g.Assignments(d.Profiles, d.Employees)
	return persist(a, types.EmployeesDB, types.TableEmployeeAssignments, d.Assignments)
}

func loansPhase(a *attempt, d *Dataset) error {
	g := generator.NewLoanGenerator(a.env)

	d.Applications = g.Applications(d.Customers)
	if err := persist(a, types.LoansDB, types.TableLoanApplications, d.Applications); err != nil {
		return err
	}

	d.Loans = g.Loans(d.Applications, d.Accounts)
	if err := persist(a, types.LoansDB, types.TableLoans, d.Loans); err != nil {
		return err
	}

	d.Collateral = g.Collateral(d.Loans)
	if err := persist(a, types.LoansDB, types.TableCollateral, d.Collateral); err != nil {
		return err
	}

	d.RepaymentSchedules = g.RepaymentSchedules(d.Loans)
	if err := persist(a, types.LoansDB, types.TableRepaymentSchedules, d.RepaymentSchedules); err != nil {
		return err
	}

	d.Guarantors = g.Guarantors(d.Loans)
	if err := persist(a, types.LoansDB, types.TableLoanGuarantors, d.Guarantors); err != nil {
		return err
	}

	d.RiskAssessments = g.RiskAssessments(d.Applications, d.Loans)
	return persist(a, types.LoansDB, types.TableRiskAssessments, d.RiskAssessments)
}
