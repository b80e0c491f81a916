package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Rana718/demoseed/internal/types"
	"github.com/Rana718/demoseed/internal/unique"
)

const (
	branchCount         = 20
	terminationRate     = 0.05
	managerRate         = 0.70
	certificationRate   = 0.30
	employeeNumberStart = 10000
)

var departmentCatalog = []struct{ code, name string }{
	{types.DeptRetailBanking, "Retail Banking"},
	{types.DeptLending, "Lending"},
	{types.DeptInsurance, "Insurance"},
	{types.DeptCompliance, "Compliance & Risk"},
	{types.DeptOperations, "Operations"},
	{types.DeptCustomerService, "Customer Service"},
	{types.DeptRisk, "Risk Management"},
	{types.DeptIT, "Information Technology"},
	{types.DeptHR, "Human Resources"},
	{types.DeptFinance, "Finance"},
	{types.DeptAudit, "Internal Audit"},
	{types.DeptMarketing, "Marketing"},
}

var roleDistribution = MustWeighted(
	Choice[types.Role]{types.RoleCustomerServiceRepresentative, 0.40},
	Choice[types.Role]{types.RoleLoanOfficer, 0.20},
	Choice[types.Role]{types.RoleInsuranceAgent, 0.15},
	Choice[types.Role]{types.RoleComplianceOfficer, 0.10},
	Choice[types.Role]{types.RoleBranchManager, 0.05},
	Choice[types.Role]{types.RoleRiskAnalyst, 0.03},
	Choice[types.Role]{types.RoleItSpecialist, 0.03},
	Choice[types.Role]{types.RoleHrSpecialist, 0.02},
	Choice[types.Role]{types.RoleMarketingSpecialist, 0.02},
)

var trainingCatalog = []struct {
	category string
	names    []string
}{
	{"compliance", []string{"AML Training", "KYC Procedures", "Regulatory Updates", "Ethics Training"}},
	{"product", []string{"Loan Products Overview", "Insurance Fundamentals", "Investment Products"}},
	{"customer_service", []string{"Customer Communication", "Conflict Resolution", "Sales Techniques"}},
	{"technical", []string{"Core Banking System", "CRM Software", "Data Analytics"}},
	{"leadership", []string{"Team Management", "Performance Reviews", "Strategic Planning"}},
}

var trainingDurations = []int{2, 4, 8, 16, 24, 40}

// EmployeeGenerator builds the employees_db foundation: departments, staff
// and the training catalog.
type EmployeeGenerator struct {
	env *Env
	n   int
}

func NewEmployeeGenerator(env *Env, n int) *EmployeeGenerator {
	return &EmployeeGenerator{env: env, n: n}
}

// Departments returns the fixed department catalog and registers it.
func (g *EmployeeGenerator) Departments() []types.Department {
	departments := make([]types.Department, 0, len(departmentCatalog))
	for _, d := range departmentCatalog {
		dept := types.Department{
			ID:     g.env.ID("DEPT", 8),
			Code:   d.code,
			Name:   d.name,
			Budget: Money(g.env.Rand, 500_000, 5_000_000),
		}
		departments = append(departments, dept)
		g.env.Registry.AddDepartment(dept.ID)
	}
	return departments
}

// RoleQuota expands the role distribution into exactly n roles: floor(n*p)
// per role, the remainder drawn uniformly, then shuffled.
func RoleQuota(r *rand.Rand, n int) []types.Role {
	roles := make([]types.Role, 0, n)
	for _, c := range roleDistribution.Choices() {
		count := int(float64(n) * c.Weight)
		for i := 0; i < count; i++ {
			roles = append(roles, c.Value)
		}
	}
	all := types.RoleValues()
	for len(roles) < n {
		roles = append(roles, pick(r, all))
	}
	r.Shuffle(len(roles), func(i, j int) { roles[i], roles[j] = roles[j], roles[i] })
	return roles
}

// Employees requires Departments to have run. Every employee is registered
// with its role.
func (g *EmployeeGenerator) Employees(departments []types.Department) ([]types.Employee, error) {
	byCode := make(map[string]types.Department, len(departments))
	for _, d := range departments {
		byCode[d.Code] = d
	}

	r := g.env.Rand
	roles := RoleQuota(r, g.n)
	employees := make([]types.Employee, 0, len(roles))

	for i, role := range roles {
		email, err := unique.Generate(g.env.Unique, CategoryEmployeeEmail, 0, g.env.Faker.Email)
		if err != nil {
			return nil, err
		}
		phone, err := unique.Generate(g.env.Unique, CategoryEmployeePhone, 0, g.env.Phone)
		if err != nil {
			return nil, err
		}

		e := types.Employee{
			ID:               g.env.ID("EMP", 8),
			Number:           fmt.Sprintf("E%d", employeeNumberStart+i),
			FirstName:        g.env.Faker.FirstName(),
			LastName:         g.env.Faker.LastName(),
			Email:            email,
			Phone:            phone,
			Role:             role,
			Department:       "Unknown",
			BranchCode:       fmt.Sprintf("BR%03d", IntBetween(r, 1, branchCount)),
			HireDate:         Between(r, g.env.Now.AddDate(-10, 0, 0), g.env.Now),
			EmploymentStatus: types.EmploymentActive,
		}
		if d, ok := byCode[role.Department()]; ok {
			e.DepartmentID = d.ID
			e.Department = d.Name
		}

		if Chance(r, terminationRate) {
			e.TerminationDate = ptr(Between(r, e.HireDate, g.env.Now))
			e.EmploymentStatus = types.EmploymentTerminated
		}

		if Chance(r, managerRate) && len(employees) > 0 {
			e.ManagerID = ptr(pick(r, employees).ID)
		}

		lo, hi := role.SalaryBand()
		e.Salary = Money(r, lo, hi)

		employees = append(employees, e)
		g.env.Registry.AddEmployee(e.ID, role)
	}

	return employees, nil
}

// TrainingPrograms returns the fixed program catalog and registers it.
func (g *EmployeeGenerator) TrainingPrograms() []types.TrainingProgram {
	var programs []types.TrainingProgram
	for _, c := range trainingCatalog {
		for _, name := range c.names {
			p := types.TrainingProgram{
				ID:                  g.env.ID("PROG", 6),
				Name:                name,
				Description:         g.env.Faker.Sentence(20),
				DurationHours:       pick(g.env.Rand, trainingDurations),
				Category:            c.category,
				OffersCertification: Chance(g.env.Rand, certificationRate),
			}
			programs = append(programs, p)
			g.env.Registry.AddTrainingProgram(p.ID)
		}
	}
	return programs
}

func tenure(e types.Employee, now time.Time) time.Duration {
	return e.EmployedUntil(now).Sub(e.HireDate)
}
