package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Department codes. The order matches the fixed department catalog.
const (
	DeptRetailBanking   = "retail_banking"
	DeptLending         = "lending"
	DeptInsurance       = "insurance"
	DeptCompliance      = "compliance"
	DeptOperations      = "operations"
	DeptCustomerService = "customer_service"
	DeptRisk            = "risk"
	DeptIT              = "it"
	DeptHR              = "hr"
	DeptFinance         = "finance"
	DeptAudit           = "audit"
	DeptMarketing       = "marketing"
)

const (
	EmploymentActive     = "active"
	EmploymentTerminated = "terminated"
)

type Department struct {
	ID     string
	Code   string
	Name   string
	HeadID *string
	Budget decimal.Decimal
}

func (d Department) Columns() []string {
	return []string{"department_id", "department_name", "department_head_id", "budget"}
}

func (d Department) Values() []any {
	return []any{d.ID, d.Name, nullString(d.HeadID), d.Budget}
}

type Employee struct {
	ID               string
	Number           string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Role             Role
	DepartmentID     string
	Department       string
	BranchCode       string
	ManagerID        *string
	HireDate         time.Time
	TerminationDate  *time.Time
	EmploymentStatus string
	Salary           decimal.Decimal
}

func (e Employee) Columns() []string {
	return []string{
		"employee_id", "employee_number", "first_name", "last_name", "email", "phone",
		"role", "department", "branch_code", "manager_id", "hire_date",
		"termination_date", "employment_status", "salary",
	}
}

func (e Employee) Values() []any {
	return []any{
		e.ID, e.Number, e.FirstName, e.LastName, e.Email, e.Phone,
		e.Role.Title(), e.Department, e.BranchCode, nullString(e.ManagerID), e.HireDate,
		nullTime(e.TerminationDate), e.EmploymentStatus, e.Salary,
	}
}

// Active reports whether the employee is still employed.
func (e Employee) Active() bool {
	return e.EmploymentStatus == EmploymentActive
}

// EmployedUntil is the last day of employment, or now for active employees.
func (e Employee) EmployedUntil(now time.Time) time.Time {
	if e.TerminationDate != nil {
		return *e.TerminationDate
	}
	return now
}

type TrainingProgram struct {
	ID                  string
	Name                string
	Description         string
	DurationHours       int
	Category            string
	OffersCertification bool
}

func (p TrainingProgram) Columns() []string {
	return []string{"program_id", "program_name", "description", "duration_hours", "category", "offers_certification"}
}

func (p TrainingProgram) Values() []any {
	return []any{p.ID, p.Name, p.Description, p.DurationHours, p.Category, p.OffersCertification}
}

type EmployeeTraining struct {
	ID                  string
	EmployeeID          string
	ProgramID           string
	EnrollmentDate      time.Time
	CompletionDate      *time.Time
	Status              string
	Score               *int
	CertificationIssued bool
}

func (t EmployeeTraining) Columns() []string {
	return []string{"enrollment_id", "employee_id", "program_id", "enrollment_date", "completion_date", "status", "score", "certification_issued"}
}

func (t EmployeeTraining) Values() []any {
	return []any{t.ID, t.EmployeeID, t.ProgramID, t.EnrollmentDate, nullTime(t.CompletionDate), t.Status, nullInt(t.Score), t.CertificationIssued}
}

type PerformanceReview struct {
	ID         string
	EmployeeID string
	ReviewerID *string
	ReviewDate time.Time
	Rating     string
	Score      decimal.Decimal
	Comments   string
}

func (r PerformanceReview) Columns() []string {
	return []string{"review_id", "employee_id", "reviewer_id", "review_date", "rating", "score", "comments"}
}

func (r PerformanceReview) Values() []any {
	return []any{r.ID, r.EmployeeID, nullString(r.ReviewerID), r.ReviewDate, r.Rating, r.Score, r.Comments}
}

type EmployeeAssignment struct {
	ID             string
	EmployeeID     string
	CustomerID     string
	AssignmentType string
	StartDate      time.Time
	EndDate        *time.Time
}

func (a EmployeeAssignment) Columns() []string {
	return []string{"assignment_id", "employee_id", "customer_id", "assignment_type", "start_date", "end_date"}
}

func (a EmployeeAssignment) Values() []any {
	return []any{a.ID, a.EmployeeID, a.CustomerID, a.AssignmentType, a.StartDate, nullTime(a.EndDate)}
}
