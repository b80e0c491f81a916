package types

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -transform snake -yaml -output role.gen.go

// Role is the job role of an employee. The set is closed: every role carries
// an explicit category and home department.
type Role int

const (
	RoleCustomerServiceRepresentative Role = iota
	RoleLoanOfficer
	RoleInsuranceAgent
	RoleComplianceOfficer
	RoleBranchManager
	RoleRiskAnalyst
	RoleItSpecialist
	RoleHrSpecialist
	RoleMarketingSpecialist
)

// RoleCategory buckets roles that later phases look up by function.
type RoleCategory int

const (
	CategoryNone RoleCategory = iota
	CategoryLoanOfficer
	CategoryInsuranceAgent
	CategoryComplianceOfficer
)

// Title is the human readable role stored in the employees table.
func (r Role) Title() string {
	switch r {
	case RoleCustomerServiceRepresentative:
		return "Customer Service Representative"
	case RoleLoanOfficer:
		return "Loan Officer"
	case RoleInsuranceAgent:
		return "Insurance Agent"
	case RoleComplianceOfficer:
		return "Compliance Officer"
	case RoleBranchManager:
		return "Branch Manager"
	case RoleRiskAnalyst:
		return "Risk Analyst"
	case RoleItSpecialist:
		return "IT Specialist"
	case RoleHrSpecialist:
		return "HR Specialist"
	case RoleMarketingSpecialist:
		return "Marketing Specialist"
	default:
		return r.String()
	}
}

func (r Role) Category() RoleCategory {
	switch r {
	case RoleLoanOfficer:
		return CategoryLoanOfficer
	case RoleInsuranceAgent:
		return CategoryInsuranceAgent
	case RoleComplianceOfficer:
		return CategoryComplianceOfficer
	default:
		return CategoryNone
	}
}

// Department returns the code of the department the role belongs to.
func (r Role) Department() string {
	switch r {
	case RoleCustomerServiceRepresentative:
		return DeptCustomerService
	case RoleLoanOfficer:
		return DeptLending
	case RoleInsuranceAgent:
		return DeptInsurance
	case RoleComplianceOfficer:
		return DeptCompliance
	case RoleBranchManager:
		return DeptRetailBanking
	case RoleRiskAnalyst:
		return DeptRisk
	case RoleItSpecialist:
		return DeptIT
	case RoleHrSpecialist:
		return DeptHR
	case RoleMarketingSpecialist:
		return DeptMarketing
	default:
		return DeptOperations
	}
}

// CustomerFacing reports whether the role handles customers directly.
func (r Role) CustomerFacing() bool {
	switch r {
	case RoleCustomerServiceRepresentative, RoleBranchManager, RoleLoanOfficer, RoleInsuranceAgent:
		return true
	}
	return false
}

// SalaryBand is the annual salary range for the role.
func (r Role) SalaryBand() (min, max float64) {
	switch r {
	case RoleCustomerServiceRepresentative:
		return 35000, 55000
	case RoleLoanOfficer:
		return 50000, 80000
	case RoleInsuranceAgent:
		return 45000, 75000
	case RoleComplianceOfficer:
		return 60000, 95000
	case RoleBranchManager:
		return 70000, 120000
	case RoleRiskAnalyst:
		return 65000, 100000
	case RoleItSpecialist:
		return 70000, 110000
	case RoleHrSpecialist:
		return 55000, 85000
	case RoleMarketingSpecialist:
		return 60000, 90000
	default:
		return 40000, 70000
	}
}
