package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/demoseed/internal/types"
)

func TestAddEmployeeClassifiesByRole(t *testing.T) {
	r := New()
	r.AddEmployee("EMP-1", types.RoleLoanOfficer)
	r.AddEmployee("EMP-2", types.RoleInsuranceAgent)
	r.AddEmployee("EMP-3", types.RoleComplianceOfficer)
	r.AddEmployee("EMP-4", types.RoleCustomerServiceRepresentative)
	r.AddEmployee("EMP-5", types.RoleRiskAnalyst)

	assert.Equal(t, []string{"EMP-1", "EMP-2", "EMP-3", "EMP-4", "EMP-5"}, r.EmployeeIDs())
	assert.Equal(t, []string{"EMP-1"}, r.LoanOfficers())
	assert.Equal(t, []string{"EMP-2"}, r.InsuranceAgents())
	assert.Equal(t, []string{"EMP-3"}, r.ComplianceOfficers())
}

func TestEmployeeRoleIsStable(t *testing.T) {
	r := New()
	r.AddEmployee("EMP-1", types.RoleBranchManager)

	for i := 0; i < 3; i++ {
		role, ok := r.EmployeeRole("EMP-1")
		require.True(t, ok)
		assert.Equal(t, types.RoleBranchManager, role)
	}

	_, ok := r.EmployeeRole("EMP-404")
	assert.False(t, ok)
}

func TestAddAccountLinksKnownCustomers(t *testing.T) {
	r := New()
	r.AddCustomer("CUST-1")

	assert.NotNil(t, r.AccountsOf("CUST-1"))
	assert.Empty(t, r.AccountsOf("CUST-1"))

	r.AddAccount("ACC-1", "CUST-1")
	r.AddAccount("ACC-2", "CUST-1")
	assert.NotPanics(t, func() { r.AddAccount("ACC-3", "CUST-UNKNOWN") })

	assert.Equal(t, []string{"ACC-1", "ACC-2"}, r.AccountsOf("CUST-1"))
	assert.Nil(t, r.AccountsOf("CUST-UNKNOWN"))
	assert.Len(t, r.AccountIDs(), 3)
	assert.False(t, r.HasCustomer("CUST-UNKNOWN"))
}

func TestLoanApplications(t *testing.T) {
	r := New()
	r.AddLoanApplication("LAPP-1", true)
	r.AddLoanApplication("LAPP-2", false)

	assert.Equal(t, []string{"LAPP-1", "LAPP-2"}, r.LoanApplicationIDs())
	assert.Equal(t, []string{"LAPP-1"}, r.ApprovedApplicationIDs())
}

func TestStats(t *testing.T) {
	r := New()
	r.AddDepartment("DEPT-1")
	r.AddTrainingProgram("PROG-1")
	r.AddEmployee("EMP-1", types.RoleLoanOfficer)
	r.AddCustomer("CUST-1")
	r.AddAccount("ACC-1", "CUST-1")
	r.AddCampaign("CAMP-1")
	r.AddInteraction("INT-1")
	r.AddLoanApplication("LAPP-1", true)
	r.AddLoan("LOAN-1")

	assert.Equal(t, Stats{
		Employees:            1,
		LoanOfficers:         1,
		Departments:          1,
		TrainingPrograms:     1,
		Customers:            1,
		Accounts:             1,
		Campaigns:            1,
		Interactions:         1,
		LoanApplications:     1,
		ApprovedApplications: 1,
		Loans:                1,
	}, r.Stats())
}

func TestCloneIsIndependent(t *testing.T) {
	r := New()
	r.AddEmployee("EMP-1", types.RoleLoanOfficer)
	r.AddCustomer("CUST-1")
	r.AddAccount("ACC-1", "CUST-1")

	c := r.Clone()
	c.AddEmployee("EMP-2", types.RoleLoanOfficer)
	c.AddAccount("ACC-2", "CUST-1")
	c.AddCustomer("CUST-2")

	assert.Equal(t, []string{"EMP-1"}, r.EmployeeIDs())
	assert.Equal(t, []string{"EMP-1"}, r.LoanOfficers())
	assert.Equal(t, []string{"ACC-1"}, r.AccountsOf("CUST-1"))
	assert.False(t, r.HasCustomer("CUST-2"))
	_, ok := r.EmployeeRole("EMP-2")
	assert.False(t, ok)

	assert.Equal(t, []string{"ACC-1", "ACC-2"}, c.AccountsOf("CUST-1"))
}

func TestReadersDoNotAliasRegistry(t *testing.T) {
	r := New()
	r.AddCustomer("CUST-1")
	r.AddAccount("ACC-1", "CUST-1")
	r.AddAccount("ACC-2", "CUST-1")
	r.AddAccount("ACC-3", "CUST-1")

	ids := append(r.AccountIDs(), "ACC-X")
	owned := append(r.AccountsOf("CUST-1"), "ACC-Y")
	r.AddAccount("ACC-4", "CUST-1")

	assert.Equal(t, []string{"ACC-1", "ACC-2", "ACC-3", "ACC-X"}, ids)
	assert.Equal(t, []string{"ACC-1", "ACC-2", "ACC-3", "ACC-Y"}, owned)
	assert.Equal(t, []string{"ACC-1", "ACC-2", "ACC-3", "ACC-4"}, r.AccountIDs())
	assert.Equal(t, []string{"ACC-1", "ACC-2", "ACC-3", "ACC-4"}, r.AccountsOf("CUST-1"))
	assert.Equal(t, 4, r.Stats().Accounts)
}
