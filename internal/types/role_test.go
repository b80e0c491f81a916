package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleMappingIsTotal(t *testing.T) {
	departments := map[string]bool{
		DeptRetailBanking: true, DeptLending: true, DeptInsurance: true, DeptCompliance: true,
		DeptOperations: true, DeptCustomerService: true, DeptRisk: true, DeptIT: true,
		DeptHR: true, DeptFinance: true, DeptAudit: true, DeptMarketing: true,
	}

	for _, role := range RoleValues() {
		assert.NotContains(t, role.Title(), "Role(", "role %d has no title", role)
		assert.True(t, departments[role.Department()], "role %s maps to unknown department %q", role, role.Department())

		lo, hi := role.SalaryBand()
		assert.Less(t, lo, hi, "salary band of %s", role)
	}
}

func TestRoleCategory(t *testing.T) {
	assert.Equal(t, CategoryLoanOfficer, RoleLoanOfficer.Category())
	assert.Equal(t, CategoryInsuranceAgent, RoleInsuranceAgent.Category())
	assert.Equal(t, CategoryComplianceOfficer, RoleComplianceOfficer.Category())

	// Risk Analyst shares no category even though it sounds like compliance work.
	assert.Equal(t, CategoryNone, RoleRiskAnalyst.Category())
	assert.Equal(t, CategoryNone, RoleBranchManager.Category())
}

func TestRoleString(t *testing.T) {
	role, err := RoleString("loan_officer")
	require.NoError(t, err)
	assert.Equal(t, RoleLoanOfficer, role)

	_, err = RoleString("astronaut")
	assert.Error(t, err)

	assert.Equal(t, "it_specialist", RoleItSpecialist.String())
	assert.Equal(t, "IT Specialist", RoleItSpecialist.Title())
}

func TestNullableValues(t *testing.T) {
	e := Employee{ID: "EMP-1", Role: RoleLoanOfficer}
	values := e.Values()
	require.Len(t, values, len(e.Columns()))
	assert.Nil(t, values[9], "manager_id")
	assert.Nil(t, values[11], "termination_date")
	assert.Equal(t, "Loan Officer", values[6])
}
