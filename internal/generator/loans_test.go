package generator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/demoseed/internal/types"
)

func TestApplicationsRequireLoanOfficers(t *testing.T) {
	w := buildWorld(t, 3, 0, 100)
	assert.Empty(t, NewLoanGenerator(w.env).Applications(w.customers))
	assert.Empty(t, w.env.Registry.LoanApplicationIDs())
}

func TestApplications(t *testing.T) {
	w := buildWorld(t, 3, 40, 1000)
	applications := NewLoanGenerator(w.env).Applications(w.customers)

	applicants := make(map[string]int)
	approved := 0
	for _, a := range applications {
		applicants[a.CustomerID]++
		role, ok := w.env.Registry.EmployeeRole(a.OfficerID)
		require.True(t, ok)
		assert.Equal(t, types.RoleLoanOfficer, role)

		params, ok := loanCatalog[a.LoanType]
		require.True(t, ok)
		assert.True(t, a.RequestedAmount.InexactFloat64() >= params.amount[0])
		assert.True(t, a.RequestedAmount.InexactFloat64() <= params.amount[1])

		switch a.Status {
		case types.ApplicationApproved:
			approved++
			require.NotNil(t, a.ApprovedAmount)
			require.NotNil(t, a.DecisionDate)
			assert.True(t, a.ApprovedAmount.LessThanOrEqual(a.RequestedAmount))
			assert.True(t, a.DecisionDate.After(a.ApplicationDate) || a.DecisionDate.Equal(testNow))
			assert.Nil(t, a.RejectionReason)
		case types.ApplicationRejected:
			assert.NotNil(t, a.DecisionDate)
			assert.Nil(t, a.ApprovedAmount)
			assert.Contains(t, rejectionReasons, *a.RejectionReason)
		default:
			assert.Nil(t, a.DecisionDate)
			assert.Nil(t, a.ApprovedAmount)
		}
	}

	assert.Len(t, applicants, 350)
	for _, n := range applicants {
		assert.True(t, n == 1 || n == 2)
	}
	assert.Len(t, w.env.Registry.LoanApplicationIDs(), len(applications))
	assert.Len(t, w.env.Registry.ApprovedApplicationIDs(), approved)
}

func TestLoansFollowApprovedApplications(t *testing.T) {
	w := buildWorld(t, 8, 40, 600)
	lg := NewLoanGenerator(w.env)
	applications := lg.Applications(w.customers)
	loans := lg.Loans(applications, w.accounts)
	require.NotEmpty(t, loans)

	byID := make(map[string]types.LoanApplication)
	for _, a := range applications {
		byID[a.ID] = a
	}
	accounts := make(map[string]types.Account)
	for _, a := range w.accounts {
		accounts[a.ID] = a
	}

	seen := make(map[string]bool)
	for _, l := range loans {
		app, ok := byID[l.ApplicationID]
		require.True(t, ok)
		assert.Equal(t, types.ApplicationApproved, app.Status)
		assert.False(t, seen[l.ApplicationID], "one loan per application")
		seen[l.ApplicationID] = true

		assert.Equal(t, app.CustomerID, l.CustomerID)
		assert.Equal(t, app.LoanType, l.LoanType)
		assert.True(t, l.Principal.Equal(*app.ApprovedAmount))
		assert.Contains(t, loanCatalog[l.LoanType].terms, l.TermMonths)
		assert.False(t, l.DisbursementDate.Before(*app.DecisionDate))
		assert.False(t, l.DisbursementDate.After(testNow))
		assert.Equal(t, l.Status == types.LoanDefaulted, l.Defaulted)

		if l.Status == types.LoanPaidOff {
			assert.True(t, l.OutstandingBalance.IsZero())
		}
		assert.True(t, l.OutstandingBalance.LessThanOrEqual(l.Principal))

		if l.LinkedAccountID != nil {
			acc := accounts[*l.LinkedAccountID]
			assert.Equal(t, l.CustomerID, acc.CustomerID)
			assert.Equal(t, types.AccountActive, acc.Status)
		}
	}
	assert.Len(t, loans, len(w.env.Registry.ApprovedApplicationIDs()))
	assert.Len(t, w.env.Registry.LoanIDs(), len(loans))
}

func TestLoanChildren(t *testing.T) {
	w := buildWorld(t, 21, 40, 800)
	lg := NewLoanGenerator(w.env)
	applications := lg.Applications(w.customers)
	loans := lg.Loans(applications, w.accounts)
	require.NotEmpty(t, loans)

	loanByID := make(map[string]types.Loan)
	for _, l := range loans {
		loanByID[l.ID] = l
	}

	for _, c := range lg.Collateral(loans) {
		l := loanByID[c.LoanID]
		assert.NotEmpty(t, loanCatalog[l.LoanType].collateral, "unsecured %s loan has collateral", l.LoanType)
		assert.True(t, c.AppraisedValue.GreaterThan(l.Principal))
		assert.True(t, c.LTVRatio.LessThan(decimal.NewFromInt(1)))
		assert.True(t, c.AppraisalDate.Before(l.DisbursementDate))
	}

	schedules := make(map[string][]types.RepaymentInstallment)
	for _, in := range lg.RepaymentSchedules(loans) {
		schedules[in.LoanID] = append(schedules[in.LoanID], in)
	}
	for id, installments := range schedules {
		l := loanByID[id]
		require.Len(t, installments, l.TermMonths)
		sum := decimal.Zero
		for _, in := range installments {
			sum = sum.Add(in.Principal)
			if in.DueDate.After(testNow) {
				assert.Equal(t, types.PaymentPending, in.PaymentStatus)
				assert.Nil(t, in.PaymentDate)
			}
			if in.PaymentStatus == types.PaymentMissed {
				assert.Nil(t, in.PaymentDate)
			}
		}
		assert.True(t, sum.Equal(l.Principal))
		assert.True(t, installments[len(installments)-1].RemainingBalance.IsZero())
	}

	guarantors := lg.Guarantors(loans)
	perLoan := make(map[string]int)
	for _, g := range guarantors {
		perLoan[g.LoanID]++
		assert.True(t, g.GuaranteeAmount.LessThanOrEqual(loanByID[g.LoanID].Principal))
	}
	assert.Len(t, perLoan, int(float64(len(loans))*guarantorRate))

	assessments := lg.RiskAssessments(applications, loans)
	assert.Len(t, assessments, len(applications)+int(float64(len(loans))*reassessmentRate))
	for _, a := range assessments {
		assert.True(t, (a.LoanID == nil) != (a.ApplicationID == nil), "targets exactly one of loan or application")
		assert.True(t, a.RiskScore >= 300 && a.RiskScore <= 850)
		if a.AssessedBy != nil {
			assert.Contains(t, w.env.Registry.ComplianceOfficers(), *a.AssessedBy)
		}
		assert.False(t, a.AssessmentDate.After(testNow))
	}
}
