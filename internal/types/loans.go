package types

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ApplicationApproved  = "approved"
	ApplicationPending   = "pending"
	ApplicationRejected  = "rejected"
	ApplicationWithdrawn = "withdrawn"
)

const (
	LoanActive       = "active"
	LoanPaidOff      = "paid_off"
	LoanDefaulted    = "defaulted"
	LoanRestructured = "restructured"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentLate    = "late"
	PaymentMissed  = "missed"
)

type LoanApplication struct {
	ID              string
	CustomerID      string
	LoanType        string
	RequestedAmount decimal.Decimal
	ApplicationDate time.Time
	Status          string
	OfficerID       string
	DecisionDate    *time.Time
	ApprovedAmount  *decimal.Decimal
	RejectionReason *string
}

func (a LoanApplication) Columns() []string {
	return []string{
		"application_id", "customer_id", "loan_type", "requested_amount", "application_date",
		"status", "officer_id", "decision_date", "approved_amount", "rejection_reason",
	}
}

func (a LoanApplication) Values() []any {
	return []any{
		a.ID, a.CustomerID, a.LoanType, a.RequestedAmount, a.ApplicationDate,
		a.Status, a.OfficerID, nullTime(a.DecisionDate), nullDecimal(a.ApprovedAmount), nullString(a.RejectionReason),
	}
}

func (a LoanApplication) Approved() bool {
	return a.Status == ApplicationApproved
}

type Loan struct {
	ID                 string
	ApplicationID      string
	Number             string
	CustomerID         string
	LinkedAccountID    *string
	LoanType           string
	Principal          decimal.Decimal
	InterestRate       decimal.Decimal
	TermMonths         int
	DisbursementDate   time.Time
	MaturityDate       time.Time
	Status             string
	OutstandingBalance decimal.Decimal
	Defaulted          bool
	ApprovedBy         *string
}

func (l Loan) Columns() []string {
	return []string{
		"loan_id", "application_id", "loan_number", "customer_id", "linked_account_id",
		"loan_type", "principal_amount", "interest_rate", "term_months", "disbursement_date",
		"maturity_date", "loan_status", "outstanding_balance", "default_status", "approved_by",
	}
}

func (l Loan) Values() []any {
	return []any{
		l.ID, l.ApplicationID, l.Number, l.CustomerID, nullString(l.LinkedAccountID),
		l.LoanType, l.Principal, l.InterestRate, l.TermMonths, l.DisbursementDate,
		l.MaturityDate, l.Status, l.OutstandingBalance, l.Defaulted, nullString(l.ApprovedBy),
	}
}

type Collateral struct {
	ID             string
	LoanID         string
	Type           string
	Description    string
	AppraisedValue decimal.Decimal
	AppraisalDate  time.Time
	LTVRatio       decimal.Decimal
}

func (c Collateral) Columns() []string {
	return []string{"collateral_id", "loan_id", "collateral_type", "description", "appraised_value", "appraisal_date", "ltv_ratio"}
}

func (c Collateral) Values() []any {
	return []any{c.ID, c.LoanID, c.Type, c.Description, c.AppraisedValue, c.AppraisalDate, c.LTVRatio}
}

// RepaymentInstallment is one row of a loan's amortized schedule.
type RepaymentInstallment struct {
	LoanID            string
	InstallmentNumber int
	DueDate           time.Time
	Principal         decimal.Decimal
	Interest          decimal.Decimal
	Total             decimal.Decimal
	RemainingBalance  decimal.Decimal
	PaymentDate       *time.Time
	PaymentStatus     string
}

func (r RepaymentInstallment) Columns() []string {
	return []string{
		"loan_id", "installment_number", "due_date", "principal_amount", "interest_amount",
		"total_amount", "remaining_balance", "payment_date", "payment_status",
	}
}

func (r RepaymentInstallment) Values() []any {
	return []any{
		r.LoanID, r.InstallmentNumber, r.DueDate, r.Principal, r.Interest,
		r.Total, r.RemainingBalance, nullTime(r.PaymentDate), r.PaymentStatus,
	}
}

type LoanGuarantor struct {
	LoanID          string
	Name            string
	Relationship    string
	ContactInfo     string
	GuaranteeAmount decimal.Decimal
}

func (g LoanGuarantor) Columns() []string {
	return []string{"loan_id", "guarantor_name", "relationship", "contact_info", "guarantee_amount"}
}

func (g LoanGuarantor) Values() []any {
	return []any{g.LoanID, g.Name, g.Relationship, g.ContactInfo, g.GuaranteeAmount}
}

// RiskAssessment targets either an application or a loan, never both.
type RiskAssessment struct {
	LoanID         *string
	ApplicationID  *string
	AssessmentDate time.Time
	RiskScore      int
	PDProbability  decimal.Decimal
	CreditGrade    string
	AssessedBy     *string
}

func (r RiskAssessment) Columns() []string {
	return []string{"loan_id", "application_id", "assessment_date", "risk_score", "pd_probability", "credit_grade", "assessed_by"}
}

func (r RiskAssessment) Values() []any {
	return []any{nullString(r.LoanID), nullString(r.ApplicationID), r.AssessmentDate, r.RiskScore, r.PDProbability, r.CreditGrade, nullString(r.AssessedBy)}
}
