package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rana718/demoseed/internal/types"
)

const (
	applicantRate         = 0.35
	secondApplicationRate = 0.20
	collateralRate        = 0.80
	guarantorRate         = 0.25
	secondGuarantorRate   = 0.30
	reassessmentRate      = 0.40
	month                 = 30 * 24 * time.Hour
)

type loanParams struct {
	amount     [2]float64
	rate       [2]float64
	terms      []int
	collateral []string
}

var loanCatalog = map[string]loanParams{
	"mortgage": {
		amount:     [2]float64{100_000, 800_000},
		rate:       [2]float64{0.0325, 0.0675},
		terms:      []int{180, 240, 300, 360},
		collateral: []string{"property", "real_estate"},
	},
	"personal": {
		amount: [2]float64{5_000, 75_000},
		rate:   [2]float64{0.0599, 0.1799},
		terms:  []int{12, 24, 36, 48, 60},
	},
	"auto": {
		amount:     [2]float64{15_000, 80_000},
		rate:       [2]float64{0.0399, 0.0899},
		terms:      []int{36, 48, 60, 72},
		collateral: []string{"vehicle"},
	},
	"business": {
		amount:     [2]float64{25_000, 500_000},
		rate:       [2]float64{0.0499, 0.1299},
		terms:      []int{36, 60, 84, 120},
		collateral: []string{"equipment", "property", "inventory"},
	},
	"education": {
		amount: [2]float64{5_000, 100_000},
		rate:   [2]float64{0.0425, 0.0875},
		terms:  []int{60, 84, 120, 180},
	},
}

var (
	loanTypeDistribution = MustWeighted(
		Choice[string]{"mortgage", 0.35},
		Choice[string]{"personal", 0.30},
		Choice[string]{"auto", 0.20},
		Choice[string]{"business", 0.10},
		Choice[string]{"education", 0.05},
	)
	applicationStatusDistribution = MustWeighted(
		Choice[string]{types.ApplicationApproved, 0.65},
		Choice[string]{types.ApplicationPending, 0.10},
		Choice[string]{types.ApplicationRejected, 0.20},
		Choice[string]{types.ApplicationWithdrawn, 0.05},
	)
	loanStatusDistribution = MustWeighted(
		Choice[string]{types.LoanActive, 0.75},
		Choice[string]{types.LoanPaidOff, 0.20},
		Choice[string]{types.LoanDefaulted, 0.03},
		Choice[string]{types.LoanRestructured, 0.02},
	)
	rejectionReasons = []string{
		"Insufficient credit history",
		"Low credit score",
		"High debt-to-income ratio",
		"Incomplete documentation",
		"Unstable employment history",
		"Insufficient collateral value",
	}
	guarantorRelationships = []string{"spouse", "parent", "sibling", "business_partner", "family_member", "friend", "co-signer"}
	vehicleBodies          = []string{"Sedan", "SUV", "Truck"}
)

// LoanGenerator produces loans_db records. Applications require registered
// loan officers; loans are only ever created from approved applications.
type LoanGenerator struct {
	env *Env
}

func NewLoanGenerator(env *Env) *LoanGenerator {
	return &LoanGenerator{env: env}
}

// Applications samples a fixed share of customers without replacement. An
// applicant applies twice with an independent 20% chance. Nothing is
// produced when no loan officer is registered.
func (g *LoanGenerator) Applications(customers []types.Customer) []types.LoanApplication {
	officers := g.env.Registry.LoanOfficers()
	if len(customers) == 0 || len(officers) == 0 {
		return nil
	}

	r := g.env.Rand
	var applications []types.LoanApplication
	for _, idx := range SampleIndices(r, len(customers), int(float64(len(customers))*applicantRate)) {
		c := customers[idx]
		count := 1
		if Chance(r, secondApplicationRate) {
			count = 2
		}

		for i := 0; i < count; i++ {
			loanType := loanTypeDistribution.Pick(r)
			params := loanCatalog[loanType]
			a := types.LoanApplication{
				ID:              g.env.ID("LAPP", 12),
				CustomerID:      c.ID,
				LoanType:        loanType,
				RequestedAmount: Money(r, params.amount[0], params.amount[1]),
				ApplicationDate: Between(r, g.env.Now.AddDate(-2, 0, 0), g.env.Now),
				Status:          applicationStatusDistribution.Pick(r),
				OfficerID:       pick(r, officers),
			}

			switch a.Status {
			case types.ApplicationApproved:
				a.DecisionDate = ptr(minTime(a.ApplicationDate.Add(days(IntBetween(r, 1, 30))), g.env.Now))
				a.ApprovedAmount = ptr(a.RequestedAmount.Mul(decimal.NewFromFloat(Uniform(r, 0.80, 1.00))).Round(2))
			case types.ApplicationRejected:
				a.DecisionDate = ptr(minTime(a.ApplicationDate.Add(days(IntBetween(r, 1, 30))), g.env.Now))
				a.RejectionReason = ptr(pick(r, rejectionReasons))
			}

			applications = append(applications, a)
			g.env.Registry.AddLoanApplication(a.ID, a.Approved())
		}
	}
	return applications
}

// Loans creates one loan per approved application. Customer, type and
// principal come from the application.
func (g *LoanGenerator) Loans(applications []types.LoanApplication, accounts []types.Account) []types.Loan {
	activeByCustomer := make(map[string][]string)
	for _, a := range accounts {
		if a.Status == types.AccountActive {
			activeByCustomer[a.CustomerID] = append(activeByCustomer[a.CustomerID], a.ID)
		}
	}

	r := g.env.Rand
	var loans []types.Loan
	for _, app := range applications {
		if !app.Approved() || app.ApprovedAmount == nil || app.DecisionDate == nil {
			continue
		}

		params := loanCatalog[app.LoanType]
		disbursed := minTime(app.DecisionDate.Add(days(IntBetween(r, 1, 14))), g.env.Now)
		l := types.Loan{
			ID:               g.env.ID("LOAN", 12),
			ApplicationID:    app.ID,
			Number:           g.env.Digits(10),
			CustomerID:       app.CustomerID,
			LoanType:         app.LoanType,
			Principal:        *app.ApprovedAmount,
			InterestRate:     decimal.NewFromFloat(Uniform(r, params.rate[0], params.rate[1])).Round(4),
			TermMonths:       pick(r, params.terms),
			DisbursementDate: disbursed,
			Status:           loanStatusDistribution.Pick(r),
			ApprovedBy:       ptr(app.OfficerID),
		}
		l.MaturityDate = disbursed.AddDate(0, l.TermMonths, 0)
		l.Defaulted = l.Status == types.LoanDefaulted
		l.OutstandingBalance = g.outstanding(r, l)

		if owned := activeByCustomer[l.CustomerID]; len(owned) > 0 {
			l.LinkedAccountID = ptr(pick(r, owned))
		}

		loans = append(loans, l)
		g.env.Registry.AddLoan(l.ID)
	}
	return loans
}

func (g *LoanGenerator) outstanding(r *rand.Rand, l types.Loan) decimal.Decimal {
	switch l.Status {
	case types.LoanPaidOff:
		return decimal.Zero
	case types.LoanDefaulted:
		return l.Principal.Mul(decimal.NewFromFloat(Uniform(r, 0.40, 0.90))).Round(2)
	}

	elapsed := float64(g.env.Now.Sub(l.DisbursementDate) / month)
	progress := elapsed / float64(l.TermMonths)
	if progress > 1 {
		progress = 1
	}
	return l.Principal.Mul(decimal.NewFromFloat(1 - progress*Uniform(r, 0.70, 0.95))).Round(2)
}

// Collateral secures a share of mortgage, auto and business loans.
func (g *LoanGenerator) Collateral(loans []types.Loan) []types.Collateral {
	r := g.env.Rand
	var records []types.Collateral
	for _, l := range loans {
		kinds := loanCatalog[l.LoanType].collateral
		if len(kinds) == 0 || !Chance(r, collateralRate) {
			continue
		}

		kind := pick(r, kinds)
		appraised := l.Principal.Mul(decimal.NewFromFloat(Uniform(r, 1.10, 1.50))).Round(2)
		c := types.Collateral{
			ID:             g.env.ID("COL", 12),
			LoanID:         l.ID,
			Type:           kind,
			Description:    g.describeCollateral(kind),
			AppraisedValue: appraised,
			AppraisalDate:  l.DisbursementDate.Add(-days(IntBetween(r, 7, 30))),
			LTVRatio:       decimal.Zero,
		}
		if appraised.IsPositive() {
			c.LTVRatio = l.Principal.Div(appraised).Round(4)
		}
		records = append(records, c)
	}
	return records
}

func (g *LoanGenerator) describeCollateral(kind string) string {
	f := g.env.Faker
	switch kind {
	case "property":
		return fmt.Sprintf("%s, %s", f.Street(), f.City())
	case "real_estate":
		return fmt.Sprintf("Commercial property at %s", f.Street())
	case "vehicle":
		return fmt.Sprintf("%d %s %s", IntBetween(g.env.Rand, 2015, 2024), f.Company(), pick(g.env.Rand, vehicleBodies))
	case "equipment":
		return fmt.Sprintf("Business equipment: %s", f.BS())
	case "inventory":
		return "Business inventory and stock"
	}
	return "Collateral asset"
}

// Schedule amortizes a loan into monthly installments due from the month
// after disbursement. Past installments are settled according to the loan
// status; future ones are pending.
func (g *LoanGenerator) Schedule(l types.Loan) []types.RepaymentInstallment {
	r := g.env.Rand
	plan := Amortize(l.Principal, l.InterestRate, l.TermMonths)

	installments := make([]types.RepaymentInstallment, 0, len(plan))
	for _, p := range plan {
		due := l.DisbursementDate.AddDate(0, p.Number, 0)
		in := types.RepaymentInstallment{
			LoanID:            l.ID,
			InstallmentNumber: p.Number,
			DueDate:           due,
			Principal:         p.Principal,
			Interest:          p.Interest,
			Total:             p.Total,
			RemainingBalance:  p.Remaining,
			PaymentStatus:     types.PaymentPending,
		}

		if due.Before(g.env.Now) {
			var paid time.Time
			switch {
			case l.Status == types.LoanPaidOff:
				in.PaymentStatus = types.PaymentPaid
				paid = due.Add(days(IntBetween(r, -5, 5)))
			case l.Status == types.LoanDefaulted && Chance(r, 0.50):
				in.PaymentStatus = types.PaymentMissed
			case l.Status == types.LoanDefaulted:
				in.PaymentStatus = types.PaymentLate
				paid = due.Add(days(IntBetween(r, 5, 30)))
			case Chance(r, 0.95):
				in.PaymentStatus = types.PaymentPaid
				paid = due.Add(days(IntBetween(r, -3, 3)))
			default:
				in.PaymentStatus = types.PaymentLate
				paid = due.Add(days(IntBetween(r, 5, 15)))
			}
			if !paid.IsZero() {
				in.PaymentDate = ptr(minTime(paid, g.env.Now))
			}
		}

		installments = append(installments, in)
	}
	return installments
}

func (g *LoanGenerator) RepaymentSchedules(loans []types.Loan) []types.RepaymentInstallment {
	var all []types.RepaymentInstallment
	for _, l := range loans {
		all = append(all, g.Schedule(l)...)
	}
	return all
}

// Guarantors samples a fixed share of loans without replacement.
func (g *LoanGenerator) Guarantors(loans []types.Loan) []types.LoanGuarantor {
	r := g.env.Rand
	f := g.env.Faker

	var guarantors []types.LoanGuarantor
	for _, idx := range SampleIndices(r, len(loans), int(float64(len(loans))*guarantorRate)) {
		l := loans[idx]
		count := 1
		if Chance(r, secondGuarantorRate) {
			count = 2
		}
		for i := 0; i < count; i++ {
			guarantors = append(guarantors, types.LoanGuarantor{
				LoanID:          l.ID,
				Name:            f.Name(),
				Relationship:    pick(r, guarantorRelationships),
				ContactInfo:     fmt.Sprintf("%s, %s", f.Email(), g.env.Phone()),
				GuaranteeAmount: l.Principal.Mul(decimal.NewFromFloat(Uniform(r, 0.50, 1.00))).Round(2),
			})
		}
	}
	return guarantors
}

// RiskAssessments scores every application and a fixed share of loans.
func (g *LoanGenerator) RiskAssessments(applications []types.LoanApplication, loans []types.Loan) []types.RiskAssessment {
	r := g.env.Rand
	assessors := g.env.Registry.ComplianceOfficers()
	if len(assessors) == 0 {
		assessors = g.env.Registry.EmployeeIDs()
	}
	assessor := func() *string {
		if len(assessors) == 0 {
			return nil
		}
		return ptr(pick(r, assessors))
	}

	var assessments []types.RiskAssessment
	for _, a := range applications {
		score := IntBetween(r, 550, 850)
		var pd float64
		var grade string
		switch {
		case score >= 750:
			pd, grade = Uniform(r, 0.01, 0.05), pick(r, []string{"AAA", "AA", "A"})
		case score >= 650:
			pd, grade = Uniform(r, 0.05, 0.15), pick(r, []string{"BBB", "BB"})
		default:
			pd, grade = Uniform(r, 0.15, 0.35), pick(r, []string{"B", "CCC", "CC", "C"})
		}
		assessments = append(assessments, types.RiskAssessment{
			ApplicationID:  ptr(a.ID),
			AssessmentDate: a.ApplicationDate,
			RiskScore:      score,
			PDProbability:  decimal.NewFromFloat(pd).Round(4),
			CreditGrade:    grade,
			AssessedBy:     assessor(),
		})
	}

	for _, idx := range SampleIndices(r, len(loans), int(float64(len(loans))*reassessmentRate)) {
		l := loans[idx]
		var score int
		var pd float64
		var grade string
		switch l.Status {
		case types.LoanDefaulted:
			score, pd, grade = IntBetween(r, 300, 550), Uniform(r, 0.50, 0.95), pick(r, []string{"CCC", "CC", "C"})
		case types.LoanPaidOff:
			score, pd, grade = IntBetween(r, 700, 850), Uniform(r, 0.01, 0.05), pick(r, []string{"AAA", "AA", "A"})
		default:
			score, pd, grade = IntBetween(r, 600, 800), Uniform(r, 0.05, 0.20), pick(r, []string{"BBB", "BB", "B"})
		}
		assessments = append(assessments, types.RiskAssessment{
			LoanID:         ptr(l.ID),
			AssessmentDate: minTime(l.DisbursementDate.Add(days(IntBetween(r, 180, 730))), g.env.Now),
			RiskScore:      score,
			PDProbability:  decimal.NewFromFloat(pd).Round(4),
			CreditGrade:    grade,
			AssessedBy:     assessor(),
		})
	}
	return assessments
}
