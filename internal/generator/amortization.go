package generator

import (
	"math"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// Installment is one period of a fixed-payment amortization schedule.
type Installment struct {
	Number    int
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Total     decimal.Decimal
	Remaining decimal.Decimal
}

// MonthlyPayment returns P·r(1+r)^n / ((1+r)^n − 1) rounded to cents, with
// r = annualRate/12. A zero rate degrades to P/n.
func MonthlyPayment(principal, annualRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}

	r := annualRate.Div(monthsPerYear)
	if r.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(months))).Round(2)
	}

	growth := decimal.NewFromFloat(math.Pow(1+r.InexactFloat64(), float64(months)))
	return principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1))).Round(2)
}

// Amortize splits principal into months installments. Interest is charged on
// the remaining balance and rounded to cents. The last installment repays the
// remaining balance exactly, so principal portions always sum to principal
// and the final remaining balance is zero.
func Amortize(principal, annualRate decimal.Decimal, months int) []Installment {
	if months <= 0 {
		return nil
	}

	r := annualRate.Div(monthsPerYear)
	payment := MonthlyPayment(principal, annualRate, months)
	remaining := principal

	schedule := make([]Installment, 0, months)
	for i := 1; i <= months; i++ {
		interest := remaining.Mul(r).Round(2)
		part := payment.Sub(interest)
		if i == months || part.GreaterThan(remaining) {
			part = remaining
		}
		if part.IsNegative() {
			part = decimal.Zero
		}
		remaining = remaining.Sub(part)

		schedule = append(schedule, Installment{
			Number:    i,
			Principal: part,
			Interest:  interest,
			Total:     part.Add(interest),
			Remaining: remaining,
		})
	}
	return schedule
}
