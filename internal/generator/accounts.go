package generator

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/Rana718/demoseed/internal/types"
)

const (
	accountHolderRate   = 0.75
	secondAccountRate   = 0.25
	domesticCurrency    = "USD"
	domesticRate        = 0.95
	maxOpeningDelayDays = 365

	// Cohort sizes of the relationship graph, in percent of active accounts.
	twoEdgePercent = 5
	oneEdgePercent = 20

	minTransactions = 5
	maxTransactions = 30
	spendingRate    = 0.70
	processedRate   = 0.10
)

var (
	accountTypeDistribution = MustWeighted(
		Choice[string]{"checking", 0.50},
		Choice[string]{"savings", 0.30},
		Choice[string]{"money_market", 0.15},
		Choice[string]{"cd", 0.05},
	)
	accountStatusDistribution = MustWeighted(
		Choice[string]{types.AccountActive, 0.92},
		Choice[string]{types.AccountFrozen, 0.05},
		Choice[string]{types.AccountClosed, 0.03},
	)
	balanceRanges = map[string][2]float64{
		"checking":     {50, 25_000},
		"savings":      {100, 100_000},
		"money_market": {10_000, 500_000},
		"cd":           {5_000, 200_000},
	}
	foreignCurrencies = []string{"EUR", "GBP", "CAD"}

	relationshipTypes = []string{"joint", "linked", "sweep", "overdraft_protection", "family"}

	spendingDistribution = MustWeighted(
		Choice[string]{"purchase", 0.45},
		Choice[string]{"withdrawal", 0.20},
		Choice[string]{"bill_payment", 0.20},
		Choice[string]{"transfer_out", 0.10},
		Choice[string]{"fee", 0.05},
	)
	incomeDistribution = MustWeighted(
		Choice[string]{"deposit", 0.50},
		Choice[string]{"salary", 0.30},
		Choice[string]{"transfer_in", 0.15},
		Choice[string]{"interest", 0.05},
	)
	transactionRanges = map[string][2]float64{
		"purchase":     {5, 500},
		"withdrawal":   {20, 1_000},
		"bill_payment": {25, 2_000},
		"transfer_out": {50, 5_000},
		"fee":          {1, 50},
		"deposit":      {50, 5_000},
		"salary":       {1_500, 8_000},
		"transfer_in":  {50, 5_000},
		"interest":     {0.5, 100},
	}
)

// AccountGenerator produces accounts_db products: accounts, the
// relationship graph between them and their transaction history.
type AccountGenerator struct {
	env *Env
}

func NewAccountGenerator(env *Env) *AccountGenerator {
	return &AccountGenerator{env: env}
}

// Accounts requires customers to be registered. A fixed share of customers
// is sampled without replacement and each sampled customer gets one or two
// accounts.
func (g *AccountGenerator) Accounts(customers []types.Customer) []types.Account {
	r := g.env.Rand
	holders := SampleIndices(r, len(customers), int(float64(len(customers))*accountHolderRate))

	var accounts []types.Account
	for _, idx := range holders {
		c := customers[idx]
		count := 1
		if Chance(r, secondAccountRate) {
			count = 2
		}

		for i := 0; i < count; i++ {
			accountType := accountTypeDistribution.Pick(r)
			bounds := balanceRanges[accountType]

			delay := int(g.env.Now.Sub(c.CreatedAt).Hours() / 24)
			if delay > maxOpeningDelayDays {
				delay = maxOpeningDelayDays
			}
			opened := c.CreatedAt
			if delay > 0 {
				opened = c.CreatedAt.Add(days(IntBetween(r, 0, delay)))
			}

			currency := domesticCurrency
			if !Chance(r, domesticRate) {
				currency = pick(r, foreignCurrencies)
			}

			a := types.Account{
				ID:         g.env.ID("ACC", 12),
				Number:     g.env.Digits(10),
				CustomerID: c.ID,
				Type:       accountType,
				Status:     accountStatusDistribution.Pick(r),
				Balance:    Money(r, bounds[0], bounds[1]),
				Currency:   currency,
				OpenedDate: opened,
				CreatedAt:  opened,
			}
			accounts = append(accounts, a)
			g.env.Registry.AddAccount(a.ID, c.ID)
		}
	}

	return accounts
}

// RelationshipPairs partitions n nodes into a two-edge cohort of 5% and a
// one-edge cohort of 20%, and returns the edges between node indices.
//
// Two-edge members form a cycle when there are at least three of them.
// Smaller two-edge cohorts form a path whose endpoints borrow members of the
// one-edge cohort. The rest of the one-edge cohort is paired up; an odd
// member left over gets no edge.
func RelationshipPairs(r *rand.Rand, n int) [][2]int {
	order := r.Perm(n)
	twoN := n * twoEdgePercent / 100
	oneN := n * oneEdgePercent / 100
	two := order[:twoN]
	one := order[twoN : twoN+oneN]

	var pairs [][2]int
	borrow := func(from int) {
		if len(one) == 0 {
			return
		}
		pairs = append(pairs, [2]int{from, one[0]})
		one = one[1:]
	}

	switch len(two) {
	case 0:
	case 1:
		borrow(two[0])
		borrow(two[0])
	case 2:
		pairs = append(pairs, [2]int{two[0], two[1]})
		borrow(two[0])
		borrow(two[1])
	default:
		for i := range two {
			pairs = append(pairs, [2]int{two[i], two[(i+1)%len(two)]})
		}
	}

	for len(one) >= 2 {
		pairs = append(pairs, [2]int{one[0], one[1]})
		one = one[2:]
	}

	return pairs
}

// Relationships links active accounts according to RelationshipPairs.
func (g *AccountGenerator) Relationships(accounts []types.Account) []types.AccountRelationship {
	var active []types.Account
	for _, a := range accounts {
		if a.Status == types.AccountActive {
			active = append(active, a)
		}
	}

	r := g.env.Rand
	pairs := RelationshipPairs(r, len(active))
	relationships := make([]types.AccountRelationship, 0, len(pairs))
	for _, p := range pairs {
		primary, related := active[p[0]], active[p[1]]
		relationships = append(relationships, types.AccountRelationship{
			PrimaryAccountID: primary.ID,
			RelatedAccountID: related.ID,
			Type:             pick(r, relationshipTypes),
			CreatedAt:        Between(r, maxTime(primary.OpenedDate, related.OpenedDate), g.env.Now),
		})
	}
	return relationships
}

// Transactions produces history for every account that is not closed.
// balance_after is the account's balance plus the transaction amount; it is
// not folded across the account's history.
func (g *AccountGenerator) Transactions(accounts []types.Account) []types.Transaction {
	r := g.env.Rand
	employees := g.env.Registry.EmployeeIDs()

	var transactions []types.Transaction
	for i, a := range accounts {
		if a.Status == types.AccountClosed {
			continue
		}

		count := IntBetween(r, minTransactions, maxTransactions)
		for j := 0; j < count; j++ {
			var txType string
			var amount decimal.Decimal
			if Chance(r, spendingRate) {
				txType = spendingDistribution.Pick(r)
				bounds := transactionRanges[txType]
				amount = Money(r, bounds[0], bounds[1]).Neg()
			} else {
				txType = incomeDistribution.Pick(r)
				bounds := transactionRanges[txType]
				amount = Money(r, bounds[0], bounds[1])
			}

			t := types.Transaction{
				ID:           g.env.ID("TXN", 16),
				AccountID:    a.ID,
				Type:         txType,
				Amount:       amount,
				Date:         Between(r, a.OpenedDate, g.env.Now),
				Description:  g.describe(txType),
				BalanceAfter: a.Balance.Add(amount),
			}

			if (txType == "transfer_out" || txType == "transfer_in") && len(accounts) > 1 {
				other := r.Intn(len(accounts) - 1)
				if other >= i {
					other++
				}
				t.CounterpartyAccount = ptr(accounts[other].ID)
			}
			if Chance(r, processedRate) && len(employees) > 0 {
				t.ProcessedBy = ptr(pick(r, employees))
			}

			transactions = append(transactions, t)
		}
	}

	return transactions
}

func (g *AccountGenerator) describe(txType string) string {
	switch txType {
	case "purchase":
		return fmt.Sprintf("Purchase at %s", g.env.Faker.Company())
	case "withdrawal":
		return "ATM withdrawal"
	case "bill_payment":
		return fmt.Sprintf("Bill payment to %s", g.env.Faker.Company())
	case "transfer_out":
		return "Outgoing transfer"
	case "fee":
		return "Monthly service fee"
	case "deposit":
		return "Cash deposit"
	case "salary":
		return fmt.Sprintf("Payroll %s", g.env.Faker.Company())
	case "transfer_in":
		return "Incoming transfer"
	case "interest":
		return "Interest credit"
	}
	return txType
}
