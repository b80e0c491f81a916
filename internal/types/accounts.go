package types

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountActive = "active"
	AccountFrozen = "frozen"
	AccountClosed = "closed"
)

type Account struct {
	ID         string
	Number     string
	CustomerID string
	Type       string
	Status     string
	Balance    decimal.Decimal
	Currency   string
	OpenedDate time.Time
	CreatedAt  time.Time
}

func (a Account) Columns() []string {
	return []string{"account_id", "account_number", "customer_id", "account_type", "account_status", "balance", "currency", "opened_date"}
}

func (a Account) Values() []any {
	return []any{a.ID, a.Number, a.CustomerID, a.Type, a.Status, a.Balance, a.Currency, a.OpenedDate}
}

// AccountRelationship is an undirected pairing of two distinct accounts.
type AccountRelationship struct {
	PrimaryAccountID string
	RelatedAccountID string
	Type             string
	CreatedAt        time.Time
}

func (r AccountRelationship) Columns() []string {
	return []string{"primary_account_id", "related_account_id", "relationship_type", "created_at"}
}

func (r AccountRelationship) Values() []any {
	return []any{r.PrimaryAccountID, r.RelatedAccountID, r.Type, r.CreatedAt}
}

type Transaction struct {
	ID                  string
	AccountID           string
	Type                string
	Amount              decimal.Decimal
	Date                time.Time
	Description         string
	BalanceAfter        decimal.Decimal
	CounterpartyAccount *string
	ProcessedBy         *string
}

func (t Transaction) Columns() []string {
	return []string{
		"transaction_id", "account_id", "transaction_type", "transaction_amount",
		"transaction_date", "description", "balance_after", "counterparty_account", "processed_by",
	}
}

func (t Transaction) Values() []any {
	return []any{
		t.ID, t.AccountID, t.Type, t.Amount,
		t.Date, t.Description, t.BalanceAfter, nullString(t.CounterpartyAccount), nullString(t.ProcessedBy),
	}
}
