package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/demoseed/internal/sink"
)

func TestInsertSQLPlaceholders(t *testing.T) {
	rows := [][]any{{"a1", 10}, {"a2", 20}}

	query, args, err := InsertSQL(squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		pq.QuoteIdentifier, "accounts", []string{"account_id", "balance"}, rows)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "accounts" ("account_id","balance") VALUES ($1,$2),($3,$4)`, query)
	assert.Equal(t, []any{"a1", 10, "a2", 20}, args)

	query, _, err = InsertSQL(squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		QuoteBacktick, "accounts", []string{"account_id", "balance"}, rows)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `accounts` (`account_id`,`balance`) VALUES (?,?),(?,?)", query)
}

func TestInsertSQLRejectsBadInput(t *testing.T) {
	qb := squirrel.StatementBuilder
	_, _, err := InsertSQL(qb, QuoteANSI, "t", []string{"a"}, nil)
	assert.ErrorIs(t, err, ErrNoRows)

	_, _, err = InsertSQL(qb, QuoteANSI, "t", []string{"a", "b"}, [][]any{{1}})
	assert.ErrorContains(t, err, "has 1 values for 2 columns")
}

func TestQuoting(t *testing.T) {
	assert.Equal(t, `"loans"`, QuoteANSI("loans"))
	assert.Equal(t, `"we""ird"`, QuoteANSI(`we"ird`))
	assert.Equal(t, "`loans`", QuoteBacktick("loans"))
	assert.Equal(t, "`we``ird`", QuoteBacktick("we`ird"))
}

func TestCountSQL(t *testing.T) {
	got := CountSQL(QuoteANSI, []string{"loans", "collateral"})
	assert.Equal(t, `SELECT 'loans' AS table_name, COUNT(*) AS row_count FROM "loans" UNION ALL `+
		`SELECT 'collateral' AS table_name, COUNT(*) AS row_count FROM "collateral"`, got)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want sink.Kind
	}{
		{"pgx unique", &pgconn.PgError{Code: "23505"}, sink.KindUniqueViolation},
		{"pgx foreign key", &pgconn.PgError{Code: "23503"}, sink.KindOther},
		{"pq unique", &pq.Error{Code: "23505"}, sink.KindUniqueViolation},
		{"pq not null", &pq.Error{Code: "23502"}, sink.KindOther},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, sink.KindUniqueViolation},
		{"mysql foreign key", &mysql.MySQLError{Number: 1452}, sink.KindOther},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, sink.KindUniqueViolation},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, sink.KindUniqueViolation},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, sink.KindOther},
		{"wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), sink.KindUniqueViolation},
		{"plain", errors.New("connection reset"), sink.KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("db", "t", nil))
	assert.Equal(t, context.Canceled, Wrap("db", "t", context.Canceled))
	assert.ErrorIs(t, Wrap("db", "t", fmt.Errorf("exec: %w", context.DeadlineExceeded)), context.DeadlineExceeded)

	err := Wrap("accounts_db", "accounts", &mysql.MySQLError{Number: 1062})
	var pe *sink.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, sink.KindUniqueViolation, pe.Kind)
	assert.Equal(t, "accounts_db", pe.Database)
	assert.Equal(t, "accounts", pe.Table)

	assert.Same(t, pe, Wrap("other", "x", pe))
}
