package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

var ErrNoRows = errors.New("no rows to insert")

// Tx is an open transaction on one physical database.
type Tx interface {
	Insert(ctx context.Context, table string, columns []string, rows [][]any) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// InsertSQL builds a single multi-row INSERT. Identifiers go through quote;
// values are always bound as arguments.
func InsertSQL(qb squirrel.StatementBuilderType, quote func(string) string, table string, columns []string, rows [][]any) (string, []any, error) {
	if len(rows) == 0 {
		return "", nil, ErrNoRows
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quote(c)
	}

	insert := qb.Insert(quote(table)).Columns(quoted...)
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, fmt.Errorf("row %d of %s has %d values for %d columns", i, table, len(row), len(columns))
		}
		insert = insert.Values(row...)
	}
	return insert.ToSql()
}

// CountSQL builds one UNION ALL query returning (table_name, row_count)
// for every table.
func CountSQL(quote func(string) string, tables []string) string {
	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, fmt.Sprintf("SELECT '%s' AS table_name, COUNT(*) AS row_count FROM %s",
			strings.ReplaceAll(table, "'", "''"), quote(table)))
	}
	return strings.Join(parts, " UNION ALL ")
}

// QuoteANSI quotes an identifier with double quotes.
func QuoteANSI(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteBacktick quotes a MySQL identifier.
func QuoteBacktick(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
