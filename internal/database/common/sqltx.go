package common

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// SQLTx implements Tx over database/sql. The MySQL and SQLite adapters
// share it.
type SQLTx struct {
	tx    *sql.Tx
	qb    squirrel.StatementBuilderType
	quote func(string) string
}

func NewSQLTx(tx *sql.Tx, qb squirrel.StatementBuilderType, quote func(string) string) *SQLTx {
	return &SQLTx{tx: tx, qb: qb, quote: quote}
}

func (t *SQLTx) Insert(ctx context.Context, table string, columns []string, rows [][]any) error {
	query, args, err := InsertSQL(t.qb, t.quote, table, columns, rows)
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(ctx, query, args...)
	return err
}

func (t *SQLTx) Commit(context.Context) error {
	return t.tx.Commit()
}

func (t *SQLTx) Rollback(context.Context) error {
	return t.tx.Rollback()
}

// RowCounts runs CountSQL against db.
func RowCounts(ctx context.Context, db *sql.DB, quote func(string) string, tables []string) (map[string]int, error) {
	result := make(map[string]int, len(tables))
	if len(tables) == 0 {
		return result, nil
	}

	rows, err := db.QueryContext(ctx, CountSQL(quote, tables))
	if err != nil {
		return nil, fmt.Errorf("failed to batch count table rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var table string
		var count int
		if err := rows.Scan(&table, &count); err != nil {
			return nil, fmt.Errorf("failed to scan batch count result: %w", err)
		}
		result[table] = count
	}
	return result, rows.Err()
}
