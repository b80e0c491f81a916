package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/demoseed/internal/database/common"
	"github.com/Rana718/demoseed/internal/sink"
)

type recordingTx struct {
	pgx.Tx
	sql        string
	args       []any
	execErr    error
	committed  bool
	rolledBack bool
}

func (t *recordingTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.sql = sql
	t.args = args
	return pgconn.NewCommandTag("INSERT 0 2"), t.execErr
}

func (t *recordingTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *recordingTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

func TestConnectRejectsBadURL(t *testing.T) {
	err := New().Connect(context.Background(), "postgres://localhost:notaport/bank")
	assert.ErrorContains(t, err, "failed to parse connection URL")
}

func TestInsertBuildsDollarQuery(t *testing.T) {
	rec := &recordingTx{}
	var tx common.Tx = &poolTx{tx: rec, qb: New().qb}

	err := tx.Insert(context.Background(), "loans", []string{"loan_id", "loan_number"},
		[][]any{{"LOAN-1", "LN1"}, {"LOAN-2", "LN2"}})
	require.NoError(t, err)

	assert.Equal(t, `INSERT INTO "loans" ("loan_id","loan_number") VALUES ($1,$2),($3,$4)`, rec.sql)
	assert.Equal(t, []any{"LOAN-1", "LN1", "LOAN-2", "LN2"}, rec.args)

	require.NoError(t, tx.Commit(context.Background()))
	require.NoError(t, tx.Rollback(context.Background()))
	assert.True(t, rec.committed)
	assert.True(t, rec.rolledBack)
}

func TestInsertRejectsRaggedRows(t *testing.T) {
	rec := &recordingTx{}
	tx := &poolTx{tx: rec, qb: New().qb}

	err := tx.Insert(context.Background(), "loans", []string{"loan_id", "loan_number"}, [][]any{{"LOAN-1"}})
	assert.Error(t, err)
	assert.Empty(t, rec.sql, "nothing is executed")
}

func TestInsertReturnsDriverErrors(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	tx := &poolTx{tx: &recordingTx{execErr: dup}, qb: New().qb}

	err := tx.Insert(context.Background(), "loans", []string{"loan_id"}, [][]any{{"LOAN-1"}})
	require.Error(t, err)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, sink.KindUniqueViolation, common.Classify(err))
}
