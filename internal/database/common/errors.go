package common

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/Rana718/demoseed/internal/sink"
)

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// Classify maps a driver error onto a sink.Kind.
func Classify(err error) sink.Kind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return sink.KindUniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return sink.KindUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return sink.KindUniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint &&
		(liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return sink.KindUniqueViolation
	}

	return sink.KindOther
}

// Wrap turns a driver error into a *sink.PersistenceError. Context errors
// are returned unchanged so callers can tell cancellation apart.
func Wrap(database, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pe *sink.PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &sink.PersistenceError{Kind: Classify(err), Database: database, Table: table, Err: err}
}
