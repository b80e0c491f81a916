package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Rana718/demoseed/internal/database/common"
)

type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB) *Adapter {
	a := New()
	a.db = db
	return a
}

// Path strips the sqlite:// scheme and adds the default pragmas when the
// URL carries none.
func Path(url string) string {
	path := strings.TrimPrefix(url, "sqlite://")
	path = strings.TrimPrefix(path, "file:")
	if !strings.Contains(path, "?") {
		path += "?cache=shared&_journal_mode=WAL"
	}
	return path
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("sqlite3", Path(url))
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// one writer avoids SQLITE_BUSY inside long seeding transactions
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return common.NewSQLTx(tx, s.qb, common.QuoteANSI), nil
}

func (s *Adapter) RowCounts(ctx context.Context, tables []string) (map[string]int, error) {
	return common.RowCounts(ctx, s.db, common.QuoteANSI, tables)
}
