package database

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/Rana718/demoseed/internal/database/common"
	"github.com/Rana718/demoseed/internal/sink"
	"github.com/Rana718/demoseed/internal/types"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported database provider")
	ErrUnknownDatabase     = errors.New("unknown logical database")
	ErrMissingURL          = errors.New("no connection URL configured")
)

// Sink routes every logical database to an Adapter. Logical databases that
// share a URL share one adapter, and therefore one transaction.
type Sink struct {
	routes   map[string]Adapter
	names    map[Adapter]string
	adapters []Adapter
	log      zerolog.Logger
}

var _ sink.TxSink = (*Sink)(nil)

// Open connects the provider's adapter once per distinct URL and pings it.
func Open(ctx context.Context, provider string, urls map[string]string, log zerolog.Logger) (*Sink, error) {
	names := make([]string, 0, len(urls))
	for name := range urls {
		names = append(names, name)
	}
	sort.Strings(names)

	byURL := make(map[string]Adapter)
	routes := make(map[string]Adapter, len(urls))
	for _, name := range names {
		url := urls[name]
		if url == "" {
			closeAll(byURL)
			return nil, fmt.Errorf("%s: %w", name, ErrMissingURL)
		}
		if a, ok := byURL[url]; ok {
			routes[name] = a
			continue
		}

		a, err := NewAdapter(provider)
		if err != nil {
			closeAll(byURL)
			return nil, err
		}
		if err := a.Connect(ctx, url); err != nil {
			closeAll(byURL)
			return nil, fmt.Errorf("connect %s: %w", name, err)
		}
		if err := a.Ping(ctx); err != nil {
			_ = a.Close()
			closeAll(byURL)
			return nil, fmt.Errorf("ping %s: %w", name, err)
		}
		log.Debug().Str("database", name).Str("provider", provider).Msg("connected")

		byURL[url] = a
		routes[name] = a
	}
	return NewSink(routes, log), nil
}

func closeAll(adapters map[string]Adapter) {
	for _, a := range adapters {
		_ = a.Close()
	}
}

// NewSink builds a Sink over already connected adapters.
func NewSink(routes map[string]Adapter, log zerolog.Logger) *Sink {
	s := &Sink{
		routes: routes,
		names:  make(map[Adapter]string),
		log:    log,
	}

	names := make([]string, 0, len(routes))
	for name := range routes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := routes[name]
		if _, seen := s.names[a]; !seen {
			s.names[a] = name
			s.adapters = append(s.adapters, a)
		}
	}
	return s
}

func (s *Sink) adapter(database string) (Adapter, error) {
	a, ok := s.routes[database]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDatabase, database)
	}
	return a, nil
}

// InsertBatch writes rows in a transaction of their own.
func (s *Sink) InsertBatch(ctx context.Context, database, table string, rows []sink.Row) error {
	if len(rows) == 0 {
		return nil
	}
	a, err := s.adapter(database)
	if err != nil {
		return &sink.PersistenceError{Kind: sink.KindOther, Database: database, Table: table, Err: err}
	}

	tx, err := a.Begin(ctx)
	if err != nil {
		return common.Wrap(database, table, err)
	}
	if err := insert(ctx, tx, table, rows); err != nil {
		_ = tx.Rollback(ctx)
		return common.Wrap(database, table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return common.Wrap(database, table, err)
	}
	s.log.Debug().Str("database", database).Str("table", table).Int("rows", len(rows)).Msg("batch inserted")
	return nil
}

func insert(ctx context.Context, tx Tx, table string, rows []sink.Row) error {
	columns := rows[0].Columns()
	values := make([][]any, len(rows))
	for i, r := range rows {
		values[i] = r.Values()
	}
	return tx.Insert(ctx, table, columns, values)
}

// Begin starts a unit spanning every database touched before Commit. The
// underlying transactions are opened lazily.
func (s *Sink) Begin(ctx context.Context) (sink.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &multiTx{s: s, open: make(map[Adapter]Tx)}, nil
}

// Counts returns the row count of every table per logical database.
func (s *Sink) Counts(ctx context.Context) (map[string]map[string]int, error) {
	out := make(map[string]map[string]int)
	for _, database := range types.Databases() {
		a, ok := s.routes[database]
		if !ok {
			continue
		}
		tables, err := types.TablesIn(database)
		if err != nil {
			return nil, err
		}
		counts, err := a.RowCounts(ctx, tables)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", database, err)
		}
		out[database] = counts
	}
	return out, nil
}

func (s *Sink) Close() error {
	var errs []error
	for _, a := range s.adapters {
		if err := a.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type multiTx struct {
	s     *Sink
	open  map[Adapter]Tx
	order []Adapter
	done  bool
}

func (t *multiTx) InsertBatch(ctx context.Context, database, table string, rows []sink.Row) error {
	if t.done {
		return sink.ErrTxDone
	}
	if len(rows) == 0 {
		return nil
	}
	a, err := t.s.adapter(database)
	if err != nil {
		return &sink.PersistenceError{Kind: sink.KindOther, Database: database, Table: table, Err: err}
	}

	tx, ok := t.open[a]
	if !ok {
		tx, err = a.Begin(ctx)
		if err != nil {
			return common.Wrap(database, table, err)
		}
		t.open[a] = tx
		t.order = append(t.order, a)
	}

	if err := insert(ctx, tx, table, rows); err != nil {
		return common.Wrap(database, table, err)
	}
	t.s.log.Debug().Str("database", database).Str("table", table).Int("rows", len(rows)).Msg("batch staged")
	return nil
}

// Commit commits in the order databases were first touched. When one
// commit fails the remaining transactions are rolled back.
func (t *multiTx) Commit(ctx context.Context) error {
	if t.done {
		return sink.ErrTxDone
	}
	t.done = true

	for i, a := range t.order {
		if err := t.open[a].Commit(ctx); err != nil {
			for _, rest := range t.order[i+1:] {
				_ = t.open[rest].Rollback(ctx)
			}
			return common.Wrap(t.s.names[a], "", err)
		}
	}
	return nil
}

func (t *multiTx) Rollback(ctx context.Context) error {
	if t.done {
		return sink.ErrTxDone
	}
	t.done = true

	var errs []error
	for _, a := range t.order {
		if err := t.open[a].Rollback(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
