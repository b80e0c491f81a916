package sink

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrTxDone = errors.New("transaction already committed or rolled back")

// Memory keeps rows in process. Unique constraints are declared per table
// as sets of column names; a violating batch is rejected as a whole with a
// KindUniqueViolation error.
type Memory struct {
	mu          sync.Mutex
	constraints map[string][][]string
	tables      map[tableKey]*memTable
}

type tableKey struct {
	database string
	table    string
}

type memTable struct {
	columns []string
	rows    [][]any
	keys    map[string]struct{}
}

func NewMemory(constraints map[string][][]string) *Memory {
	if constraints == nil {
		constraints = map[string][][]string{}
	}
	return &Memory{
		constraints: constraints,
		tables:      make(map[tableKey]*memTable),
	}
}

func (m *Memory) InsertBatch(ctx context.Context, database, table string, rows []Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	staged, err := m.stage(database, table, rows, nil)
	if err != nil {
		return err
	}
	m.apply(database, table, rows, staged)
	return nil
}

// stage computes the constraint keys of rows and checks them against the
// committed table and against pending, which holds keys staged by an open
// transaction.
func (m *Memory) stage(database, table string, rows []Row, pending map[string]struct{}) ([]string, error) {
	constraints := m.constraints[table]
	existing := m.tables[tableKey{database, table}]

	var keys []string
	batch := make(map[string]struct{})
	for _, row := range rows {
		columns, values := row.Columns(), row.Values()
		if len(columns) != len(values) {
			return nil, &PersistenceError{Kind: KindOther, Database: database, Table: table,
				Err: fmt.Errorf("row has %d columns and %d values", len(columns), len(values))}
		}

		for i, unique := range constraints {
			key, err := constraintKey(i, unique, columns, values)
			if err != nil {
				return nil, &PersistenceError{Kind: KindOther, Database: database, Table: table, Err: err}
			}
			_, inTable := existing.lookup(key)
			_, inPending := pending[key]
			_, inBatch := batch[key]
			if inTable || inPending || inBatch {
				return nil, &PersistenceError{Kind: KindUniqueViolation, Database: database, Table: table,
					Err: fmt.Errorf("duplicate key (%s)", strings.Join(unique, ", "))}
			}
			batch[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *Memory) apply(database, table string, rows []Row, keys []string) {
	if len(rows) == 0 {
		return
	}

	k := tableKey{database, table}
	t, ok := m.tables[k]
	if !ok {
		t = &memTable{columns: rows[0].Columns(), keys: make(map[string]struct{})}
		m.tables[k] = t
	}
	for _, row := range rows {
		t.rows = append(t.rows, row.Values())
	}
	for _, key := range keys {
		t.keys[key] = struct{}{}
	}
}

func (t *memTable) lookup(key string) (struct{}, bool) {
	if t == nil {
		return struct{}{}, false
	}
	v, ok := t.keys[key]
	return v, ok
}

func constraintKey(index int, unique, columns []string, values []any) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", index)
	for _, col := range unique {
		pos := -1
		for i, c := range columns {
			if c == col {
				pos = i
				break
			}
		}
		if pos < 0 {
			return "", fmt.Errorf("unique column %q not found", col)
		}
		fmt.Fprintf(&b, "\x00%v", values[pos])
	}
	return b.String(), nil
}

// Count returns the number of committed rows of a table.
func (m *Memory) Count(database, table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tables[tableKey{database, table}]; ok {
		return len(t.rows)
	}
	return 0
}

// Rows returns the committed rows of a table as value slices.
func (m *Memory) Rows(database, table string) [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[tableKey{database, table}]
	if !ok {
		return nil
	}
	return append([][]any(nil), t.rows...)
}

func (m *Memory) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memoryTx{m: m, pending: make(map[tableKey]*pendingTable)}, nil
}

type pendingTable struct {
	rows [][]Row
	keys map[string]struct{}
	list []string
}

type memoryTx struct {
	m       *Memory
	order   []tableKey
	pending map[tableKey]*pendingTable
	done    bool
}

func (tx *memoryTx) InsertBatch(ctx context.Context, database, table string, rows []Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx.done {
		return ErrTxDone
	}

	tx.m.mu.Lock()
	defer tx.m.mu.Unlock()

	k := tableKey{database, table}
	p, ok := tx.pending[k]
	if !ok {
		p = &pendingTable{keys: make(map[string]struct{})}
		tx.pending[k] = p
		tx.order = append(tx.order, k)
	}

	keys, err := tx.m.stage(database, table, rows, p.keys)
	if err != nil {
		return err
	}
	p.rows = append(p.rows, rows)
	for _, key := range keys {
		p.keys[key] = struct{}{}
	}
	p.list = append(p.list, keys...)
	return nil
}

func (tx *memoryTx) Commit(ctx context.Context) error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true

	tx.m.mu.Lock()
	defer tx.m.mu.Unlock()
	for _, k := range tx.order {
		p := tx.pending[k]
		for _, rows := range p.rows {
			tx.m.apply(k.database, k.table, rows, nil)
		}
		if t, ok := tx.m.tables[k]; ok {
			for _, key := range p.list {
				t.keys[key] = struct{}{}
			}
		}
	}
	return nil
}

func (tx *memoryTx) Rollback(ctx context.Context) error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	tx.pending = nil
	return nil
}
