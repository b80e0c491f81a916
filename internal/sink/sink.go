// Package sink defines where generated records go. The orchestrator only
// talks to a Sink; SQL databases and the in-memory store implement it.
package sink

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_sink.go -package=mocks github.com/Rana718/demoseed/internal/sink Sink,TxSink,Tx

import "context"

// DefaultBatchSize bounds the number of rows handed to a single InsertBatch.
const DefaultBatchSize = 1000

// Row is a record that knows its column names and values, in the same order.
type Row interface {
	Columns() []string
	Values() []any
}

type Sink interface {
	InsertBatch(ctx context.Context, database, table string, rows []Row) error
}

// TxSink is a Sink that can group inserts across databases into one unit.
type TxSink interface {
	Sink
	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	Sink
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Insert writes rows in chunks of batchSize. Nothing is sent for an empty
// slice.
func Insert[T Row](ctx context.Context, s Sink, database, table string, rows []T, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	written := 0
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		batch := make([]Row, 0, end-start)
		for _, r := range rows[start:end] {
			batch = append(batch, r)
		}

		if err := s.InsertBatch(ctx, database, table, batch); err != nil {
			return written, err
		}
		written += len(batch)
	}
	return written, nil
}
