// Package database persists generated records into SQL databases. Each
// logical database is served by a provider Adapter; Sink glues adapters to
// the sink contract used by the orchestrator.
package database

import (
	"context"

	"github.com/Rana718/demoseed/internal/database/common"
)

type Tx = common.Tx

type Adapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	Begin(ctx context.Context) (Tx, error)
	RowCounts(ctx context.Context, tables []string) (map[string]int, error)
}
