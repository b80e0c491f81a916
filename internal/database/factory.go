package database

import (
	"fmt"

	"github.com/Rana718/demoseed/internal/database/mysql"
	"github.com/Rana718/demoseed/internal/database/postgres"
	"github.com/Rana718/demoseed/internal/database/sqlite"
)

// Providers lists the accepted provider names.
var Providers = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}

func NewAdapter(provider string) (Adapter, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
}
