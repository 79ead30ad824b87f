package repositories

import (
	"context"
	"database/sql"

	intconfig "shuttle/internal/config"
)

// DBTX is satisfied by *sql.DB and *sql.Tx so repositories run inside or
// outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// resolve falls back to the shared handle when no executor was injected.
func resolve(q DBTX) DBTX {
	if q != nil {
		return q
	}
	if intconfig.DB == nil {
		return nil
	}
	return intconfig.DB
}

// ErrNoDB is returned when neither an executor nor the shared handle exists.
var ErrNoDB = sql.ErrConnDone
