package sqldb

import (
	"context"
)

// Client owns one database session.
// Implementations hold a single connection for their lifetime and are not
// safe for concurrent use.
type Client interface {
	Init() error
	Close() error
	GetConf() *Conf
	Dialect() Dialect
	Handle // Methods required for Handle are also required, so, promote it
}

type Handle interface {
	// Exec executes a statement that returns no rows, like INSERT or CREATE
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	// QueryRows executes any statement. Statements without a result set
	// yield Rows with no columns.
	QueryRows(ctx context.Context, query string, args ...any) (Rows, error)
}
