package myq

import (
	"context"
	"fmt"

	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/record"
	"github.com/zeptools/myq/sqlgen"
)

// Engine is not safe for concurrent use; it shares the single session of its client.
type Engine struct {
	client sqldb.Client
	gen    sqlgen.Generator
}

// New wraps an initialized client.
// Datetime literals are read and written in the client's configured zone.
func New(client sqldb.Client) (*Engine, error) {
	if client == nil {
		return nil, sqldb.ErrNotConnected
	}
	loc, err := client.GetConf().Location()
	if err != nil {
		return nil, err
	}
	return &Engine{
		client: client,
		gen:    sqlgen.NewGenerator(client.Dialect(), loc),
	}, nil
}

func (e *Engine) Client() sqldb.Client { return e.client }

func (e *Engine) Generator() sqlgen.Generator { return e.gen }

func (e *Engine) ready() error {
	if e == nil || e.client == nil {
		return sqldb.ErrNotConnected
	}
	return nil
}

// ExecuteQuery splits sql into statements and runs them in order.
// Rows of every statement are concatenated; statements without a result set
// add nothing. The first failing statement stops the run.
func (e *Engine) ExecuteQuery(ctx context.Context, sql string) ([]record.Record, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	var result []record.Record
	for _, stmt := range e.gen.SplitStatements(sql) {
		traceStatement(stmt)
		records, err := sqldb.QueryRecords(ctx, e.client, stmt)
		if err != nil {
			return nil, fmt.Errorf("%w\n%s", err, stmt)
		}
		result = append(result, records...)
	}
	return result, nil
}
