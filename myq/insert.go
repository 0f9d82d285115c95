package myq

import (
	"context"
	"fmt"
	"log"

	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/record"
)

type BulkInsertOptions struct {
	// UpsertColumns are updated from the incoming row when the key already exists
	UpsertColumns []string
	// Strict fails table creation on a field whose type cannot be inferred,
	// instead of leaving the column out
	Strict bool
}

// BulkInsert loads records into table with one INSERT statement.
//
// The table is created from the first record when the catalog does not know
// it. Column list and values follow the live catalog order; fields the table
// has no column for are ignored.
//
// Failure of the INSERT itself is logged with the statement and not returned.
// Invalid names, catalog errors and table creation errors are returned.
func (e *Engine) BulkInsert(ctx context.Context, table string, records []record.Record, opts BulkInsertOptions) error {
	if err := e.ready(); err != nil {
		return err
	}
	tbl, err := sqldb.NewIdent(table)
	if err != nil {
		return err
	}
	upsert, err := sqldb.NewIdents(opts.UpsertColumns)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	columns, err := e.ensureTable(ctx, tbl, records[0], opts.Strict)
	if err != nil {
		return err
	}
	stmt, err := e.gen.Insert(tbl, columns, records, upsert)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", tbl, err)
	}
	traceStatement(stmt)
	if _, err := e.client.Exec(ctx, stmt); err != nil {
		log.Printf("[ERROR] insert into %s failed: %v\n%s", tbl, err, stmt)
	}
	return nil
}

// ensureTable returns the columns of table, creating it from sample first
// when it does not exist yet
func (e *Engine) ensureTable(ctx context.Context, table sqldb.Ident, sample record.Record, strict bool) ([]sqldb.ColumnDescriptor, error) {
	columns, err := sqldb.Columns(ctx, e.client, table)
	if err != nil {
		return nil, err
	}
	if len(columns) > 0 {
		return columns, nil
	}

	stmt, skipped, err := e.gen.CreateTable(table, sample, strict)
	if err != nil {
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}
	for _, field := range skipped {
		v, _ := sample.Get(field)
		log.Printf("[WARN] %s.%s: no column type for %s values, field skipped", table, field, v.Kind())
	}
	if _, err := e.ExecuteQuery(ctx, stmt); err != nil {
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}
	log.Printf("[INFO] table %s created", table)

	columns, err = sqldb.Columns(ctx, e.client, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found after create", table)
	}
	return columns, nil
}
