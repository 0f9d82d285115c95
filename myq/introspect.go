package myq

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/record"
)

const DefaultSampleLimit = 10

type SampleOptions struct {
	Limit   int    // DefaultSampleLimit when not positive
	Where   string // raw condition, without the WHERE keyword
	OrderBy []sqldb.OrderBy
}

func (e *Engine) Columns(ctx context.Context, table string) ([]sqldb.ColumnDescriptor, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	tbl, err := sqldb.NewIdent(table)
	if err != nil {
		return nil, err
	}
	return sqldb.Columns(ctx, e.client, tbl)
}

func (e *Engine) TableExists(ctx context.Context, table string) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	tbl, err := sqldb.NewIdent(table)
	if err != nil {
		return false, err
	}
	return sqldb.TableExists(ctx, e.client, tbl)
}

// Sample returns the first rows of table
func (e *Engine) Sample(ctx context.Context, table string, opts SampleOptions) ([]record.Record, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	tbl, err := sqldb.NewIdent(table)
	if err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSampleLimit
	}
	q := "SELECT * FROM " + tbl.Name()
	if where := strings.TrimSpace(opts.Where); where != "" {
		q += " WHERE " + where
	}
	q += sqldb.OrderByClause(opts.OrderBy)
	q += " LIMIT " + strconv.Itoa(limit)
	return sqldb.QueryRecords(ctx, e.client, q)
}

// Count groups table by keys, most frequent first.
// Without keys it counts the whole table.
func (e *Engine) Count(ctx context.Context, table string, keys []string) ([]record.Record, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	tbl, err := sqldb.NewIdent(table)
	if err != nil {
		return nil, err
	}
	idents, err := sqldb.NewIdents(keys)
	if err != nil {
		return nil, err
	}
	return sqldb.QueryRecords(ctx, e.client, countQuery(tbl, idents))
}

func countQuery(table sqldb.Ident, keys []sqldb.Ident) string {
	if len(keys) == 0 {
		return "SELECT count(*) AS count FROM " + table.Name() + " ORDER BY count DESC"
	}
	list := strings.Join(sqldb.IdentNames(keys), ",")
	return "SELECT " + list + ", count(*) AS count FROM " + table.Name() +
		" GROUP BY " + list + " ORDER BY count DESC"
}

// Tables lists every table, or the full column listing of table when given
func (e *Engine) Tables(ctx context.Context, table string) ([]record.Record, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if table == "" {
		return sqldb.QueryRecords(ctx, e.client, e.client.Dialect().TablesQuery())
	}
	tbl, err := sqldb.NewIdent(table)
	if err != nil {
		return nil, err
	}
	return sqldb.QueryRecords(ctx, e.client, e.client.Dialect().TableColumnsQuery(tbl))
}

func (e *Engine) Databases(ctx context.Context) ([]record.Record, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return sqldb.QueryRecords(ctx, e.client, e.client.Dialect().DatabasesQuery())
}

func (e *Engine) Processlist(ctx context.Context) ([]record.Record, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return sqldb.QueryRecords(ctx, e.client, e.client.Dialect().ProcesslistQuery())
}

// Variables lists server settings whose name contains like (all when empty)
func (e *Engine) Variables(ctx context.Context, like string) ([]record.Record, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return sqldb.QueryRecords(ctx, e.client, e.client.Dialect().VariablesQuery(like))
}

// CreateDatabase creates a UTF-8 database
func (e *Engine) CreateDatabase(ctx context.Context, name string) error {
	if err := e.ready(); err != nil {
		return err
	}
	db, err := sqldb.NewIdent(name)
	if err != nil {
		return err
	}
	if _, err := e.client.Exec(ctx, e.client.Dialect().CreateDatabaseQuery(db)); err != nil {
		return err
	}
	log.Printf("[INFO] database %s created", db)
	return nil
}
