package pgsql

import (
	"embed"
	"strings"

	"github.com/zeptools/myq/db/sqldb"
)

//go:embed sql/*.sql
var sqlFS embed.FS

var rawStmts = sqldb.MustLoadRawStmts(sqlFS, "sql")

// Dialect is the PostgreSQL flavor of generated SQL.
// Escaping assumes standard_conforming_strings = on (the server default).
type Dialect struct{}

// Ensure pgsql.Dialect implements sqldb.Dialect interface
var _ sqldb.Dialect = Dialect{}

func (Dialect) Name() string { return DBType }

func (Dialect) MySQLLexing() bool { return false }

func (Dialect) Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func (Dialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Dialect) PrimaryKeyType() string {
	return "serial PRIMARY KEY"
}

func (Dialect) DateTimeType() string {
	return "timestamp"
}

// UpsertClause renders `ON CONFLICT (id) DO UPDATE SET a=EXCLUDED."a"`.
// Synthesized tables always carry the `id` primary key.
func (d Dialect) UpsertClause(columns []sqldb.Ident) string {
	if len(columns) == 0 {
		return ""
	}
	updates := make([]string, len(columns))
	for i, col := range columns {
		updates[i] = col.Name() + "=EXCLUDED." + d.QuoteIdent(col.Name())
	}
	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(updates, ", ")
}

func (Dialect) ColumnsQuery() string {
	return rawStmts.MustGet("columns")
}

func (Dialect) TablesQuery() string {
	return rawStmts.MustGet("tables")
}

func (d Dialect) TableColumnsQuery(table sqldb.Ident) string {
	schema, name := table.SplitQualified()
	q := "SELECT * FROM information_schema.columns WHERE table_name = '" + d.Escape(name) + "'"
	if schema != "" {
		q += " AND table_schema = '" + d.Escape(schema) + "'"
	}
	return q + " ORDER BY ordinal_position"
}

func (Dialect) DatabasesQuery() string {
	return rawStmts.MustGet("databases")
}

func (Dialect) ProcesslistQuery() string {
	return rawStmts.MustGet("processlist")
}

func (d Dialect) VariablesQuery(like string) string {
	q := `SELECT name AS "Variable_name", setting AS "Value" FROM pg_settings`
	if like != "" {
		q += " WHERE name LIKE '%" + d.Escape(like) + "%'"
	}
	return q + " ORDER BY name"
}

func (Dialect) CreateDatabaseQuery(name sqldb.Ident) string {
	return "CREATE DATABASE " + name.Name() + " ENCODING 'UTF8'"
}
