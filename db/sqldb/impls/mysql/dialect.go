package mysql

import (
	"embed"
	"strings"

	"github.com/zeptools/myq/db/sqldb"
)

//go:embed sql/*.sql
var sqlFS embed.FS

var rawStmts = sqldb.MustLoadRawStmts(sqlFS, "sql")

// Dialect is the MySQL flavor of generated SQL
type Dialect struct{}

// Ensure mysql.Dialect implements sqldb.Dialect interface
var _ sqldb.Dialect = Dialect{}

// same set of characters as mysql_real_escape_string.
// Assumes the default sql_mode: with NO_BACKSLASH_ESCAPES the server keeps
// the backslashes literally.
var escaper = strings.NewReplacer(
	"\\", "\\\\",
	"\x00", "\\0",
	"\n", "\\n",
	"\r", "\\r",
	"'", "\\'",
	"\"", "\\\"",
	"\x1a", "\\Z",
)

func (Dialect) Name() string { return DBType }

func (Dialect) Escape(s string) string {
	return escaper.Replace(s)
}

func (Dialect) MySQLLexing() bool { return true }

func (Dialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (Dialect) PrimaryKeyType() string {
	return "integer NOT NULL auto_increment PRIMARY KEY"
}

func (Dialect) DateTimeType() string {
	return "datetime"
}

// UpsertClause renders `ON DUPLICATE KEY UPDATE a=VALUES(`a`), b=VALUES(`b`)`
func (d Dialect) UpsertClause(columns []sqldb.Ident) string {
	if len(columns) == 0 {
		return ""
	}
	updates := make([]string, len(columns))
	for i, col := range columns {
		updates[i] = col.Name() + "=VALUES(" + d.QuoteIdent(col.Name()) + ")"
	}
	return "ON DUPLICATE KEY UPDATE " + strings.Join(updates, ", ")
}

func (Dialect) ColumnsQuery() string {
	return rawStmts.MustGet("columns")
}

func (Dialect) TablesQuery() string {
	return rawStmts.MustGet("tables")
}

func (Dialect) TableColumnsQuery(table sqldb.Ident) string {
	return "SHOW FULL COLUMNS FROM " + table.Name()
}

func (Dialect) DatabasesQuery() string {
	return rawStmts.MustGet("databases")
}

func (Dialect) ProcesslistQuery() string {
	return rawStmts.MustGet("processlist")
}

func (d Dialect) VariablesQuery(like string) string {
	if like == "" {
		return "SHOW VARIABLES"
	}
	return "SHOW VARIABLES LIKE '%" + d.Escape(like) + "%'"
}

func (Dialect) CreateDatabaseQuery(name sqldb.Ident) string {
	return "CREATE DATABASE " + name.Name() + " CHARACTER SET 'UTF8'"
}
