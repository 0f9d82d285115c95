package sqldb

// Dialect is the SQL text a backend needs for generated statements and
// catalog lookups
type Dialect interface {
	Name() string

	// Escape escapes s for embedding between single quotes
	Escape(s string) string
	// QuoteIdent quotes an arbitrary column name
	QuoteIdent(name string) string
	// MySQLLexing reports whether scripts use MySQL lexical rules:
	// backslash escapes inside quotes and # line comments
	MySQLLexing() bool

	PrimaryKeyType() string // column type of a synthesized `id` column
	DateTimeType() string
	// UpsertClause returns the conflict clause updating columns, or "" when columns is empty
	UpsertClause(columns []Ident) string

	// ColumnsQuery selects ColumnDescriptor fields for args (schema, table).
	// An empty schema means the connection's current schema.
	ColumnsQuery() string
	TablesQuery() string
	TableColumnsQuery(table Ident) string
	DatabasesQuery() string
	ProcesslistQuery() string
	VariablesQuery(like string) string
	CreateDatabaseQuery(name Ident) string
}
