package sqlgen

import (
	"errors"
	"strings"

	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/record"
)

var (
	ErrNoColumns = errors.New("no columns to insert into")
	ErrNoRecords = errors.New("no records to insert")
)

// Insert renders one INSERT covering every record.
// The column list and each VALUES tuple follow columns, so all rows share one
// column list; fields absent from a record are NULL.
// When upsert is not empty the dialect's conflict clause is appended.
func (g Generator) Insert(table sqldb.Ident, columns []sqldb.ColumnDescriptor, records []record.Record, upsert []sqldb.Ident) (string, error) {
	if len(columns) == 0 {
		return "", ErrNoColumns
	}
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = g.Dialect.QuoteIdent(col.Name)
	}
	tuples := make([]string, len(records))
	literals := make([]string, len(columns))
	for i, rec := range records {
		for j, col := range columns {
			literals[j] = g.Literal(rec, col)
		}
		tuples[i] = "(" + strings.Join(literals, ",") + ")"
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table.Name())
	b.WriteString("\n(")
	b.WriteString(strings.Join(quoted, ","))
	b.WriteString(")\nVALUES\n")
	b.WriteString(strings.Join(tuples, ",\n"))
	if clause := g.Dialect.UpsertClause(upsert); clause != "" {
		b.WriteString("\n")
		b.WriteString(clause)
	}
	return b.String(), nil
}
