package sqlgen

import (
	"errors"
	"strings"

	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/record"
)

// CreateTable synthesizes a CREATE TABLE statement from one sample record.
// Columns follow the sample's field order; an `id` primary key is appended
// when the sample has no id field. Fields of unsupported shape are left out
// and returned in skipped, or fail the call when strict is set.
func (g Generator) CreateTable(table sqldb.Ident, sample record.Record, strict bool) (stmt string, skipped []string, err error) {
	decls := make([]string, 0, sample.Len()+1)
	hasID := false
	for _, f := range sample.Fields() {
		typ, err := g.InferType(f.Name, f.Value)
		if errors.Is(err, ErrUnsupportedShape) && !strict {
			skipped = append(skipped, f.Name)
			continue
		}
		if err != nil {
			return "", nil, err
		}
		if isIDField(f.Name) {
			if hasID {
				continue // "id" and "ID" both present: one primary key only
			}
			hasID = true
			decls = append(decls, g.Dialect.QuoteIdent(idColumn)+" "+typ)
			continue
		}
		decls = append(decls, g.Dialect.QuoteIdent(f.Name)+" "+typ)
	}
	if !hasID {
		decls = append(decls, g.Dialect.QuoteIdent(idColumn)+" "+g.Dialect.PrimaryKeyType())
	}
	stmt = "CREATE TABLE " + table.Name() + " (\n" + strings.Join(decls, ",\n") + "\n)"
	return stmt, skipped, nil
}
