package sqldb

import "strings"

// OrderBy defines a validated ORDER BY clause.
type OrderBy struct {
	Column Ident
	Desc   bool
}

// String returns the safe ORDER BY clause fragment (without the "ORDER BY" prefix).
func (o OrderBy) String() string {
	if o.Desc {
		return o.Column.Name() + " DESC"
	}
	return o.Column.Name() + " ASC"
}

// ParseOrderBy reads "column" or "column:desc" / "column:asc"
func ParseOrderBy(s string) (OrderBy, error) {
	name, dir, _ := strings.Cut(s, ":")
	col, err := NewIdent(name)
	if err != nil {
		return OrderBy{}, err
	}
	return OrderBy{Column: col, Desc: strings.EqualFold(dir, "desc")}, nil
}

// OrderByClause joins multiple OrderBy items into a valid ORDER BY SQL fragment.
func OrderByClause(orders []OrderBy) string {
	if len(orders) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(16 * len(orders)) // rough prealloc: " column DESC, "
	b.WriteString(" ORDER BY ")
	for i, o := range orders {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(o.String())
	}
	return b.String()
}
