package sqlgen

import (
	"unicode/utf8"

	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/nullable"
	"github.com/zeptools/myq/record"
)

const (
	sqlNull    = "NULL"
	sqlDefault = "DEFAULT"
)

// Literal renders the value of col's field in rec as a SQL literal.
// A missing field is DEFAULT when the server generates the column, else NULL.
// Strings are cut to the column's max length, in bytes for TEXT types.
func (g Generator) Literal(rec record.Record, col sqldb.ColumnDescriptor) string {
	v, ok := rec.Get(col.Name)
	if !ok {
		if col.Generated() {
			return sqlDefault
		}
		return sqlNull
	}
	return g.valueLiteral(v, col.MaxLength, col.ByteLength())
}

// ValueLiteral renders v as a SQL literal.
// Every non-null value is quoted, numbers and booleans included.
// Strings are truncated to maxLen characters when maxLen is set.
func (g Generator) ValueLiteral(v record.Value, maxLen nullable.Int) string {
	return g.valueLiteral(v, maxLen, false)
}

func (g Generator) valueLiteral(v record.Value, maxLen nullable.Int, byteLen bool) string {
	switch v.Kind() {
	case record.KindNull:
		return sqlNull
	case record.KindString:
		s := v.AsString()
		if t, ok := ParseTime(s, g.loc()); ok {
			return quote(t.Format(LiteralTimeLayout))
		}
		switch {
		case maxLen.IsNil():
		case byteLen:
			s = truncateBytes(s, maxLen.ForceValue())
		default:
			s = truncateChars(s, maxLen.ForceValue())
		}
		return quote(g.Dialect.Escape(s))
	case record.KindObject, record.KindArray:
		return quote(g.Dialect.Escape(v.JSON()))
	case record.KindTime:
		return quote(v.AsTime().In(g.loc()).Format(LiteralTimeLayout))
	case record.KindInteger, record.KindFloat, record.KindBool:
		return quote(g.Dialect.Escape(v.Text()))
	default:
		return sqlNull
	}
}

func quote(escaped string) string {
	return "'" + escaped + "'"
}

// truncateChars cuts s to at most n characters.
// Character columns count characters, not bytes.
func truncateChars(s string, n int64) string {
	if n < 0 {
		return s
	}
	if int64(len(s)) <= n { // byte length bounds the character count
		return s
	}
	var count int64
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// truncateBytes cuts s to at most n bytes without splitting a character
func truncateBytes(s string, n int64) string {
	if n < 0 || int64(len(s)) <= n {
		return s
	}
	i := int(n)
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i]
}
