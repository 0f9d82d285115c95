package sqlgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zeptools/myq/record"
)

const (
	TypeVarchar = "varchar(255)"
	TypeInteger = "integer"
	TypeText    = "text"
)

const idColumn = "id"

// ErrUnsupportedShape is returned for values no column type is inferred for
var ErrUnsupportedShape = errors.New("unsupported value shape")

func isIDField(name string) bool {
	return strings.EqualFold(name, idColumn)
}

// InferType maps a sample value to a column type.
// A field named id (any case) is always the primary key.
func (g Generator) InferType(field string, v record.Value) (string, error) {
	if isIDField(field) {
		return g.Dialect.PrimaryKeyType(), nil
	}
	switch v.Kind() {
	case record.KindNull:
		return TypeVarchar, nil // no shape to go by
	case record.KindString:
		if _, ok := ParseTime(v.AsString(), g.loc()); ok {
			return g.Dialect.DateTimeType(), nil
		}
		return TypeVarchar, nil
	case record.KindInteger:
		return TypeInteger, nil
	case record.KindObject, record.KindArray:
		return TypeText, nil // stored as JSON text
	case record.KindTime:
		return g.Dialect.DateTimeType(), nil
	case record.KindFloat, record.KindBool:
		return "", fmt.Errorf("%w: field %q is %s", ErrUnsupportedShape, field, v.Kind())
	default:
		return "", fmt.Errorf("%w: field %q is %s", ErrUnsupportedShape, field, v.Kind())
	}
}
