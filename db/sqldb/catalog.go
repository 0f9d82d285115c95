package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeptools/myq/nullable"
)

// ColumnDescriptor is the catalog metadata of one existing column
type ColumnDescriptor struct {
	Name       string          `json:"name"`
	Position   int64           `json:"position"` // 1-based ordinal position
	DataType   string          `json:"data_type"`
	IsNullable string          `json:"is_nullable"` // YES / NO
	MaxLength  nullable.Int    `json:"max_length"`  // max character length. null for non-character types
	Default    nullable.String `json:"default"`
	Key        string          `json:"key"`   // PRI, UNI, MUL, or empty
	Extra      string          `json:"extra"` // e.g. auto_increment
}

// TargetFields follows the select-list order of Dialect.ColumnsQuery
func (c *ColumnDescriptor) TargetFields() []any {
	return []any{&c.Name, &c.Position, &c.DataType, &c.IsNullable, &c.MaxLength, &c.Default, &c.Key, &c.Extra}
}

func (c *ColumnDescriptor) Nullable() bool {
	return strings.EqualFold(c.IsNullable, "YES")
}

// Generated reports whether the server fills the column when the INSERT
// gives no value: a declared default, a sequence or auto_increment
func (c *ColumnDescriptor) Generated() bool {
	return !c.Default.IsNil() || strings.Contains(strings.ToLower(c.Extra), "auto_increment")
}

// ByteLength reports whether MaxLength counts bytes rather than characters.
// MySQL TEXT types are sized in bytes.
func (c *ColumnDescriptor) ByteLength() bool {
	return strings.HasSuffix(strings.ToLower(c.DataType), "text")
}

// Columns reads the live column metadata of table in ordinal order.
// A table that does not exist has no columns.
func Columns(ctx context.Context, client Client, table Ident) ([]ColumnDescriptor, error) {
	if client == nil {
		return nil, ErrNotConnected
	}
	schema, name := table.SplitQualified()
	items, err := QueryItems[ColumnDescriptor, *ColumnDescriptor](ctx, client, client.Dialect().ColumnsQuery(), schema, name)
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	columns := make([]ColumnDescriptor, len(items))
	for i, item := range items {
		columns[i] = *item
	}
	return columns, nil
}

// TableExists reports whether the catalog lists any column for table
func TableExists(ctx context.Context, client Client, table Ident) (bool, error) {
	columns, err := Columns(ctx, client, table)
	if err != nil {
		return false, err
	}
	return len(columns) > 0, nil
}
