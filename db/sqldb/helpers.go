package sqldb

import (
	"context"
	"fmt"
	"log"

	"github.com/zeptools/myq/record"
)

func QueryItems[
	M any, // Model struct
	MP Scannable[M], // *Model Implementing Scannable[M]
](
	ctx context.Context,
	handle Handle,
	rawStmt string,
	args ...any, // variadic
) ([]*M, error) { // Returns a Slice of Model-Pointers
	rows, err := handle.QueryRows(ctx, rawStmt, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)
	return RowsToNewItems[M, MP](rows)
}

func RowsToNewItems[
	M any, // Model struct
	MP Scannable[M], // *Model Implementing Scannable[M]
](rows Rows) ([]*M, error) { // Returns a Slice of Model-Pointers
	var itemPtrs []*M
	for rows.Next() {
		var item M     // struct with zero values for the fields
		p := MP(&item) // p is *M, which satisfies targetFieldsProvider interface
		// Scan the Fields of Each Row to the Fields of the new struct of the Model
		if err := rows.Scan(p.TargetFields()...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		itemPtrs = append(itemPtrs, &item) // Collect the pointers
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during iterating rows: %w", err)
	}
	return itemPtrs, nil
}

// QueryRecords runs one statement and collects its rows as records.
// A statement without a result set returns no records.
func QueryRecords(ctx context.Context, handle Handle, rawStmt string, args ...any) ([]record.Record, error) {
	rows, err := handle.QueryRows(ctx, rawStmt, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)
	return RowsToRecords(rows)
}

// RowsToRecords reads every remaining row, keeping column order
func RowsToRecords(rows Rows) ([]record.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns failed: %w", err)
	}
	var records []record.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		fields := make([]record.Field, len(columns))
		for i, name := range columns {
			var v any
			if i < len(values) {
				v = values[i]
			}
			fields[i] = record.F(name, record.FromAny(v))
		}
		records = append(records, record.New(fields...))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during iterating rows: %w", err)
	}
	return records, nil
}

func closeRows(rows Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("[WARN] rows.Close() failed: %v", err)
	}
}
