package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zeptools/myq/db/sqldb"
)

type Rows struct {
	current pgx.Rows
}

// Ensure pgsql.Rows implements sqldb.Rows
var _ sqldb.Rows = (*Rows)(nil)

func (r *Rows) Next() bool {
	return r.current.Next()
}

func (r *Rows) Scan(dest ...any) error {
	return convertErr(r.current.Scan(dest...))
}

func (r *Rows) Columns() ([]string, error) {
	fields := r.current.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names, nil
}

func (r *Rows) Values() ([]any, error) {
	values, err := r.current.Values()
	if err != nil {
		return nil, convertErr(err)
	}
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = string(b)
		}
	}
	return values, nil
}

func (r *Rows) Close() error {
	r.current.Close()
	return nil
}

func (r *Rows) Err() error {
	return convertErr(r.current.Err())
}

// convertErr abstracts server errors to sqldb.DBError
func convertErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	return &sqldb.DBError{
		Code:    pgErr.Code,
		Message: pgErr.Message,
		Err:     err,
	}
}
