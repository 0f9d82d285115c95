package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	lowimpl "github.com/go-sql-driver/mysql"
	"github.com/zeptools/myq/db/sqldb"
)

type Handle struct {
	*sql.DB // [Embedded]
}

// Ensure mysql.Handle implements sqldb.Handle interface
var _ sqldb.Handle = (*Handle)(nil)

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	if h.DB == nil {
		return nil, sqldb.ErrNotConnected
	}
	result, err := h.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err)
	}
	return &Result{result: result}, nil
}

func (h *Handle) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	if h.DB == nil {
		return nil, sqldb.ErrNotConnected
	}
	rows, err := h.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err)
	}
	return &Rows{rows: rows}, nil
}

// convertErr abstracts server errors to sqldb.DBError
func convertErr(err error) error {
	var myErr *lowimpl.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}
	dbErr := &sqldb.DBError{
		Code:    strconv.Itoa(int(myErr.Number)),
		Message: myErr.Message,
		Err:     err,
	}
	if myErr.SQLState != [5]byte{} {
		dbErr.SQLState = string(myErr.SQLState[:])
	}
	return dbErr
}
