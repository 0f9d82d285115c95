package sqldb

import (
	"errors"
	"fmt"
)

var (
	ErrNotConnected      = errors.New("sqldb: client not connected")
	ErrUnsupportedDBType = errors.New("sqldb: unsupported database type")
	ErrInvalidIdentifier = errors.New("sqldb: invalid SQL identifier")
)

// DBError is a server-side error, abstracted from the driver's own error type
type DBError struct {
	Code     string // vendor error number or SQLSTATE class code
	SQLState string
	Message  string
	Err      error // the driver error
}

func (e *DBError) Error() string {
	if e.SQLState != "" {
		return fmt.Sprintf("error %s (%s): %s", e.Code, e.SQLState, e.Message)
	}
	return fmt.Sprintf("error %s: %s", e.Code, e.Message)
}

func (e *DBError) Unwrap() error { return e.Err }
