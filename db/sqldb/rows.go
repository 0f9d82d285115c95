package sqldb

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Columns() ([]string, error)
	Values() ([]any, error) // current row as driver-neutral Go values. []byte comes back as string
	Close() error
	Err() error
}

type Result interface {
	RowsAffected() (int64, error)
}
