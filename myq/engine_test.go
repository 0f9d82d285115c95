package myq

import (
	"bytes"
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/db/sqldb/impls/mysql"
	"github.com/zeptools/myq/record"
)

// --------------------------------
// Test utilities
// --------------------------------

const catalogQuery = "FROM INFORMATION_SCHEMA.COLUMNS"

var catalogHeader = []string{
	"COLUMN_NAME", "ORDINAL_POSITION", "DATA_TYPE", "IS_NULLABLE",
	"CHARACTER_MAXIMUM_LENGTH", "COLUMN_DEFAULT", "COLUMN_KEY", "EXTRA",
}

func newMockEngine(t *testing.T) (*Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	client := mysql.NewWithDB(&sqldb.Conf{Type: mysql.DBType, TZ: "UTC"}, db)
	e, err := New(client)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, mock
}

// catalogRows lists columns in order; "id" is the integer primary key,
// every other column a varchar(255)
func catalogRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows(catalogHeader)
	for i, name := range names {
		if name == "id" {
			rows.AddRow(name, int64(i+1), "int", "NO", nil, nil, "PRI", "auto_increment")
			continue
		}
		rows.AddRow(name, int64(i+1), "varchar", "YES", int64(255), nil, "", "")
	}
	return rows
}

func expectCatalog(mock sqlmock.Sqlmock, table string, names ...string) {
	mock.ExpectQuery(regexp.QuoteMeta(catalogQuery)).
		WithArgs("", table).
		WillReturnRows(catalogRows(names...))
}

func noRows() *sqlmock.Rows { return sqlmock.NewRows([]string{}) }

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func mustDecode(t *testing.T, s string) []record.Record {
	t.Helper()
	recs, err := record.Decode([]byte(s))
	if err != nil {
		t.Fatalf("Decode(%q): %v", s, err)
	}
	return recs
}

// --------------------------------
// Engine / ExecuteQuery
// --------------------------------

func TestNewWithoutClient(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, sqldb.ErrNotConnected) {
		t.Fatalf("err=%v, want ErrNotConnected", err)
	}
}

func TestZeroEngineFailsClosed(t *testing.T) {
	ctx := context.Background()
	var nilEngine *Engine
	for _, e := range []*Engine{nilEngine, {}} {
		if _, err := e.ExecuteQuery(ctx, "SELECT 1"); !errors.Is(err, sqldb.ErrNotConnected) {
			t.Fatalf("ExecuteQuery err=%v", err)
		}
		if err := e.BulkInsert(ctx, "t", nil, BulkInsertOptions{}); !errors.Is(err, sqldb.ErrNotConnected) {
			t.Fatalf("BulkInsert err=%v", err)
		}
		if _, err := e.Databases(ctx); !errors.Is(err, sqldb.ErrNotConnected) {
			t.Fatalf("Databases err=%v", err)
		}
	}
}

func TestExecuteQueryConcatenatesRows(t *testing.T) {
	e, mock := newMockEngine(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"a"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 2")).
		WillReturnRows(sqlmock.NewRows([]string{"b"}).AddRow(int64(2)).AddRow(int64(3)))

	recs, err := e.ExecuteQuery(context.Background(), "SELECT 1; ; SELECT 2;")
	assertNoError(t, err)
	var got []string
	for _, r := range recs {
		got = append(got, r.String())
	}
	want := `{"a":1} {"b":2} {"b":3}`
	if strings.Join(got, " ") != want {
		t.Fatalf("got %v, want %s", got, want)
	}
	assertExpectations(t, mock)
}

func TestExecuteQueryStatementWithoutRows(t *testing.T) {
	e, mock := newMockEngine(t)
	mock.ExpectQuery(regexp.QuoteMeta("SET NAMES utf8mb4")).WillReturnRows(noRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 'a;b'")).
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("a;b"))

	recs, err := e.ExecuteQuery(context.Background(), "SET NAMES utf8mb4; SELECT 'a;b'")
	assertNoError(t, err)
	if len(recs) != 1 || recs[0].String() != `{"v":"a;b"}` {
		t.Fatalf("recs=%v", recs)
	}
	assertExpectations(t, mock)
}

func TestExecuteQueryStopsAtFirstError(t *testing.T) {
	e, mock := newMockEngine(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT broken")).
		WillReturnError(errors.New("syntax error"))

	_, err := e.ExecuteQuery(context.Background(), "SELECT broken; SELECT 2")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "SELECT broken") {
		t.Fatalf("error does not name the statement: %v", err)
	}
	assertExpectations(t, mock)
}
