package myq

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/zeptools/myq/db/sqldb"
)

func TestSample(t *testing.T) {
	order, err := sqldb.ParseOrderBy("name:desc")
	assertNoError(t, err)
	tests := []struct {
		name string
		opts SampleOptions
		want string
	}{
		{"default limit", SampleOptions{}, "SELECT * FROM users LIMIT 10"},
		{"where and order", SampleOptions{Limit: 5, Where: "age > 3", OrderBy: []sqldb.OrderBy{order}},
			"SELECT * FROM users WHERE age > 3 ORDER BY name DESC LIMIT 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, mock := newMockEngine(t)
			mock.ExpectQuery("^" + regexp.QuoteMeta(tt.want) + "$").
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
			recs, err := e.Sample(context.Background(), "users", tt.opts)
			assertNoError(t, err)
			if len(recs) != 1 {
				t.Fatalf("len=%d", len(recs))
			}
			assertExpectations(t, mock)
		})
	}
}

func TestCountQuery(t *testing.T) {
	tbl := sqldb.NewIdentOrPanic("users")
	keys, err := sqldb.NewIdents([]string{"country", "plan"})
	assertNoError(t, err)
	if got, want := countQuery(tbl, keys), "SELECT country,plan, count(*) AS count FROM users GROUP BY country,plan ORDER BY count DESC"; got != want {
		t.Fatalf("got %s", got)
	}
	if got, want := countQuery(tbl, nil), "SELECT count(*) AS count FROM users ORDER BY count DESC"; got != want {
		t.Fatalf("got %s", got)
	}
}

func TestCount(t *testing.T) {
	e, mock := newMockEngine(t)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY country")).
		WillReturnRows(sqlmock.NewRows([]string{"country", "count"}).
			AddRow("jp", int64(3)).
			AddRow("us", int64(1)))
	recs, err := e.Count(context.Background(), "users", []string{"country"})
	assertNoError(t, err)
	if len(recs) != 2 || recs[0].String() != `{"country":"jp","count":3}` {
		t.Fatalf("recs=%v", recs)
	}
	if _, err := e.Count(context.Background(), "users", []string{"1=1 --"}); !errors.Is(err, sqldb.ErrInvalidIdentifier) {
		t.Fatalf("err=%v", err)
	}
	assertExpectations(t, mock)
}

func TestCatalogListings(t *testing.T) {
	e, mock := newMockEngine(t)
	ctx := context.Background()
	one := func(col string) *sqlmock.Rows { return sqlmock.NewRows([]string{col}).AddRow("x") }

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM INFORMATION_SCHEMA.TABLES")).WillReturnRows(one("TABLE_NAME"))
	mock.ExpectQuery(regexp.QuoteMeta("SHOW FULL COLUMNS FROM users")).WillReturnRows(one("Field"))
	mock.ExpectQuery(regexp.QuoteMeta("SHOW DATABASES")).WillReturnRows(one("Database"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM INFORMATION_SCHEMA.PROCESSLIST")).WillReturnRows(one("ID"))
	mock.ExpectQuery(regexp.QuoteMeta("SHOW VARIABLES LIKE '%char\\'s%'")).WillReturnRows(one("Variable_name"))

	steps := []func() (int, error){
		func() (int, error) { r, err := e.Tables(ctx, ""); return len(r), err },
		func() (int, error) { r, err := e.Tables(ctx, "users"); return len(r), err },
		func() (int, error) { r, err := e.Databases(ctx); return len(r), err },
		func() (int, error) { r, err := e.Processlist(ctx); return len(r), err },
		func() (int, error) { r, err := e.Variables(ctx, "char's"); return len(r), err },
	}
	for i, step := range steps {
		n, err := step()
		assertNoError(t, err)
		if n != 1 {
			t.Fatalf("step %d: %d rows", i, n)
		}
	}
	assertExpectations(t, mock)
}

func TestCreateDatabase(t *testing.T) {
	e, mock := newMockEngine(t)
	captureLog(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE DATABASE shop CHARACTER SET 'UTF8'")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assertNoError(t, e.CreateDatabase(context.Background(), "shop"))
	if err := e.CreateDatabase(context.Background(), "shop; DROP"); !errors.Is(err, sqldb.ErrInvalidIdentifier) {
		t.Fatalf("err=%v", err)
	}
	assertExpectations(t, mock)
}

func TestTableExists(t *testing.T) {
	e, mock := newMockEngine(t)
	expectCatalog(mock, "users", "id")
	expectCatalog(mock, "ghost")
	ctx := context.Background()

	ok, err := e.TableExists(ctx, "users")
	assertNoError(t, err)
	if !ok {
		t.Fatal("users should exist")
	}
	ok, err = e.TableExists(ctx, "ghost")
	assertNoError(t, err)
	if ok {
		t.Fatal("ghost should not exist")
	}
	assertExpectations(t, mock)
}
