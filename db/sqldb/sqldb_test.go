package sqldb

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestNewIdent(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"users", true},
		{"_tmp2", true},
		{"app.users", true},
		{"2fast", false},
		{"users; DROP TABLE x", false},
		{"a..b", false},
		{"", false},
		{"name`", false},
	}
	for _, tt := range tests {
		_, err := NewIdent(tt.name)
		if tt.ok && err != nil {
			t.Errorf("NewIdent(%q) unexpected error: %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("NewIdent(%q) err=%v, want ErrInvalidIdentifier", tt.name, err)
		}
	}
}

func TestSplitQualified(t *testing.T) {
	schema, name := NewIdentOrPanic("app.users").SplitQualified()
	if schema != "app" || name != "users" {
		t.Fatalf("got %q %q", schema, name)
	}
	schema, name = NewIdentOrPanic("users").SplitQualified()
	if schema != "" || name != "users" {
		t.Fatalf("got %q %q", schema, name)
	}
}

func TestOrderByClause(t *testing.T) {
	if got := OrderByClause(nil); got != "" {
		t.Fatalf("empty: %q", got)
	}
	first, err := ParseOrderBy("count:desc")
	if err != nil {
		t.Fatal(err)
	}
	second, err := ParseOrderBy("name")
	if err != nil {
		t.Fatal(err)
	}
	if got := OrderByClause([]OrderBy{first, second}); got != " ORDER BY count DESC, name ASC" {
		t.Fatalf("got %q", got)
	}
	if _, err := ParseOrderBy("1=1:desc"); !errors.Is(err, ErrInvalidIdentifier) {
		t.Fatalf("err=%v", err)
	}
}

func TestLoadRawStmts(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/columns.sql": {Data: []byte("\nSELECT 1\n")},
		"sql/readme.md":   {Data: []byte("ignored")},
	}
	store, err := LoadRawStmts(fsys, "sql")
	if err != nil {
		t.Fatalf("LoadRawStmts: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("len=%d, want 1", store.Len())
	}
	if got := store.MustGet("columns"); got != "SELECT 1" {
		t.Fatalf("got %q", got)
	}
	if _, ok := store.Get("readme"); ok {
		t.Fatal("non-sql file loaded")
	}
}

func TestFactory(t *testing.T) {
	if _, err := New("nosuchdb", &Conf{}); !errors.Is(err, ErrUnsupportedDBType) {
		t.Fatalf("err=%v", err)
	}
}

func TestConfLocation(t *testing.T) {
	loc, err := (&Conf{TZ: "UTC"}).Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("loc=%v err=%v", loc, err)
	}
	if _, err := (&Conf{TZ: "Mars/Olympus"}).Location(); err == nil {
		t.Fatal("want error for unknown zone")
	}
}

// fakeRows serves fixed values
type fakeRows struct {
	columns []string
	data    [][]any
	pos     int
	closed  bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return errors.New("not used")
}

func (r *fakeRows) Columns() ([]string, error) { return r.columns, nil }

func (r *fakeRows) Values() ([]any, error) { return r.data[r.pos-1], nil }

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

func (r *fakeRows) Err() error { return nil }

func TestRowsToRecordsKeepsColumnOrder(t *testing.T) {
	rows := &fakeRows{
		columns: []string{"z", "a"},
		data:    [][]any{{int64(1), "x"}, {nil, "y"}},
	}
	recs, err := RowsToRecords(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("len=%d", len(recs))
	}
	if got := recs[0].String(); got != `{"z":1,"a":"x"}` {
		t.Fatalf("got %s", got)
	}
	if got := recs[1].String(); got != `{"z":null,"a":"y"}` {
		t.Fatalf("got %s", got)
	}
}

func TestRowsToRecordsNoResultSet(t *testing.T) {
	recs, err := RowsToRecords(&fakeRows{})
	if err != nil || len(recs) != 0 {
		t.Fatalf("recs=%v err=%v", recs, err)
	}
}
