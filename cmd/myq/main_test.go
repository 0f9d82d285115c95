package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/nullable"
	"github.com/zeptools/myq/record"
)

func TestWriteRecords(t *testing.T) {
	var buf bytes.Buffer
	recs := []record.Record{
		record.New(record.F("id", record.Int(1)), record.F("name", record.String("<a>"))),
		record.New(),
	}
	if err := writeRecords(&buf, recs); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "{\"id\":1,\"name\":\"<a>\"}\n{}\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteJSONLinesColumns(t *testing.T) {
	var buf bytes.Buffer
	cols := []sqldb.ColumnDescriptor{{Name: "name", Position: 2, DataType: "varchar", IsNullable: "YES", MaxLength: nullable.IntOf(255)}}
	if err := writeJSONLines(&buf, cols); err != nil {
		t.Fatal(err)
	}
	want := `{"name":"name","position":2,"data_type":"varchar","is_nullable":"YES","max_length":255,"default":null,"key":"","extra":""}` + "\n"
	if buf.String() != want {
		t.Fatalf("got %s", buf.String())
	}
}

func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(path, []byte(`{"a":1}`), 0o600); err != nil {
		t.Fatal(err)
	}
	data, err := readInput(path)
	if err != nil || string(data) != `{"a":1}` {
		t.Fatalf("data=%q err=%v", data, err)
	}
}

func TestParseCommandOptions(t *testing.T) {
	var opts GlobalOpts
	p := flags.NewParser(&opts, flags.None)
	addCommands(p)
	cmd := &insertCmd{}
	if _, err := p.AddCommand("insert-test", "", "", cmd); err != nil {
		t.Fatal(err)
	}
	// parse only; Execute would connect
	p.CommandHandler = func(flags.Commander, []string) error { return nil }
	_, err := p.ParseArgs([]string{"-H", "db.local", "--type", "pgsql", "insert-test", "--update", "name", "--update", "email", "users", "-"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Host != "db.local" || opts.Type != "pgsql" || opts.Profile != "default" {
		t.Fatalf("opts=%+v", opts)
	}
	if cmd.Args.Table != "users" || cmd.Args.File != "-" || len(cmd.Update) != 2 {
		t.Fatalf("cmd=%+v", cmd)
	}
}
