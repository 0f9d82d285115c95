package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/zeptools/myq/conf"
	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/myq"
	"github.com/zeptools/myq/record"
)

func addCommands(p *flags.Parser) {
	add := func(name, short, long string, data any) {
		if _, err := p.AddCommand(name, short, long, data); err != nil {
			panic(err) // malformed struct tags
		}
	}
	add("query", "Run SQL", "Run one or more ;-separated statements and print the rows as JSON lines.", &queryCmd{})
	add("file", "Run a SQL file", "Run the statements of a SQL file and print the rows as JSON lines.", &fileCmd{})
	add("sample", "Sample rows", "Print the first rows of a table.", &sampleCmd{})
	add("count", "Count rows", "Count rows grouped by the given columns, most frequent first.", &countCmd{})
	add("insert", "Insert JSON records", "Insert JSON records (object, array or one object per line) into a table, creating it when missing.", &insertCmd{})
	add("tables", "List tables", "List all tables, or the columns of one table.", &tablesCmd{})
	add("columns", "Show catalog columns", "Print the catalog metadata of a table's columns.", &columnsCmd{})
	add("databases", "List databases", "List databases.", &databasesCmd{})
	add("processlist", "Show running queries", "Show the server process list.", &processlistCmd{})
	add("variables", "Show server variables", "Show server variables, optionally filtered by a name fragment.", &variablesCmd{})
	add("create-database", "Create a UTF-8 database", "Create a database with UTF-8 encoding.", &createDatabaseCmd{})
	add("consume", "Consume a queue into a table", "Pop JSON payloads from a Redis list and insert them into a table until interrupted.", &consumeCmd{})
	add("enqueue", "Push JSON records to a queue", "Push JSON records to a Redis list, one payload per record.", &enqueueCmd{})
	add("version", "Show version", "Show version.", &versionCmd{})
}

func printRecords(records []record.Record, err error) error {
	if err != nil {
		return err
	}
	return writeRecords(os.Stdout, records)
}

type queryCmd struct {
	Args struct {
		SQL string `positional-arg-name:"sql" required:"yes"`
	} `positional-args:"yes"`
}

func (c *queryCmd) Execute([]string) error {
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		return printRecords(e.ExecuteQuery(ctx, c.Args.SQL))
	})
}

type fileCmd struct {
	Args struct {
		Path string `positional-arg-name:"path" required:"yes"`
	} `positional-args:"yes"`
}

func (c *fileCmd) Execute([]string) error {
	blob, err := readInput(c.Args.Path)
	if err != nil {
		return err
	}
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		return printRecords(e.ExecuteQuery(ctx, string(blob)))
	})
}

type sampleCmd struct {
	Limit int      `short:"n" long:"limit" default:"10" description:"max rows"`
	Where string   `long:"where" description:"condition, without WHERE"`
	Order []string `long:"order" description:"column[:desc], repeatable"`
	Args  struct {
		Table string `positional-arg-name:"table" required:"yes"`
	} `positional-args:"yes"`
}

func (c *sampleCmd) Execute([]string) error {
	orders := make([]sqldb.OrderBy, 0, len(c.Order))
	for _, arg := range c.Order {
		o, err := sqldb.ParseOrderBy(arg)
		if err != nil {
			return err
		}
		orders = append(orders, o)
	}
	opts := myq.SampleOptions{Limit: c.Limit, Where: c.Where, OrderBy: orders}
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		return printRecords(e.Sample(ctx, c.Args.Table, opts))
	})
}

type countCmd struct {
	Args struct {
		Table string   `positional-arg-name:"table" required:"yes"`
		Keys  []string `positional-arg-name:"keys"`
	} `positional-args:"yes"`
}

func (c *countCmd) Execute([]string) error {
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		return printRecords(e.Count(ctx, c.Args.Table, c.Args.Keys))
	})
}

type insertCmd struct {
	Update []string `long:"update" description:"column updated on duplicate key, repeatable"`
	Strict bool     `long:"strict" description:"fail on fields whose column type cannot be inferred"`
	Args   struct {
		Table string `positional-arg-name:"table" required:"yes"`
		File  string `positional-arg-name:"file" description:"JSON file, - for stdin"`
	} `positional-args:"yes"`
}

func (c *insertCmd) Execute([]string) error {
	data, err := readInput(c.Args.File)
	if err != nil {
		return err
	}
	records, err := record.Decode(data)
	if err != nil {
		return err
	}
	opts := myq.BulkInsertOptions{UpsertColumns: c.Update, Strict: c.Strict}
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		if err := e.BulkInsert(ctx, c.Args.Table, records, opts); err != nil {
			return err
		}
		log.Printf("[INFO] %d records submitted to %s", len(records), c.Args.Table)
		return nil
	})
}

type tablesCmd struct {
	Args struct {
		Table string `positional-arg-name:"table"`
	} `positional-args:"yes"`
}

func (c *tablesCmd) Execute([]string) error {
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		return printRecords(e.Tables(ctx, c.Args.Table))
	})
}

type columnsCmd struct {
	Args struct {
		Table string `positional-arg-name:"table" required:"yes"`
	} `positional-args:"yes"`
}

func (c *columnsCmd) Execute([]string) error {
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		columns, err := e.Columns(ctx, c.Args.Table)
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			return fmt.Errorf("table %s not found", c.Args.Table)
		}
		return writeJSONLines(os.Stdout, columns)
	})
}

type databasesCmd struct{}

func (c *databasesCmd) Execute([]string) error {
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		return printRecords(e.Databases(ctx))
	})
}

type processlistCmd struct{}

func (c *processlistCmd) Execute([]string) error {
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		return printRecords(e.Processlist(ctx))
	})
}

type variablesCmd struct {
	Args struct {
		Like string `positional-arg-name:"like"`
	} `positional-args:"yes"`
}

func (c *variablesCmd) Execute([]string) error {
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		return printRecords(e.Variables(ctx, c.Args.Like))
	})
}

type createDatabaseCmd struct {
	Args struct {
		Name string `positional-arg-name:"name" required:"yes"`
	} `positional-args:"yes"`
}

func (c *createDatabaseCmd) Execute([]string) error {
	return session(func(ctx context.Context, _ *conf.Core, e *myq.Engine) error {
		return e.CreateDatabase(ctx, c.Args.Name)
	})
}

type consumeCmd struct {
	Key      string        `long:"key" required:"yes" description:"list key to pop payloads from"`
	Interval time.Duration `long:"interval" default:"1s" description:"sleep when the list is empty"`
	Batch    int           `long:"batch" default:"100" description:"max payloads per insert"`
	Update   []string      `long:"update" description:"column updated on duplicate key, repeatable"`
	Strict   bool          `long:"strict" description:"fail on fields whose column type cannot be inferred"`
	Args     struct {
		Table string `positional-arg-name:"table" required:"yes"`
	} `positional-args:"yes"`
}

func (c *consumeCmd) Execute([]string) error {
	return session(func(_ context.Context, core *conf.Core, e *myq.Engine) error {
		if err := core.PrepareKVDatabase(Opts.KVConf); err != nil {
			return err
		}
		consumer := myq.NewConsumer(e, core.KVDBClient, c.Key, c.Args.Table)
		consumer.Interval = c.Interval
		consumer.BatchSize = c.Batch
		consumer.Options = myq.BulkInsertOptions{UpsertColumns: c.Update, Strict: c.Strict}
		core.AddService(consumer)
		if err := core.StartServices(); err != nil {
			return err
		}
		return core.WaitServicesDone()
	})
}

type enqueueCmd struct {
	Key  string `long:"key" required:"yes" description:"list key to push payloads to"`
	Args struct {
		File string `positional-arg-name:"file" description:"JSON file, - for stdin"`
	} `positional-args:"yes"`
}

// enqueue needs no SQL session, only the queue store
func (c *enqueueCmd) Execute([]string) error {
	data, err := readInput(c.Args.File)
	if err != nil {
		return err
	}
	records, err := record.Decode(data)
	if err != nil {
		return err
	}
	payloads := make([]string, len(records))
	for i, r := range records {
		payloads[i] = r.String()
	}

	core := &conf.Core{}
	defer core.ResourceCleanUp()
	if err := core.PrepareKVDatabase(Opts.KVConf); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := core.KVDBClient.Push(ctx, c.Key, payloads...); err != nil {
		return err
	}
	n, err := core.KVDBClient.Len(ctx, c.Key)
	if err != nil {
		return err
	}
	log.Printf("[INFO] %d records pushed to %s (length %d)", len(payloads), c.Key, n)
	return nil
}

type versionCmd struct{}

func (c *versionCmd) Execute([]string) error {
	showVersion()
	return nil
}
