package myq

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/zeptools/myq/db/kvdb"
	"github.com/zeptools/myq/record"
	"github.com/zeptools/myq/svc"
)

const (
	DefaultConsumerInterval  = time.Second
	DefaultConsumerBatchSize = 100
)

// Consumer drains JSON payloads from a queue list into a table.
// Each payload may hold one record, an array of records, or line-delimited records.
type Consumer struct {
	Engine  *Engine
	Queue   kvdb.Client
	Key     string // list key
	Table   string
	Options BulkInsertOptions

	Interval  time.Duration // sleep when the list is empty
	BatchSize int           // max payloads per INSERT

	cancel context.CancelFunc
	done   chan error
}

// Ensure myq.Consumer implements svc.Service interface
var _ svc.Service = (*Consumer)(nil)

func NewConsumer(engine *Engine, queue kvdb.Client, key, table string) *Consumer {
	return &Consumer{
		Engine:    engine,
		Queue:     queue,
		Key:       key,
		Table:     table,
		Interval:  DefaultConsumerInterval,
		BatchSize: DefaultConsumerBatchSize,
	}
}

func (c *Consumer) validate() error {
	if c.Engine == nil || c.Queue == nil {
		return errors.New("consumer: engine and queue are required")
	}
	if c.Key == "" || c.Table == "" {
		return errors.New("consumer: key and table are required")
	}
	return nil
}

// RunOnce pops up to BatchSize payloads and bulk-inserts their records.
// It returns the number of records handed to BulkInsert.
// Payloads that are not valid JSON records are logged and dropped.
func (c *Consumer) RunOnce(ctx context.Context) (int, error) {
	if err := c.validate(); err != nil {
		return 0, err
	}
	batchSize := c.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultConsumerBatchSize
	}

	var batch []record.Record
	for i := 0; i < batchSize; i++ {
		payload, found, err := c.Queue.Pop(ctx, c.Key)
		if err != nil {
			if len(batch) == 0 {
				return 0, fmt.Errorf("pop %s: %w", c.Key, err)
			}
			log.Printf("[WARN] pop %s: %v", c.Key, err)
			break // insert what was already taken off the list
		}
		if !found {
			break
		}
		records, err := record.Decode([]byte(payload))
		if err != nil {
			log.Printf("[WARN] %s: payload dropped: %v", c.Key, err)
			continue
		}
		batch = append(batch, records...)
	}
	if len(batch) == 0 {
		return 0, nil
	}
	if err := c.Engine.BulkInsert(ctx, c.Table, batch, c.Options); err != nil {
		log.Printf("[ERROR] %d records popped from %s lost: %v", len(batch), c.Key, err)
		return 0, err
	}
	return len(batch), nil
}

// Run consumes until ctx is cancelled. Cancellation is checked between
// iterations. An iteration runs detached from ctx so a popped batch is
// always inserted.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.validate(); err != nil {
		return err
	}
	interval := c.Interval
	if interval <= 0 {
		interval = DefaultConsumerInterval
	}
	log.Printf("[INFO] consuming %s into %s", c.Key, c.Table)
	var total int
	for {
		if err := ctx.Err(); err != nil {
			log.Printf("[INFO] consumer stopped after %d records", total)
			return nil
		}
		n, err := c.RunOnce(context.WithoutCancel(ctx))
		if err != nil {
			return err
		}
		if n > 0 {
			total += n
			log.Printf("[INFO] %d records into %s (total %d)", n, c.Table, total)
			continue
		}
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}
}

//---- svc.Service ----

// Start runs the consumer in the background until Stop
func (c *Consumer) Start() error {
	if err := c.validate(); err != nil {
		return err
	}
	if c.cancel != nil {
		return errors.New("consumer: already started")
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan error, 1)
	go func() {
		c.done <- c.Run(ctx)
	}()
	return nil
}

func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Consumer) Done() <-chan error {
	return c.done
}

func (c *Consumer) Name() string {
	return "consumer " + c.Key + " -> " + c.Table
}
