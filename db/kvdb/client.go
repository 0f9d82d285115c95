package kvdb

import (
	"context"
	"errors"
)

// Client is a list-oriented key-value store used as an ingestion queue
type Client interface {
	Init() error
	Close() error
	GetConf() *Conf

	//---- List Ops ----

	// Push appends values to the tail of the list
	Push(ctx context.Context, key string, values ...string) error
	// Pop removes the head of the list. found is false for an empty or missing list
	Pop(ctx context.Context, key string) (val string, found bool, err error)
	Len(ctx context.Context, key string) (int64, error)
}

var ErrNotConnected = errors.New("kvdb: client not connected")
