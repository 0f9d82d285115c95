package redis

import (
	"context"
	"errors"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/zeptools/myq/db/kvdb"

	lowimpl "github.com/redis/go-redis/v9"
)

const KVType = "redis"

type Client struct {
	Conf *kvdb.Conf

	// implementation details, not exported
	internal *lowimpl.Client
}

// Ensure redis.Client implements kvdb.Client interface
var _ kvdb.Client = (*Client)(nil)

// Register makes "redis" available to kvdb.New
func Register() {
	kvdb.RegisterFactory(KVType, func(conf *kvdb.Conf) (kvdb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

func (c *Client) Init() error {
	if c.Conf == nil {
		return errors.New("redis: no conf")
	}
	c.internal = lowimpl.NewClient(c.options())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.internal.Ping(ctx).Err(); err != nil {
		_ = c.internal.Close()
		c.internal = nil
		return err
	}
	log.Println("[INFO] redis client initialized")
	return nil
}

func (c *Client) options() *lowimpl.Options {
	return &lowimpl.Options{
		Addr:     net.JoinHostPort(c.Conf.Host, strconv.Itoa(c.Conf.Port)),
		Password: c.Conf.PW,
		DB:       c.Conf.DB,
	}
}

func (c *Client) Close() error {
	if c.internal == nil {
		return nil
	}
	err := c.internal.Close()
	c.internal = nil
	return err
}

func (c *Client) GetConf() *kvdb.Conf {
	return c.Conf
}

func (c *Client) conn() (*lowimpl.Client, error) {
	if c.internal == nil {
		return nil, kvdb.ErrNotConnected
	}
	return c.internal, nil
}

//---- List Ops ----

func (c *Client) Push(ctx context.Context, key string, values ...string) error {
	conn, err := c.conn()
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	// tail (right) of the list
	return conn.RPush(ctx, key, args...).Err()
}

func (c *Client) Pop(ctx context.Context, key string) (string, bool, error) { // val, found, err
	conn, err := c.conn()
	if err != nil {
		return "", false, err
	}
	// Pop from the head (left) of the list (FIFO)
	val, err := conn.LPop(ctx, key).Result()
	if errors.Is(err, lowimpl.Nil) {
		return "", false, nil // redis.Nil -> ok: false, err: nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *Client) Len(ctx context.Context, key string) (int64, error) {
	conn, err := c.conn()
	if err != nil {
		return 0, err
	}
	return conn.LLen(ctx, key).Result()
}
