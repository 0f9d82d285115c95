package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zeptools/myq/db/sqldb"
)

const DBType = "pgsql"

type Client struct {
	Conf *sqldb.Conf
	conn *pgx.Conn
	dsn  string
}

// Ensure pgsql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

// Register makes "pgsql" available to sqldb.New
func Register() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

func (c *Client) Init() error {
	if c.Conf == nil {
		return errors.New("pgsql: no conf")
	}
	c.dsn = c.buildDSN()
	config, err := pgx.ParseConfig(c.dsn)
	if err != nil {
		return fmt.Errorf("failed to parse pgx config: %w", err)
	}
	// generated statements are one-off; do not fill the statement cache with them
	config.DefaultQueryExecMode = pgx.QueryExecModeExec
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if c.conn, err = pgx.ConnectConfig(ctx, config); err != nil {
		return fmt.Errorf("failed to connect pgx: %w", convertErr(err))
	}
	if err = c.conn.Ping(ctx); err != nil {
		_ = c.conn.Close(ctx)
		c.conn = nil
		return fmt.Errorf("postgres ping failed: %w", convertErr(err))
	}
	log.Print("[INFO] pgsql client initialized")
	return nil
}

func (c *Client) buildDSN() string {
	if c.Conf.DSN != "" {
		return c.Conf.DSN
	}
	// NOTE: sslmode=disable is often used for local dev, adjust as needed.
	q := url.Values{}
	q.Set("sslmode", "disable")
	if c.Conf.TZ != "" {
		q.Set("timezone", c.Conf.TZ)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Conf.User, c.Conf.PW),
		Host:     net.JoinHostPort(c.Conf.Host, strconv.Itoa(c.Conf.Port)),
		Path:     "/" + c.Conf.DB,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (c *Client) GetConf() *sqldb.Conf {
	return c.Conf
}

func (c *Client) GetDSN() string {
	return c.dsn
}

func (c *Client) Dialect() sqldb.Dialect {
	return Dialect{}
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	log.Println("[INFO] closing pgsql client")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := c.conn.Close(ctx)
	c.conn = nil
	if err != nil {
		return err
	}
	log.Println("[INFO] pgsql client closed")
	return nil
}

func (c *Client) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	if c.conn == nil {
		return nil, sqldb.ErrNotConnected
	}
	tag, err := c.conn.Exec(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err)
	}
	return &Result{tag: tag}, nil
}

func (c *Client) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	if c.conn == nil {
		return nil, sqldb.ErrNotConnected
	}
	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err)
	}
	return &Rows{current: rows}, nil
}
