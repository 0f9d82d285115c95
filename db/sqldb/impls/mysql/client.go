package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	lowimpl "github.com/go-sql-driver/mysql"
	"github.com/zeptools/myq/db/sqldb"
)

const DBType = "mysql"

type Client struct {
	Handle // [Embedded] for Promoted Methods

	Conf *sqldb.Conf

	dsn string
}

// Ensure mysql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

// Register makes "mysql" available to sqldb.New
func Register() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

// NewWithDB wraps an already opened *sql.DB. Init must not be called on the result.
func NewWithDB(conf *sqldb.Conf, db *sql.DB) *Client {
	pinSession(db)
	return &Client{Conf: conf, Handle: Handle{DB: db}}
}

func (c *Client) Init() error {
	if c.Conf == nil {
		return errors.New("mysql: no conf")
	}
	var err error
	if c.dsn, err = c.buildDSN(); err != nil {
		return err
	}
	if c.DB, err = sql.Open("mysql", c.dsn); err != nil {
		return err
	}
	pinSession(c.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = c.DB.PingContext(ctx); err != nil {
		_ = c.DB.Close()
		c.DB = nil
		return fmt.Errorf("mysql ping failed: %w", convertErr(err))
	}
	log.Println("[INFO] mysql client initialized")
	return nil
}

// pinSession keeps every statement on one connection,
// so session variables and transactions carry over between statements
func pinSession(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
}

func (c *Client) buildDSN() (string, error) {
	if c.Conf.DSN != "" {
		return c.Conf.DSN, nil
	}
	loc, err := c.Conf.Location()
	if err != nil {
		return "", err
	}
	cfg := lowimpl.NewConfig()
	cfg.User = c.Conf.User
	cfg.Passwd = c.Conf.PW
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Conf.Host, strconv.Itoa(c.Conf.Port))
	cfg.DBName = c.Conf.DB
	cfg.Loc = loc
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN(), nil
}

func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	log.Println("[INFO] closing mysql client")
	err := c.DB.Close()
	if err != nil {
		return err
	}
	c.DB = nil
	log.Println("[INFO] mysql client closed")
	return nil
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
