package conf

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/zeptools/myq/db"
	"github.com/zeptools/myq/db/kvdb"
	"github.com/zeptools/myq/db/kvdb/impls/redis"
	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/svc"
)

// Core holds the resolved configuration and the clients of one command run
type Core struct {
	RootCtx    context.Context    // cancelled on SIGINT / SIGTERM
	RootCancel context.CancelFunc // CancelFunc for RootCtx

	SQLDBConf   *sqldb.Conf  // BaseInit
	SQLDBClient sqldb.Client // PrepareSQLDatabase
	KVDBConf    kvdb.Conf    // PrepareKVDatabase
	KVDBClient  kvdb.Client  // PrepareKVDatabase

	services []svc.Service // Services to Manage
	done     chan error
}

// BaseInit resolves the connection profile and starts the shutdown signal listener
func (c *Core) BaseInit(opts Options, rootCtx context.Context, rootCancel context.CancelFunc) error {
	conf, err := Load(opts)
	if err != nil {
		return err
	}
	c.SQLDBConf = conf
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.startShutdownSignalListener()
	return nil
}

var once sync.Once

func (c *Core) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down ...", sig)
			c.RootCancel()
		}()
	})
}

func (c *Core) AddService(s svc.Service) {
	log.Printf("[INFO] adding service: %s", s.Name())
	c.services = append(c.services, s)
}

// StartServices starts every added service.
// Services are stopped when RootCtx is cancelled.
func (c *Core) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		if err := s.Start(); err != nil {
			return err
		}
		go func(s svc.Service) {
			err := <-s.Done()
			c.done <- err
		}(s)
	}
	go func() {
		<-c.RootCtx.Done()
		c.StopServices()
	}()
	return nil
}

// WaitServicesDone blocks until every service is done, returning the first error
func (c *Core) WaitServicesDone() error {
	var firstErr error
	for i := 0; i < len(c.services); i++ {
		if err := <-c.done; err != nil && firstErr == nil {
			firstErr = err
			c.StopServices()
		}
	}
	return firstErr
}

func (c *Core) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

// PrepareSQLDatabase builds and initializes the SQL client for SQLDBConf
func (c *Core) PrepareSQLDatabase() error {
	registerSQLDrivers()
	client, err := sqldb.New(c.SQLDBConf.Type, c.SQLDBConf)
	if err != nil {
		return err
	}
	if err = client.Init(); err != nil {
		return err
	}
	c.SQLDBClient = client
	return nil
}

// PrepareKVDatabase loads the queue store config file and initializes its client
func (c *Core) PrepareKVDatabase(confPath string) error {
	conf, err := LoadKVConf(confPath)
	if err != nil {
		return err
	}
	c.KVDBConf = conf

	redis.Register()
	client, err := kvdb.New(c.KVDBConf.Type, &c.KVDBConf)
	if err != nil {
		return err
	}
	if err = client.Init(); err != nil {
		return err
	}
	c.KVDBClient = client
	return nil
}

func (c *Core) ResourceCleanUp() {
	if c.KVDBClient != nil {
		db.CloseClient(c.KVDBConf.Type, c.KVDBClient)
	}
	if c.SQLDBClient != nil {
		db.CloseClient(c.SQLDBConf.Type, c.SQLDBClient)
	}
}
