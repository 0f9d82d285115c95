// myq - SQL client with schema-inferring JSON ingestion
//
// Runs ad-hoc SQL and loads JSON records into tables created on first sight.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/zeptools/myq/conf"
	"github.com/zeptools/myq/myq"
)

var (
	progname = "myq"
	version  = "dev" // -ldflags "-X main.version=..."

	// Opts store the connection options shared by every command
	Opts GlobalOpts
)

// GlobalOpts are accepted before or after the command name
type GlobalOpts struct {
	Host        string `short:"H" long:"host" description:"database host (default: localhost)"`
	Port        int    `long:"port" description:"database port (default: 3306, 5432 for pgsql)"`
	Username    string `short:"u" long:"username" description:"database user (default: root)"`
	Password    string `short:"p" long:"password" description:"database password"`
	Database    string `short:"d" long:"database" description:"database name"`
	Type        string `long:"type" choice:"mysql" choice:"pgsql" description:"database type (default: mysql)"`
	TZ          string `long:"tz" description:"time zone of datetime values, e.g. UTC (default: local)"`
	Profile     string `long:"profile" default:"default" description:"profile name in the profile file"`
	ProfileFile string `long:"profile-file" description:"profile file (default: ~/.database.yml)"`
	KVConf      string `long:"kv-conf" default:".kv-databases.json" description:"queue store config file (consume, enqueue)"`
}

func (o GlobalOpts) options() conf.Options {
	return conf.Options{
		Host:        o.Host,
		Port:        o.Port,
		Username:    o.Username,
		Password:    o.Password,
		Database:    o.Database,
		Type:        o.Type,
		TZ:          o.TZ,
		Profile:     o.Profile,
		ProfileFile: o.ProfileFile,
	}
}

var gfParser = flags.NewParser(&Opts, flags.Default)

func main() {
	log.SetOutput(os.Stderr)
	addCommands(gfParser)
	if _, err := gfParser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// session resolves the profile, connects and hands an engine to fn.
// Clients are closed on every exit path.
func session(fn func(ctx context.Context, core *conf.Core, engine *myq.Engine) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core := &conf.Core{}
	if err := core.BaseInit(Opts.options(), ctx, cancel); err != nil {
		return err
	}
	defer core.ResourceCleanUp()
	if err := core.PrepareSQLDatabase(); err != nil {
		return err
	}
	engine, err := myq.New(core.SQLDBClient)
	if err != nil {
		return err
	}
	return fn(core.RootCtx, core, engine)
}

func showVersion() {
	fmt.Printf("%s %s\n", progname, version)
}
