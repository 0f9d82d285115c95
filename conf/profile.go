package conf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zeptools/myq/db/kvdb"
	"github.com/zeptools/myq/db/sqldb"
	"github.com/zeptools/myq/db/sqldb/impls/mysql"
	"github.com/zeptools/myq/db/sqldb/impls/pgsql"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProfile = "default"
	DefaultHost    = "localhost"
	DefaultUser    = "root"
	DefaultType    = mysql.DBType
)

var ErrProfileNotFound = errors.New("profile not found")

// Options are the connection settings given on the command line
type Options struct {
	Host        string
	Port        int
	Username    string
	Password    string
	Database    string
	Type        string
	TZ          string
	Profile     string // name in ProfileFile
	ProfileFile string // DefaultProfileFile when empty
}

// DefaultProfileFile is ~/.database.yml
func DefaultProfileFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".database.yml"
	}
	return filepath.Join(home, ".database.yml")
}

// LoadProfiles reads a YAML map of profile name to connection settings
func LoadProfiles(path string) (map[string]*sqldb.Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]*sqldb.Conf)
	if err = yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// Load resolves the connection settings.
// When the profile file exists the named profile is used as is, and a
// missing name is an error. Otherwise the flag values are used.
// Defaults are filled in and the result is validated.
func Load(opts Options) (*sqldb.Conf, error) {
	path := opts.ProfileFile
	if path == "" {
		path = DefaultProfileFile()
	}
	name := opts.Profile
	if name == "" {
		name = DefaultProfile
	}

	var conf *sqldb.Conf
	profiles, err := LoadProfiles(path)
	switch {
	case err == nil:
		p, ok := profiles[name]
		if !ok || p == nil {
			return nil, fmt.Errorf("%w: %q in %s", ErrProfileNotFound, name, path)
		}
		conf = p
	case errors.Is(err, fs.ErrNotExist):
		conf = &sqldb.Conf{
			Type: opts.Type,
			Host: opts.Host,
			Port: opts.Port,
			User: opts.Username,
			PW:   opts.Password,
			DB:   opts.Database,
			TZ:   opts.TZ,
		}
	default:
		return nil, err
	}

	applyDefaults(conf)
	if err = Validate(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func applyDefaults(conf *sqldb.Conf) {
	if conf.Type == "" {
		conf.Type = DefaultType
	}
	if conf.Host == "" {
		conf.Host = DefaultHost
	}
	if conf.User == "" {
		conf.User = DefaultUser
	}
	if conf.Port == 0 {
		conf.Port = DefaultPort(conf.Type)
	}
}

// registerSQLDrivers makes the supported implementations available to sqldb.New
func registerSQLDrivers() {
	mysql.Register()
	pgsql.Register()
}

func DefaultPort(dbType string) int {
	if dbType == pgsql.DBType {
		return 5432
	}
	return 3306
}

// Validate checks the parts of conf the drivers do not
func Validate(conf *sqldb.Conf) error {
	registerSQLDrivers()
	if !sqldb.Registered(conf.Type) {
		return fmt.Errorf("%w: %s", sqldb.ErrUnsupportedDBType, conf.Type)
	}
	if conf.Port < 1 || conf.Port > 65535 {
		return fmt.Errorf("invalid port %d", conf.Port)
	}
	if _, err := conf.Location(); err != nil {
		return err
	}
	return nil
}

// LoadKVConf reads the queue store settings (JSON)
func LoadKVConf(path string) (kvdb.Conf, error) {
	var conf kvdb.Conf
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	if err = json.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("%s: %w", path, err)
	}
	if conf.Type == "" {
		conf.Type = "redis"
	}
	return conf, nil
}
