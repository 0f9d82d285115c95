package sqldb

import (
	"fmt"
	"time"
)

type Conf struct {
	Type string `json:"type" yaml:"type"` // mysql, pgsql
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`
	User string `json:"user" yaml:"username"`
	PW   string `json:"pw" yaml:"password"`
	DB   string `json:"db" yaml:"database"`
	TZ   string `json:"tz" yaml:"tz"`   // Connection Timezone. also used to read & write datetime literals
	DSN  string `json:"dsn" yaml:"dsn"` // To Overwrite Default DSN
}

// Location resolves TZ. Empty TZ means the local zone.
func (c *Conf) Location() (*time.Location, error) {
	if c == nil || c.TZ == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TZ)
	if err != nil {
		return nil, fmt.Errorf("invalid tz %q: %w", c.TZ, err)
	}
	return loc, nil
}
