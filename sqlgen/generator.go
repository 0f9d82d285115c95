package sqlgen

import (
	"time"

	"github.com/zeptools/myq/db/sqldb"
)

// Generator renders statements for one dialect.
// Location is used to read time-like strings and to format datetime literals.
type Generator struct {
	Dialect  sqldb.Dialect
	Location *time.Location
}

func NewGenerator(d sqldb.Dialect, loc *time.Location) Generator {
	if loc == nil {
		loc = time.Local
	}
	return Generator{Dialect: d, Location: loc}
}

func (g Generator) loc() *time.Location {
	if g.Location == nil {
		return time.Local
	}
	return g.Location
}
