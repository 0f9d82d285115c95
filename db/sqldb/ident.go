package sqldb

import (
	"fmt"
	"regexp"
)

var IdentifierRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Ident is a validated SQL identifier (e.g. "users" or "app.users").
// It cannot be created directly — only via NewIdent().
type Ident struct {
	name string // unexported → cannot bypass validation
}

// Name returns the identifier string.
func (i Ident) Name() string { return i.name }

func (i Ident) String() string { return i.name }

func NewIdent(name string) (Ident, error) {
	if !IdentifierRegexp.MatchString(name) {
		return Ident{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return Ident{name: name}, nil
}

// NewIdentOrPanic validates the name and returns a safe Ident value.
// WARNING: This function panics if the given name is not a valid SQL identifier.
func NewIdentOrPanic(name string) Ident {
	i, err := NewIdent(name)
	if err != nil {
		panic(err)
	}
	return i
}

// NewIdents validates every name
func NewIdents(names []string) ([]Ident, error) {
	idents := make([]Ident, 0, len(names))
	for _, name := range names {
		i, err := NewIdent(name)
		if err != nil {
			return nil, err
		}
		idents = append(idents, i)
	}
	return idents, nil
}

// SplitQualified splits "schema.table" into its parts.
// An unqualified name yields an empty schema.
func (i Ident) SplitQualified() (schema string, name string) {
	for k := len(i.name) - 1; k >= 0; k-- {
		if i.name[k] == '.' {
			return i.name[:k], i.name[k+1:]
		}
	}
	return "", i.name
}

// IdentNames returns the names of idents
func IdentNames(idents []Ident) []string {
	names := make([]string, len(idents))
	for k, i := range idents {
		names[k] = i.name
	}
	return names
}
