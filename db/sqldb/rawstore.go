package sqldb

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// RawStore holds raw SQL statements by name
type RawStore struct {
	stmts map[string]string
}

func NewRawStore() *RawStore {
	return &RawStore{stmts: make(map[string]string)}
}

func (s *RawStore) Set(key string, rawStmt string) {
	s.stmts[key] = rawStmt
}

func (s *RawStore) Get(key string) (string, bool) {
	stmt, exists := s.stmts[key]
	return stmt, exists
}

// MustGet panics when key is missing. Use for statements embedded at build time.
func (s *RawStore) MustGet(key string) string {
	stmt, exists := s.stmts[key]
	if !exists {
		panic(fmt.Sprintf("sqldb: raw stmt %q not loaded", key))
	}
	return stmt
}

func (s *RawStore) Len() int {
	return len(s.stmts)
}

// LoadRawStmts reads every `*.sql` file of dir into a new store,
// keyed by file name without extension
func LoadRawStmts(fsys fs.FS, dir string) (*RawStore, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read `%s` dir: %w", dir, err)
	}
	store := NewRawStore()
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		store.Set(strings.TrimSuffix(e.Name(), ".sql"), strings.TrimSpace(string(data)))
	}
	return store, nil
}

// MustLoadRawStmts is LoadRawStmts for embedded files
func MustLoadRawStmts(fsys fs.FS, dir string) *RawStore {
	store, err := LoadRawStmts(fsys, dir)
	if err != nil {
		panic(err)
	}
	return store
}
