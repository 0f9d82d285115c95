package conf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zeptools/myq/db/sqldb"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const profilesYAML = `
default:
  host: db.local
  username: app
  password: secret
  database: shop
staging:
  type: pgsql
  host: pg.local
  username: deploy
  database: shop
  tz: UTC
broken:
  port: 70000
`

func TestLoadProfiles(t *testing.T) {
	path := writeFile(t, ".database.yml", profilesYAML)
	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatal(err)
	}
	p := profiles["default"]
	if p == nil || p.Host != "db.local" || p.User != "app" || p.PW != "secret" || p.DB != "shop" {
		t.Fatalf("default profile = %+v", p)
	}
}

func TestLoadNamedProfile(t *testing.T) {
	path := writeFile(t, ".database.yml", profilesYAML)
	tests := []struct {
		profile  string
		wantType string
		wantPort int
		wantUser string
	}{
		{"", "mysql", 3306, "app"}, // "default"
		{"staging", "pgsql", 5432, "deploy"},
	}
	for _, tt := range tests {
		conf, err := Load(Options{ProfileFile: path, Profile: tt.profile, Host: "ignored"})
		if err != nil {
			t.Fatalf("Load(%q): %v", tt.profile, err)
		}
		if conf.Type != tt.wantType || conf.Port != tt.wantPort || conf.User != tt.wantUser {
			t.Fatalf("Load(%q) = %+v", tt.profile, conf)
		}
		if conf.Host == "ignored" {
			t.Fatal("flags must not override a profile")
		}
	}
}

func TestLoadMissingProfile(t *testing.T) {
	path := writeFile(t, ".database.yml", profilesYAML)
	if _, err := Load(Options{ProfileFile: path, Profile: "prod"}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err=%v, want ErrProfileNotFound", err)
	}
}

func TestLoadInvalidProfile(t *testing.T) {
	path := writeFile(t, ".database.yml", profilesYAML)
	if _, err := Load(Options{ProfileFile: path, Profile: "broken"}); err == nil {
		t.Fatal("expected port error")
	}
}

func TestLoadFromFlags(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yml")
	conf, err := Load(Options{ProfileFile: missing, Database: "shop", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	want := sqldb.Conf{Type: "mysql", Host: "localhost", Port: 3306, User: "root", PW: "pw", DB: "shop"}
	if *conf != want {
		t.Fatalf("conf = %+v, want %+v", *conf, want)
	}

	conf, err = Load(Options{ProfileFile: missing, Type: "pgsql"})
	if err != nil {
		t.Fatal(err)
	}
	if conf.Port != 5432 {
		t.Fatalf("port=%d, want 5432", conf.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		conf sqldb.Conf
		ok   bool
	}{
		{"mysql", sqldb.Conf{Type: "mysql", Port: 3306}, true},
		{"unknown type", sqldb.Conf{Type: "oracle", Port: 1521}, false},
		{"port zero", sqldb.Conf{Type: "mysql"}, false},
		{"port too large", sqldb.Conf{Type: "pgsql", Port: 65536}, false},
		{"bad tz", sqldb.Conf{Type: "mysql", Port: 3306, TZ: "Mars/Olympus"}, false},
	}
	for _, tt := range tests {
		err := Validate(&tt.conf)
		if (err == nil) != tt.ok {
			t.Errorf("%s: err=%v", tt.name, err)
		}
	}
	err := Validate(&sqldb.Conf{Type: "oracle", Port: 1})
	if !errors.Is(err, sqldb.ErrUnsupportedDBType) {
		t.Fatalf("err=%v", err)
	}
}

func TestLoadKVConf(t *testing.T) {
	path := writeFile(t, ".kv-databases.json", `{"host":"cache.local","port":6379,"db":1}`)
	conf, err := LoadKVConf(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Type != "redis" || conf.Host != "cache.local" || conf.Port != 6379 || conf.DB != 1 {
		t.Fatalf("conf = %+v", conf)
	}
	if _, err := LoadKVConf(writeFile(t, "bad.json", `{`)); err == nil {
		t.Fatal("expected error")
	}
}

type fakeService struct {
	started bool
	stopped chan struct{}
	done    chan error
}

func newFakeService() *fakeService {
	return &fakeService{stopped: make(chan struct{}), done: make(chan error, 1)}
}

func (s *fakeService) Start() error {
	s.started = true
	return nil
}

func (s *fakeService) Stop() {
	select {
	case <-s.stopped:
	default:
		close(s.stopped)
		s.done <- nil
	}
}

func (s *fakeService) Done() <-chan error { return s.done }
func (s *fakeService) Name() string       { return "fake" }

func TestServicesStopOnRootCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	core := &Core{RootCtx: ctx, RootCancel: cancel}
	a, b := newFakeService(), newFakeService()
	core.AddService(a)
	core.AddService(b)
	if err := core.StartServices(); err != nil {
		t.Fatal(err)
	}
	if !a.started || !b.started {
		t.Fatal("services not started")
	}
	cancel()
	if err := core.WaitServicesDone(); err != nil {
		t.Fatal(err)
	}
}
