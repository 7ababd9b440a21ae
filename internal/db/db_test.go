package db

import (
	"testing"

	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

func TestDialector(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/clinic":                  "postgres",
		"postgresql://u:p@localhost:5432/clinic":                "postgres",
		"sqlite:file::memory:":                                  "sqlite",
		"app:apppass@tcp(127.0.0.1:3306)/clinic?parseTime=true": "mysql",
	}
	for dsn, want := range cases {
		if got := Dialector(dsn).Name(); got != want {
			t.Fatalf("%s: got %s want %s", dsn, got, want)
		}
	}
}

func TestConnect_SQLiteMigrates(t *testing.T) {
	gdb, err := Connect("sqlite:file:db_connect_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer Close(gdb)

	for _, m := range models.All() {
		if !gdb.Migrator().HasTable(m) {
			t.Fatalf("missing table for %T", m)
		}
	}
}

func TestClose_Nil(t *testing.T) {
	if err := Close(nil); err != nil {
		t.Fatalf("close nil: %v", err)
	}
}
