package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestRun_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := Run(db); err != nil {
			t.Fatalf("Run #%d: %v", i+1, err)
		}
	}

	version, err := GetCurrentVersion(db)
	if err != nil {
		t.Fatal(err)
	}
	if want := AllMigrations[len(AllMigrations)-1].Version; version != want {
		t.Errorf("version = %d, want %d", version, want)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != len(AllMigrations) {
		t.Errorf("recorded %d migrations, want %d", n, len(AllMigrations))
	}
}
