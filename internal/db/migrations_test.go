package db

import (
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrations(t *testing.T) {
	database := openTestDatabase(t)

	for _, table := range []string{"daily_logs", "cycle_profiles", "schema_migrations"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	for _, column := range []string{"notifications_enabled", "telegram_chat_id", "last_notified_on"} {
		if !database.Migrator().HasColumn("cycle_profiles", column) {
			t.Fatalf("expected cycle_profiles.%s to exist", column)
		}
	}

	versions := loadMigrationVersions(t, database)
	if !reflect.DeepEqual(versions, []string{"001", "002", "003"}) {
		t.Fatalf("unexpected applied versions %v", versions)
	}
}

func TestOpenSQLiteMigrationsAreIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "selene-idempotent.db")

	first, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstVersions := loadMigrationVersions(t, first)
	firstSQLDB, err := first.DB()
	if err != nil {
		t.Fatalf("first sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	second, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("second open sqlite: %v", err)
	}
	secondSQLDB, err := second.DB()
	if err != nil {
		t.Fatalf("second sql db: %v", err)
	}
	t.Cleanup(func() { _ = secondSQLDB.Close() })

	if secondVersions := loadMigrationVersions(t, second); !reflect.DeepEqual(firstVersions, secondVersions) {
		t.Fatalf("expected versions to stay %v, got %v", firstVersions, secondVersions)
	}
}

func TestApplyMigrationsSkipsExistingAddColumn(t *testing.T) {
	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "selene-patched.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	files := fstest.MapFS{
		"001_widgets.sql":     {Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY, label TEXT);")},
		"002_widget_size.sql": {Data: []byte("ALTER TABLE widgets ADD COLUMN size INTEGER NOT NULL DEFAULT 0;")},
		"notes.txt":           {Data: []byte("ignored")},
	}
	if err := database.Exec("CREATE TABLE widgets (id INTEGER PRIMARY KEY, label TEXT, size INTEGER)").Error; err != nil {
		t.Fatalf("seed patched schema: %v", err)
	}
	if err := database.Exec("CREATE TABLE schema_migrations (version TEXT PRIMARY KEY, name TEXT NOT NULL, applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP)").Error; err != nil {
		t.Fatalf("seed schema_migrations: %v", err)
	}
	if err := database.Exec("INSERT INTO schema_migrations(version, name) VALUES ('001', '001_widgets.sql')").Error; err != nil {
		t.Fatalf("seed applied version: %v", err)
	}

	if err := applyMigrations(database, files); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if versions := loadMigrationVersions(t, database); !reflect.DeepEqual(versions, []string{"001", "002"}) {
		t.Fatalf("unexpected applied versions %v", versions)
	}
}

func TestLoadMigrationsRejectsDuplicateVersions(t *testing.T) {
	files := fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1;")},
		"001_b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := loadMigrations(files); err == nil {
		t.Fatal("expected duplicate version error")
	}
}

func loadMigrationVersions(t *testing.T, database *gorm.DB) []string {
	t.Helper()

	versions := make([]string, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations ORDER BY version ASC`).Scan(&versions).Error; err != nil {
		t.Fatalf("load migration versions: %v", err)
	}
	return versions
}
