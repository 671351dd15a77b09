package database

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// migrationsDir returns the absolute path to db/migrations/ from the project root.
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	// thisFile is internal/database/migrate_test.go, project root is two dirs up.
	projectRoot := filepath.Join(filepath.Dir(thisFile), "..", "..")
	dir := filepath.Join(projectRoot, "db", "migrations")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("migrations directory not found at %s: %v", dir, err)
	}
	return dir
}

// readUpMigrations concatenates every *.up.sql file in version order.
func readUpMigrations(t *testing.T) string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(migrationsDir(t), "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no migration files found")
	}

	var sb strings.Builder
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}
		sb.Write(data)
		sb.WriteString("\n")
	}
	return sb.String()
}

// TestMigrations_UpDownPairs ensures every .up.sql has a matching .down.sql.
func TestMigrations_UpDownPairs(t *testing.T) {
	dir := migrationsDir(t)
	upFiles, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing up files: %v", err)
	}

	for _, up := range upFiles {
		down := strings.Replace(up, ".up.sql", ".down.sql", 1)
		if _, err := os.Stat(down); err != nil {
			t.Errorf("missing down migration for %s", filepath.Base(up))
		}
	}
}

// TestMigrations_VersionsAreSequential catches duplicate or skipped version
// prefixes, which golang-migrate refuses to run.
func TestMigrations_VersionsAreSequential(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(migrationsDir(t), "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing up files: %v", err)
	}

	versionPattern := regexp.MustCompile(`^(\d{6})_`)
	for i, f := range files {
		m := versionPattern.FindStringSubmatch(filepath.Base(f))
		if m == nil {
			t.Fatalf("%s: missing 6-digit version prefix", filepath.Base(f))
		}
		if want := fmt.Sprintf("%06d", i+1); m[1] != want {
			t.Errorf("%s: expected version %s", filepath.Base(f), want)
		}
	}
}

// TestMigrations_UniqueConstraints checks the data-model invariants that the
// auth gate relies on: unique emails and unique session tokens.
func TestMigrations_UniqueConstraints(t *testing.T) {
	sql := readUpMigrations(t)

	for _, want := range []string{
		"UNIQUE KEY uq_users_email (email)",
		"UNIQUE KEY uq_sessions_token (token)",
		"REFERENCES users (id) ON DELETE CASCADE",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("migrations missing %q", want)
		}
	}
}

// TestMigrations_TokenComparedBinary ensures token lookups are byte-exact:
// the table default collation is case-insensitive and ignores trailing spaces.
func TestMigrations_TokenComparedBinary(t *testing.T) {
	tokenColumn := regexp.MustCompile(`(?m)^\s*token\s+VARBINARY\(64\)\s+NOT NULL,`)
	if !tokenColumn.MatchString(readUpMigrations(t)) {
		t.Error("sessions.token must be VARBINARY")
	}
}

// TestMigrations_TodoSeedRows ensures the demo todo list is seeded.
func TestMigrations_TodoSeedRows(t *testing.T) {
	sql := readUpMigrations(t)
	if !strings.Contains(sql, "INSERT INTO todos") {
		t.Fatal("expected todo seed rows")
	}
}
