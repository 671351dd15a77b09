package config

import (
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.Auth.SessionTTL != 7*24*time.Hour {
		t.Errorf("expected 7 day session TTL, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.SessionUpdateAge != 24*time.Hour {
		t.Errorf("expected 24h update age, got %s", cfg.Auth.SessionUpdateAge)
	}
	if cfg.Auth.SecretKey == "" {
		t.Error("expected dev secret fallback")
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development mode")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing SECRET_KEY in production")
	}

	t.Setenv("SECRET_KEY", "too-short")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for short SECRET_KEY in production")
	}

	t.Setenv("SECRET_KEY", strings.Repeat("k", 32))
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "0s")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero SESSION_TTL")
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a.test" || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", User: "u", Password: "p@ss", Name: "app"}
	dsn := d.DSN()
	if !strings.Contains(dsn, "tcp(db:3306)") {
		t.Errorf("expected default port appended, got %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("expected parseTime in DSN, got %s", dsn)
	}

}

func TestDatabaseConfig_DSNOverrideKeepsRequiredParams(t *testing.T) {
	d := DatabaseConfig{Host: "ignored", dsnOverride: "app:secret@tcp(db.internal:3307)/prod?timeout=5s"}

	cfg, err := mysql.ParseDSN(d.DSN())
	if err != nil {
		t.Fatalf("override DSN no longer parses: %v", err)
	}
	if cfg.Addr != "db.internal:3307" || cfg.DBName != "prod" || cfg.User != "app" || cfg.Passwd != "secret" {
		t.Errorf("override fields not preserved: %+v", cfg)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected timeout kept, got %s", cfg.Timeout)
	}
	if !cfg.ParseTime || cfg.Loc != time.UTC || !cfg.MultiStatements {
		t.Errorf("expected parseTime, UTC and multiStatements forced, got parseTime=%v loc=%v multi=%v",
			cfg.ParseTime, cfg.Loc, cfg.MultiStatements)
	}
}

func TestLoad_InvalidDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "not a dsn")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable DATABASE_URL")
	}
}
