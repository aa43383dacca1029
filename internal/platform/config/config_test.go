package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configFileEnv, "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != "8080" {
		t.Fatalf("port: want=8080 got=%q", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("driver: want=postgres got=%q", cfg.Database.Driver)
	}
	if got := cfg.Assembly.WeatherBuffer(); got != 15*time.Minute {
		t.Fatalf("weather buffer: want=15m got=%s", got)
	}
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dopebook.yaml")
	body := []byte("database:\n  driver: sqlite\nassembly:\n  weather_buffer_minutes: 30\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configFileEnv, path)
	t.Setenv("WEATHER_BUFFER_MINUTES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("driver from file: got=%q", cfg.Database.Driver)
	}
	if cfg.Assembly.WeatherBufferMinutes != 5 {
		t.Fatalf("env override: want=5 got=%d", cfg.Assembly.WeatherBufferMinutes)
	}
	if cfg.Assembly.FetchConcurrency != 4 {
		t.Fatalf("default kept: want=4 got=%d", cfg.Assembly.FetchConcurrency)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{Driver: "mysql"}, Assembly: AssemblyConfig{FetchConcurrency: 1}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "h", Port: "1", Name: "n"}
	if got := d.DSN(); got != "postgres://u:p@h:1/n?sslmode=disable" {
		t.Fatalf("dsn: got=%q", got)
	}
}
