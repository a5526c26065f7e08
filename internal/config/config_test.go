package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokedex.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, `
project: national-dex
version: 1
database:
  dsn: schema/pokedex.db
paths:
  input: ./pokedex
  schema: custom/schema.sql
  csv_dir: ./exports
`)
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "national-dex" {
			t.Errorf("unexpected project: %s", cfg.Project)
		}
		if cfg.Database.DSN != "schema/pokedex.db" {
			t.Errorf("unexpected dsn: %s", cfg.Database.DSN)
		}
		if cfg.Paths.Schema != "custom/schema.sql" {
			t.Errorf("unexpected schema path: %s", cfg.Paths.Schema)
		}
	})

	t.Run("defaults fill omitted paths", func(t *testing.T) {
		path := writeConfig(t, `
project: national-dex
version: 1
database:
  dsn: schema/pokedex.db
`)
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Paths.Schema != DefaultSchemaPath {
			t.Errorf("expected default schema path, got %s", cfg.Paths.Schema)
		}
		if cfg.Paths.CSVDir != DefaultCSVDir {
			t.Errorf("expected default csv dir, got %s", cfg.Paths.CSVDir)
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeConfig(t, `
version: 1
database:
  dsn: schema/pokedex.db
`)
		_, err := LoadProjectConfig(path)
		if err == nil || !strings.Contains(err.Error(), "project name is required") {
			t.Fatalf("expected project name error, got %v", err)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeConfig(t, `
project: national-dex
version: 2
database:
  dsn: schema/pokedex.db
`)
		_, err := LoadProjectConfig(path)
		if err == nil || !strings.Contains(err.Error(), "unsupported version") {
			t.Fatalf("expected version error, got %v", err)
		}
	})

	t.Run("missing dsn", func(t *testing.T) {
		path := writeConfig(t, `
project: national-dex
version: 1
`)
		_, err := LoadProjectConfig(path)
		if err == nil || !strings.Contains(err.Error(), "database dsn is required") {
			t.Fatalf("expected dsn error, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "project: [unclosed")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatal("expected error for malformed yaml")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
