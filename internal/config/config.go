package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Conventional locations used when flags do not say otherwise.
const (
	DefaultConfigPath = "pokedex.yaml"
	DefaultSchemaPath = "schema/schema.sql"
	DefaultCSVDir     = "./output"
)

// ProjectConfig is the optional pokedex.yaml project file. The run command
// is fully flag-driven; the query, verify, and serve commands fall back to
// this file for the database location.
type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Paths    PathsConfig    `yaml:"paths"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Schema string `yaml:"schema"`
	CSVDir string `yaml:"csv_dir"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	return nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Paths.Schema == "" {
		cfg.Paths.Schema = DefaultSchemaPath
	}
	if cfg.Paths.CSVDir == "" {
		cfg.Paths.CSVDir = DefaultCSVDir
	}
}
