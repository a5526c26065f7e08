package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pokedex/internal/config"
	"pokedex/internal/store/sqlite"
)

func initCmd() *cobra.Command {
	var projectName string
	var dbPath string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a pokedex project config and schema file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName, dbPath)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&dbPath, "db", "schema/pokedex.db", "Database file path to record in the config")
	return cmd
}

func runInit(projectName, dbPath string) error {
	configPath := config.DefaultConfigPath
	schemaPath := config.DefaultSchemaPath
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if _, err := os.Stat(schemaPath); err == nil {
		return fmt.Errorf("%s already exists", schemaPath)
	}

	configContents := fmt.Sprintf("project: %s\nversion: 1\n\ndatabase:\n  dsn: %s\n\npaths:\n  input: ./raw_pokemon\n  schema: %s\n  csv_dir: %s\n", projectName, dbPath, schemaPath, config.DefaultCSVDir)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(schemaPath), 0o755); err != nil {
		return fmt.Errorf("creating schema directory: %w", err)
	}
	if err := os.WriteFile(schemaPath, []byte(strings.TrimLeft(sqlite.DefaultDDL, "\n")), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", schemaPath, err)
	}

	fmt.Fprintf(os.Stdout, "Created %s and %s\n", configPath, schemaPath)
	return nil
}
