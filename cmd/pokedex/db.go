package main

import (
	"context"
	"fmt"
	"strings"

	"pokedex/internal/config"
	"pokedex/internal/store"
	"pokedex/internal/store/postgres"
	"pokedex/internal/store/sqlite"
)

// openStore picks the backend from the DSN: postgres:// goes to the postgres
// client, everything else (sqlite:// or a bare file path) to sqlite.
func openStore(ctx context.Context, dsn string) (store.Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.New(ctx, dsn)
	}
	return sqlite.New(ctx, dsn)
}

// resolveDSN returns the --db flag value, falling back to the project config
// file when the flag is empty.
func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cfg, err := config.LoadProjectConfig(config.DefaultConfigPath)
	if err != nil {
		return "", fmt.Errorf("no --db flag and no usable %s: %w", config.DefaultConfigPath, err)
	}
	return cfg.Database.DSN, nil
}
