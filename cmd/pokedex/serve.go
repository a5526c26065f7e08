package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pokedex/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveDB string

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve read-only queries to the display application over MCP stdio",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&serveDB, "db", "", "Database path or DSN (default: from pokedex.yaml)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	dsn, err := resolveDSN(serveDB)
	if err != nil {
		return err
	}

	db, err := openStore(ctx, dsn)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close(ctx)

	server := mcp.NewServer(db, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
