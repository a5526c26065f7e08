package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pokedex/internal/store"
)

var verifyDB string

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Print the row count of every table",
		Args:  cobra.NoArgs,
		RunE:  runVerifyCmd,
	}
	cmd.Flags().StringVar(&verifyDB, "db", "", "Database path or DSN (default: from pokedex.yaml)")
	return cmd
}

func runVerifyCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	dsn, err := resolveDSN(verifyDB)
	if err != nil {
		return err
	}

	db, err := openStore(ctx, dsn)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close(ctx)

	counts, err := db.Verify(ctx)
	if err != nil {
		return err
	}

	for _, table := range store.TableNames {
		fmt.Fprintf(os.Stdout, "%-16s %d\n", table, counts[table])
	}
	return nil
}
