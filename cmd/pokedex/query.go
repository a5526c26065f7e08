package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pokedex/internal/store"
)

var queryDB string

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <dex-number>",
		Short: "Look up one pokemon by dex number",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}
	cmd.Flags().StringVar(&queryDB, "db", "", "Database path or DSN (default: from pokedex.yaml)")
	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("dex number must be a positive integer, got %q", args[0])
	}

	dsn, err := resolveDSN(queryDB)
	if err != nil {
		return err
	}

	db, err := openStore(ctx, dsn)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close(ctx)

	detail, err := db.GetPokemonByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no pokemon with dex number %d", id)
	}
	if err != nil {
		return err
	}

	printDetail(detail)
	return nil
}

func printDetail(detail *store.PokemonDetail) {
	fmt.Fprintf(os.Stdout, "#%d %s (generation %d)\n", detail.ID, detail.Name, detail.Generation)

	typeNames := make([]string, 0, len(detail.Types))
	for _, t := range detail.Types {
		typeNames = append(typeNames, t.Name)
	}
	fmt.Fprintf(os.Stdout, "  Types:     %s\n", strings.Join(typeNames, ", "))
	fmt.Fprintf(os.Stdout, "  Abilities: %s\n", strings.Join(detail.Abilities, ", "))

	fmt.Fprintf(os.Stdout, "  Stats:     HP %d / Atk %d / Def %d / SpA %d / SpD %d / Spe %d\n",
		detail.HP, detail.Attack, detail.Defense, detail.SpAttack, detail.SpDefense, detail.Speed)

	if len(detail.Moves) > 0 {
		fmt.Fprintf(os.Stdout, "  Moves (%d):\n", len(detail.Moves))
		for _, move := range detail.Moves {
			marker := ""
			if move.IsTM {
				marker = " (TM)"
			}
			fmt.Fprintf(os.Stdout, "    - %s%s\n", move.Name, marker)
		}
	}

	if detail.Evolution != "" {
		fmt.Fprintf(os.Stdout, "  Evolution: %s\n", detail.Evolution)
	}
	if detail.Description != "" {
		fmt.Fprintf(os.Stdout, "\n%s\n", detail.Description)
	}
}
