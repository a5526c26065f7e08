package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pokedex/internal/store"
)

// Load mirrors the sqlite loader: dependency order, one transaction per
// table, *store.ConstraintViolation on a rejected row.
func (c *Client) Load(ctx context.Context, tables *store.Tables) (store.Counts, error) {
	counts := store.Counts{}

	steps := []struct {
		table string
		run   func(pgx.Tx) (int, error)
	}{
		{"pokemon", func(tx pgx.Tx) (int, error) { return insertPokemon(ctx, tx, tables.Pokemon) }},
		{"type", func(tx pgx.Tx) (int, error) { return insertTypes(ctx, tx, tables.Types) }},
		{"ability", func(tx pgx.Tx) (int, error) { return insertAbilities(ctx, tx, tables.Abilities) }},
		{"move", func(tx pgx.Tx) (int, error) { return insertMoves(ctx, tx, tables.Moves) }},
		{"pokemon_type", func(tx pgx.Tx) (int, error) { return insertPokemonTypes(ctx, tx, tables.PokemonTypes) }},
		{"pokemon_ability", func(tx pgx.Tx) (int, error) { return insertPokemonAbilities(ctx, tx, tables.PokemonAbilities) }},
		{"pokemon_move", func(tx pgx.Tx) (int, error) { return insertPokemonMoves(ctx, tx, tables.PokemonMoves) }},
	}

	for _, step := range steps {
		count, err := c.loadTable(ctx, step.run)
		if err != nil {
			return counts, err
		}
		counts[step.table] = count
	}

	return counts, nil
}

func (c *Client) loadTable(ctx context.Context, run func(pgx.Tx) (int, error)) (int, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	count, err := run(tx)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return count, nil
}

func insertPokemon(ctx context.Context, tx pgx.Tx, rows []store.Pokemon) (int, error) {
	const query = `
	INSERT INTO pokemon (
		pokemon_id, pokemon_name, gen_number,
		base_hp, base_attack, base_defense,
		base_sp_attack, base_sp_def, base_speed,
		description, evolution
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for _, row := range rows {
		_, err := tx.Exec(ctx, query,
			row.ID, row.Name, row.Generation,
			row.HP, row.Attack, row.Defense,
			row.SpAttack, row.SpDefense, row.Speed,
			row.Description, row.Evolution,
		)
		if err != nil {
			return 0, &store.ConstraintViolation{Table: "pokemon", Row: row, Err: err}
		}
	}
	return len(rows), nil
}

func insertTypes(ctx context.Context, tx pgx.Tx, rows []store.Type) (int, error) {
	const query = `INSERT INTO type (type_id, type_name, colour) VALUES ($1, $2, $3)`
	for _, row := range rows {
		if _, err := tx.Exec(ctx, query, row.ID, row.Name, row.Colour); err != nil {
			return 0, &store.ConstraintViolation{Table: "type", Row: row, Err: err}
		}
	}
	return len(rows), nil
}

func insertAbilities(ctx context.Context, tx pgx.Tx, rows []store.Ability) (int, error) {
	const query = `INSERT INTO ability (ability_id, ability_name) VALUES ($1, $2)`
	for _, row := range rows {
		if _, err := tx.Exec(ctx, query, row.ID, row.Name); err != nil {
			return 0, &store.ConstraintViolation{Table: "ability", Row: row, Err: err}
		}
	}
	return len(rows), nil
}

func insertMoves(ctx context.Context, tx pgx.Tx, rows []store.Move) (int, error) {
	const query = `INSERT INTO move (move_id, move_name, is_tm) VALUES ($1, $2, $3)`
	for _, row := range rows {
		if _, err := tx.Exec(ctx, query, row.ID, row.Name, row.IsTM); err != nil {
			return 0, &store.ConstraintViolation{Table: "move", Row: row, Err: err}
		}
	}
	return len(rows), nil
}

func insertPokemonTypes(ctx context.Context, tx pgx.Tx, rows []store.PokemonType) (int, error) {
	const query = `INSERT INTO pokemon_type (pokemon_type_id, pokemon_id, type_id) VALUES ($1, $2, $3)`
	for _, row := range rows {
		if _, err := tx.Exec(ctx, query, row.ID, row.PokemonID, row.TypeID); err != nil {
			return 0, &store.ConstraintViolation{Table: "pokemon_type", Row: row, Err: err}
		}
	}
	return len(rows), nil
}

func insertPokemonAbilities(ctx context.Context, tx pgx.Tx, rows []store.PokemonAbility) (int, error) {
	const query = `INSERT INTO pokemon_ability (pokemon_ability_id, pokemon_id, ability_id) VALUES ($1, $2, $3)`
	for _, row := range rows {
		if _, err := tx.Exec(ctx, query, row.ID, row.PokemonID, row.AbilityID); err != nil {
			return 0, &store.ConstraintViolation{Table: "pokemon_ability", Row: row, Err: err}
		}
	}
	return len(rows), nil
}

func insertPokemonMoves(ctx context.Context, tx pgx.Tx, rows []store.PokemonMove) (int, error) {
	const query = `INSERT INTO pokemon_move (pokemon_move_id, pokemon_id, move_id) VALUES ($1, $2, $3)`
	for _, row := range rows {
		if _, err := tx.Exec(ctx, query, row.ID, row.PokemonID, row.MoveID); err != nil {
			return 0, &store.ConstraintViolation{Table: "pokemon_move", Row: row, Err: err}
		}
	}
	return len(rows), nil
}
