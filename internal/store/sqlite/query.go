package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pokedex/internal/store"
)

// GetPokemonByID reassembles one pokemon with its related type, ability, and
// move names resolved back from surrogate ids.
func (c *Client) GetPokemonByID(ctx context.Context, id int) (*store.PokemonDetail, error) {
	const query = `
	SELECT pokemon_id, pokemon_name, gen_number,
	       base_hp, base_attack, base_defense,
	       base_sp_attack, base_sp_def, base_speed,
	       description, evolution
	FROM pokemon
	WHERE pokemon_id = ?`

	detail := &store.PokemonDetail{}
	err := c.db.QueryRowContext(ctx, query, id).Scan(
		&detail.ID, &detail.Name, &detail.Generation,
		&detail.HP, &detail.Attack, &detail.Defense,
		&detail.SpAttack, &detail.SpDefense, &detail.Speed,
		&detail.Description, &detail.Evolution,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting pokemon %d: %w", id, err)
	}

	if detail.Types, err = c.typesOf(ctx, id); err != nil {
		return nil, err
	}
	if detail.Abilities, err = c.abilitiesOf(ctx, id); err != nil {
		return nil, err
	}
	if detail.Moves, err = c.movesOf(ctx, id); err != nil {
		return nil, err
	}

	return detail, nil
}

func (c *Client) typesOf(ctx context.Context, id int) ([]store.TypeInfo, error) {
	const query = `
	SELECT t.type_name, t.colour
	FROM type t
	JOIN pokemon_type pt ON pt.type_id = t.type_id
	WHERE pt.pokemon_id = ?
	ORDER BY pt.pokemon_type_id`

	rows, err := c.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying types of %d: %w", id, err)
	}
	defer rows.Close()

	var types []store.TypeInfo
	for rows.Next() {
		var info store.TypeInfo
		if err := rows.Scan(&info.Name, &info.Colour); err != nil {
			return nil, fmt.Errorf("scanning type row: %w", err)
		}
		types = append(types, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating type rows: %w", err)
	}
	return types, nil
}

func (c *Client) abilitiesOf(ctx context.Context, id int) ([]string, error) {
	const query = `
	SELECT a.ability_name
	FROM ability a
	JOIN pokemon_ability pa ON pa.ability_id = a.ability_id
	WHERE pa.pokemon_id = ?
	ORDER BY pa.pokemon_ability_id`

	rows, err := c.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying abilities of %d: %w", id, err)
	}
	defer rows.Close()

	var abilities []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning ability row: %w", err)
		}
		abilities = append(abilities, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ability rows: %w", err)
	}
	return abilities, nil
}

func (c *Client) movesOf(ctx context.Context, id int) ([]store.MoveInfo, error) {
	const query = `
	SELECT m.move_name, m.is_tm
	FROM move m
	JOIN pokemon_move pm ON pm.move_id = m.move_id
	WHERE pm.pokemon_id = ?
	ORDER BY pm.pokemon_move_id`

	rows, err := c.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying moves of %d: %w", id, err)
	}
	defer rows.Close()

	var moves []store.MoveInfo
	for rows.Next() {
		var info store.MoveInfo
		var isTM int
		if err := rows.Scan(&info.Name, &isTM); err != nil {
			return nil, fmt.Errorf("scanning move row: %w", err)
		}
		info.IsTM = isTM != 0
		moves = append(moves, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating move rows: %w", err)
	}
	return moves, nil
}

// ListGenerations returns the distinct generation numbers present, in
// ascending order.
func (c *Client) ListGenerations(ctx context.Context) ([]int, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT DISTINCT gen_number FROM pokemon ORDER BY gen_number")
	if err != nil {
		return nil, fmt.Errorf("querying generations: %w", err)
	}
	defer rows.Close()

	var generations []int
	for rows.Next() {
		var gen int
		if err := rows.Scan(&gen); err != nil {
			return nil, fmt.Errorf("scanning generation row: %w", err)
		}
		generations = append(generations, gen)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating generation rows: %w", err)
	}
	return generations, nil
}

// ListPokemonByGeneration returns the id/name summaries of one generation in
// dex order. A negative generation returns every pokemon.
func (c *Client) ListPokemonByGeneration(ctx context.Context, generation int) ([]store.PokemonSummary, error) {
	const query = `
	SELECT pokemon_id, pokemon_name, gen_number
	FROM pokemon
	WHERE (? < 0 OR gen_number = ?)
	ORDER BY pokemon_id`

	rows, err := c.db.QueryContext(ctx, query, generation, generation)
	if err != nil {
		return nil, fmt.Errorf("querying pokemon of generation %d: %w", generation, err)
	}
	defer rows.Close()

	var summaries []store.PokemonSummary
	for rows.Next() {
		var s store.PokemonSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Generation); err != nil {
			return nil, fmt.Errorf("scanning pokemon row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pokemon rows: %w", err)
	}
	return summaries, nil
}
