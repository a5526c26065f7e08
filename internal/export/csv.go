// Package export writes the normalized tables to CSV files for inspection.
// It is a debugging aid only; the loader never depends on it.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"pokedex/internal/store"
)

// WriteTables writes one CSV file per non-empty table into dir, creating it
// if needed. It returns the written paths keyed by table name. The tables
// are read only.
func WriteTables(tables *store.Tables, dir string) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating csv directory: %w", err)
	}

	paths := make(map[string]string)
	write := func(table string, header []string, rows [][]string) error {
		if len(rows) == 0 {
			return nil
		}
		path := filepath.Join(dir, table+".csv")
		if err := writeFile(path, header, rows); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		paths[table] = path
		return nil
	}

	pokemonRows := make([][]string, 0, len(tables.Pokemon))
	for _, p := range tables.Pokemon {
		pokemonRows = append(pokemonRows, []string{
			strconv.Itoa(p.ID), p.Name, strconv.Itoa(p.Generation),
			strconv.Itoa(p.HP), strconv.Itoa(p.Attack), strconv.Itoa(p.Defense),
			strconv.Itoa(p.SpAttack), strconv.Itoa(p.SpDefense), strconv.Itoa(p.Speed),
			p.Description, p.Evolution,
		})
	}
	if err := write("pokemon", []string{
		"pokemon_id", "pokemon_name", "gen_number",
		"base_hp", "base_attack", "base_defense",
		"base_sp_attack", "base_sp_def", "base_speed",
		"description", "evolution",
	}, pokemonRows); err != nil {
		return nil, err
	}

	typeRows := make([][]string, 0, len(tables.Types))
	for _, t := range tables.Types {
		typeRows = append(typeRows, []string{strconv.Itoa(t.ID), t.Name, t.Colour})
	}
	if err := write("type", []string{"type_id", "type_name", "colour"}, typeRows); err != nil {
		return nil, err
	}

	abilityRows := make([][]string, 0, len(tables.Abilities))
	for _, a := range tables.Abilities {
		abilityRows = append(abilityRows, []string{strconv.Itoa(a.ID), a.Name})
	}
	if err := write("ability", []string{"ability_id", "ability_name"}, abilityRows); err != nil {
		return nil, err
	}

	moveRows := make([][]string, 0, len(tables.Moves))
	for _, m := range tables.Moves {
		moveRows = append(moveRows, []string{strconv.Itoa(m.ID), m.Name, boolToCell(m.IsTM)})
	}
	if err := write("move", []string{"move_id", "move_name", "is_tm"}, moveRows); err != nil {
		return nil, err
	}

	ptRows := make([][]string, 0, len(tables.PokemonTypes))
	for _, row := range tables.PokemonTypes {
		ptRows = append(ptRows, []string{strconv.Itoa(row.ID), strconv.Itoa(row.PokemonID), strconv.Itoa(row.TypeID)})
	}
	if err := write("pokemon_type", []string{"pokemon_type_id", "pokemon_id", "type_id"}, ptRows); err != nil {
		return nil, err
	}

	paRows := make([][]string, 0, len(tables.PokemonAbilities))
	for _, row := range tables.PokemonAbilities {
		paRows = append(paRows, []string{strconv.Itoa(row.ID), strconv.Itoa(row.PokemonID), strconv.Itoa(row.AbilityID)})
	}
	if err := write("pokemon_ability", []string{"pokemon_ability_id", "pokemon_id", "ability_id"}, paRows); err != nil {
		return nil, err
	}

	pmRows := make([][]string, 0, len(tables.PokemonMoves))
	for _, row := range tables.PokemonMoves {
		pmRows = append(pmRows, []string{strconv.Itoa(row.ID), strconv.Itoa(row.PokemonID), strconv.Itoa(row.MoveID)})
	}
	if err := write("pokemon_move", []string{"pokemon_move_id", "pokemon_id", "move_id"}, pmRows); err != nil {
		return nil, err
	}

	return paths, nil
}

func writeFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// boolToCell keeps the store's 0/1 convention in the exported files.
func boolToCell(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
