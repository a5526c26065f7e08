package transform

import (
	"fmt"

	"pokedex/internal/store"
)

const (
	codeDuplicateID    = "duplicate_primary_key"
	codeInvalidID      = "invalid_primary_key"
	codeEmptyName      = "empty_name"
	codeStatOutOfRange = "stat_out_of_range"
	codeDanglingRef    = "dangling_reference"
)

// Stats outside this range indicate corrupted source data rather than a
// legitimate game value.
const (
	statMin = 0
	statMax = 255
)

// Violation is one problem found while checking the normalized tables.
type Violation struct {
	Code    string
	Table   string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Code, v.Table, v.Message)
}

// Report collects every violation found in a batch so all problems surface
// together instead of one per run.
type Report struct {
	Violations []Violation
}

// OK reports whether the batch passed validation.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// Validate checks referential integrity and value ranges over a normalized
// table set. It never stops at the first problem.
func Validate(tables *store.Tables) *Report {
	report := &Report{}

	pokemonIDs := make(map[int]struct{}, len(tables.Pokemon))
	for _, p := range tables.Pokemon {
		if p.ID <= 0 {
			report.add(codeInvalidID, "pokemon", fmt.Sprintf("dex id %d must be positive (%s)", p.ID, p.Name))
		}
		if _, ok := pokemonIDs[p.ID]; ok {
			report.add(codeDuplicateID, "pokemon", fmt.Sprintf("dex id %d appears more than once", p.ID))
		}
		pokemonIDs[p.ID] = struct{}{}
		if p.Name == "" {
			report.add(codeEmptyName, "pokemon", fmt.Sprintf("dex id %d has an empty name", p.ID))
		}
		checkStat := func(stat string, value int) {
			if value < statMin || value > statMax {
				report.add(codeStatOutOfRange, "pokemon", fmt.Sprintf("dex id %d: %s %d outside [%d, %d]", p.ID, stat, value, statMin, statMax))
			}
		}
		checkStat("hp", p.HP)
		checkStat("attack", p.Attack)
		checkStat("defense", p.Defense)
		checkStat("sp_attack", p.SpAttack)
		checkStat("sp_defense", p.SpDefense)
		checkStat("speed", p.Speed)
	}

	typeIDs := lookupIDs(report, "type", len(tables.Types), func(i int) (int, string) {
		return tables.Types[i].ID, tables.Types[i].Name
	})
	abilityIDs := lookupIDs(report, "ability", len(tables.Abilities), func(i int) (int, string) {
		return tables.Abilities[i].ID, tables.Abilities[i].Name
	})
	moveIDs := lookupIDs(report, "move", len(tables.Moves), func(i int) (int, string) {
		return tables.Moves[i].ID, tables.Moves[i].Name
	})

	for _, row := range tables.PokemonTypes {
		checkRef(report, "pokemon_type", row.ID, "pokemon", row.PokemonID, pokemonIDs)
		checkRef(report, "pokemon_type", row.ID, "type", row.TypeID, typeIDs)
	}
	for _, row := range tables.PokemonAbilities {
		checkRef(report, "pokemon_ability", row.ID, "pokemon", row.PokemonID, pokemonIDs)
		checkRef(report, "pokemon_ability", row.ID, "ability", row.AbilityID, abilityIDs)
	}
	for _, row := range tables.PokemonMoves {
		checkRef(report, "pokemon_move", row.ID, "pokemon", row.PokemonID, pokemonIDs)
		checkRef(report, "pokemon_move", row.ID, "move", row.MoveID, moveIDs)
	}

	return report
}

func (r *Report) add(code, table, message string) {
	r.Violations = append(r.Violations, Violation{Code: code, Table: table, Message: message})
}

func lookupIDs(report *Report, table string, n int, at func(int) (int, string)) map[int]struct{} {
	ids := make(map[int]struct{}, n)
	for i := 0; i < n; i++ {
		id, name := at(i)
		if id <= 0 {
			report.add(codeInvalidID, table, fmt.Sprintf("id %d must be positive (%s)", id, name))
		}
		if _, ok := ids[id]; ok {
			report.add(codeDuplicateID, table, fmt.Sprintf("id %d appears more than once", id))
		}
		ids[id] = struct{}{}
		if name == "" {
			report.add(codeEmptyName, table, fmt.Sprintf("id %d has an empty name", id))
		}
	}
	return ids
}

func checkRef(report *Report, table string, rowID int, refTable string, refID int, known map[int]struct{}) {
	if _, ok := known[refID]; !ok {
		report.add(codeDanglingRef, table, fmt.Sprintf("row %d references missing %s id %d", rowID, refTable, refID))
	}
}
