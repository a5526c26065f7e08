package store

// Pokemon is one row of the pokemon table. The dex number supplied by the
// source data is the primary key; the pipeline validates it but never
// regenerates it.
type Pokemon struct {
	ID          int
	Name        string
	Generation  int
	HP          int
	Attack      int
	Defense     int
	SpAttack    int
	SpDefense   int
	Speed       int
	Description string
	Evolution   string
}

// Type is one row of the type lookup table.
type Type struct {
	ID     int
	Name   string
	Colour string
}

// Ability is one row of the ability lookup table.
type Ability struct {
	ID   int
	Name string
}

// Move is one row of the move lookup table. IsTM marks moves acquired via a
// technical machine rather than by level-up.
type Move struct {
	ID   int
	Name string
	IsTM bool
}

// PokemonType links one pokemon to one type.
type PokemonType struct {
	ID        int
	PokemonID int
	TypeID    int
}

// PokemonAbility links one pokemon to one ability.
type PokemonAbility struct {
	ID        int
	PokemonID int
	AbilityID int
}

// PokemonMove links one pokemon to one move.
type PokemonMove struct {
	ID        int
	PokemonID int
	MoveID    int
}

// Tables is the full normalized table set produced by a transform session.
// It is handed to the loader and exporter as an immutable snapshot.
type Tables struct {
	Pokemon          []Pokemon
	Types            []Type
	Abilities        []Ability
	Moves            []Move
	PokemonTypes     []PokemonType
	PokemonAbilities []PokemonAbility
	PokemonMoves     []PokemonMove
}

// TableNames lists every table in dependency order: parents before the
// junction tables that reference them. Drops run over the reverse of this.
var TableNames = []string{
	"pokemon",
	"type",
	"ability",
	"move",
	"pokemon_type",
	"pokemon_ability",
	"pokemon_move",
}

// Counts maps a table name to its row count.
type Counts map[string]int

// TypeInfo is a resolved type name with its display colour.
type TypeInfo struct {
	Name   string
	Colour string
}

// MoveInfo is a resolved move name with its TM flag.
type MoveInfo struct {
	Name string
	IsTM bool
}

// PokemonDetail is one pokemon reassembled from the store with its related
// lookup rows resolved back to names. This is the shape the display
// application consumes.
type PokemonDetail struct {
	Pokemon
	Types     []TypeInfo
	Abilities []string
	Moves     []MoveInfo
}

// PokemonSummary is the id/name pair used by listing queries.
type PokemonSummary struct {
	ID         int
	Name       string
	Generation int
}
