package transform

import (
	"sort"
	"strings"

	"pokedex/internal/extract"
	"pokedex/internal/store"
)

// Session owns the name-to-id maps and counters of one transformation run.
// State is held here rather than in package globals so repeated runs stay
// independent and testable.
type Session struct {
	tables store.Tables

	typeIDs    map[string]int
	abilityIDs map[string]int
	moveIDs    map[string]int

	nextTypeID    int
	nextAbilityID int
	nextMoveID    int

	nextPokemonTypeID    int
	nextPokemonAbilityID int
	nextPokemonMoveID    int
}

// NewSession returns a session with empty lookup maps and counters starting
// at 1.
func NewSession() *Session {
	return &Session{
		typeIDs:              make(map[string]int),
		abilityIDs:           make(map[string]int),
		moveIDs:              make(map[string]int),
		nextTypeID:           1,
		nextAbilityID:        1,
		nextMoveID:           1,
		nextPokemonTypeID:    1,
		nextPokemonAbilityID: 1,
		nextPokemonMoveID:    1,
	}
}

// Run transforms the extracted records into the normalized table set.
// Records are processed in ascending dex order, so the same input always
// yields the same surrogate id assignment.
func Run(pokemon []extract.RawPokemon) *store.Tables {
	session := NewSession()
	sorted := make([]extract.RawPokemon, len(pokemon))
	copy(sorted, pokemon)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, raw := range sorted {
		session.Add(raw)
	}
	return session.Tables()
}

// Add folds one raw record into the session's tables. Lookup names are
// deduplicated across the whole session; junction rows are deduplicated
// within the record.
func (s *Session) Add(raw extract.RawPokemon) {
	s.tables.Pokemon = append(s.tables.Pokemon, store.Pokemon{
		ID:          raw.ID,
		Name:        raw.Name,
		Generation:  raw.Generation,
		HP:          raw.HP,
		Attack:      raw.Attack,
		Defense:     raw.Defense,
		SpAttack:    raw.SpAttack,
		SpDefense:   raw.SpDefense,
		Speed:       raw.Speed,
		Description: raw.Description,
		Evolution:   raw.Evolution,
	})

	seenTypes := make(map[int]struct{})
	for _, name := range raw.Types {
		typeID := s.typeID(name)
		if _, ok := seenTypes[typeID]; ok {
			continue
		}
		seenTypes[typeID] = struct{}{}
		s.tables.PokemonTypes = append(s.tables.PokemonTypes, store.PokemonType{
			ID:        s.nextPokemonTypeID,
			PokemonID: raw.ID,
			TypeID:    typeID,
		})
		s.nextPokemonTypeID++
	}

	seenAbilities := make(map[int]struct{})
	for _, name := range raw.Abilities {
		abilityID := s.abilityID(name)
		if _, ok := seenAbilities[abilityID]; ok {
			continue
		}
		seenAbilities[abilityID] = struct{}{}
		s.tables.PokemonAbilities = append(s.tables.PokemonAbilities, store.PokemonAbility{
			ID:        s.nextPokemonAbilityID,
			PokemonID: raw.ID,
			AbilityID: abilityID,
		})
		s.nextPokemonAbilityID++
	}

	seenMoves := make(map[int]struct{})
	for _, move := range raw.Moves {
		moveID := s.moveID(move.Name, move.IsTM)
		if _, ok := seenMoves[moveID]; ok {
			continue
		}
		seenMoves[moveID] = struct{}{}
		s.tables.PokemonMoves = append(s.tables.PokemonMoves, store.PokemonMove{
			ID:        s.nextPokemonMoveID,
			PokemonID: raw.ID,
			MoveID:    moveID,
		})
		s.nextPokemonMoveID++
	}
}

// Tables returns the normalized table set built so far. The caller takes
// ownership; the session is not used again after handoff.
func (s *Session) Tables() *store.Tables {
	return &s.tables
}

// normalizeName is the dedup key for lookup names: case folded, surrounding
// whitespace stripped. The first-seen spelling is what gets stored.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *Session) typeID(name string) int {
	key := normalizeName(name)
	if id, ok := s.typeIDs[key]; ok {
		return id
	}
	id := s.nextTypeID
	s.nextTypeID++
	s.typeIDs[key] = id
	s.tables.Types = append(s.tables.Types, store.Type{
		ID:     id,
		Name:   name,
		Colour: TypeColour(name),
	})
	return id
}

func (s *Session) abilityID(name string) int {
	key := normalizeName(name)
	if id, ok := s.abilityIDs[key]; ok {
		return id
	}
	id := s.nextAbilityID
	s.nextAbilityID++
	s.abilityIDs[key] = id
	s.tables.Abilities = append(s.tables.Abilities, store.Ability{ID: id, Name: name})
	return id
}

// moveID resolves or creates the move row for name. When the same move is
// seen both with and without the TM flag, the first occurrence wins: later
// sightings never change the stored flag.
func (s *Session) moveID(name string, isTM bool) int {
	key := normalizeName(name)
	if id, ok := s.moveIDs[key]; ok {
		return id
	}
	id := s.nextMoveID
	s.nextMoveID++
	s.moveIDs[key] = id
	s.tables.Moves = append(s.tables.Moves, store.Move{ID: id, Name: name, IsTM: isTM})
	return id
}

// typeColours maps each known type to its display colour.
var typeColours = map[string]string{
	"Normal":   "#A8A878",
	"Fire":     "#F08030",
	"Water":    "#6890F0",
	"Electric": "#F8D030",
	"Grass":    "#78C850",
	"Ice":      "#98D8D8",
	"Fighting": "#C03028",
	"Poison":   "#A040A0",
	"Ground":   "#E0C068",
	"Flying":   "#A890F0",
	"Psychic":  "#F85888",
	"Bug":      "#A8B820",
	"Rock":     "#B8A038",
	"Ghost":    "#705898",
	"Dragon":   "#7038F8",
	"Dark":     "#705848",
	"Steel":    "#B8B8D0",
	"Fairy":    "#EE99AC",
}

// TypeColour returns the display colour for a type name, falling back to a
// neutral grey for unknown types.
func TypeColour(name string) string {
	if colour, ok := typeColours[name]; ok {
		return colour
	}
	return "#777777"
}
