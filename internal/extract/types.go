package extract

// RawMove is one learnset entry: a move name plus whether it is acquired via
// a technical machine.
type RawMove struct {
	Name string
	IsTM bool
}

// RawPokemon is the typed intermediate record parsed from one details.json.
// All required fields are validated at this boundary so nothing downstream
// has to deal with loosely shaped source documents.
type RawPokemon struct {
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
	Types       []string
	Abilities   []string
	Moves       []RawMove
}

// Result accumulates the outcome of an extraction run. ParseErrors for
// individual documents land in Errors; the run itself keeps going.
type Result struct {
	Pokemon     []RawPokemon
	DirsSkipped int
	Errors      []error
}
