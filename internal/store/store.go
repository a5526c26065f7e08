package store

import "context"

// Store is a relational backend able to hold the normalized table set.
// Implementations must enforce the declared foreign keys themselves: a row
// inserted before its referenced row fails with *ConstraintViolation rather
// than being silently dropped.
type Store interface {
	Close(ctx context.Context) error

	// InitializeSchema drops every table in TableNames (reverse dependency
	// order) and recreates them from ddl. Destructive; callers must request
	// it explicitly.
	InitializeSchema(ctx context.Context, ddl string) error

	// Load inserts all tables in dependency order, one transaction per
	// table. All rows of a table commit together or none do.
	Load(ctx context.Context, tables *Tables) (Counts, error)

	// Verify returns the current row count of every table.
	Verify(ctx context.Context) (Counts, error)

	// GetPokemonByID reassembles one pokemon with its resolved type,
	// ability, and move names. Returns ErrNotFound for an unknown id.
	GetPokemonByID(ctx context.Context, id int) (*PokemonDetail, error)

	ListGenerations(ctx context.Context) ([]int, error)
	ListPokemonByGeneration(ctx context.Context, generation int) ([]PokemonSummary, error)
}
