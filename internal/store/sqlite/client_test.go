package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"pokedex/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	client, err := New(ctx, filepath.Join(t.TempDir(), "pokedex.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { client.Close(ctx) })

	if err := client.InitializeSchema(ctx, ""); err != nil {
		t.Fatalf("initializing schema: %v", err)
	}
	return client
}

func alphaBetaTables() *store.Tables {
	return &store.Tables{
		Pokemon: []store.Pokemon{
			{ID: 1, Name: "Alpha", Generation: 1, HP: 45, Attack: 49, Defense: 49, SpAttack: 65, SpDefense: 65, Speed: 45, Description: "First.", Evolution: "Evolves into Beta."},
			{ID: 2, Name: "Beta", Generation: 1, HP: 60, Attack: 62, Defense: 63, SpAttack: 80, SpDefense: 80, Speed: 60, Description: "Second.", Evolution: "Final form."},
		},
		Types: []store.Type{
			{ID: 1, Name: "Fire", Colour: "#F08030"},
			{ID: 2, Name: "Water", Colour: "#6890F0"},
		},
		Abilities: []store.Ability{{ID: 1, Name: "Blaze"}},
		Moves: []store.Move{
			{ID: 1, Name: "Scratch", IsTM: false},
			{ID: 2, Name: "Surf", IsTM: true},
		},
		PokemonTypes: []store.PokemonType{
			{ID: 1, PokemonID: 1, TypeID: 1},
			{ID: 2, PokemonID: 2, TypeID: 1},
			{ID: 3, PokemonID: 2, TypeID: 2},
		},
		PokemonAbilities: []store.PokemonAbility{
			{ID: 1, PokemonID: 1, AbilityID: 1},
			{ID: 2, PokemonID: 2, AbilityID: 1},
		},
		PokemonMoves: []store.PokemonMove{
			{ID: 1, PokemonID: 1, MoveID: 1},
			{ID: 2, PokemonID: 2, MoveID: 1},
			{ID: 3, PokemonID: 2, MoveID: 2},
		},
	}
}

func TestLoadAndVerify(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	counts, err := client.Load(ctx, alphaBetaTables())
	if err != nil {
		t.Fatalf("loading tables: %v", err)
	}

	want := store.Counts{
		"pokemon": 2, "type": 2, "ability": 1, "move": 2,
		"pokemon_type": 3, "pokemon_ability": 2, "pokemon_move": 3,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("unexpected load counts: %+v", counts)
	}

	verified, err := client.Verify(ctx)
	if err != nil {
		t.Fatalf("verifying: %v", err)
	}
	if !reflect.DeepEqual(verified, want) {
		t.Fatalf("unexpected verify counts: %+v", verified)
	}
}

func TestGetPokemonByID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Load(ctx, alphaBetaTables()); err != nil {
		t.Fatalf("loading tables: %v", err)
	}

	detail, err := client.GetPokemonByID(ctx, 2)
	if err != nil {
		t.Fatalf("querying beta: %v", err)
	}
	if detail.Name != "Beta" || detail.Generation != 1 || detail.SpAttack != 80 {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	typeNames := make([]string, 0, len(detail.Types))
	for _, info := range detail.Types {
		typeNames = append(typeNames, info.Name)
	}
	sort.Strings(typeNames)
	if !reflect.DeepEqual(typeNames, []string{"Fire", "Water"}) {
		t.Fatalf("unexpected types: %#v", detail.Types)
	}

	if !reflect.DeepEqual(detail.Abilities, []string{"Blaze"}) {
		t.Fatalf("unexpected abilities: %#v", detail.Abilities)
	}

	moveNames := make(map[string]bool, len(detail.Moves))
	for _, info := range detail.Moves {
		moveNames[info.Name] = info.IsTM
	}
	if len(moveNames) != 2 || moveNames["Scratch"] || !moveNames["Surf"] {
		t.Fatalf("unexpected moves: %#v", detail.Moves)
	}
}

func TestGetPokemonByID_NotFound(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Load(ctx, alphaBetaTables()); err != nil {
		t.Fatalf("loading tables: %v", err)
	}

	_, err := client.GetPokemonByID(ctx, 999)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_ConstraintViolationRollsBack(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	tables := alphaBetaTables()
	tables.PokemonMoves = append(tables.PokemonMoves, store.PokemonMove{ID: 4, PokemonID: 2, MoveID: 42})

	_, err := client.Load(ctx, tables)

	var violation *store.ConstraintViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected ConstraintViolation, got %v", err)
	}
	if violation.Table != "pokemon_move" {
		t.Fatalf("expected violation in pokemon_move, got %s", violation.Table)
	}

	// The whole failed table rolled back; earlier tables stayed loaded.
	counts, err := client.Verify(ctx)
	if err != nil {
		t.Fatalf("verifying after failure: %v", err)
	}
	if counts["pokemon_move"] != 0 {
		t.Fatalf("expected no partial pokemon_move rows, got %d", counts["pokemon_move"])
	}
	if counts["pokemon"] != 2 {
		t.Fatalf("expected pokemon table intact, got %d", counts["pokemon"])
	}
}

func TestLoad_DuplicateAssociationRejected(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	tables := alphaBetaTables()
	tables.PokemonTypes = append(tables.PokemonTypes, store.PokemonType{ID: 4, PokemonID: 1, TypeID: 1})

	_, err := client.Load(ctx, tables)
	var violation *store.ConstraintViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected ConstraintViolation for duplicate pair, got %v", err)
	}
	if violation.Table != "pokemon_type" {
		t.Fatalf("expected violation in pokemon_type, got %s", violation.Table)
	}
}

func TestInitializeSchema_ReinitVersusAppend(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Load(ctx, alphaBetaTables()); err != nil {
		t.Fatalf("first load: %v", err)
	}

	t.Run("append without reinit", func(t *testing.T) {
		extra := &store.Tables{
			Pokemon: []store.Pokemon{
				{ID: 3, Name: "Gamma", Generation: 1, HP: 50, Attack: 50, Defense: 50, SpAttack: 50, SpDefense: 50, Speed: 50, Description: "Third.", Evolution: "None."},
			},
			Types:        []store.Type{{ID: 3, Name: "Grass", Colour: "#78C850"}},
			PokemonTypes: []store.PokemonType{{ID: 4, PokemonID: 3, TypeID: 3}},
		}
		if _, err := client.Load(ctx, extra); err != nil {
			t.Fatalf("append load: %v", err)
		}
		counts, err := client.Verify(ctx)
		if err != nil {
			t.Fatalf("verifying: %v", err)
		}
		if counts["pokemon"] != 3 {
			t.Fatalf("append must keep existing rows, got %d pokemon", counts["pokemon"])
		}
	})

	t.Run("reinit wipes existing rows", func(t *testing.T) {
		if err := client.InitializeSchema(ctx, ""); err != nil {
			t.Fatalf("reinitializing: %v", err)
		}
		if _, err := client.Load(ctx, alphaBetaTables()); err != nil {
			t.Fatalf("reload: %v", err)
		}
		counts, err := client.Verify(ctx)
		if err != nil {
			t.Fatalf("verifying: %v", err)
		}
		if counts["pokemon"] != 2 {
			t.Fatalf("reinit must leave only fresh rows, got %d pokemon", counts["pokemon"])
		}
	})
}

func TestListQueries(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	tables := alphaBetaTables()
	tables.Pokemon = append(tables.Pokemon, store.Pokemon{
		ID: 152, Name: "Chikorita", Generation: 2, HP: 45, Attack: 49, Defense: 65, SpAttack: 49, SpDefense: 65, Speed: 45, Description: "Leaf.", Evolution: "Evolves.",
	})
	if _, err := client.Load(ctx, tables); err != nil {
		t.Fatalf("loading tables: %v", err)
	}

	generations, err := client.ListGenerations(ctx)
	if err != nil {
		t.Fatalf("listing generations: %v", err)
	}
	if !reflect.DeepEqual(generations, []int{1, 2}) {
		t.Fatalf("unexpected generations: %#v", generations)
	}

	gen1, err := client.ListPokemonByGeneration(ctx, 1)
	if err != nil {
		t.Fatalf("listing gen 1: %v", err)
	}
	if len(gen1) != 2 || gen1[0].ID != 1 || gen1[1].ID != 2 {
		t.Fatalf("unexpected gen 1 listing: %#v", gen1)
	}

	all, err := client.ListPokemonByGeneration(ctx, -1)
	if err != nil {
		t.Fatalf("listing all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 pokemon in full listing, got %d", len(all))
	}
}

func TestParseDSN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pokedex.db", "pokedex.db"},
		{"/data/pokedex.db", "/data/pokedex.db"},
		{"sqlite://:memory:", ":memory:"},
		{"sqlite:///data/pokedex.db", "/data/pokedex.db"},
		{"sqlite://pokedex.db", "./pokedex.db"},
	}
	for _, tc := range cases {
		got, err := parseDSN(tc.in)
		if err != nil {
			t.Fatalf("parseDSN(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parseDSN(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := parseDSN(""); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}
