package mcp

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"pokedex/internal/store"
)

type GetPokemonInput struct {
	ID int `json:"id" jsonschema:"national dex number"`
}

type ListPokemonInput struct {
	Generation int `json:"generation,omitempty" jsonschema:"restrict to one generation; omit or negative for all"`
}

type ListGenerationsInput struct{}

type TableCountsInput struct{}

type TypeOutput struct {
	Name   string `json:"name"`
	Colour string `json:"colour"`
}

type MoveOutput struct {
	Name string `json:"name"`
	IsTM bool   `json:"is_tm"`
}

type PokemonOutput struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Generation  int          `json:"generation"`
	HP          int          `json:"hp"`
	Attack      int          `json:"attack"`
	Defense     int          `json:"defense"`
	SpAttack    int          `json:"sp_attack"`
	SpDefense   int          `json:"sp_defense"`
	Speed       int          `json:"speed"`
	Description string       `json:"description"`
	Evolution   string       `json:"evolution"`
	Types       []TypeOutput `json:"types"`
	Abilities   []string     `json:"abilities"`
	Moves       []MoveOutput `json:"moves"`
}

type PokemonSummaryOutput struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Generation int    `json:"generation"`
}

type ListPokemonOutput struct {
	Pokemon []PokemonSummaryOutput `json:"pokemon"`
}

type ListGenerationsOutput struct {
	Generations []int `json:"generations"`
}

type TableCountsOutput struct {
	Counts map[string]int `json:"counts"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_pokemon",
		Description: "Retrieve one pokemon by dex number with its types, abilities, and moves",
	}, s.handleGetPokemon)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_pokemon",
		Description: "List pokemon, optionally restricted to one generation",
	}, s.handleListPokemon)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_generations",
		Description: "List the generations present in the database",
	}, s.handleListGenerations)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "table_counts",
		Description: "Return the row count of every table",
	}, s.handleTableCounts)
}

func (s *Server) handleGetPokemon(ctx context.Context, req *sdk.CallToolRequest, input GetPokemonInput) (*sdk.CallToolResult, PokemonOutput, error) {
	if input.ID <= 0 {
		return nil, PokemonOutput{}, fmt.Errorf("id must be a positive dex number")
	}
	detail, err := s.db.GetPokemonByID(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, PokemonOutput{}, fmt.Errorf("no pokemon with dex number %d", input.ID)
	}
	if err != nil {
		return nil, PokemonOutput{}, err
	}
	return nil, pokemonOutputFromDetail(detail), nil
}

func (s *Server) handleListPokemon(ctx context.Context, req *sdk.CallToolRequest, input ListPokemonInput) (*sdk.CallToolResult, ListPokemonOutput, error) {
	generation := input.Generation
	if generation == 0 {
		generation = -1
	}
	summaries, err := s.db.ListPokemonByGeneration(ctx, generation)
	if err != nil {
		return nil, ListPokemonOutput{}, err
	}

	output := make([]PokemonSummaryOutput, 0, len(summaries))
	for _, summary := range summaries {
		output = append(output, PokemonSummaryOutput{
			ID:         summary.ID,
			Name:       summary.Name,
			Generation: summary.Generation,
		})
	}
	return nil, ListPokemonOutput{Pokemon: output}, nil
}

func (s *Server) handleListGenerations(ctx context.Context, req *sdk.CallToolRequest, input ListGenerationsInput) (*sdk.CallToolResult, ListGenerationsOutput, error) {
	generations, err := s.db.ListGenerations(ctx)
	if err != nil {
		return nil, ListGenerationsOutput{}, err
	}
	if generations == nil {
		generations = []int{}
	}
	return nil, ListGenerationsOutput{Generations: generations}, nil
}

func (s *Server) handleTableCounts(ctx context.Context, req *sdk.CallToolRequest, input TableCountsInput) (*sdk.CallToolResult, TableCountsOutput, error) {
	counts, err := s.db.Verify(ctx)
	if err != nil {
		return nil, TableCountsOutput{}, err
	}
	return nil, TableCountsOutput{Counts: counts}, nil
}

func pokemonOutputFromDetail(detail *store.PokemonDetail) PokemonOutput {
	output := PokemonOutput{
		ID:          detail.ID,
		Name:        detail.Name,
		Generation:  detail.Generation,
		HP:          detail.HP,
		Attack:      detail.Attack,
		Defense:     detail.Defense,
		SpAttack:    detail.SpAttack,
		SpDefense:   detail.SpDefense,
		Speed:       detail.Speed,
		Description: detail.Description,
		Evolution:   detail.Evolution,
		Abilities:   detail.Abilities,
	}
	if output.Abilities == nil {
		output.Abilities = []string{}
	}
	output.Types = make([]TypeOutput, 0, len(detail.Types))
	for _, t := range detail.Types {
		output.Types = append(output.Types, TypeOutput{Name: t.Name, Colour: t.Colour})
	}
	output.Moves = make([]MoveOutput, 0, len(detail.Moves))
	for _, m := range detail.Moves {
		output.Moves = append(output.Moves, MoveOutput{Name: m.Name, IsTM: m.IsTM})
	}
	return output
}
