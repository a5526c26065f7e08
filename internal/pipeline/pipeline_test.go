package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pokedex/internal/store"
)

type mockStore struct {
	initCalled  bool
	initDDL     string
	loadCalled  bool
	loadTables  *store.Tables
	loadErr     error
	verifyCalls int
}

func (m *mockStore) Close(ctx context.Context) error { return nil }

func (m *mockStore) InitializeSchema(ctx context.Context, ddl string) error {
	m.initCalled = true
	m.initDDL = ddl
	return nil
}

func (m *mockStore) Load(ctx context.Context, tables *store.Tables) (store.Counts, error) {
	m.loadCalled = true
	m.loadTables = tables
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return store.Counts{"pokemon": len(tables.Pokemon)}, nil
}

func (m *mockStore) Verify(ctx context.Context) (store.Counts, error) {
	m.verifyCalls++
	return store.Counts{"pokemon": 2}, nil
}

func (m *mockStore) GetPokemonByID(ctx context.Context, id int) (*store.PokemonDetail, error) {
	return nil, store.ErrNotFound
}

func (m *mockStore) ListGenerations(ctx context.Context) ([]int, error) { return nil, nil }

func (m *mockStore) ListPokemonByGeneration(ctx context.Context, generation int) ([]store.PokemonSummary, error) {
	return nil, nil
}

func writeEntity(t *testing.T, root, dir, contents string) {
	t.Helper()
	path := filepath.Join(root, dir)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	if err := os.WriteFile(filepath.Join(path, "details.json"), []byte(contents), 0o600); err != nil {
		t.Fatalf("writing details: %v", err)
	}
}

func testInputDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeEntity(t, root, "alpha", `{
		"pokedex_number": 1, "name": "Alpha",
		"base_stats": {"HP": 45, "Attack": 49, "Defense": 49, "Sp. Atk": 65, "Sp. Def": 65, "Speed": 45},
		"types": ["Fire"], "abilities": ["Blaze"],
		"learnset": [{"name": "Scratch", "tm": false}]
	}`)
	writeEntity(t, root, "beta", `{
		"pokedex_number": 2, "name": "Beta",
		"base_stats": {"HP": 60, "Attack": 62, "Defense": 63, "Sp. Atk": 80, "Sp. Def": 80, "Speed": 60},
		"types": ["Fire", "Water"], "abilities": ["Blaze"],
		"learnset": [{"name": "Scratch", "tm": false}, {"name": "Surf", "tm": true}]
	}`)
	return root
}

func TestRun_FullPipeline(t *testing.T) {
	db := &mockStore{}
	opts := Options{
		InputDir:  testInputDir(t),
		SchemaDDL: "CREATE TABLE pokemon (pokemon_id INTEGER);",
		Reinit:    true,
		Verify:    true,
	}

	result, err := Run(context.Background(), opts, db)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !db.initCalled {
		t.Fatalf("expected schema initialization")
	}
	if db.initDDL != opts.SchemaDDL {
		t.Fatalf("schema DDL not passed through")
	}
	if !db.loadCalled {
		t.Fatalf("expected load")
	}
	if db.verifyCalls != 1 {
		t.Fatalf("expected one verify call, got %d", db.verifyCalls)
	}

	if len(result.Extract.Pokemon) != 2 {
		t.Fatalf("expected 2 extracted pokemon, got %d", len(result.Extract.Pokemon))
	}
	if len(result.Tables.Types) != 2 || len(result.Tables.Abilities) != 1 {
		t.Fatalf("unexpected normalized tables: %+v", result.Tables)
	}
	if result.LoadCounts["pokemon"] != 2 {
		t.Fatalf("unexpected load counts: %+v", result.LoadCounts)
	}
	if result.VerifyCounts == nil {
		t.Fatalf("expected verify counts")
	}

	wantStages := []string{"extract", "transform", "validate", "load", "verify"}
	if len(result.Stages) != len(wantStages) {
		t.Fatalf("unexpected stages: %+v", result.Stages)
	}
	for i, stage := range result.Stages {
		if stage.Name != wantStages[i] {
			t.Fatalf("stage %d is %q, want %q", i, stage.Name, wantStages[i])
		}
	}
}

func TestRun_NoReinitSkipsSchemaInit(t *testing.T) {
	db := &mockStore{}
	opts := Options{InputDir: testInputDir(t), Reinit: false}

	if _, err := Run(context.Background(), opts, db); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if db.initCalled {
		t.Fatalf("schema must not be reinitialized without an explicit request")
	}
}

func TestRun_ZeroEntitiesFails(t *testing.T) {
	db := &mockStore{}
	opts := Options{InputDir: t.TempDir(), Reinit: true}

	_, err := Run(context.Background(), opts, db)
	if !errors.Is(err, ErrNoPokemon) {
		t.Fatalf("expected ErrNoPokemon, got %v", err)
	}
	if db.loadCalled {
		t.Fatalf("load must not run on empty extraction")
	}
}

func TestRun_ValidationFailureAbortsBeforeLoad(t *testing.T) {
	root := t.TempDir()
	writeEntity(t, root, "broken", `{
		"pokedex_number": 1, "name": "Broken",
		"base_stats": {"HP": 9999, "Attack": 49, "Defense": 49, "Sp. Atk": 65, "Sp. Def": 65, "Speed": 45}
	}`)

	db := &mockStore{}
	_, err := Run(context.Background(), Options{InputDir: root, Reinit: true}, db)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Report.Violations) == 0 {
		t.Fatalf("expected violations in the report")
	}
	if db.initCalled || db.loadCalled {
		t.Fatalf("no data may reach the store after failed validation")
	}
}

func TestRun_ParseErrorsAreWarnings(t *testing.T) {
	root := testInputDir(t)
	writeEntity(t, root, "mangled", `{not json`)

	db := &mockStore{}
	result, err := Run(context.Background(), Options{InputDir: root, Reinit: true}, db)
	if err != nil {
		t.Fatalf("parse errors must not abort the run, got %v", err)
	}
	if len(result.Extract.Errors) != 1 {
		t.Fatalf("expected 1 collected warning, got %v", result.Extract.Errors)
	}
	if len(result.Extract.Pokemon) != 2 {
		t.Fatalf("expected remaining entities to load, got %d", len(result.Extract.Pokemon))
	}
}

func TestRun_ExportCSV(t *testing.T) {
	csvDir := filepath.Join(t.TempDir(), "output")
	db := &mockStore{}
	opts := Options{InputDir: testInputDir(t), Reinit: true, ExportCSV: true, CSVDir: csvDir}

	result, err := Run(context.Background(), opts, db)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.CSVPaths) == 0 {
		t.Fatalf("expected exported files")
	}
	if _, err := os.Stat(filepath.Join(csvDir, "pokemon.csv")); err != nil {
		t.Fatalf("expected pokemon.csv: %v", err)
	}
}

func TestRun_LoadErrorPropagates(t *testing.T) {
	db := &mockStore{
		loadErr: &store.ConstraintViolation{Table: "pokemon_move", Err: errors.New("FOREIGN KEY constraint failed")},
	}

	_, err := Run(context.Background(), Options{InputDir: testInputDir(t), Reinit: true}, db)

	var violation *store.ConstraintViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected ConstraintViolation, got %v", err)
	}
	if violation.Table != "pokemon_move" {
		t.Fatalf("unexpected table: %s", violation.Table)
	}
}
