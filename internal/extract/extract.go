package extract

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DetailFileName is the per-entity document the extractor looks for inside
// each entity directory.
const DetailFileName = "details.json"

// ParseError marks a source document that could not be parsed or was missing
// required fields. The affected entity is skipped; the run continues.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// statKeys are the six required entries of base_stats, as written by the
// scraper.
var statKeys = []string{"HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed"}

// Run walks root, parses every detail document it finds, and returns the raw
// records. Malformed documents are collected as ParseErrors in the result;
// immediate child directories containing no detail document anywhere beneath
// them are counted as skipped. Only a missing or unreadable root aborts.
func Run(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", root)
	}

	files, err := findDetailFiles(root)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	result := &Result{}
	covered := make(map[string]struct{})
	for _, path := range files {
		child := childDirOf(root, path)
		if child != "" {
			covered[child] = struct{}{}
		}

		raw, err := ParseFile(path)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Pokemon = append(result.Pokemon, *raw)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, ok := covered[entry.Name()]; !ok {
			result.DirsSkipped++
			result.Errors = append(result.Errors, fmt.Errorf("directory %s: no %s found, skipping", filepath.Join(root, entry.Name()), DetailFileName))
		}
	}

	return result, nil
}

func findDetailFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == DetailFileName {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// childDirOf returns the name of the immediate child directory of root that
// contains path, or "" if path sits directly in root.
func childDirOf(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}

// ParseFile reads and validates one detail document. Any failure is returned
// as a *ParseError.
func ParseFile(path string) (*RawPokemon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	raw, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return raw, nil
}

type detailDoc struct {
	PokedexNumber *int               `json:"pokedex_number"`
	Name          string             `json:"name"`
	BaseStats     map[string]float64 `json:"base_stats"`
	Biology       json.RawMessage    `json:"biology"`
	Evolution     string             `json:"evolution"`
	Types         []string           `json:"types"`
	Abilities     []json.RawMessage  `json:"abilities"`
	Learnset      []learnsetEntry    `json:"learnset"`
}

type learnsetEntry struct {
	Name string `json:"name"`
	TM   bool   `json:"tm"`
}

// Parse decodes one detail document into a RawPokemon, validating every
// required field.
func Parse(data []byte) (*RawPokemon, error) {
	var doc detailDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if doc.PokedexNumber == nil {
		return nil, fmt.Errorf("missing pokedex_number")
	}
	if *doc.PokedexNumber <= 0 {
		return nil, fmt.Errorf("pokedex_number must be positive, got %d", *doc.PokedexNumber)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return nil, fmt.Errorf("missing name")
	}

	stats := make(map[string]int, len(statKeys))
	for _, key := range statKeys {
		value, ok := doc.BaseStats[key]
		if !ok {
			return nil, fmt.Errorf("base_stats missing %q", key)
		}
		stats[key] = int(value)
	}

	raw := &RawPokemon{
		ID:          *doc.PokedexNumber,
		Name:        doc.Name,
		Generation:  GenerationOf(*doc.PokedexNumber),
		HP:          stats["HP"],
		Attack:      stats["Attack"],
		Defense:     stats["Defense"],
		SpAttack:    stats["Sp. Atk"],
		SpDefense:   stats["Sp. Def"],
		Speed:       stats["Speed"],
		Description: parseBiology(doc.Biology),
		Evolution:   doc.Evolution,
		Types:       parseTypes(doc.Types),
		Moves:       parseLearnset(doc.Learnset),
	}

	abilities, err := parseAbilities(doc.Abilities)
	if err != nil {
		return nil, err
	}
	raw.Abilities = abilities

	return raw, nil
}

// parseBiology joins the biology paragraphs into one description. The
// scraper usually writes a list of paragraphs but older captures hold a
// single string.
func parseBiology(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var paragraphs []string
	if err := json.Unmarshal(raw, &paragraphs); err == nil {
		return strings.Join(paragraphs, " ")
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return ""
}

// parseTypes drops empty entries and the scraper's "Unknown" placeholder.
func parseTypes(types []string) []string {
	valid := make([]string, 0, len(types))
	for _, t := range types {
		if t == "" || t == "Unknown" {
			continue
		}
		valid = append(valid, t)
	}
	return valid
}

// parseAbilities accepts both shapes the scraper produced over time: bare
// strings and {"name": ...} objects.
func parseAbilities(raw []json.RawMessage) ([]string, error) {
	names := make([]string, 0, len(raw))
	for i, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			if name != "" {
				names = append(names, name)
			}
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, fmt.Errorf("abilities[%d]: expected string or object with name", i)
		}
		if obj.Name != "" {
			names = append(names, obj.Name)
		}
	}
	return names, nil
}

func parseLearnset(entries []learnsetEntry) []RawMove {
	moves := make([]RawMove, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		moves = append(moves, RawMove{Name: entry.Name, IsTM: entry.TM})
	}
	return moves
}

// GenerationOf maps a national dex number to its generation, or -1 when the
// number falls outside every known range.
func GenerationOf(dex int) int {
	ranges := []struct {
		lo, hi, gen int
	}{
		{1, 151, 1},
		{152, 251, 2},
		{252, 386, 3},
		{387, 493, 4},
		{494, 649, 5},
		{650, 721, 6},
		{722, 809, 7},
		{810, 905, 8},
		{906, 1025, 9},
	}
	for _, r := range ranges {
		if dex >= r.lo && dex <= r.hi {
			return r.gen
		}
	}
	return -1
}
