// Package pipeline sequences the ETL stages: extract, transform, validate,
// optional CSV export, load, optional verification.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pokedex/internal/export"
	"pokedex/internal/extract"
	"pokedex/internal/store"
	"pokedex/internal/transform"
)

// ErrNoPokemon is returned when extraction finds no valid entity at all.
// Individual skipped entities are warnings; an empty result set is fatal.
var ErrNoPokemon = errors.New("no pokemon extracted from input")

// ValidationError aborts the run before any data reaches the store. It
// carries the full violation list so every problem in a batch surfaces
// together.
type ValidationError struct {
	Report *transform.Report
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("transformed data failed validation with %d violations", len(e.Report.Violations))
}

// Options configures one pipeline run. SchemaDDL is the already-loaded DDL
// text; empty means the store backend's built-in schema.
type Options struct {
	InputDir  string
	SchemaDDL string
	Reinit    bool
	ExportCSV bool
	CSVDir    string
	Verify    bool
}

// Stage is the timing record of one completed stage.
type Stage struct {
	Name     string
	Duration time.Duration
}

// Result is the accumulated outcome of a run. Fields for stages that did not
// run stay nil.
type Result struct {
	Extract      *extract.Result
	Tables       *store.Tables
	Report       *transform.Report
	CSVPaths     map[string]string
	LoadCounts   store.Counts
	VerifyCounts store.Counts
	Stages       []Stage
	Total        time.Duration
}

// Run executes the pipeline against db. The partially filled Result is
// returned alongside any error so the caller can still report how far the
// run got.
func Run(ctx context.Context, opts Options, db store.Store) (*Result, error) {
	result := &Result{}
	start := time.Now()
	defer func() { result.Total = time.Since(start) }()

	extracted, err := timed(result, "extract", func() (*extract.Result, error) {
		return extract.Run(opts.InputDir)
	})
	if err != nil {
		return result, fmt.Errorf("extract: %w", err)
	}
	result.Extract = extracted
	if len(extracted.Pokemon) == 0 {
		return result, ErrNoPokemon
	}

	tables, _ := timed(result, "transform", func() (*store.Tables, error) {
		return transform.Run(extracted.Pokemon), nil
	})
	result.Tables = tables

	report, _ := timed(result, "validate", func() (*transform.Report, error) {
		return transform.Validate(tables), nil
	})
	result.Report = report
	if !report.OK() {
		return result, &ValidationError{Report: report}
	}

	if opts.ExportCSV {
		paths, err := timed(result, "export", func() (map[string]string, error) {
			return export.WriteTables(tables, opts.CSVDir)
		})
		if err != nil {
			return result, fmt.Errorf("export: %w", err)
		}
		result.CSVPaths = paths
	}

	counts, err := timed(result, "load", func() (store.Counts, error) {
		if opts.Reinit {
			if err := db.InitializeSchema(ctx, opts.SchemaDDL); err != nil {
				return nil, fmt.Errorf("initializing schema: %w", err)
			}
		}
		return db.Load(ctx, tables)
	})
	result.LoadCounts = counts
	if err != nil {
		return result, fmt.Errorf("load: %w", err)
	}

	if opts.Verify {
		verified, err := timed(result, "verify", func() (store.Counts, error) {
			return db.Verify(ctx)
		})
		if err != nil {
			return result, fmt.Errorf("verify: %w", err)
		}
		result.VerifyCounts = verified
	}

	return result, nil
}

func timed[T any](result *Result, name string, run func() (T, error)) (T, error) {
	start := time.Now()
	value, err := run()
	result.Stages = append(result.Stages, Stage{Name: name, Duration: time.Since(start)})
	return value, err
}
