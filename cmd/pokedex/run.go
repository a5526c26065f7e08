package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pokedex/internal/config"
	"pokedex/internal/pipeline"
	"pokedex/internal/store"
)

var (
	runInput   string
	runOutput  string
	runSchema  string
	runOutCSV  bool
	runCSVDir  string
	runNoInit  bool
	runVerify  bool
	runVerbose bool
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the ETL pipeline: extract, transform, load",
		RunE:  runPipeline,
	}
	cmd.Flags().StringVar(&runInput, "input", "", "Input directory containing one subdirectory per pokemon")
	cmd.Flags().StringVar(&runOutput, "output", "", "Output database path or DSN")
	cmd.Flags().StringVar(&runSchema, "schema", config.DefaultSchemaPath, "Path to schema SQL file")
	cmd.Flags().BoolVar(&runOutCSV, "out_csv", false, "Export transformed tables to CSV files")
	cmd.Flags().StringVar(&runCSVDir, "csv_dir", config.DefaultCSVDir, "Directory for CSV output files")
	cmd.Flags().BoolVar(&runNoInit, "no-reinit", false, "Skip destructive schema reinitialization (append to existing data)")
	cmd.Flags().BoolVar(&runVerify, "verify", false, "Run post-load row count verification")
	cmd.Flags().BoolVar(&runVerbose, "verbose", false, "Print per-entity warnings")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ddl, err := loadSchemaDDL(cmd)
	if err != nil {
		return err
	}

	if err := ensureOutputDir(runOutput); err != nil {
		return err
	}

	db, err := openStore(ctx, runOutput)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close(ctx)

	opts := pipeline.Options{
		InputDir:  runInput,
		SchemaDDL: ddl,
		Reinit:    !runNoInit,
		ExportCSV: runOutCSV,
		CSVDir:    runCSVDir,
		Verify:    runVerify,
	}

	result, err := pipeline.Run(ctx, opts, db)
	printWarnings(result)
	if err != nil {
		printFailure(err)
		return err
	}

	printSummary(result)
	return nil
}

// loadSchemaDDL reads the schema file. An explicitly flagged file must
// exist; the conventional default location may be absent, in which case the
// store backend's built-in DDL applies.
func loadSchemaDDL(cmd *cobra.Command) (string, error) {
	if runNoInit {
		return "", nil
	}
	data, err := os.ReadFile(runSchema)
	if err != nil {
		if os.IsNotExist(err) && !cmd.Flags().Changed("schema") {
			return "", nil
		}
		return "", fmt.Errorf("reading schema file: %w", err)
	}
	return string(data), nil
}

// ensureOutputDir creates the parent directory of a file-backed output path.
func ensureOutputDir(output string) error {
	if strings.Contains(output, "://") {
		return nil
	}
	dir := filepath.Dir(output)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

func printWarnings(result *pipeline.Result) {
	if result.Extract == nil || len(result.Extract.Errors) == 0 {
		return
	}
	fmt.Fprintf(os.Stdout, "Warnings (%d entities skipped):\n", len(result.Extract.Errors))
	if runVerbose {
		for _, item := range result.Extract.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
	} else {
		fmt.Fprintln(os.Stdout, "  (re-run with --verbose for details)")
	}
}

func printFailure(err error) {
	var validationErr *pipeline.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(os.Stdout, "Validation failed (%d violations):\n", len(validationErr.Report.Violations))
		for _, violation := range validationErr.Report.Violations {
			fmt.Fprintf(os.Stdout, "  - %s\n", violation)
		}
		return
	}

	var constraintErr *store.ConstraintViolation
	if errors.As(err, &constraintErr) {
		fmt.Fprintf(os.Stdout, "Load failed: table %s rejected a row; the table's transaction was rolled back.\n", constraintErr.Table)
	}
}

func printSummary(result *pipeline.Result) {
	fmt.Fprintln(os.Stdout, "Pipeline complete.")
	fmt.Fprintf(os.Stdout, "  Pokemon extracted:   %d\n", len(result.Extract.Pokemon))
	if result.Extract.DirsSkipped > 0 {
		fmt.Fprintf(os.Stdout, "  Directories skipped: %d\n", result.Extract.DirsSkipped)
	}

	if result.CSVPaths != nil {
		fmt.Fprintf(os.Stdout, "  CSV files written:   %d (%s)\n", len(result.CSVPaths), runCSVDir)
	}

	fmt.Fprintln(os.Stdout, "\nRows loaded:")
	for _, table := range store.TableNames {
		fmt.Fprintf(os.Stdout, "  %-16s %d\n", table, result.LoadCounts[table])
	}

	if result.VerifyCounts != nil {
		fmt.Fprintln(os.Stdout, "\nVerified row counts:")
		for _, table := range store.TableNames {
			fmt.Fprintf(os.Stdout, "  %-16s %d\n", table, result.VerifyCounts[table])
		}
	}

	fmt.Fprintln(os.Stdout, "\nStage timings:")
	for _, stage := range result.Stages {
		fmt.Fprintf(os.Stdout, "  %-10s %s\n", stage.Name, stage.Duration.Round(time.Microsecond))
	}
	fmt.Fprintf(os.Stdout, "  %-10s %s\n", "total", result.Total.Round(time.Microsecond))
}
