// Package pipeline ties the stages together: parse the inputs, sort with the
// selected strategy, write the result. It is the only package that knows the
// order of operations; parsers, strategies, and writers stay independent.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rowkit/internal/parser"
	"rowkit/internal/record"
	"rowkit/internal/sorter"
	"rowkit/internal/writer"
)

// parseConcurrency caps the parse fan-out so a long input list does not open
// every file at once.
const parseConcurrency = 4

// Options describes one pipeline run.
type Options struct {
	// Inputs are the files to parse, merged in the order given.
	Inputs []string
	// Format forces an input format tag for every input. Empty means
	// detect per file by extension.
	Format string
	// SortSpec is a spec like "name,age:desc". Empty means no sort unless
	// ScriptPath is set.
	SortSpec string
	// ScriptPath points at a Go snippet defining the ordering; it takes
	// precedence over SortSpec.
	ScriptPath string
	// Output is the destination path; "-" or "" means stdout. Required
	// when To is "sqlite".
	Output string
	// To is the output format tag; empty means "json".
	To string
	// SQLiteTable names the table for sqlite output ("" = records).
	SQLiteTable string
}

// Run executes one parse-sort-write pass.
func Run(ctx context.Context, opts Options, logger *zap.Logger) error {
	if len(opts.Inputs) == 0 {
		return fmt.Errorf("no input files")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("run_id", uuid.NewString()))
	start := time.Now()

	table, err := parseInputs(ctx, opts, log)
	if err != nil {
		return err
	}

	strategy, err := buildStrategy(opts)
	if err != nil {
		return err
	}
	if strategy != nil {
		s := sorter.New(strategy)
		s.Sort(table)
		log.Debug("sorted", zap.String("strategy", strategy.Name()), zap.Int("rows", table.Len()))
	}

	if err := writeOutput(table, opts); err != nil {
		return err
	}

	log.Info("run complete",
		zap.Int("inputs", len(opts.Inputs)),
		zap.Int("rows", table.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// parseInputs parses every input concurrently and merges the resulting
// tables in input order, so output row order is deterministic regardless of
// which file finishes first.
func parseInputs(ctx context.Context, opts Options, log *zap.Logger) (*record.Table, error) {
	tables := make([]*record.Table, len(opts.Inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parseConcurrency)
	for i, path := range opts.Inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := parseOne(path, opts.Format)
			if err != nil {
				return err
			}
			log.Debug("parsed input", zap.String("path", path), zap.Int("rows", t.Len()))
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := record.NewTable()
	for _, t := range tables {
		merged.Merge(t)
	}
	return merged, nil
}

func parseOne(path, forced string) (*record.Table, error) {
	format := forced
	if format == "" {
		format = parser.Detect(path)
	}
	if format == "" {
		return nil, fmt.Errorf("cannot detect format of %s (use --format)", path)
	}
	p, err := parser.New(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

func buildStrategy(opts Options) (sorter.Strategy, error) {
	if opts.ScriptPath != "" {
		source, err := os.ReadFile(opts.ScriptPath)
		if err != nil {
			return nil, fmt.Errorf("read strategy script: %w", err)
		}
		return sorter.CompileScript(string(source))
	}
	if opts.SortSpec != "" {
		return sorter.ParseSpec(opts.SortSpec)
	}
	return nil, nil
}

func writeOutput(table *record.Table, opts Options) error {
	to := opts.To
	if to == "" {
		to = "json"
	}

	if to == "sqlite" {
		if opts.Output == "" || opts.Output == "-" {
			return fmt.Errorf("sqlite output requires --output PATH")
		}
		return writer.WriteSQLite(table, opts.Output, opts.SQLiteTable)
	}

	w, err := writer.New(to)
	if err != nil {
		return err
	}

	if opts.Output == "" || opts.Output == "-" {
		return w.Write(table, os.Stdout)
	}
	f, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.Output, err)
	}
	if err := w.Write(table, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
