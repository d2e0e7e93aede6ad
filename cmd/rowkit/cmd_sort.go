package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rowkit/internal/pipeline"
)

var (
	sortBy       string
	sortLessFile string
	sortFormat   string
	sortTo       string
	sortOutput   string
	sortTable    string
	sortWatch    bool
)

// sortCmd runs the full parse-sort-write pipeline.
var sortCmd = &cobra.Command{
	Use:   "sort [files...]",
	Short: "Sort records from one or more input files",
	Long: `Parses the inputs, merges them in order, sorts with the selected
strategy, and writes the result.

The strategy comes from --by (columns, e.g. "name,age:desc") or --less-file
(a Go snippet defining: func Less(a, b map[string]any) bool). With neither,
rowkit falls back to the sort section of the config file.

Examples:
  rowkit sort people.csv --by age:desc --to yaml
  rowkit sort a.json b.json --by name --output sorted.json
  rowkit sort data.xlsx --less-file bylen.go --to sqlite --output out.db
  rowkit sort feed.json --by ts --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSort,
}

func init() {
	sortCmd.Flags().StringVar(&sortBy, "by", "", `sort spec, e.g. "name,age:desc"`)
	sortCmd.Flags().StringVar(&sortLessFile, "less-file", "", "Go snippet defining a custom Less function")
	sortCmd.Flags().StringVar(&sortFormat, "format", "", "force input format (json|yaml|csv|xlsx)")
	sortCmd.Flags().StringVar(&sortTo, "to", "", "output format (json|yaml|csv|sqlite)")
	sortCmd.Flags().StringVarP(&sortOutput, "output", "o", "-", `output path ("-" = stdout)`)
	sortCmd.Flags().StringVar(&sortTable, "table", "", "table name for sqlite output")
	sortCmd.Flags().BoolVar(&sortWatch, "watch", false, "re-run whenever an input file changes")
}

func runSort(cmd *cobra.Command, args []string) error {
	opts := pipeline.Options{
		Inputs:      args,
		Format:      firstNonEmpty(sortFormat, cfg.DefaultFormat),
		SortSpec:    firstNonEmpty(sortBy, cfg.Sort.Spec),
		ScriptPath:  firstNonEmpty(sortLessFile, cfg.Sort.ScriptPath),
		Output:      sortOutput,
		To:          firstNonEmpty(sortTo, cfg.DefaultOutput),
		SQLiteTable: sortTable,
	}

	if !sortWatch {
		return pipeline.Run(cmd.Context(), opts, logger)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	w, err := pipeline.NewWatcher(opts, debounce, logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
