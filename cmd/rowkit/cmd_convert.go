package main

import (
	"github.com/spf13/cobra"

	"rowkit/internal/pipeline"
)

var (
	convertFormat string
	convertTo     string
	convertOutput string
	convertTable  string
)

// convertCmd is the pipeline without the sort stage.
var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert records between formats without sorting",
	Long: `Parses the inputs, merges them in order, and writes them out in the
requested format. Row order is preserved.

Examples:
  rowkit convert people.csv --to json
  rowkit convert report.xlsx --to sqlite --output report.db --table people`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "force input format (json|yaml|csv|xlsx)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "output format (json|yaml|csv|sqlite)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "-", `output path ("-" = stdout)`)
	convertCmd.Flags().StringVar(&convertTable, "table", "", "table name for sqlite output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts := pipeline.Options{
		Inputs:      args,
		Format:      firstNonEmpty(convertFormat, cfg.DefaultFormat),
		Output:      convertOutput,
		To:          firstNonEmpty(convertTo, cfg.DefaultOutput),
		SQLiteTable: convertTable,
	}
	return pipeline.Run(cmd.Context(), opts, logger)
}
