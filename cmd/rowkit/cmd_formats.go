package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rowkit/internal/parser"
	"rowkit/internal/writer"
)

// formatsCmd lists what the parser and writer factories know about.
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported input and output formats",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "input:  %s\n", strings.Join(parser.Formats(), ", "))
		fmt.Fprintf(cmd.OutOrStdout(), "output: %s, sqlite\n", strings.Join(writer.Formats(), ", "))
	},
}
