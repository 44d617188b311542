package main

import (
	"github.com/Veraticus/csvdescribe/internal/describer"
	"github.com/Veraticus/csvdescribe/internal/report"
	"github.com/spf13/cobra"
)

func headersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headers <header>...",
		Short: "Describe header names given on the command line",
		Long: `Describe one or more header names without reading a file.

Nothing is saved: no results file is written and no history is recorded.`,
		Example: `  csvdescribe headers Invoice_ID "Vendor Name" amount
  csvdescribe headers -f json due-date`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := report.ParseFormat(name)
			if err != nil {
				return err
			}

			writer, err := report.NewWriter(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return writer.Write(cmd.Context(), report.Report{Results: describer.Analyze(args)})
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, text, json, yaml)")
	return cmd
}
