package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/csvdescribe/internal/cli"
	"github.com/Veraticus/csvdescribe/internal/common"
	"github.com/Veraticus/csvdescribe/internal/config"
	"github.com/Veraticus/csvdescribe/internal/report"
	"github.com/Veraticus/csvdescribe/internal/sheets"
	"github.com/Veraticus/csvdescribe/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var describeFlagKeys = map[string]string{
	"output":     config.KeyOutputFile,
	"format":     config.KeyOutputFormat,
	"delimiter":  config.KeyDelimiter,
	"skip-empty": config.KeySkipEmpty,
	"workers":    config.KeyWorkers,
}

func describeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "describe <file.csv>...",
		Aliases: []string{"analyze"},
		Short:   "Describe the header row of CSV files",
		Long: `Read the header row of each CSV file and print a description of every column.

Results are also written to a plain-text results file (output.txt by default)
and recorded in the local history database.`,
		Example: `  csvdescribe describe invoices.csv
  csvdescribe describe -f json --no-output data/*.csv
  csvdescribe describe --delimiter ';' -i export.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDescribe,
	}

	cmd.Flags().StringP("output", "o", "output.txt", "results file ('-' disables)")
	cmd.Flags().Bool("no-output", false, "Do not write a results file")
	cmd.Flags().StringP("format", "f", "table", "Console format (table, text, json, yaml)")
	cmd.Flags().String("delimiter", ",", "Field delimiter (',', ';', 'tab', ...)")
	cmd.Flags().Bool("skip-empty", false, "Drop headers that are blank")
	cmd.Flags().Bool("no-history", false, "Do not record this run in history")
	cmd.Flags().BoolP("interactive", "i", false, "Browse the results interactively")
	cmd.Flags().Bool("export-sheets", false, "Export the results to Google Sheets")
	cmd.Flags().Bool("parallel", false, "Describe headers concurrently")
	cmd.Flags().Int("workers", 0, "Goroutines used with --parallel (0 = GOMAXPROCS)")

	return cmd
}

func runDescribe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := bindFlags(cmd, describeFlagKeys); err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(settings.OutputFormat)
	if err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	noOutput, _ := cmd.Flags().GetBool("no-output")
	noHistory, _ := cmd.Flags().GetBool("no-history")
	exportSheets, _ := cmd.Flags().GetBool("export-sheets")
	parallel, _ := cmd.Flags().GetBool("parallel")

	if interactive && len(args) != 1 {
		return common.NewUserError("--interactive works with exactly one file", nil)
	}

	analyzer, err := newFileAnalyzer(settings, parallel)
	if err != nil {
		return err
	}

	// Validate the Sheets configuration before doing any work.
	var sheetsConfig *sheets.Config
	if exportSheets {
		sheetsConfig, err = config.LoadSheetsConfig(viper.GetViper())
		if err != nil {
			return fmt.Errorf("google sheets export: %w", err)
		}
	}

	progress := cli.NewProgress(cmd.ErrOrStderr(), len(args))
	reports := make([]report.Report, 0, len(args))
	for _, path := range args {
		r, err := analyzer.analyzeFile(ctx, path)
		if err != nil {
			progress.Finish()
			return fmt.Errorf("failed to describe %s: %w", path, err)
		}
		reports = append(reports, r)
		progress.Step(path)
	}
	progress.Finish()

	if out := settings.OutputFile; !noOutput && out != "" && out != "-" {
		if err := report.SaveFile(ctx, out, report.FormatText, reports...); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Results saved to %s", out)))
	}

	if settings.HistoryEnabled && !noHistory {
		recordHistory(ctx, settings, reports)
	}

	if sheetsConfig != nil {
		if err := exportToSheets(ctx, *sheetsConfig, reports); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Exported to Google Sheets"))
	}

	if interactive {
		return tui.Run(ctx, reports[0].Source, reports[0].Results, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	writer, err := report.NewWriter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	for _, r := range reports {
		if err := writer.Write(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// recordHistory stores every report. History is best-effort: failures are
// logged and never fail the command.
func recordHistory(ctx context.Context, settings config.Settings, reports []report.Report) {
	store, cleanup, err := openHistory(ctx, settings)
	if err != nil {
		slog.Warn("History disabled for this run", "error", err)
		return
	}
	defer cleanup()

	for _, r := range reports {
		id, err := recordRun(ctx, store, r)
		if err != nil {
			slog.Warn("Failed to record run", "source", r.Source, "error", err)
			continue
		}
		slog.Debug("Recorded run", "id", id, "source", r.Source)
	}
}

// exportToSheets writes each report to its own tab, named after the file,
// when several files were described; otherwise to the configured tab.
func exportToSheets(ctx context.Context, cfg sheets.Config, reports []report.Report) error {
	writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	names := sheetNames(cfg.SheetName, reports)
	for i, r := range reports {
		if err := writer.WriteSheet(ctx, names[i], r); err != nil {
			return fmt.Errorf("failed to export %s: %w", r.Source, err)
		}
	}
	return nil
}

// sheetNames picks one tab per report. Files sharing a base name get a
// numeric suffix ("data.csv", "data.csv-2") so no tab is written twice.
func sheetNames(single string, reports []report.Report) []string {
	if len(reports) == 1 {
		return []string{single}
	}

	names := make([]string, len(reports))
	used := make(map[string]bool, len(reports))
	for i, r := range reports {
		base := filepath.Base(r.Source)
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}
