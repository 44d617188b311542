package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/csvdescribe/internal/cli"
	"github.com/Veraticus/csvdescribe/internal/config"
	"github.com/Veraticus/csvdescribe/internal/report"
	"github.com/Veraticus/csvdescribe/internal/watch"
	"github.com/spf13/cobra"
)

var watchFlagKeys = map[string]string{
	"format":     config.KeyOutputFormat,
	"delimiter":  config.KeyDelimiter,
	"skip-empty": config.KeySkipEmpty,
	"debounce":   config.KeyWatchDebounce,
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file.csv>",
		Short: "Describe a CSV file again whenever it changes",
		Long: `Describe the header row of a CSV file, then keep watching it and print a new
description every time the file is saved. Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, text, json, yaml)")
	cmd.Flags().String("delimiter", ",", "Field delimiter (',', ';', 'tab', ...)")
	cmd.Flags().Bool("skip-empty", false, "Drop headers that are blank")
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Wait this long after the last change before describing")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	if err := bindFlags(cmd, watchFlagKeys); err != nil {
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
	analyzer, err := newFileAnalyzer(settings, false)
	if err != nil {
		return err
	}
	writer, err := report.NewWriter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	describeOnce := func(ctx context.Context) error {
		r, err := analyzer.analyzeFile(ctx, path)
		if err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatError(err.Error()))
			return err
		}
		return writer.Write(ctx, r)
	}

	// A file that is not readable yet is reported and then waited for.
	_ = describeOnce(ctx)

	w, err := watch.New(path, settings.WatchDebounce, slog.Default())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", w.Path())))

	return w.Run(ctx, describeOnce)
}
