package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/csvdescribe/internal/config"
	"github.com/Veraticus/csvdescribe/internal/csvheader"
	"github.com/Veraticus/csvdescribe/internal/describer"
	"github.com/Veraticus/csvdescribe/internal/model"
	"github.com/Veraticus/csvdescribe/internal/report"
	"github.com/Veraticus/csvdescribe/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envKeyReplacer maps "csv.delimiter" to CSVDESCRIBE_CSV_DELIMITER.
var envKeyReplacer = strings.NewReplacer(".", "_")

// bindFlags binds the running command's flags to viper keys. Binding happens
// at run time because several commands share flag names.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

func loadSettings() (config.Settings, error) {
	return config.Load(viper.GetViper())
}

func readerOptions(s config.Settings) (csvheader.Options, error) {
	delim, err := csvheader.ParseDelimiter(s.Delimiter)
	if err != nil {
		return csvheader.Options{}, err
	}
	opts := csvheader.Options{Delimiter: delim, SkipEmpty: s.SkipEmpty}
	return opts, opts.Validate()
}

// openHistory opens the run history database and returns a cleanup function.
func openHistory(ctx context.Context, s config.Settings) (*storage.SQLiteStorage, func(), error) {
	store, err := storage.Open(ctx, s.HistoryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history: %w", err)
	}

	cleanup := func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close history database", "error", closeErr)
		}
	}
	return store, cleanup, nil
}

// fileAnalyzer reads a header row and describes it.
type fileAnalyzer struct {
	describer *describer.Describer
	opts      csvheader.Options
	workers   int
	parallel  bool
}

func newFileAnalyzer(s config.Settings, parallel bool) (fileAnalyzer, error) {
	opts, err := readerOptions(s)
	if err != nil {
		return fileAnalyzer{}, err
	}
	return fileAnalyzer{
		describer: describer.Default(),
		opts:      opts,
		workers:   s.Workers,
		parallel:  parallel,
	}, nil
}

func (a fileAnalyzer) analyzeFile(ctx context.Context, path string) (report.Report, error) {
	headers, err := csvheader.ReadFile(path, a.opts)
	if err != nil {
		return report.Report{}, err
	}
	slog.Debug("Read header row", "file", path, "headers", len(headers))

	results, err := a.analyze(ctx, headers)
	if err != nil {
		return report.Report{}, err
	}
	return report.Report{Source: path, Results: results}, nil
}

func (a fileAnalyzer) analyze(ctx context.Context, headers []string) ([]model.AnalysisResult, error) {
	if a.parallel {
		return a.describer.AnalyzeParallel(ctx, headers, a.workers)
	}
	return a.describer.Analyze(headers), nil
}

// recordRun stores a report in the history database.
func recordRun(ctx context.Context, store *storage.SQLiteStorage, r report.Report) (string, error) {
	run := &model.Run{
		Source:       r.Source,
		TableVersion: describer.PatternTableVersion,
		Results:      r.Results,
	}
	if err := store.SaveRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}
