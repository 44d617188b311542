package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/Veraticus/csvdescribe/internal/common"
	"github.com/Veraticus/csvdescribe/internal/report"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// columns is the header row written above the results.
var columns = []any{"Header", "Description", "Match", "Trigger"}

// Writer implements report.Writer for Google Sheets. It is not safe for
// concurrent use.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a Google Sheets writer authenticated from config.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return NewWriterWithService(service, config, logger), nil
}

// NewWriterWithService wraps an already configured Sheets service.
func NewWriterWithService(service *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		service: service,
		config:  config,
		logger:  logger,
	}
}

// Write replaces the contents of the configured tab with the report.
func (w *Writer) Write(ctx context.Context, r report.Report) error {
	return w.WriteSheet(ctx, w.config.SheetName, r)
}

// WriteSheet replaces the contents of the named tab with the report, adding
// the tab when it does not exist. A spreadsheet created by the first call is
// reused by later ones.
func (w *Writer) WriteSheet(ctx context.Context, sheet string, r report.Report) error {
	w.logger.Info("exporting header descriptions",
		"source", r.Source,
		"sheet", sheet,
		"headers", len(r.Results))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx, sheet)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	values := prepareValues(r)
	rng := sheetRange(sheet, "A:D")

	err = w.retry(ctx, "clear values", func() error {
		_, clearErr := w.service.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).
			Context(ctx).Do()
		return clearErr
	})
	if err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	err = w.retry(ctx, "update values", func() error {
		_, updateErr := w.service.Spreadsheets.Values.Update(spreadsheetID, sheetRange(sheet, "A1"),
			&sheets.ValueRange{Values: values}).
			ValueInputOption("RAW").
			Context(ctx).Do()
		return updateErr
	})
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	w.logger.Info("export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// prepareValues lays out the column row followed by one row per result.
func prepareValues(r report.Report) [][]any {
	values := make([][]any, 0, len(r.Results)+1)
	values = append(values, columns)
	for _, res := range r.Results {
		values = append(values, []any{res.Header, res.Description, string(res.Match), res.Trigger})
	}
	return values
}

// sheetRange builds an A1 range on a quoted sheet title.
func sheetRange(sheet, cells string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cells
}

// getOrCreateSpreadsheet returns the configured spreadsheet, creating it
// (with the target tab) when no id is configured.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context, sheet string) (string, error) {
	if w.config.SpreadsheetID != "" {
		if err := w.ensureSheet(ctx, w.config.SpreadsheetID, sheet); err != nil {
			return "", err
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: w.config.SpreadsheetName,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: sheet}},
		},
	}

	var created *sheets.Spreadsheet
	err := w.retry(ctx, "create spreadsheet", func() error {
		var createErr error
		created, createErr = w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
		return createErr
	})
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	w.config.SpreadsheetID = created.SpreadsheetId
	return created.SpreadsheetId, nil
}

// ensureSheet adds the target tab to an existing spreadsheet when missing.
func (w *Writer) ensureSheet(ctx context.Context, spreadsheetID, sheet string) error {
	var existing *sheets.Spreadsheet
	err := w.retry(ctx, "get spreadsheet", func() error {
		var getErr error
		existing, getErr = w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
		return getErr
	})
	if err != nil {
		return fmt.Errorf("unable to access spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, s := range existing.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheet},
			}},
		},
	}
	err = w.retry(ctx, "add sheet", func() error {
		_, addErr := w.service.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
		return addErr
	})
	if err != nil {
		return fmt.Errorf("unable to add sheet %q: %w", sheet, err)
	}

	w.logger.Debug("added sheet", "spreadsheet_id", spreadsheetID, "sheet", sheet)
	return nil
}

func (w *Writer) retry(ctx context.Context, operation string, op func() error) error {
	return common.WithRetry(ctx, func() error {
		return classifyError(op())
	}, w.config.RetryOptions(operation))
}

// classifyError stops retries on client errors and backs off on rate limits.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return &common.RetryableError{Err: err, Retryable: false}
	default:
		return err
	}
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		tokenSource = client.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	}

	srv, err := sheets.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}
