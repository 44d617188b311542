package report

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/csvdescribe/internal/cli"
	"github.com/Veraticus/csvdescribe/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableWriter renders a styled console table.
type TableWriter struct {
	out io.Writer
}

// Write renders the results as a bordered table followed by a summary line.
func (w *TableWriter) Write(ctx context.Context, r Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := "CSV Header Analysis Results"
	if r.Source != "" {
		title += ": " + r.Source
	}

	if _, err := fmt.Fprintln(w.out, cli.FormatTitle(title)); err != nil {
		return fmt.Errorf("failed to write table report: %w", err)
	}
	_, _ = fmt.Fprintln(w.out, RenderTable(r.Results))
	_, _ = fmt.Fprintln(w.out, Summary(r.Results))
	return nil
}

// RenderTable renders results as a lipgloss table.
func RenderTable(results []model.AnalysisResult) string {
	rows := make([][]string, 0, len(results))
	for i, res := range results {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			res.Header,
			res.Description,
			string(res.Match),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(cli.SubtleColor)).
		Headers("#", "HEADER", "DESCRIPTION", "MATCH").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cli.TableHeaderStyle
			}
			if col == 3 && row >= 0 && row < len(results) {
				return MatchStyle(results[row].Match)
			}
			return cli.TableCellStyle
		})

	return t.String()
}

// MatchStyle colours a match kind.
func MatchStyle(kind model.MatchKind) lipgloss.Style {
	switch kind {
	case model.MatchExact:
		return cli.SuccessStyle
	case model.MatchSubstring:
		return cli.InfoStyle
	default:
		return cli.WarningStyle
	}
}

// Summary returns a one-line tally of match kinds.
func Summary(results []model.AnalysisResult) string {
	counts := model.CountByMatch(results)
	return cli.SubtleStyle.Render(fmt.Sprintf("%d headers: %d exact, %d substring, %d fallback",
		len(results),
		counts[model.MatchExact],
		counts[model.MatchSubstring],
		counts[model.MatchFallback]))
}
