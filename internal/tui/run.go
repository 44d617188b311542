package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/csvdescribe/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the browser until the user quits or ctx is cancelled.
func Run(ctx context.Context, source string, results []model.AnalysisResult, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		New(source, results),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run results browser: %w", err)
	}
	return nil
}
