package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	textTitle  = "CSV Header Analysis Results"
	textFooter = "Generated by CSV Header Analyzer"
	arrow      = "→"
)

// TextWriter writes the plain results-file layout.
type TextWriter struct {
	out io.Writer
}

// Write renders one "header → description" line per result.
func (w *TextWriter) Write(ctx context.Context, r Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w.out)
	_, _ = fmt.Fprintln(bw, textTitle)
	_, _ = fmt.Fprintln(bw, strings.Repeat("=", 40))
	if r.Source != "" {
		_, _ = fmt.Fprintf(bw, "Source: %s\n", r.Source)
	}
	_, _ = fmt.Fprintln(bw)

	for _, res := range r.Results {
		_, _ = fmt.Fprintf(bw, "%s %s %s\n", res.Header, arrow, res.Description)
	}

	_, _ = fmt.Fprintf(bw, "\n%s\n", textFooter)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}
