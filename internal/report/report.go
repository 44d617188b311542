// Package report renders analysis results for people and programs.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/csvdescribe/internal/common"
	"github.com/Veraticus/csvdescribe/internal/model"
)

// Format names an output format.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatTable, FormatText, FormatJSON, FormatYAML}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of table, text, json, yaml)", common.ErrUnsupportedFormat, s)
}

// Report is the input to every writer.
type Report struct {
	Source  string
	Results []model.AnalysisResult
}

// Writer renders a report.
type Writer interface {
	Write(ctx context.Context, r Report) error
}

// NewWriter returns a writer for format that writes to w.
func NewWriter(format Format, w io.Writer) (Writer, error) {
	switch format {
	case FormatTable:
		return &TableWriter{out: w}, nil
	case FormatText:
		return &TextWriter{out: w}, nil
	case FormatJSON:
		return &JSONWriter{out: w}, nil
	case FormatYAML:
		return &YAMLWriter{out: w}, nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, format)
	}
}
