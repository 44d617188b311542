package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/csvdescribe/internal/model"
	"gopkg.in/yaml.v3"
)

// document is the serialized shape of a report.
type document struct {
	Source  string                 `json:"source,omitempty" yaml:"source,omitempty"`
	Results []model.AnalysisResult `json:"results" yaml:"results"`
}

func newDocument(r Report) document {
	results := r.Results
	if results == nil {
		results = []model.AnalysisResult{}
	}
	return document{Source: r.Source, Results: results}
}

// JSONWriter writes an indented JSON document.
type JSONWriter struct {
	out io.Writer
}

// Write encodes the report as JSON.
func (w *JSONWriter) Write(ctx context.Context, r Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(newDocument(r)); err != nil {
		return fmt.Errorf("failed to encode json report: %w", err)
	}
	return nil
}

// YAMLWriter writes a YAML document per report.
type YAMLWriter struct {
	out  io.Writer
	docs int
}

// Write encodes the report as YAML, starting a new document after the first.
func (w *YAMLWriter) Write(ctx context.Context, r Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if w.docs > 0 {
		if _, err := io.WriteString(w.out, "---\n"); err != nil {
			return fmt.Errorf("failed to write yaml separator: %w", err)
		}
	}
	w.docs++

	enc := yaml.NewEncoder(w.out)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(r)); err != nil {
		return fmt.Errorf("failed to encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush yaml report: %w", err)
	}
	return nil
}
