// Package describer turns CSV header names into short human-readable descriptions.
//
// A header is normalized into a canonical key and matched against an ordered
// pattern table: an exact trigger match wins, then the first trigger (in
// declaration order) contained in the key, then a synthesized fallback. Every
// input string yields a non-empty description.
package describer

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/Veraticus/csvdescribe/internal/model"
	"golang.org/x/sync/errgroup"
)

const (
	// MinSubstringTriggerLen is the shortest trigger considered for substring
	// matching. Shorter triggers such as "id" only match exactly.
	MinSubstringTriggerLen = 3

	// FallbackPrefix starts every synthesized description.
	FallbackPrefix = "value associated with "

	// UnspecifiedField describes headers that are empty after humanizing.
	UnspecifiedField = "unspecified field"
)

// Describer matches headers against an immutable pattern table.
// It holds no mutable state and is safe for concurrent use.
type Describer struct {
	exact    map[string]int
	patterns []Pattern
}

var defaultDescriber = mustNew(DefaultPatterns())

// New creates a describer for the given patterns. The slice is copied, so
// later changes by the caller have no effect.
func New(patterns []Pattern) (*Describer, error) {
	if err := Validate(patterns); err != nil {
		return nil, fmt.Errorf("invalid pattern table: %w", err)
	}

	owned := make([]Pattern, len(patterns))
	copy(owned, patterns)

	exact := make(map[string]int, len(owned))
	for i, p := range owned {
		exact[p.Trigger] = i
	}

	return &Describer{
		patterns: owned,
		exact:    exact,
	}, nil
}

func mustNew(patterns []Pattern) *Describer {
	d, err := New(patterns)
	if err != nil {
		panic(err)
	}
	return d
}

// Default returns the describer built from DefaultPatterns.
func Default() *Describer {
	return defaultDescriber
}

// Describe returns the description for a single header using the default table.
func Describe(header string) string {
	return defaultDescriber.Describe(header)
}

// Analyze describes headers using the default table.
func Analyze(headers []string) []model.AnalysisResult {
	return defaultDescriber.Analyze(headers)
}

// Patterns returns a copy of the table in declaration order.
func (d *Describer) Patterns() []Pattern {
	out := make([]Pattern, len(d.patterns))
	copy(out, d.patterns)
	return out
}

// Describe returns the description for a single header.
func (d *Describer) Describe(header string) string {
	return d.Match(header).Description
}

// Match describes a header and reports which rule produced the description.
func (d *Describer) Match(header string) model.AnalysisResult {
	key := Normalize(header)

	if i, ok := d.exact[key]; ok {
		return model.AnalysisResult{
			Header:      header,
			Description: d.patterns[i].Description,
			Match:       model.MatchExact,
			Trigger:     d.patterns[i].Trigger,
		}
	}

	if p, ok := d.firstContained(key); ok {
		return model.AnalysisResult{
			Header:      header,
			Description: p.Description,
			Match:       model.MatchSubstring,
			Trigger:     p.Trigger,
		}
	}

	return model.AnalysisResult{
		Header:      header,
		Description: Fallback(header),
		Match:       model.MatchFallback,
	}
}

func (d *Describer) firstContained(key string) (Pattern, bool) {
	if key == "" {
		return Pattern{}, false
	}
	for _, p := range d.patterns {
		if len(p.Trigger) < MinSubstringTriggerLen {
			continue
		}
		if strings.Contains(key, p.Trigger) {
			return p, true
		}
	}
	return Pattern{}, false
}

// Fallback synthesizes a description from the header itself.
func Fallback(header string) string {
	human := Humanize(header)
	if human == "" {
		return UnspecifiedField
	}
	return FallbackPrefix + human
}

// Analyze describes every header, preserving order and duplicates.
func (d *Describer) Analyze(headers []string) []model.AnalysisResult {
	results := make([]model.AnalysisResult, len(headers))
	for i, h := range headers {
		results[i] = d.Match(h)
	}
	return results
}

// AnalyzeParallel produces the same output as Analyze using up to workers
// goroutines. A non-positive worker count uses GOMAXPROCS. The only error is
// cancellation of ctx.
func (d *Describer) AnalyzeParallel(ctx context.Context, headers []string, workers int) ([]model.AnalysisResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]model.AnalysisResult, len(headers))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, h := range headers {
		if err := egCtx.Err(); err != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = d.Match(h)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
