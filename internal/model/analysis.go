// Package model contains the data types shared between the describer and its collaborators.
package model

import "time"

// MatchKind records which rule produced a description.
type MatchKind string

const (
	// MatchExact means the canonical key equalled a pattern trigger.
	MatchExact MatchKind = "exact"
	// MatchSubstring means a pattern trigger was contained in the canonical key.
	MatchSubstring MatchKind = "substring"
	// MatchFallback means no pattern matched and the description was synthesized.
	MatchFallback MatchKind = "fallback"
)

// IsValid returns true if the match kind is one of the known kinds.
func (k MatchKind) IsValid() bool {
	switch k {
	case MatchExact, MatchSubstring, MatchFallback:
		return true
	default:
		return false
	}
}

// AnalysisResult pairs an input header with its description.
type AnalysisResult struct {
	Header      string    `json:"header" yaml:"header"`
	Description string    `json:"description" yaml:"description"`
	Match       MatchKind `json:"match" yaml:"match"`
	Trigger     string    `json:"trigger,omitempty" yaml:"trigger,omitempty"`
}

// Run is one recorded analysis of a header row.
type Run struct {
	AnalyzedAt   time.Time
	ID           string
	Source       string
	TableVersion string
	Results      []AnalysisResult
}

// CountByMatch tallies results per match kind.
func CountByMatch(results []AnalysisResult) map[MatchKind]int {
	counts := make(map[MatchKind]int, 3)
	for _, r := range results {
		counts[r.Match]++
	}
	return counts
}

// RunSummary describes a recorded run without its results.
type RunSummary struct {
	AnalyzedAt   time.Time
	ID           string
	Source       string
	TableVersion string
	HeaderCount  int
	Fallbacks    int
}
