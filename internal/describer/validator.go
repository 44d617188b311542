package describer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPattern is wrapped by every pattern table validation failure.
var ErrInvalidPattern = errors.New("invalid pattern")

// Shadowing reports a pattern that substring matching can never reach because
// an earlier trigger is contained in its own.
type Shadowing struct {
	Pattern  Pattern
	ShadowBy Pattern
	Index    int
	ByIndex  int
}

// Validate checks that a pattern table is usable. Triggers must be non-empty,
// canonical and unique; descriptions must be non-empty.
func Validate(patterns []Pattern) error {
	var errs []error
	seen := make(map[string]int, len(patterns))

	for i, p := range patterns {
		if p.Trigger == "" {
			errs = append(errs, fmt.Errorf("%w: entry %d has an empty trigger", ErrInvalidPattern, i))
			continue
		}
		if !isCanonicalTrigger(p.Trigger) {
			errs = append(errs, fmt.Errorf("%w: trigger %q at entry %d is not canonical (want %q)",
				ErrInvalidPattern, p.Trigger, i, Normalize(p.Trigger)))
		}
		if strings.TrimSpace(p.Description) == "" {
			errs = append(errs, fmt.Errorf("%w: trigger %q has an empty description", ErrInvalidPattern, p.Trigger))
		}
		if first, ok := seen[p.Trigger]; ok {
			errs = append(errs, fmt.Errorf("%w: trigger %q at entry %d duplicates entry %d",
				ErrInvalidPattern, p.Trigger, i, first))
			continue
		}
		seen[p.Trigger] = i
	}

	return errors.Join(errs...)
}

// isCanonicalTrigger accepts normalized keys, optionally anchored by a single
// leading or trailing separator (e.g. "_id").
func isCanonicalTrigger(trigger string) bool {
	core := strings.TrimPrefix(strings.TrimSuffix(trigger, string(Separator)), string(Separator))
	return core != "" && Normalize(core) == core
}

// Shadowed lists the patterns that are reachable by exact match only.
func Shadowed(patterns []Pattern) []Shadowing {
	var out []Shadowing
	for i, p := range patterns {
		for j := 0; j < i; j++ {
			earlier := patterns[j]
			if len(earlier.Trigger) < MinSubstringTriggerLen {
				continue
			}
			if strings.Contains(p.Trigger, earlier.Trigger) {
				out = append(out, Shadowing{
					Pattern:  p,
					Index:    i,
					ShadowBy: earlier,
					ByIndex:  j,
				})
				break
			}
		}
	}
	return out
}
