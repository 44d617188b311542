package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/csvdescribe/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run")
	ErrAmbiguousID  = errors.New("ambiguous run id")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if strings.TrimSpace(run.Source) == "" {
		return fmt.Errorf("%w: source is required", ErrInvalidRun)
	}
	for i, r := range run.Results {
		if r.Description == "" {
			return fmt.Errorf("%w: result %d has no description", ErrInvalidRun, i)
		}
		if !r.Match.IsValid() {
			return fmt.Errorf("%w: result %d has match kind %q", ErrInvalidRun, i, r.Match)
		}
	}
	return nil
}
