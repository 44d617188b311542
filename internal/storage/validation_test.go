package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/csvdescribe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid", str: "abc"},
		{name: "empty", str: "", wantErr: true},
		{name: "whitespace", str: " \t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "id")
			if tt.wantErr {
				require.ErrorIs(t, err, ErrEmptyString)
				assert.Contains(t, err.Error(), "id")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateContext(t *testing.T) {
	require.NoError(t, validateContext(context.Background()))
	//nolint:staticcheck // nil context is the case under test
	require.ErrorIs(t, validateContext(nil), ErrNilContext)
}

func TestValidateRun(t *testing.T) {
	valid := model.AnalysisResult{Header: "Amount", Description: "money", Match: model.MatchExact, Trigger: "amount"}

	tests := []struct {
		wantErr error
		run     *model.Run
		name    string
	}{
		{name: "valid", run: &model.Run{Source: "a.csv", Results: []model.AnalysisResult{valid}}},
		{name: "no results", run: &model.Run{Source: "a.csv"}},
		{name: "nil", run: nil, wantErr: ErrNilParameter},
		{name: "blank source", run: &model.Run{Source: " "}, wantErr: ErrInvalidRun},
		{
			name:    "missing description",
			run:     &model.Run{Source: "a.csv", Results: []model.AnalysisResult{{Header: "x", Match: model.MatchFallback}}},
			wantErr: ErrInvalidRun,
		},
		{
			name:    "unknown match kind",
			run:     &model.Run{Source: "a.csv", Results: []model.AnalysisResult{{Header: "x", Description: "d", Match: "fuzzy"}}},
			wantErr: ErrInvalidRun,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRun(tt.run)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
