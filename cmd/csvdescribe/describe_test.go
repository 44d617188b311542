package main

import (
	"testing"

	"github.com/Veraticus/csvdescribe/internal/report"
	"github.com/stretchr/testify/assert"
)

func TestSheetNames(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    []string
	}{
		{
			name:    "single file uses configured tab",
			sources: []string{"a/data.csv"},
			want:    []string{"Headers"},
		},
		{
			name:    "distinct base names",
			sources: []string{"a/invoices.csv", "b/vendors.csv"},
			want:    []string{"invoices.csv", "vendors.csv"},
		},
		{
			name:    "same base name in different directories",
			sources: []string{"a/data.csv", "b/data.csv", "c/data.csv"},
			want:    []string{"data.csv", "data.csv-2", "data.csv-3"},
		},
		{
			name:    "suffix already taken by a real file",
			sources: []string{"data.csv-2", "a/data.csv", "b/data.csv"},
			want:    []string{"data.csv-2", "data.csv", "data.csv-3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := make([]report.Report, len(tt.sources))
			for i, src := range tt.sources {
				reports[i] = report.Report{Source: src}
			}
			assert.Equal(t, tt.want, sheetNames("Headers", reports))
		})
	}
}
