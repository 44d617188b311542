package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/csvdescribe/internal/common"
	"github.com/Veraticus/csvdescribe/internal/describer"
	"github.com/Veraticus/csvdescribe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() Report {
	return Report{
		Source:  "sample.csv",
		Results: describer.Analyze([]string{"Invoice_ID", "Vendor_Name", "Tax Amount", "Weird_Xyz_Field"}),
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("xml")
	require.ErrorIs(t, err, common.ErrUnsupportedFormat)

	_, err = NewWriter(Format("xml"), &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatText, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), sampleReport()))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "CSV Header Analysis Results", lines[0])
	assert.Equal(t, strings.Repeat("=", 40), lines[1])
	assert.Contains(t, buf.String(), "Invoice_ID → unique transaction identifier\n")
	assert.Contains(t, buf.String(), "Weird_Xyz_Field → value associated with weird xyz field\n")
	assert.True(t, strings.HasSuffix(buf.String(), "Generated by CSV Header Analyzer\n"))

	// Result order follows input order.
	assert.Less(t, strings.Index(buf.String(), "Invoice_ID"), strings.Index(buf.String(), "Vendor_Name"))
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), sampleReport()))

	var doc struct {
		Source  string                 `json:"source"`
		Results []model.AnalysisResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "sample.csv", doc.Source)
	require.Len(t, doc.Results, 4)
	assert.Equal(t, model.MatchSubstring, doc.Results[2].Match)
	assert.Equal(t, "amount", doc.Results[2].Trigger)
	assert.Empty(t, doc.Results[3].Trigger)
}

func TestJSONWriter_EmptyResults(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONWriter{out: &buf}
	require.NoError(t, w.Write(context.Background(), Report{}))
	assert.Contains(t, buf.String(), `"results": []`)
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatYAML, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), sampleReport()))

	var doc struct {
		Source  string `yaml:"source"`
		Results []struct {
			Header      string `yaml:"header"`
			Description string `yaml:"description"`
			Match       string `yaml:"match"`
		} `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Results, 4)
	assert.Equal(t, "Vendor_Name", doc.Results[1].Header)
	assert.Equal(t, "the supplier or vendor associated with the transaction", doc.Results[1].Description)
	assert.Equal(t, "exact", doc.Results[1].Match)
}

func TestYAMLWriter_MultipleReports(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatYAML, &buf)
	require.NoError(t, err)

	first := sampleReport()
	second := Report{Source: "other.csv", Results: describer.Analyze([]string{"Email"})}
	require.NoError(t, w.Write(context.Background(), first))
	require.NoError(t, w.Write(context.Background(), second))

	dec := yaml.NewDecoder(&buf)
	var sources []string
	for {
		var doc struct {
			Source string `yaml:"source"`
		}
		if err := dec.Decode(&doc); err != nil {
			break
		}
		sources = append(sources, doc.Source)
	}
	assert.Equal(t, []string{first.Source, "other.csv"}, sources)
}

func TestTableWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatTable, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "sample.csv")
	assert.Contains(t, out, "HEADER")
	assert.Contains(t, out, "unique transaction identifier")
	assert.Contains(t, out, "4 headers: 2 exact, 1 substring, 1 fallback")
}

func TestWriters_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, f := range Formats() {
		w, err := NewWriter(f, &bytes.Buffer{})
		require.NoError(t, err)
		assert.ErrorIs(t, w.Write(ctx, sampleReport()), context.Canceled, "format %s", f)
	}
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "output.txt")

	require.NoError(t, SaveFile(context.Background(), path, FormatText, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Amount")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be gone")

	err = SaveFile(context.Background(), path, Format("xml"), sampleReport())
	require.ErrorIs(t, err, common.ErrUnsupportedFormat)
}
