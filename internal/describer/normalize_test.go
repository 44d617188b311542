package describer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty", header: "", want: ""},
		{name: "already canonical", header: "invoice_id", want: "invoice_id"},
		{name: "mixed case underscore", header: "Invoice_ID", want: "invoice_id"},
		{name: "hyphen", header: "invoice-id", want: "invoice_id"},
		{name: "space", header: "INVOICE ID", want: "invoice_id"},
		{name: "surrounding whitespace", header: "  Amount\t", want: "amount"},
		{name: "separator runs collapse", header: "due -- _ date", want: "due_date"},
		{name: "edge separators dropped", header: "__id__", want: "id"},
		{name: "only separators", header: " _-_ ", want: ""},
		{name: "accents folded", header: "Café_Total", want: "cafe_total"},
		{name: "punctuation kept", header: "Price ($)", want: "price_($)"},
		{name: "digits kept", header: "Address Line 2", want: "address_line_2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.header))
		})
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "Weird_Xyz_Field", want: "weird xyz field"},
		{header: "weird-xyz  field", want: "weird xyz field"},
		{header: "___", want: ""},
		{header: "", want: ""},
		{header: "%%%", want: "%%%"},
		{header: "Crème-Brûlée", want: "crème brûlée"},
		{header: "Ärger\xffX", want: "ärger\xffx"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Humanize(tt.header))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Invoice_ID", " a--b  c ", "ÅRSBELØP", "x", "", "日付_列"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
