package describer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Veraticus/csvdescribe/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDescribe_KnownHeaders(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "Invoice_ID", want: "unique transaction identifier"},
		{header: "Vendor_Name", want: "the supplier or vendor associated with the transaction"},
		{header: "Amount", want: "monetary value of the transaction"},
		{header: "Payment_Date", want: "date on which the payment was made"},
		{header: "", want: "unspecified field"},
		{header: "Weird_Xyz_Field", want: "value associated with weird xyz field"},
		{header: "ID", want: "unique identifier"},
		{header: "Account ID", want: "unique account identifier"},
		{header: "Parent_ID", want: "unique identifier of a related record"},
		{header: "Customer Email", want: "email address"},
		{header: "shipping-address", want: "address information"},
		{header: "Updated_At", want: "date and time when the record was last updated"},
		{header: "Café", want: "value associated with café"},
		{header: "Straße_Nr", want: "value associated with straße nr"},
		{header: "\xff", want: "value associated with \xff"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.header))
		})
	}
}

func TestDescribe_CaseAndSeparatorInsensitive(t *testing.T) {
	want := Describe("Invoice_ID")
	for _, h := range []string{"invoice-id", "INVOICE ID", " invoice__ID ", "Invoice - Id"} {
		assert.Equal(t, want, Describe(h), "header %q", h)
	}
}

func TestDescribe_Totality(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"\t\n",
		"___",
		"-",
		"%%%",
		"😀",
		"\xff\xfe",
		"名前",
		"a",
		strings.Repeat("x", 10000),
		"Price ($)",
	}

	for _, in := range inputs {
		got := Describe(in)
		assert.NotEmpty(t, got, "input %q", in)
	}
}

func TestDescribe_Idempotent(t *testing.T) {
	for _, h := range []string{"Invoice_ID", "Weird_Xyz_Field", "", "Tax Amount"} {
		assert.Equal(t, Describe(h), Describe(h))
	}
}

func TestMatch_ExactBeatsSubstring(t *testing.T) {
	// "subtotal" also contains the earlier "total" trigger.
	got := Default().Match("SubTotal")
	assert.Equal(t, model.MatchExact, got.Match)
	assert.Equal(t, "subtotal", got.Trigger)
	assert.Equal(t, "subtotal amount before taxes", got.Description)

	got = Default().Match("subtotal_usd")
	assert.Equal(t, model.MatchSubstring, got.Match)
	assert.Equal(t, "total", got.Trigger)
}

func TestMatch_DeclarationOrderTieBreak(t *testing.T) {
	// "amount" is declared before "tax".
	got := Default().Match("Tax_Amount")
	assert.Equal(t, model.MatchSubstring, got.Match)
	assert.Equal(t, "amount", got.Trigger)
	assert.Equal(t, "monetary value of the transaction", got.Description)

	d, err := New([]Pattern{
		{Trigger: "bbb", Description: "first"},
		{Trigger: "aaa", Description: "second"},
	})
	require.NoError(t, err)
	assert.Equal(t, "first", d.Describe("aaa_bbb"))

	reversed, err := New([]Pattern{
		{Trigger: "aaa", Description: "second"},
		{Trigger: "bbb", Description: "first"},
	})
	require.NoError(t, err)
	assert.Equal(t, "second", reversed.Describe("aaa_bbb"))
}

func TestMatch_ShortTriggersAreExactOnly(t *testing.T) {
	got := Default().Match("paid_date")
	assert.Equal(t, "date", got.Trigger)

	got = Default().Match("idx")
	assert.Equal(t, model.MatchFallback, got.Match)
	assert.Equal(t, "value associated with idx", got.Description)
	assert.Empty(t, got.Trigger)
}

func TestAnalyze_PreservesOrderAndDuplicates(t *testing.T) {
	headers := []string{"Amount", "", "Amount", "Weird_Xyz_Field", "Invoice_ID"}

	results := Analyze(headers)

	require.Len(t, results, len(headers))
	for i, r := range results {
		assert.Equal(t, headers[i], r.Header)
		assert.Equal(t, Describe(headers[i]), r.Description)
	}
	assert.Equal(t, results[0], results[2])
}

func TestAnalyze_Empty(t *testing.T) {
	assert.Empty(t, Analyze(nil))
	assert.NotNil(t, Analyze(nil))
}

func TestAnalyzeParallel_MatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	headers := make([]string, 0, 500)
	for i := 0; i < 100; i++ {
		headers = append(headers,
			"Invoice_ID",
			fmt.Sprintf("custom_field_%d", i),
			"Tax Amount",
			"",
			"customer-email",
		)
	}

	want := Default().Analyze(headers)

	for _, workers := range []int{0, 1, 4, 64} {
		got, err := Default().AnalyzeParallel(context.Background(), headers, workers)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("workers=%d mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestAnalyzeParallel_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Default().AnalyzeParallel(ctx, []string{"a", "b", "c"}, 2)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestNew_CopiesPatterns(t *testing.T) {
	patterns := []Pattern{{Trigger: "amount", Description: "money"}}
	d, err := New(patterns)
	require.NoError(t, err)

	patterns[0].Description = "changed"
	assert.Equal(t, "money", d.Describe("amount"))

	out := d.Patterns()
	out[0].Description = "changed again"
	assert.Equal(t, "money", d.Describe("amount"))
}

func TestNew_RejectsInvalidTable(t *testing.T) {
	_, err := New([]Pattern{{Trigger: "Amount", Description: "money"}})
	require.ErrorIs(t, err, ErrInvalidPattern)
}
