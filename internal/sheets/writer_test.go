package sheets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/csvdescribe/internal/describer"
	"github.com/Veraticus/csvdescribe/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheets records the calls the writer makes against the Sheets REST API.
type fakeSheets struct {
	sheetTitles []string
	calls       []string
	written     [][]any
	getStatus   int
	mu          sync.Mutex
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && path == "/v4/spreadsheets":
		f.calls = append(f.calls, "create")
		_, _ = io.WriteString(w, `{"spreadsheetId":"new-sheet","spreadsheetUrl":"https://example.test/new-sheet"}`)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/v4/spreadsheets/"):
		f.calls = append(f.calls, "get")
		if f.getStatus != 0 {
			w.WriteHeader(f.getStatus)
			_, _ = io.WriteString(w, `{"error":{"code":404,"message":"not found"}}`)
			return
		}
		resp := sheets.Spreadsheet{SpreadsheetId: "existing"}
		for _, title := range f.sheetTitles {
			resp.Sheets = append(resp.Sheets, &sheets.Sheet{Properties: &sheets.SheetProperties{Title: title}})
		}
		_ = json.NewEncoder(w).Encode(resp)
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		f.calls = append(f.calls, "addSheet")
		_, _ = io.WriteString(w, `{"spreadsheetId":"existing"}`)
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":clear"):
		f.calls = append(f.calls, "clear")
		_, _ = io.WriteString(w, `{"spreadsheetId":"existing"}`)
	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		f.calls = append(f.calls, "update")
		var body sheets.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&body)
		for _, row := range body.Values {
			f.written = append(f.written, row)
		}
		_, _ = io.WriteString(w, `{"spreadsheetId":"existing"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"code":404,"message":"unexpected call"}}`)
	}
}

func newTestWriter(t *testing.T, fake *fakeSheets, config Config) *Writer {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithHTTPClient(server.Client()),
		option.WithEndpoint(server.URL+"/"))
	require.NoError(t, err)

	config.RetryAttempts = 1
	config.RetryDelay = time.Millisecond
	return NewWriterWithService(svc, config, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testReport() report.Report {
	return report.Report{
		Source:  "invoices.csv",
		Results: describer.Analyze([]string{"Invoice_ID", "Amount", "Weird_Xyz_Field"}),
	}
}

func TestWriter_ExistingSpreadsheetWithTab(t *testing.T) {
	fake := &fakeSheets{sheetTitles: []string{"Headers"}}
	config := DefaultConfig()
	config.SpreadsheetID = "existing"
	w := newTestWriter(t, fake, config)

	require.NoError(t, w.Write(context.Background(), testReport()))

	assert.Equal(t, []string{"get", "clear", "update"}, fake.calls)
	require.Len(t, fake.written, 4)
	assert.Equal(t, []any{"Header", "Description", "Match", "Trigger"}, fake.written[0])
	assert.Equal(t, []any{"Invoice_ID", "unique transaction identifier", "exact", "invoice_id"}, fake.written[1])
	assert.Equal(t, "Weird_Xyz_Field", fake.written[3][0])
	assert.Equal(t, "fallback", fake.written[3][2])
}

func TestWriter_AddsMissingTab(t *testing.T) {
	fake := &fakeSheets{sheetTitles: []string{"Sheet1"}}
	config := DefaultConfig()
	config.SpreadsheetID = "existing"
	w := newTestWriter(t, fake, config)

	require.NoError(t, w.Write(context.Background(), testReport()))
	assert.Equal(t, []string{"get", "addSheet", "clear", "update"}, fake.calls)
}

func TestWriter_CreatesSpreadsheet(t *testing.T) {
	fake := &fakeSheets{}
	w := newTestWriter(t, fake, DefaultConfig())

	require.NoError(t, w.Write(context.Background(), testReport()))
	assert.Equal(t, []string{"create", "clear", "update"}, fake.calls)
}

func TestWriter_WriteSheetReusesCreatedSpreadsheet(t *testing.T) {
	fake := &fakeSheets{sheetTitles: []string{"a.csv"}}
	w := newTestWriter(t, fake, DefaultConfig())

	require.NoError(t, w.WriteSheet(context.Background(), "a.csv", testReport()))
	require.NoError(t, w.WriteSheet(context.Background(), "b.csv", testReport()))

	assert.Equal(t, []string{"create", "clear", "update", "get", "addSheet", "clear", "update"}, fake.calls)
}

func TestWriter_InaccessibleSpreadsheet(t *testing.T) {
	fake := &fakeSheets{getStatus: http.StatusNotFound}
	config := DefaultConfig()
	config.SpreadsheetID = "missing"
	w := newTestWriter(t, fake, config)

	err := w.Write(context.Background(), testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to access spreadsheet missing")
	assert.Equal(t, []string{"get"}, fake.calls)
}

func TestSheetRange(t *testing.T) {
	assert.Equal(t, "'Headers'!A1", sheetRange("Headers", "A1"))
	assert.Equal(t, "'Bob''s Sheet'!A:D", sheetRange("Bob's Sheet", "A:D"))
}

func TestNewWriter_InvalidConfig(t *testing.T) {
	_, err := NewWriter(context.Background(), Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
