// Package csvheader extracts the header row from delimited files.
package csvheader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/csvdescribe/internal/common"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options controls how the header row is read.
type Options struct {
	// Delimiter separates fields. Zero means comma.
	Delimiter rune
	// SkipEmpty drops headers that are blank after trimming.
	SkipEmpty bool
}

// DefaultOptions returns comma-delimited options that keep blank headers.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

// Validate checks the delimiter is usable by encoding/csv.
func (o Options) Validate() error {
	d := o.delimiter()
	if d == '"' || d == '\r' || d == '\n' || d == 0xFFFD {
		return fmt.Errorf("%w: delimiter %q", common.ErrInvalidConfig, d)
	}
	return nil
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// ParseDelimiter converts a flag value such as ",", ";", "tab" or "\t" to a rune.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "", ",":
		return ',', nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}

	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be a single character, got %q", common.ErrInvalidConfig, s)
	}
	return r[0], nil
}

// ReadHeaders returns the trimmed fields of the first record in r.
func ReadHeaders(r io.Reader, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = opts.delimiter()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	record, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, common.ErrNoHeaders
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	headers := make([]string, 0, len(record))
	for _, field := range record {
		field = strings.TrimSpace(field)
		if opts.SkipEmpty && field == "" {
			continue
		}
		headers = append(headers, field)
	}

	if len(headers) == 0 {
		return nil, common.ErrNoHeaders
	}

	return headers, nil
}

// ReadFile opens path and reads its header row.
func ReadFile(path string, opts Options) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.NewUserError(fmt.Sprintf("file '%s' not found", path), err)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	headers, err := ReadHeaders(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return headers, nil
}
