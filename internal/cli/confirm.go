package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// ReadLine reads one trimmed line from r, returning early with
// ErrInputCancelled when ctx is done. End of input yields what was read.
func ReadLine(ctx context.Context, r io.Reader) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	// The read goroutine outlives a cancelled call until the read returns.
	go func() {
		value, err := bufio.NewReader(r).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		resultCh <- result{value: strings.TrimSpace(value), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.value, res.err
	}
}

// Confirm asks a yes/no question; anything other than y or yes is a no.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N]: ", FormatWarning(question)); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := ReadLine(ctx, in)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
