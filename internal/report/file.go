package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// SaveFile writes the reports to path in the given format, one after the
// other. The file is written to a temporary sibling first and renamed into place.
func SaveFile(ctx context.Context, path string, format Format, reports ...Report) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	writer, err := NewWriter(format, tmp)
	if err != nil {
		_ = tmp.Close()
		return err
	}

	for _, r := range reports {
		if err := writer.Write(ctx, r); err != nil {
			_ = tmp.Close()
			return err
		}
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to save results to %s: %w", path, err)
	}
	return nil
}
