package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/csvdescribe/internal/common"
	"github.com/Veraticus/csvdescribe/internal/model"
	"github.com/google/uuid"
)

// SaveRun stores a run and its results in one transaction. A missing ID or
// timestamp is filled in on the passed run.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.AnalyzedAt.IsZero() {
		run.AnalyzedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, analyzed_at, header_count, table_version)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.AnalyzedAt, len(run.Results), run.TableVersion)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, position, header, description, match_kind, trigger_text)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range run.Results {
		if _, err := stmt.ExecContext(ctx, run.ID, i, r.Header, r.Description, string(r.Match), r.Trigger); err != nil {
			return fmt.Errorf("failed to insert result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns all runs.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.source, r.analyzed_at, r.header_count, r.table_version,
			(SELECT COUNT(*) FROM results x WHERE x.run_id = r.id AND x.match_kind = ?)
		FROM runs r
		ORDER BY r.analyzed_at DESC, r.rowid DESC
		LIMIT ?`, string(model.MatchFallback), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.RunSummary
	for rows.Next() {
		var r model.RunSummary
		if err := rows.Scan(&r.ID, &r.Source, &r.AnalyzedAt, &r.HeaderCount, &r.TableVersion, &r.Fallbacks); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun loads a run by its full ID or a unique ID prefix.
func (s *SQLiteStorage) GetRun(ctx context.Context, idOrPrefix string) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(idOrPrefix, "id"); err != nil {
		return nil, err
	}

	id, err := s.resolveRunID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	run := &model.Run{ID: id}
	err = s.db.QueryRowContext(ctx, `
		SELECT source, analyzed_at, table_version FROM runs WHERE id = ?`, id).
		Scan(&run.Source, &run.AnalyzedAt, &run.TableVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", idOrPrefix, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT header, description, match_kind, trigger_text
		FROM results WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	run.Results = []model.AnalysisResult{}
	for rows.Next() {
		var r model.AnalysisResult
		var kind string
		if err := rows.Scan(&r.Header, &r.Description, &kind, &r.Trigger); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Match = model.MatchKind(kind)
		run.Results = append(run.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return run, nil
}

func (s *SQLiteStorage) resolveRunID(ctx context.Context, idOrPrefix string) (string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM runs WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2`,
		idOrPrefix, len(idOrPrefix), idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to resolve run id: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan run id: %w", err)
		}
		if id == idOrPrefix {
			return id, nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to iterate run ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("run %s: %w", idOrPrefix, common.ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, idOrPrefix)
	}
}

// ClearRuns deletes every recorded run and returns how many were removed.
func (s *SQLiteStorage) ClearRuns(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return 0, fmt.Errorf("failed to delete results: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}
	return n, nil
}
