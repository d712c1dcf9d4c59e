package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/grahalabs/jyotish/internal/model"
	"github.com/grahalabs/jyotish/internal/service"
)

// RecordMatches appends every rule match of a reading to the audit
// history. Recording the same reading twice is the caller's bug, not
// an error the schema prevents; the reading id keeps rows traceable.
func (s *SQLiteStorage) RecordMatches(ctx context.Context, reading *model.Reading) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if reading == nil {
		return fmt.Errorf("reading cannot be nil")
	}
	if len(reading.Matches) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_history
			(reading_id, fingerprint, rule_key, rule_set_version, category, priority, confidence, evidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, match := range reading.Matches {
		evidence, err := json.Marshal(match.Evidence)
		if err != nil {
			return fmt.Errorf("failed to serialize evidence for rule %s: %w", match.RuleKey, err)
		}
		if _, err := stmt.ExecContext(ctx,
			reading.ID, reading.Fingerprint, match.RuleKey, reading.RuleSetVersion,
			match.Category, match.Priority, match.Confidence, string(evidence),
		); err != nil {
			return fmt.Errorf("failed to record match %s: %w", match.RuleKey, err)
		}
	}

	return tx.Commit()
}

// GetMatchHistory returns the audited matches for a reading in the
// order they were evaluated.
func (s *SQLiteStorage) GetMatchHistory(ctx context.Context, readingID string) ([]service.MatchRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if readingID == "" {
		return nil, fmt.Errorf("readingID cannot be empty")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT reading_id, fingerprint, rule_key, rule_set_version,
		       category, priority, confidence, evidence, recorded_at
		FROM match_history
		WHERE reading_id = ?
		ORDER BY id`, readingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []service.MatchRecord
	for rows.Next() {
		var r service.MatchRecord
		if err := rows.Scan(&r.ReadingID, &r.Fingerprint, &r.RuleKey, &r.RuleSetVersion,
			&r.Category, &r.Priority, &r.Confidence, &r.EvidenceJSON, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
