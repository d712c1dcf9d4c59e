package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
	"github.com/grahalabs/jyotish/internal/service"
)

// SaveRuleSet stores one versioned snapshot. Versions are immutable:
// importing an already-stored version is a duplicate, not an update.
func (s *SQLiteStorage) SaveRuleSet(ctx context.Context, set *model.RuleSet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if set == nil {
		return fmt.Errorf("rule set cannot be nil")
	}
	if set.Version <= 0 {
		return fmt.Errorf("rule set version must be positive, got %d", set.Version)
	}

	document, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to serialize rule set: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rule_sets (version, name, document, rule_count) VALUES (?, ?, ?, ?)`,
		set.Version, set.Name, string(document), len(set.Rules))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("rule set version %d: %w", set.Version, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save rule set: %w", err)
	}
	return nil
}

// GetRuleSet loads one stored snapshot by version.
func (s *SQLiteStorage) GetRuleSet(ctx context.Context, version int64) (*model.RuleSet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var document string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM rule_sets WHERE version = ?`, version).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rule set version %d: %w", version, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rule set: %w", err)
	}

	var set model.RuleSet
	if err := json.Unmarshal([]byte(document), &set); err != nil {
		return nil, fmt.Errorf("failed to decode rule set %d: %w", version, err)
	}
	return &set, nil
}

// GetActiveRuleSet loads the highest-versioned stored snapshot.
func (s *SQLiteStorage) GetActiveRuleSet(ctx context.Context) (*model.RuleSet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM rule_sets`).Scan(&version)
	if err != nil {
		return nil, fmt.Errorf("failed to find active rule set: %w", err)
	}
	if !version.Valid || version.Int64 == 0 {
		return nil, common.ErrNoActiveRuleSet
	}
	return s.GetRuleSet(ctx, version.Int64)
}

// ListRuleSets summarizes stored snapshots, newest first.
func (s *SQLiteStorage) ListRuleSets(ctx context.Context) ([]service.RuleSetInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT version, name, rule_count, imported_at FROM rule_sets ORDER BY version DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rule sets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []service.RuleSetInfo
	for rows.Next() {
		var info service.RuleSetInfo
		if err := rows.Scan(&info.Version, &info.Name, &info.RuleCount, &info.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rule set row: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
