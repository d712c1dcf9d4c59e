package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/service"
)

// Get loads a cache entry by fingerprint. Expired entries count as
// misses and are dropped on the way out.
func (s *SQLiteStorage) Get(ctx context.Context, fingerprint string) (*service.CacheEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		document   string
		version    int64
		computedAt time.Time
		expiresAt  time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT entry, rule_set_version, computed_at, expires_at
		FROM cache_entries WHERE fingerprint = ?`, fingerprint).
		Scan(&document, &version, &computedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cache entry: %w", err)
	}

	entry := &service.CacheEntry{
		RuleSetVersion: version,
		ComputedAt:     computedAt,
		ExpiresAt:      expiresAt,
	}
	if entry.Expired(time.Now()) {
		_, _ = s.db.ExecContext(ctx,
			`DELETE FROM cache_entries WHERE fingerprint = ?`, fingerprint)
		return nil, common.ErrCacheMiss
	}

	if err := json.Unmarshal([]byte(document), &entry.Reading); err != nil {
		return nil, fmt.Errorf("failed to decode cached reading: %w", err)
	}
	return entry, nil
}

// Set stores or replaces the entry for a fingerprint atomically.
func (s *SQLiteStorage) Set(ctx context.Context, fingerprint string, entry *service.CacheEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if entry == nil || entry.Reading == nil {
		return fmt.Errorf("cache entry must carry a reading")
	}

	document, err := json.Marshal(entry.Reading)
	if err != nil {
		return fmt.Errorf("failed to serialize reading: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (fingerprint, rule_set_version, entry, computed_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			rule_set_version = excluded.rule_set_version,
			entry = excluded.entry,
			computed_at = excluded.computed_at,
			expires_at = excluded.expires_at`,
		fingerprint, entry.RuleSetVersion, string(document), entry.ComputedAt, entry.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Invalidate drops every entry computed under a rule set version older
// than the active one.
func (s *SQLiteStorage) Invalidate(ctx context.Context, activeVersion int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE rule_set_version < ?`, activeVersion)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache entries: %w", err)
	}
	return nil
}
