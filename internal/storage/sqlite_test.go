package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
	"github.com/grahalabs/jyotish/internal/service"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "jyotish.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRuleSet(version int64) *model.RuleSet {
	return &model.RuleSet{
		Name:    "test-set",
		Version: version,
		Rules: []model.Rule{
			{
				Key:      "saturn-seventh",
				Category: "relationships",
				Impact:   model.ImpactNeutral,
				Priority: 70,
				Active:   true,
				When: model.Predicate{
					Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 7},
				},
			},
		},
	}
}

func TestMigrate(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	applied, err := s.AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Len(t, applied, ExpectedSchemaVersion)

	// Running migrations again is a no-op.
	require.NoError(t, s.Migrate(ctx))
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}

func TestRuleSets_RoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRuleSet(ctx, testRuleSet(1)))

	loaded, err := s.GetRuleSet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "test-set", loaded.Name)
	require.Len(t, loaded.Rules, 1)
	assert.Equal(t, "saturn-seventh", loaded.Rules[0].Key)
	assert.Equal(t, 7, loaded.Rules[0].When.House)
}

func TestRuleSets_DuplicateVersion(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRuleSet(ctx, testRuleSet(1)))
	err := s.SaveRuleSet(ctx, testRuleSet(1))
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestRuleSets_ActiveIsHighestVersion(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.GetActiveRuleSet(ctx)
	assert.ErrorIs(t, err, common.ErrNoActiveRuleSet)

	require.NoError(t, s.SaveRuleSet(ctx, testRuleSet(1)))
	require.NoError(t, s.SaveRuleSet(ctx, testRuleSet(3)))
	require.NoError(t, s.SaveRuleSet(ctx, testRuleSet(2)))

	active, err := s.GetActiveRuleSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), active.Version)
}

func TestRuleSets_List(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRuleSet(ctx, testRuleSet(1)))
	require.NoError(t, s.SaveRuleSet(ctx, testRuleSet(2)))

	infos, err := s.ListRuleSets(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, int64(2), infos[0].Version, "newest first")
	assert.Equal(t, 1, infos[0].RuleCount)
}

func TestRuleSets_GetMissing(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetRuleSet(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func testReading() *model.Reading {
	return &model.Reading{
		ID:             "reading-1",
		Fingerprint:    "fp-1",
		RuleSetVersion: 1,
		Matches: []model.RuleMatch{
			{
				RuleKey:    "saturn-seventh",
				Category:   "relationships",
				Priority:   70,
				Confidence: 0.75,
				Evidence: []model.Evidence{
					{Entity: model.EvidencePlanet, Key: "Saturn", House: 7},
				},
			},
			{
				RuleKey:  "moon-rohini",
				Category: "mind",
				Priority: 45,
				Evidence: []model.Evidence{
					{Entity: model.EvidencePlanet, Key: "Moon", Nakshatra: "Rohini"},
				},
			},
		},
	}
}

func TestMatchHistory_RoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.RecordMatches(ctx, testReading()))

	records, err := s.GetMatchHistory(ctx, "reading-1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "saturn-seventh", records[0].RuleKey)
	assert.Equal(t, "fp-1", records[0].Fingerprint)
	assert.Equal(t, int64(1), records[0].RuleSetVersion)
	assert.Contains(t, records[0].EvidenceJSON, `"Saturn"`)
	assert.Equal(t, "moon-rohini", records[1].RuleKey)
}

func TestMatchHistory_EmptyReadingIsNoop(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.RecordMatches(ctx, &model.Reading{ID: "empty"}))

	records, err := s.GetMatchHistory(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func cacheEntry(version int64, ttl time.Duration) *service.CacheEntry {
	now := time.Now().UTC().Truncate(time.Second)
	return &service.CacheEntry{
		Reading:        testReading(),
		RuleSetVersion: version,
		ComputedAt:     now,
		ExpiresAt:      now.Add(ttl),
	}
}

func TestCacheEntries_RoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "fp-1", cacheEntry(1, time.Hour)))

	entry, err := s.Get(ctx, "fp-1")
	require.NoError(t, err)
	require.NotNil(t, entry.Reading)
	assert.Equal(t, "reading-1", entry.Reading.ID)
	assert.Equal(t, int64(1), entry.RuleSetVersion)
}

func TestCacheEntries_Miss(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestCacheEntries_LazyExpiry(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "fp-1", cacheEntry(1, -time.Minute)))

	_, err := s.Get(ctx, "fp-1")
	assert.ErrorIs(t, err, common.ErrCacheMiss, "expired entry reads as a miss")
}

func TestCacheEntries_ReplaceWhole(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "fp-1", cacheEntry(1, time.Hour)))
	replacement := cacheEntry(2, time.Hour)
	replacement.Reading.ID = "reading-2"
	require.NoError(t, s.Set(ctx, "fp-1", replacement))

	entry, err := s.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, "reading-2", entry.Reading.ID)
	assert.Equal(t, int64(2), entry.RuleSetVersion)
}

func TestCacheEntries_InvalidateOldVersions(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "old", cacheEntry(1, time.Hour)))
	require.NoError(t, s.Set(ctx, "current", cacheEntry(2, time.Hour)))

	require.NoError(t, s.Invalidate(ctx, 2))

	_, err := s.Get(ctx, "old")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	_, err = s.Get(ctx, "current")
	assert.NoError(t, err)
}
