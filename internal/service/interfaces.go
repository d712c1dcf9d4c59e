// Package service defines the contracts between the derivation core,
// the cache coordinator and the persistence layer.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/grahalabs/jyotish/internal/astro"
	"github.com/grahalabs/jyotish/internal/model"
)

// DeriveRequest carries everything one reading is derived from. The
// house system and divisional set are part of the request so two
// requests differing only in configuration never share a fingerprint.
type DeriveRequest struct {
	Positions   astro.RawPositions `json:"positions"`
	Birth       model.BirthInput   `json:"birth"`
	HouseSystem model.HouseSystem  `json:"house_system"`
	Divisors    []int              `json:"divisors,omitempty"`
}

// fingerprintDoc is the canonical serialization hashed into a
// fingerprint. Map keys marshal sorted, so the document is stable
// regardless of input iteration order.
type fingerprintDoc struct {
	Planets        map[string]astro.RawPlanet `json:"planets"`
	Engine         string                     `json:"engine"`
	Birth          model.BirthInput           `json:"birth"`
	HouseSystem    model.HouseSystem          `json:"house_system"`
	Divisors       []int                      `json:"divisors"`
	Ascendant      float64                    `json:"ascendant"`
	RuleSetVersion int64                      `json:"rule_set_version"`
}

// Fingerprint hashes the request together with the rule set version it
// will be evaluated under. Identical inputs always produce the
// identical fingerprint; any semantic change to the engine changes it
// through the engine version.
func (r DeriveRequest) Fingerprint(ruleSetVersion int64) (string, error) {
	divisors := append([]int(nil), r.Divisors...)
	sort.Ints(divisors)

	doc := fingerprintDoc{
		Engine:         astro.EngineVersion,
		Birth:          r.Birth.Canonical(),
		Planets:        r.Positions.Planets,
		Ascendant:      r.Positions.Ascendant,
		HouseSystem:    r.HouseSystem,
		Divisors:       divisors,
		RuleSetVersion: ruleSetVersion,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("fingerprint request: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Deriver produces a complete reading from one request.
type Deriver interface {
	Derive(ctx context.Context, req DeriveRequest) (*model.Reading, error)
}

// CacheEntry is one memoized reading with its validity bounds.
type CacheEntry struct {
	ComputedAt     time.Time      `json:"computed_at"`
	ExpiresAt      time.Time      `json:"expires_at"`
	Reading        *model.Reading `json:"reading"`
	RuleSetVersion int64          `json:"rule_set_version"`
}

// Expired reports whether the entry is past its deadline at now.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// CacheStore is the backing key/value boundary of the cache
// coordinator. Get returns common.ErrCacheMiss for an absent
// fingerprint; store failures degrade to recomputation and never fail
// a request.
type CacheStore interface {
	Get(ctx context.Context, fingerprint string) (*CacheEntry, error)
	Set(ctx context.Context, fingerprint string, entry *CacheEntry) error
	// Invalidate drops every entry computed under a rule set version
	// older than the given one.
	Invalidate(ctx context.Context, activeVersion int64) error
}

// RuleStore persists versioned rule set snapshots.
type RuleStore interface {
	SaveRuleSet(ctx context.Context, set *model.RuleSet) error
	GetRuleSet(ctx context.Context, version int64) (*model.RuleSet, error)
	// GetActiveRuleSet returns the highest-versioned stored set, or
	// common.ErrNoActiveRuleSet when none has been imported.
	GetActiveRuleSet(ctx context.Context) (*model.RuleSet, error)
	ListRuleSets(ctx context.Context) ([]RuleSetInfo, error)
}

// RuleSetInfo summarizes one stored rule set snapshot.
type RuleSetInfo struct {
	ImportedAt time.Time
	Name       string
	Version    int64
	RuleCount  int
}

// MatchAuditor records which rules held for a reading, keyed by the
// reading id, so every emitted interpretation stays traceable.
type MatchAuditor interface {
	RecordMatches(ctx context.Context, reading *model.Reading) error
	GetMatchHistory(ctx context.Context, readingID string) ([]MatchRecord, error)
}

// MatchRecord is one audited rule match.
type MatchRecord struct {
	RecordedAt     time.Time
	ReadingID      string
	Fingerprint    string
	RuleKey        string
	Category       string
	EvidenceJSON   string
	RuleSetVersion int64
	Priority       int
	Confidence     float64
}
