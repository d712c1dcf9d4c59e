// Package cache memoizes derived readings behind a read-through,
// single-flight coordinator keyed by request fingerprints.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
	"github.com/grahalabs/jyotish/internal/service"
)

// Coordinator serves readings from the backing store and funnels
// concurrent identical misses into exactly one derivation. Store
// failures degrade to recomputation; a caller never fails because the
// cache is unavailable.
type Coordinator struct {
	deriver service.Deriver
	store   service.CacheStore
	version func() int64
	group   singleflight.Group
	ttl     time.Duration
}

// New wires a coordinator over a deriver and a backing store. version
// reports the active rule set version; entries computed under an older
// version are treated as stale and recomputed.
func New(deriver service.Deriver, store service.CacheStore, ttl time.Duration, version func() int64) (*Coordinator, error) {
	if deriver == nil {
		return nil, common.NewConfiguration("deriver", fmt.Errorf("no deriver provided"))
	}
	if store == nil {
		return nil, common.NewConfiguration("cache.backend", fmt.Errorf("no cache store provided"))
	}
	if ttl <= 0 {
		return nil, common.NewConfiguration("cache.ttl", fmt.Errorf("ttl must be positive, got %s", ttl))
	}
	if version == nil {
		return nil, common.NewConfiguration("rules", fmt.Errorf("no rule set version source provided"))
	}
	return &Coordinator{
		deriver: deriver,
		store:   store,
		ttl:     ttl,
		version: version,
	}, nil
}

// Reading returns the memoized reading for the request, deriving it at
// most once per fingerprint no matter how many callers arrive
// concurrently. A canceled caller stops waiting; the in-flight
// derivation continues and still populates the cache.
func (c *Coordinator) Reading(ctx context.Context, req service.DeriveRequest) (*model.Reading, error) {
	activeVersion := c.version()
	fingerprint, err := req.Fingerprint(activeVersion)
	if err != nil {
		return nil, err
	}

	if reading, ok := c.lookup(ctx, fingerprint, activeVersion); ok {
		return reading, nil
	}

	// Late joiners attach to the in-flight computation for this
	// fingerprint. The computation itself runs detached from any one
	// caller's context so cancellation never poisons other waiters.
	ch := c.group.DoChan(fingerprint, func() (any, error) {
		return c.derive(context.WithoutCancel(ctx), fingerprint, req)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		reading, ok := res.Val.(*model.Reading)
		if !ok {
			return nil, common.NewComputationInvariant("cache_result",
				fmt.Errorf("in-flight computation returned %T", res.Val))
		}
		return reading, nil
	}
}

// Invalidate drops entries computed under rule set versions older than
// the active one. Called when a new rule set snapshot is activated.
func (c *Coordinator) Invalidate(ctx context.Context) error {
	return c.store.Invalidate(ctx, c.version())
}

// lookup consults the backing store. Misses, expired entries, stale
// rule set versions and store failures all report false.
func (c *Coordinator) lookup(ctx context.Context, fingerprint string, activeVersion int64) (*model.Reading, bool) {
	entry, err := c.store.Get(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			slog.Warn("cache read failed, recomputing", "fingerprint", fingerprint, "error", err)
		}
		return nil, false
	}
	if entry.Reading == nil {
		return nil, false
	}
	if entry.RuleSetVersion != activeVersion {
		return nil, false
	}
	if entry.Expired(time.Now()) {
		return nil, false
	}
	return entry.Reading, true
}

func (c *Coordinator) derive(ctx context.Context, fingerprint string, req service.DeriveRequest) (*model.Reading, error) {
	reading, err := c.deriver.Derive(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &service.CacheEntry{
		Reading:        reading,
		RuleSetVersion: reading.RuleSetVersion,
		ComputedAt:     now,
		ExpiresAt:      now.Add(c.ttl),
	}
	if err := c.store.Set(ctx, fingerprint, entry); err != nil {
		slog.Warn("cache write failed", "fingerprint", fingerprint, "error", err)
	}
	return reading, nil
}
