package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/grahalabs/jyotish/internal/astro"
	"github.com/grahalabs/jyotish/internal/cache"
	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/config"
	"github.com/grahalabs/jyotish/internal/engine"
	"github.com/grahalabs/jyotish/internal/model"
	"github.com/grahalabs/jyotish/internal/rules"
	"github.com/grahalabs/jyotish/internal/service"
	"github.com/grahalabs/jyotish/internal/storage"
)

// requestFile is the on-disk input for derive, preview, transit and
// batch: birth details plus pre-computed sidereal positions.
type requestFile struct {
	Positions astro.RawPositions `json:"positions"`
	Birth     model.BirthInput   `json:"birth"`
}

func readRequestFile(path string) (*requestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	var req requestFile
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}
	return &req, nil
}

func (r *requestFile) toDeriveRequest(settings config.Settings) service.DeriveRequest {
	return service.DeriveRequest{
		Birth:       r.Birth,
		Positions:   r.Positions,
		HouseSystem: settings.HouseSystem,
		Divisors:    settings.DivisionalCharts,
	}
}

// openStorage opens and migrates the configured database, or reports
// that none is configured.
func openStorage(ctx context.Context, settings config.Settings) (*storage.SQLiteStorage, error) {
	if settings.DatabasePath == "" {
		return nil, common.NewConfiguration("database.path",
			fmt.Errorf("no database configured"))
	}
	store, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// resolveRuleSet picks the rule set to evaluate with: an explicit rules
// file wins, then the newest stored snapshot, then the built-in
// classical set.
func resolveRuleSet(ctx context.Context, settings config.Settings) (*rules.CompiledSet, func(), error) {
	cleanup := func() {}

	if settings.RulesPath != "" {
		compiled, err := rules.LoadFile(settings.RulesPath)
		if err != nil {
			return nil, cleanup, err
		}
		return compiled, cleanup, nil
	}

	if settings.DatabasePath != "" {
		store, err := openStorage(ctx, settings)
		if err != nil {
			return nil, cleanup, err
		}
		set, err := store.GetActiveRuleSet(ctx)
		if err != nil {
			_ = store.Close()
			if errors.Is(err, common.ErrNoActiveRuleSet) {
				compiled, cerr := rules.Compile(rules.DefaultRuleSet())
				return compiled, cleanup, cerr
			}
			return nil, cleanup, err
		}
		compiled, err := rules.Compile(set)
		if err != nil {
			_ = store.Close()
			return nil, cleanup, err
		}
		return compiled, func() { _ = store.Close() }, nil
	}

	compiled, err := rules.Compile(rules.DefaultRuleSet())
	return compiled, cleanup, err
}

// buildEngine assembles the derivation engine from settings, wiring
// the audit store when a database is configured.
func buildEngine(ctx context.Context, settings config.Settings) (*engine.Engine, func(), error) {
	compiled, cleanup, err := resolveRuleSet(ctx, settings)
	if err != nil {
		return nil, cleanup, err
	}

	var opts []engine.Option
	if settings.DatabasePath != "" {
		store, err := openStorage(ctx, settings)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		opts = append(opts, engine.WithAuditor(store))
		prev := cleanup
		cleanup = func() {
			_ = store.Close()
			prev()
		}
	}

	e, err := engine.New(compiled, opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return e, cleanup, nil
}

// newCacheStore picks the configured cache backend.
func newCacheStore(ctx context.Context, settings config.Settings) (service.CacheStore, func(), error) {
	switch settings.CacheBackend {
	case "sqlite":
		store, err := openStorage(ctx, settings)
		if err != nil {
			return nil, func() {}, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return cache.NewMemoryStore(), func() {}, nil
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
