// Package engine orchestrates the full derivation pipeline: ephemeris
// shaping, chart and divisional derivation, dosha detection, house
// strengths and rule evaluation, assembled into one Reading.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/grahalabs/jyotish/internal/astro"
	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
	"github.com/grahalabs/jyotish/internal/rules"
	"github.com/grahalabs/jyotish/internal/service"
)

// Engine derives complete readings against one compiled rule set
// snapshot. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	compiled *rules.CompiledSet
	auditor  service.MatchAuditor
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithAuditor records every derived reading's matches to the audit
// store.
func WithAuditor(auditor service.MatchAuditor) Option {
	return func(e *Engine) {
		e.auditor = auditor
	}
}

// New creates an engine bound to a compiled rule set.
func New(compiled *rules.CompiledSet, opts ...Option) (*Engine, error) {
	if compiled == nil {
		return nil, common.NewConfiguration("rules",
			fmt.Errorf("no compiled rule set provided"))
	}

	e := &Engine{compiled: compiled}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// RuleSetVersion reports the version of the bound rule set.
func (e *Engine) RuleSetVersion() int64 {
	return e.compiled.Version()
}

// Derive runs the whole pipeline for one request. Identical requests
// always produce byte-identical readings.
func (e *Engine) Derive(ctx context.Context, req service.DeriveRequest) (*model.Reading, error) {
	if req.HouseSystem == "" {
		return nil, common.NewConfiguration("house_system",
			fmt.Errorf("house system must be set explicitly"))
	}
	if err := req.Birth.Validate(); err != nil {
		return nil, common.NewInvalidInput("birth", err)
	}
	divisors, err := astro.CanonicalDivisors(req.Divisors)
	if err != nil {
		return nil, err
	}

	positions, err := astro.PositionsFromRaw(req.Positions)
	if err != nil {
		return nil, err
	}
	ascendant, err := astro.AscendantFromRaw(req.Positions)
	if err != nil {
		return nil, err
	}

	chart, err := astro.DeriveChart(ascendant, positions, req.HouseSystem)
	if err != nil {
		return nil, err
	}

	divisionals, err := deriveDivisionals(ctx, &chart, divisors)
	if err != nil {
		return nil, err
	}

	doshas := astro.DetectDoshas(&chart)
	strengths := astro.HouseStrengths(&chart)

	avakahada, err := astro.AvakahadaFor(&chart)
	if err != nil {
		return nil, err
	}
	birthTime, err := req.Birth.Timestamp()
	if err != nil {
		return nil, common.NewInvalidInput("birth", err)
	}
	// The moon exists whenever AvakahadaFor succeeded.
	moon, _ := chart.Position(model.Moon)
	dasha := astro.VimshottariTimeline(birthTime, moon.Longitude)

	facts := rules.NewFacts(&chart, divisionals, strengths, doshas)
	matches, err := e.compiled.Evaluate(ctx, facts)
	if err != nil {
		return nil, err
	}

	fingerprint, err := req.Fingerprint(e.compiled.Version())
	if err != nil {
		return nil, err
	}

	reading := &model.Reading{
		ID:             model.ReadingID(fingerprint),
		Fingerprint:    fingerprint,
		EngineVersion:  astro.EngineVersion,
		Birth:          req.Birth.Canonical(),
		Chart:          chart,
		Avakahada:      &avakahada,
		Dasha:          &dasha,
		Divisionals:    divisionals,
		Strengths:      strengths,
		Doshas:         doshas,
		Matches:        matches,
		RuleSetVersion: e.compiled.Version(),
	}

	if e.auditor != nil {
		if err := e.auditor.RecordMatches(ctx, reading); err != nil {
			// Audit failure never invalidates a correctly derived
			// reading, but it must be visible.
			slog.Error("failed to record match history",
				"reading_id", reading.ID, "error", err)
		}
	}

	return reading, nil
}

// deriveDivisionals computes each requested varga concurrently. The
// result slice is indexed by the canonical divisor order, so assembly
// is deterministic no matter which goroutine finishes first.
func deriveDivisionals(ctx context.Context, chart *model.Chart, divisors []int) ([]model.DivisionalChart, error) {
	if len(divisors) == 0 {
		return nil, nil
	}

	out := make([]model.DivisionalChart, len(divisors))
	g, _ := errgroup.WithContext(ctx)
	for i, divisor := range divisors {
		g.Go(func() error {
			derived, err := astro.DeriveDivisional(chart, divisor)
			if err != nil {
				return err
			}
			out[i] = derived
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
