// Package rules compiles and evaluates declarative interpretation rules
// against derived charts.
package rules

import (
	"context"

	"github.com/grahalabs/jyotish/internal/model"
)

// Evaluator runs a compiled rule set against chart facts.
type Evaluator interface {
	// Evaluate returns every active rule that holds, sorted by
	// priority descending then rule key ascending.
	Evaluate(ctx context.Context, facts *Facts) ([]model.RuleMatch, error)
}

// Facts is everything a rule may observe about one derived reading.
type Facts struct {
	Chart       *model.Chart
	Divisionals map[string]*model.DivisionalChart
	Strengths   []model.HouseStrength
	Doshas      []model.DoshaFinding
}

// NewFacts assembles the evaluation context from derived parts.
// Divisionals are keyed by their chart name.
func NewFacts(chart *model.Chart, divisionals []model.DivisionalChart, strengths []model.HouseStrength, doshas []model.DoshaFinding) *Facts {
	byName := make(map[string]*model.DivisionalChart, len(divisionals))
	for i := range divisionals {
		byName[divisionals[i].Name] = &divisionals[i]
	}
	return &Facts{
		Chart:       chart,
		Divisionals: byName,
		Strengths:   strengths,
		Doshas:      doshas,
	}
}

// Rule is an alias to the model rule type for convenience.
type Rule = model.Rule
