package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
)

func minimalSet(rule model.Rule) *model.RuleSet {
	return &model.RuleSet{Name: "t", Version: 1, Rules: []model.Rule{rule}}
}

func activeRule(when model.Predicate) model.Rule {
	return model.Rule{
		Key:      "r1",
		Category: "career",
		Active:   true,
		When:     when,
	}
}

func TestCompile_Valid(t *testing.T) {
	compiled, err := Compile(minimalSet(activeRule(model.Predicate{
		Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 7},
	})))
	require.NoError(t, err)
	assert.Equal(t, int64(1), compiled.Version())
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		set  *model.RuleSet
	}{
		{
			name: "non-positive version",
			set:  &model.RuleSet{Name: "t", Version: 0},
		},
		{
			name: "missing rule key",
			set: minimalSet(model.Rule{
				Category: "career", Active: true,
				When: model.Predicate{Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 7}},
			}),
		},
		{
			name: "duplicate rule key",
			set: &model.RuleSet{
				Name: "t", Version: 1,
				Rules: []model.Rule{
					activeRule(model.Predicate{Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 7}}),
					activeRule(model.Predicate{Clause: model.Clause{Entity: "planet", Name: "Mars", House: 1}}),
				},
			},
		},
		{
			name: "missing category",
			set: minimalSet(model.Rule{
				Key: "r1", Active: true,
				When: model.Predicate{Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 7}},
			}),
		},
		{
			name: "unknown planet",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "planet", Name: "Pluto", House: 7},
			})),
		},
		{
			name: "unknown sign",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "planet", Name: "Saturn", Sign: "Ophiuchus"},
			})),
		},
		{
			name: "house out of range",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 13},
			})),
		},
		{
			name: "unknown dosha",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "dosha", Name: "pitru"},
			})),
		},
		{
			name: "unknown entity",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "asteroid", Name: "Ceres"},
			})),
		},
		{
			name: "unknown chart",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "planet", Name: "Venus", Chart: "D60", Sign: "Libra"},
			})),
		},
		{
			name: "divisional clause with house constraint",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "planet", Name: "Venus", Chart: "D9", House: 7},
			})),
		},
		{
			name: "unconstrained planet clause",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "planet", Name: "Saturn"},
			})),
		},
		{
			name: "empty predicate node",
			set:  minimalSet(activeRule(model.Predicate{})),
		},
		{
			name: "ambiguous predicate node",
			set: minimalSet(activeRule(model.Predicate{
				Ref:    "x",
				Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 7},
			})),
		},
		{
			name: "unknown ref",
			set:  minimalSet(activeRule(model.Predicate{Ref: "missing"})),
		},
		{
			name: "confidence out of range",
			set: minimalSet(model.Rule{
				Key: "r1", Category: "career", Active: true, Confidence: 1.5,
				When: model.Predicate{Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 7}},
			}),
		},
		{
			name: "house and houses together",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 7, Houses: []int{1, 2}},
			})),
		},
		{
			name: "house clause without strength",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "house", House: 1},
			})),
		},
		{
			name: "dosha clause with house constraint",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "dosha", Name: "mangal", House: 1},
			})),
		},
		{
			name: "unknown min severity",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "dosha", Name: "mangal", MinSeverity: "catastrophic"},
			})),
		},
		{
			name: "unknown nakshatra",
			set: minimalSet(activeRule(model.Predicate{
				Clause: model.Clause{Entity: "planet", Name: "Moon", Nakshatra: "Polaris"},
			})),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.set)
			require.Error(t, err)
			assert.True(t, common.IsRuleDefinition(err), "expected RuleDefinitionError, got %v", err)
		})
	}
}

func TestCompile_CyclicRefs(t *testing.T) {
	set := &model.RuleSet{
		Name:    "t",
		Version: 1,
		Defs: map[string]model.Predicate{
			"a": {Ref: "b"},
			"b": {Ref: "a"},
		},
	}
	_, err := Compile(set)
	require.Error(t, err)
	assert.True(t, common.IsRuleDefinition(err))
	assert.Contains(t, err.Error(), "cyclic")
}

func TestCompile_SelfCycle(t *testing.T) {
	set := &model.RuleSet{
		Name:    "t",
		Version: 1,
		Defs: map[string]model.Predicate{
			"a": {Ref: "a"},
		},
	}
	_, err := Compile(set)
	require.Error(t, err)
	assert.True(t, common.IsRuleDefinition(err))
}

func TestCompile_NestedRefChainResolves(t *testing.T) {
	set := &model.RuleSet{
		Name:    "t",
		Version: 1,
		Defs: map[string]model.Predicate{
			"base": {Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 7}},
			"deep": {Not: &model.Predicate{Ref: "base"}},
		},
		Rules: []model.Rule{activeRule(model.Predicate{Ref: "deep"})},
	}
	_, err := Compile(set)
	assert.NoError(t, err)
}

func TestCompile_InactiveRulesStillValidated(t *testing.T) {
	set := minimalSet(model.Rule{
		Key: "r1", Category: "career", Active: false,
		When: model.Predicate{Clause: model.Clause{Entity: "planet", Name: "Pluto", House: 7}},
	})
	_, err := Compile(set)
	assert.Error(t, err, "a bad rule fails the load even when inactive")
}

func TestCompile_ErrorNamesRule(t *testing.T) {
	set := minimalSet(activeRule(model.Predicate{
		Clause: model.Clause{Entity: "planet", Name: "Pluto", House: 7},
	}))
	_, err := Compile(set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "r1")
}
