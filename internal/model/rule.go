package model

import "strings"

// Impact classifies the direction of a rule's interpretation.
type Impact string

// Rule impact directions.
const (
	ImpactPositive Impact = "positive"
	ImpactNeutral  Impact = "neutral"
	ImpactNegative Impact = "negative"
)

// Valid reports whether the impact is a known direction.
func (i Impact) Valid() bool {
	return i == ImpactPositive || i == ImpactNeutral || i == ImpactNegative
}

// Planet selector keywords accepted by clause "name" in addition to
// concrete planet names.
const (
	SelectAny     = "any"
	SelectMalefic = "malefic"
	SelectBenefic = "benefic"
)

// Clause is an atomic condition over one chart entity. Entity selects
// the vocabulary ("planet", "house", "dosha"); the remaining fields
// constrain attributes of that entity. Unset fields do not constrain.
type Clause struct {
	// Entity discriminates the clause vocabulary.
	Entity string `json:"entity,omitempty"`
	// Name selects a planet (a graha name, "malefic", "benefic" or
	// "any") or, for dosha clauses, names the dosha kind.
	Name string `json:"name,omitempty"`
	// Sign constrains the entity's sign by name.
	Sign string `json:"sign,omitempty"`
	// Chart targets a divisional chart such as "D9"; empty means the
	// rashi chart.
	Chart string `json:"chart,omitempty"`
	// Nakshatra constrains a planet's lunar mansion by name.
	Nakshatra string `json:"nakshatra,omitempty"`
	// Strength constrains a house's grade.
	Strength string `json:"strength,omitempty"`
	// MinSeverity constrains a dosha finding's minimum severity.
	MinSeverity string `json:"min_severity,omitempty"`
	// As binds the matched entity to a template variable.
	As string `json:"as,omitempty"`
	// Houses constrains placement to a set of houses.
	Houses []int `json:"houses,omitempty"`
	// Retrograde constrains a planet's motion when set.
	Retrograde *bool `json:"retrograde,omitempty"`
	// Present asserts or denies a dosha finding; nil means present.
	Present *bool `json:"present,omitempty"`
	// House constrains placement to a single house; 0 means any.
	House int `json:"house,omitempty"`
}

// Predicate is one node of a rule's condition tree: exactly one of All,
// Any, Not, Ref or the embedded Clause (signalled by Entity) is set.
type Predicate struct {
	Not *Predicate  `json:"not,omitempty"`
	Ref string      `json:"ref,omitempty"`
	All []Predicate `json:"all,omitempty"`
	Any []Predicate `json:"any,omitempty"`
	Clause
}

// PredicateKind names the variant a predicate node carries.
type PredicateKind string

// Predicate node variants.
const (
	KindAll    PredicateKind = "all"
	KindAny    PredicateKind = "any"
	KindNot    PredicateKind = "not"
	KindRef    PredicateKind = "ref"
	KindClause PredicateKind = "clause"
	KindNone   PredicateKind = ""
)

// Kind reports which variant the node carries, or KindNone when the
// node is empty or ambiguous. Ambiguity is left for validation to
// reject with a precise message.
func (p *Predicate) Kind() PredicateKind {
	var kind PredicateKind
	set := 0
	if len(p.All) > 0 {
		kind, set = KindAll, set+1
	}
	if len(p.Any) > 0 {
		kind, set = KindAny, set+1
	}
	if p.Not != nil {
		kind, set = KindNot, set+1
	}
	if p.Ref != "" {
		kind, set = KindRef, set+1
	}
	if p.Entity != "" {
		kind, set = KindClause, set+1
	}
	if set != 1 {
		return KindNone
	}
	return kind
}

// Rule is one declarative interpretation: a predicate over a derived
// chart plus the structured effect reported when it holds.
type Rule struct {
	When       Predicate `json:"when"`
	Key        string    `json:"key"`
	Category   string    `json:"category"`
	Impact     Impact    `json:"impact"`
	Template   string    `json:"template"`
	Tags       []string  `json:"tags,omitempty"`
	Priority   int       `json:"priority"`
	Confidence float64   `json:"confidence"`
	Active     bool      `json:"active"`
}

// RuleSet is a versioned collection of rules plus named predicate
// definitions that rules may reference by name.
type RuleSet struct {
	Name    string               `json:"name"`
	Defs    map[string]Predicate `json:"defs,omitempty"`
	Rules   []Rule               `json:"rules"`
	Version int64                `json:"version"`
}

// ActiveRules returns the active rules in declaration order.
func (rs *RuleSet) ActiveRules() []Rule {
	out := make([]Rule, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		if r.Active {
			out = append(out, r)
		}
	}
	return out
}

// RuleMatch is one rule that held against a chart, with the evidence
// and variable bindings the evaluation produced.
type RuleMatch struct {
	Bindings   map[string]string `json:"bindings,omitempty"`
	RuleKey    string            `json:"rule_key"`
	Category   string            `json:"category"`
	Impact     Impact            `json:"impact"`
	Template   string            `json:"template"`
	Tags       []string          `json:"tags,omitempty"`
	Evidence   []Evidence        `json:"evidence"`
	Priority   int               `json:"priority"`
	Confidence float64           `json:"confidence"`
}

// RenderedTemplate substitutes {var} placeholders in the template with
// the match's bindings.
func (m *RuleMatch) RenderedTemplate() string {
	if len(m.Bindings) == 0 {
		return m.Template
	}
	pairs := make([]string, 0, len(m.Bindings)*2)
	for name, value := range m.Bindings {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(m.Template)
}
