package rules

import (
	"context"
	"sort"
	"strconv"

	"github.com/grahalabs/jyotish/internal/model"
)

// evalState accumulates evidence and bindings along one rule's
// evaluation. The first value bound to a variable wins; later clauses
// never rebind it.
type evalState struct {
	bindings map[string]string
	evidence []model.Evidence
}

func (s *evalState) bind(name, value string) {
	if name == "" {
		return
	}
	if s.bindings == nil {
		s.bindings = make(map[string]string)
	}
	if _, exists := s.bindings[name]; !exists {
		s.bindings[name] = value
	}
}

// Evaluate runs every active rule against the facts. Matches come back
// sorted by priority descending, then rule key ascending; evaluation
// order never influences the result.
func (c *CompiledSet) Evaluate(ctx context.Context, facts *Facts) ([]model.RuleMatch, error) {
	matches := make([]model.RuleMatch, 0, len(c.rules))
	for _, cr := range c.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state := &evalState{}
		if !evalNode(cr.root, facts, state) {
			continue
		}

		match := model.RuleMatch{
			RuleKey:    cr.rule.Key,
			Category:   cr.rule.Category,
			Impact:     cr.rule.Impact,
			Template:   cr.rule.Template,
			Priority:   cr.rule.Priority,
			Confidence: cr.rule.Confidence,
			Evidence:   state.evidence,
			Bindings:   state.bindings,
		}
		if len(cr.rule.Tags) > 0 {
			match.Tags = append([]string(nil), cr.rule.Tags...)
		}
		if match.Impact == "" {
			match.Impact = model.ImpactNeutral
		}
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Priority != matches[j].Priority {
			return matches[i].Priority > matches[j].Priority
		}
		return matches[i].RuleKey < matches[j].RuleKey
	})
	return matches, nil
}

func evalNode(node *compiledNode, facts *Facts, state *evalState) bool {
	switch node.kind {
	case model.KindAll:
		for _, child := range node.children {
			if !evalNode(child, facts, state) {
				return false
			}
		}
		return true

	case model.KindAny:
		// The first branch that holds, in declaration order,
		// contributes the evidence. A failed branch must leave no
		// trace, so each one works on its own copy.
		for _, child := range node.children {
			scratch := &evalState{evidence: state.evidence}
			if len(state.bindings) > 0 {
				scratch.bindings = make(map[string]string, len(state.bindings))
				for k, v := range state.bindings {
					scratch.bindings[k] = v
				}
			}
			if evalNode(child, facts, scratch) {
				state.bindings = scratch.bindings
				state.evidence = scratch.evidence
				return true
			}
		}
		return false

	case model.KindNot:
		// Nothing observed inside a failed subtree survives.
		scratch := &evalState{}
		return !evalNode(node.child, facts, scratch)

	case model.KindRef:
		return evalNode(node.ref, facts, state)

	case model.KindClause:
		return evalClause(node.clause, facts, state)

	default:
		return false
	}
}

func evalClause(cl *compiledClause, facts *Facts, state *evalState) bool {
	switch cl.entity {
	case model.EvidencePlanet:
		return evalPlanetClause(cl, facts, state)
	case model.EvidenceHouse:
		return evalHouseClause(cl, facts, state)
	case model.EvidenceDosha:
		return evalDoshaClause(cl, facts, state)
	default:
		return false
	}
}

// evalPlanetClause scans candidates in canonical planet order and takes
// the first placement satisfying every constraint.
func evalPlanetClause(cl *compiledClause, facts *Facts, state *evalState) bool {
	if cl.chart != "" {
		div, ok := facts.Divisionals[cl.chart]
		if !ok {
			return false
		}
		for _, planet := range cl.candidates {
			pos, ok := div.Position(planet)
			if !ok {
				continue
			}
			if cl.sign != nil && pos.Sign != *cl.sign {
				continue
			}
			if cl.retrograde != nil && pos.Retrograde != *cl.retrograde {
				continue
			}
			state.evidence = append(state.evidence, model.Evidence{
				Entity:     model.EvidencePlanet,
				Key:        string(planet),
				Chart:      cl.chart,
				Sign:       pos.Sign.String(),
				Retrograde: pos.Retrograde,
			})
			state.bind(cl.as, string(planet))
			return true
		}
		return false
	}

	for _, planet := range cl.candidates {
		pos, ok := facts.Chart.Position(planet)
		if !ok {
			continue
		}
		if cl.houseSet != nil && !cl.houseSet[pos.House] {
			continue
		}
		if cl.sign != nil && pos.Sign != *cl.sign {
			continue
		}
		if cl.nakshatra != "" && pos.Nakshatra.Name != cl.nakshatra {
			continue
		}
		if cl.retrograde != nil && pos.Retrograde != *cl.retrograde {
			continue
		}
		state.evidence = append(state.evidence, model.Evidence{
			Entity:     model.EvidencePlanet,
			Key:        string(planet),
			Sign:       pos.Sign.String(),
			Nakshatra:  pos.Nakshatra.Name,
			Degree:     pos.DegreeInSign,
			House:      pos.House,
			Retrograde: pos.Retrograde,
		})
		state.bind(cl.as, string(planet))
		return true
	}
	return false
}

// evalHouseClause scans houses in ascending order and takes the first
// with the required grade.
func evalHouseClause(cl *compiledClause, facts *Facts, state *evalState) bool {
	for _, hs := range facts.Strengths {
		if cl.houseSet != nil && !cl.houseSet[hs.House] {
			continue
		}
		if hs.Grade != cl.strength {
			continue
		}
		state.evidence = append(state.evidence, model.Evidence{
			Entity:   model.EvidenceHouse,
			Key:      strconv.Itoa(hs.House),
			Strength: string(hs.Grade),
			House:    hs.House,
		})
		state.bind(cl.as, strconv.Itoa(hs.House))
		return true
	}
	return false
}

func evalDoshaClause(cl *compiledClause, facts *Facts, state *evalState) bool {
	for _, f := range facts.Doshas {
		if f.Kind != cl.doshaKind {
			continue
		}
		if cl.minSeverity != 0 && f.Severity < cl.minSeverity {
			continue
		}
		if !cl.present {
			return false
		}
		state.evidence = append(state.evidence, model.Evidence{
			Entity:   model.EvidenceDosha,
			Key:      string(f.Kind),
			Severity: f.Severity.String(),
			Variant:  f.Variant,
		})
		state.bind(cl.as, string(f.Kind))
		return true
	}

	if cl.present {
		return false
	}
	// A denied dosha matches by absence; the evidence records what was
	// checked.
	state.evidence = append(state.evidence, model.Evidence{
		Entity: model.EvidenceDosha,
		Key:    string(cl.doshaKind),
	})
	return true
}
