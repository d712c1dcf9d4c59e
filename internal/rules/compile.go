package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grahalabs/jyotish/internal/astro"
	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
)

// CompiledSet is a rule set whose predicates have been validated and
// resolved: every name checked against the vocabulary, every ref linked
// to its definition, constants pre-parsed for evaluation. Compilation
// failures are RuleDefinitionErrors; a set that compiles cannot fail
// structurally at evaluation time.
type CompiledSet struct {
	set   *model.RuleSet
	defs  map[string]*compiledNode
	rules []compiledRule
}

type compiledRule struct {
	root *compiledNode
	rule model.Rule
}

type compiledNode struct {
	clause   *compiledClause
	child    *compiledNode
	ref      *compiledNode
	children []*compiledNode
	kind     model.PredicateKind
}

type compiledClause struct {
	houseSet    map[int]bool
	sign        *model.Sign
	retrograde  *bool
	entity      string
	chart       string
	nakshatra   string
	as          string
	candidates  []model.Planet
	doshaKind   model.DoshaKind
	strength    model.StrengthGrade
	minSeverity model.Severity
	present     bool
}

// Version reports the compiled set's declared version.
func (c *CompiledSet) Version() int64 {
	return c.set.Version
}

// Set returns the underlying rule set.
func (c *CompiledSet) Set() *model.RuleSet {
	return c.set
}

// Compile validates a rule set and prepares it for evaluation. Every
// structural problem is reported as a RuleDefinitionError naming the
// offending rule or definition.
func Compile(set *model.RuleSet) (*CompiledSet, error) {
	if set.Version <= 0 {
		return nil, common.NewRuleDefinition("",
			fmt.Errorf("rule set version must be positive, got %d", set.Version))
	}

	if err := checkDefCycles(set.Defs); err != nil {
		return nil, err
	}

	c := &CompiledSet{
		set:  set,
		defs: make(map[string]*compiledNode, len(set.Defs)),
	}

	// Defs are compiled in name order so error reporting is stable.
	defNames := make([]string, 0, len(set.Defs))
	for name := range set.Defs {
		defNames = append(defNames, name)
	}
	sort.Strings(defNames)
	for _, name := range defNames {
		def := set.Defs[name]
		node, err := c.compileNode(&def, "defs."+name)
		if err != nil {
			return nil, err
		}
		c.defs[name] = node
	}

	seen := make(map[string]bool, len(set.Rules))
	for i := range set.Rules {
		rule := set.Rules[i]
		if rule.Key == "" {
			return nil, common.NewRuleDefinition("",
				fmt.Errorf("rule at index %d has no key", i))
		}
		if seen[rule.Key] {
			return nil, common.NewRuleDefinition(rule.Key,
				fmt.Errorf("duplicate rule key"))
		}
		seen[rule.Key] = true

		if rule.Category == "" {
			return nil, common.NewRuleDefinition(rule.Key,
				fmt.Errorf("rule has no category"))
		}
		if rule.Impact != "" && !rule.Impact.Valid() {
			return nil, common.NewRuleDefinition(rule.Key,
				fmt.Errorf("unknown impact %q", rule.Impact))
		}
		if rule.Confidence < 0 || rule.Confidence > 1 {
			return nil, common.NewRuleDefinition(rule.Key,
				fmt.Errorf("confidence %v outside [0, 1]", rule.Confidence))
		}

		root, err := c.compileNode(&rule.When, rule.Key)
		if err != nil {
			return nil, err
		}
		if rule.Active {
			c.rules = append(c.rules, compiledRule{rule: rule, root: root})
		}
	}

	return c, nil
}

// checkDefCycles walks the reference graph among named definitions and
// rejects any cycle.
func checkDefCycles(defs map[string]model.Predicate) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(defs))

	var visit func(name string, trail []string) error
	visit = func(name string, trail []string) error {
		switch color[name] {
		case gray:
			cycle := append(trail, name)
			return common.NewRuleDefinition("",
				fmt.Errorf("cyclic predicate reference %s", strings.Join(cycle, " -> ")))
		case black:
			return nil
		}
		color[name] = gray
		def := defs[name]
		for _, ref := range collectRefs(&def) {
			if _, ok := defs[ref]; !ok {
				continue // reported during node compilation
			}
			if err := visit(ref, append(trail, name)); err != nil {
				return err
			}
		}
		color[name] = black
		return nil
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	return nil
}

func collectRefs(p *model.Predicate) []string {
	var refs []string
	switch p.Kind() {
	case model.KindRef:
		refs = append(refs, p.Ref)
	case model.KindNot:
		refs = append(refs, collectRefs(p.Not)...)
	case model.KindAll:
		for i := range p.All {
			refs = append(refs, collectRefs(&p.All[i])...)
		}
	case model.KindAny:
		for i := range p.Any {
			refs = append(refs, collectRefs(&p.Any[i])...)
		}
	}
	return refs
}

func (c *CompiledSet) compileNode(p *model.Predicate, where string) (*compiledNode, error) {
	kind := p.Kind()
	switch kind {
	case model.KindAll, model.KindAny:
		list := p.All
		if kind == model.KindAny {
			list = p.Any
		}
		node := &compiledNode{kind: kind, children: make([]*compiledNode, 0, len(list))}
		for i := range list {
			child, err := c.compileNode(&list[i], where)
			if err != nil {
				return nil, err
			}
			node.children = append(node.children, child)
		}
		return node, nil

	case model.KindNot:
		child, err := c.compileNode(p.Not, where)
		if err != nil {
			return nil, err
		}
		return &compiledNode{kind: kind, child: child}, nil

	case model.KindRef:
		def, ok := c.defs[p.Ref]
		if !ok {
			return nil, common.NewRuleDefinition(where,
				fmt.Errorf("reference to unknown definition %q", p.Ref))
		}
		return &compiledNode{kind: kind, ref: def}, nil

	case model.KindClause:
		clause, err := compileClause(&p.Clause, where)
		if err != nil {
			return nil, err
		}
		return &compiledNode{kind: kind, clause: clause}, nil

	default:
		return nil, common.NewRuleDefinition(where,
			fmt.Errorf("predicate node must set exactly one of all, any, not, ref or entity"))
	}
}

func compileClause(cl *model.Clause, where string) (*compiledClause, error) {
	switch cl.Entity {
	case model.EvidencePlanet:
		return compilePlanetClause(cl, where)
	case model.EvidenceHouse:
		return compileHouseClause(cl, where)
	case model.EvidenceDosha:
		return compileDoshaClause(cl, where)
	default:
		return nil, common.NewRuleDefinition(where,
			fmt.Errorf("unknown clause entity %q", cl.Entity))
	}
}

func compilePlanetClause(cl *model.Clause, where string) (*compiledClause, error) {
	out := &compiledClause{
		entity:     cl.Entity,
		chart:      cl.Chart,
		nakshatra:  cl.Nakshatra,
		retrograde: cl.Retrograde,
		as:         cl.As,
	}

	switch cl.Name {
	case "", model.SelectAny:
		out.candidates = model.Planets
	case model.SelectMalefic:
		for _, p := range model.Planets {
			if p.IsMalefic() {
				out.candidates = append(out.candidates, p)
			}
		}
	case model.SelectBenefic:
		for _, p := range model.Planets {
			if p.IsBenefic() {
				out.candidates = append(out.candidates, p)
			}
		}
	default:
		planet, err := model.ParsePlanet(cl.Name)
		if err != nil {
			return nil, common.NewRuleDefinition(where, err)
		}
		out.candidates = []model.Planet{planet}
	}

	houseSet, err := compileHouseSet(cl, where)
	if err != nil {
		return nil, err
	}
	out.houseSet = houseSet

	if cl.Sign != "" {
		sign, err := model.ParseSign(cl.Sign)
		if err != nil {
			return nil, common.NewRuleDefinition(where, err)
		}
		out.sign = &sign
	}
	if cl.Nakshatra != "" {
		if _, err := astro.NakshatraIndex(cl.Nakshatra); err != nil {
			return nil, common.NewRuleDefinition(where, err)
		}
	}
	if cl.Chart != "" {
		if _, err := astro.ParseChartName(cl.Chart); err != nil {
			return nil, common.NewRuleDefinition(where, err)
		}
		if out.houseSet != nil || cl.Nakshatra != "" {
			return nil, common.NewRuleDefinition(where,
				fmt.Errorf("divisional clause %q may only constrain sign and motion", cl.Chart))
		}
	}
	if cl.Strength != "" || cl.Present != nil || cl.MinSeverity != "" {
		return nil, common.NewRuleDefinition(where,
			fmt.Errorf("planet clause cannot use strength, present or min_severity"))
	}
	if out.houseSet == nil && out.sign == nil && cl.Nakshatra == "" && cl.Retrograde == nil {
		return nil, common.NewRuleDefinition(where,
			fmt.Errorf("planet clause constrains nothing"))
	}
	return out, nil
}

func compileHouseClause(cl *model.Clause, where string) (*compiledClause, error) {
	if cl.Strength == "" {
		return nil, common.NewRuleDefinition(where,
			fmt.Errorf("house clause requires a strength"))
	}
	switch model.StrengthGrade(cl.Strength) {
	case model.StrengthStrong, model.StrengthAverage, model.StrengthWeak:
	default:
		return nil, common.NewRuleDefinition(where,
			fmt.Errorf("unknown strength %q", cl.Strength))
	}
	if cl.Name != "" || cl.Sign != "" || cl.Chart != "" || cl.Nakshatra != "" ||
		cl.Retrograde != nil || cl.Present != nil || cl.MinSeverity != "" {
		return nil, common.NewRuleDefinition(where,
			fmt.Errorf("house clause may only constrain house and strength"))
	}

	houseSet, err := compileHouseSet(cl, where)
	if err != nil {
		return nil, err
	}
	return &compiledClause{
		entity:   cl.Entity,
		houseSet: houseSet,
		strength: model.StrengthGrade(cl.Strength),
		as:       cl.As,
	}, nil
}

func compileDoshaClause(cl *model.Clause, where string) (*compiledClause, error) {
	out := &compiledClause{entity: cl.Entity, present: true, as: cl.As}

	var known bool
	for _, kind := range model.DoshaKinds {
		if string(kind) == cl.Name {
			known = true
			break
		}
	}
	if !known {
		return nil, common.NewRuleDefinition(where,
			fmt.Errorf("unknown dosha %q", cl.Name))
	}
	out.doshaKind = model.DoshaKind(cl.Name)

	if cl.Present != nil {
		out.present = *cl.Present
	}
	if cl.MinSeverity != "" {
		sev, err := model.ParseSeverity(cl.MinSeverity)
		if err != nil {
			return nil, common.NewRuleDefinition(where, err)
		}
		out.minSeverity = sev
	}
	if cl.House != 0 || len(cl.Houses) > 0 || cl.Sign != "" || cl.Chart != "" ||
		cl.Nakshatra != "" || cl.Retrograde != nil || cl.Strength != "" {
		return nil, common.NewRuleDefinition(where,
			fmt.Errorf("dosha clause may only constrain presence and min_severity"))
	}
	return out, nil
}

func compileHouseSet(cl *model.Clause, where string) (map[int]bool, error) {
	if cl.House != 0 && len(cl.Houses) > 0 {
		return nil, common.NewRuleDefinition(where,
			fmt.Errorf("house and houses are mutually exclusive"))
	}
	if cl.House != 0 {
		if cl.House < 1 || cl.House > 12 {
			return nil, common.NewRuleDefinition(where,
				fmt.Errorf("house %d outside 1..12", cl.House))
		}
		return map[int]bool{cl.House: true}, nil
	}
	if len(cl.Houses) > 0 {
		set := make(map[int]bool, len(cl.Houses))
		for _, h := range cl.Houses {
			if h < 1 || h > 12 {
				return nil, common.NewRuleDefinition(where,
					fmt.Errorf("house %d outside 1..12", h))
			}
			set[h] = true
		}
		return set, nil
	}
	return nil, nil
}
