package rules

import "github.com/grahalabs/jyotish/internal/model"

func boolPtr(b bool) *bool { return &b }

// DefaultRuleSet returns the built-in classical rule set used when no
// rule set has been imported yet.
func DefaultRuleSet() *model.RuleSet {
	return &model.RuleSet{
		Name:    "classical-core",
		Version: 1,
		Defs: map[string]model.Predicate{
			// A benefic occupying an angular house.
			"kendra_benefic": {
				Clause: model.Clause{
					Entity: "planet",
					Name:   model.SelectBenefic,
					Houses: []int{1, 4, 7, 10},
					As:     "benefic",
				},
			},
			// A malefic occupying the eighth or twelfth.
			"dusthana_malefic": {
				Clause: model.Clause{
					Entity: "planet",
					Name:   model.SelectMalefic,
					Houses: []int{8, 12},
					As:     "malefic",
				},
			},
		},
		Rules: []model.Rule{
			{
				Key:        "jupiter-kendra",
				Category:   "career",
				Impact:     model.ImpactPositive,
				Priority:   90,
				Confidence: 0.9,
				Template:   "Jupiter in house {house} supports growth through guidance and judgment",
				Tags:       []string{"jupiter", "kendra"},
				Active:     true,
				When: model.Predicate{
					Clause: model.Clause{
						Entity: "planet",
						Name:   "Jupiter",
						Houses: []int{1, 4, 7, 10},
						As:     "house",
					},
				},
			},
			{
				Key:        "exalted-sun",
				Category:   "career",
				Impact:     model.ImpactPositive,
				Priority:   85,
				Confidence: 0.85,
				Template:   "The Sun in Aries lends authority and initiative",
				Tags:       []string{"sun", "exaltation"},
				Active:     true,
				When: model.Predicate{
					Clause: model.Clause{Entity: "planet", Name: "Sun", Sign: "Aries"},
				},
			},
			{
				Key:        "debilitated-sun",
				Category:   "career",
				Impact:     model.ImpactNegative,
				Priority:   85,
				Confidence: 0.85,
				Template:   "The Sun in Libra asks for effort before recognition arrives",
				Tags:       []string{"sun", "debilitation"},
				Active:     true,
				When: model.Predicate{
					Clause: model.Clause{Entity: "planet", Name: "Sun", Sign: "Libra"},
				},
			},
			{
				Key:        "mangal-presence",
				Category:   "relationships",
				Impact:     model.ImpactNegative,
				Priority:   80,
				Confidence: 0.8,
				Template:   "Mars afflicts the houses of partnership",
				Tags:       []string{"mangal", "dosha"},
				Active:     true,
				When: model.Predicate{
					Clause: model.Clause{Entity: "dosha", Name: "mangal"},
				},
			},
			{
				Key:        "kaal-sarp-axis",
				Category:   "karma",
				Impact:     model.ImpactNegative,
				Priority:   95,
				Confidence: 0.9,
				Template:   "All grahas hemmed along the nodal axis concentrate karmic pressure",
				Tags:       []string{"kaal_sarp", "dosha"},
				Active:     true,
				When: model.Predicate{
					Clause: model.Clause{
						Entity:      "dosha",
						Name:        "kaal_sarp",
						MinSeverity: "high",
					},
				},
			},
			{
				Key:        "venus-seventh-clean",
				Category:   "relationships",
				Impact:     model.ImpactPositive,
				Priority:   75,
				Confidence: 0.8,
				Template:   "Venus in the seventh house free of Mars affliction favors partnership",
				Tags:       []string{"venus", "marriage"},
				Active:     true,
				When: model.Predicate{
					All: []model.Predicate{
						{Clause: model.Clause{Entity: "planet", Name: "Venus", House: 7}},
						{Not: &model.Predicate{
							Clause: model.Clause{Entity: "dosha", Name: "mangal"},
						}},
					},
				},
			},
			{
				Key:        "saturn-seventh",
				Category:   "relationships",
				Impact:     model.ImpactNeutral,
				Priority:   70,
				Confidence: 0.75,
				Template:   "Saturn in the seventh steadies partnership through patience",
				Tags:       []string{"saturn"},
				Active:     true,
				When: model.Predicate{
					Clause: model.Clause{Entity: "planet", Name: "Saturn", House: 7},
				},
			},
			{
				Key:        "angular-benefic",
				Category:   "wellbeing",
				Impact:     model.ImpactPositive,
				Priority:   60,
				Confidence: 0.7,
				Template:   "{benefic} anchors an angle of the chart",
				Tags:       []string{"kendra"},
				Active:     true,
				When:       model.Predicate{Ref: "kendra_benefic"},
			},
			{
				Key:        "hidden-malefic",
				Category:   "wellbeing",
				Impact:     model.ImpactNegative,
				Priority:   55,
				Confidence: 0.65,
				Template:   "{malefic} works from a hidden house",
				Tags:       []string{"dusthana"},
				Active:     true,
				When:       model.Predicate{Ref: "dusthana_malefic"},
			},
			{
				Key:        "strong-first-house",
				Category:   "wellbeing",
				Impact:     model.ImpactPositive,
				Priority:   65,
				Confidence: 0.75,
				Template:   "A strong first house carries the whole chart",
				Tags:       []string{"lagna"},
				Active:     true,
				When: model.Predicate{
					Clause: model.Clause{Entity: "house", House: 1, Strength: "strong"},
				},
			},
			{
				Key:        "weak-house-warning",
				Category:   "wellbeing",
				Impact:     model.ImpactNegative,
				Priority:   50,
				Confidence: 0.6,
				Template:   "House {weak_house} needs support",
				Tags:       []string{"strength"},
				Active:     true,
				When: model.Predicate{
					Clause: model.Clause{Entity: "house", Strength: "weak", As: "weak_house"},
				},
			},
			{
				Key:        "navamsa-venus-own",
				Category:   "relationships",
				Impact:     model.ImpactPositive,
				Priority:   72,
				Confidence: 0.8,
				Template:   "Venus holds its own navamsa, deepening commitments",
				Tags:       []string{"navamsa", "venus"},
				Active:     true,
				When: model.Predicate{
					Any: []model.Predicate{
						{Clause: model.Clause{Entity: "planet", Name: "Venus", Chart: "D9", Sign: "Taurus"}},
						{Clause: model.Clause{Entity: "planet", Name: "Venus", Chart: "D9", Sign: "Libra"}},
					},
				},
			},
			{
				Key:        "retrograde-mercury",
				Category:   "mind",
				Impact:     model.ImpactNeutral,
				Priority:   40,
				Confidence: 0.6,
				Template:   "Mercury retrograde turns thought inward",
				Tags:       []string{"mercury", "retrograde"},
				Active:     true,
				When: model.Predicate{
					Clause: model.Clause{Entity: "planet", Name: "Mercury", Retrograde: boolPtr(true)},
				},
			},
			{
				Key:        "moon-rohini",
				Category:   "mind",
				Impact:     model.ImpactPositive,
				Priority:   45,
				Confidence: 0.7,
				Template:   "The Moon in Rohini rests in its favorite mansion",
				Tags:       []string{"moon", "nakshatra"},
				Active:     true,
				When: model.Predicate{
					Clause: model.Clause{Entity: "planet", Name: "Moon", Nakshatra: "Rohini"},
				},
			},
		},
	}
}
