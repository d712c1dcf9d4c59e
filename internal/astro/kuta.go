package astro

import "github.com/grahalabs/jyotish/internal/model"

// Ashta koota maximums, in evaluation order.
const (
	varnaMax       = 1.0
	vashyaMax      = 2.0
	taraMax        = 3.0
	yoniMax        = 4.0
	grahaMaitriMax = 5.0
	ganaMax        = 6.0
	bhakootMax     = 7.0
	nadiMax        = 8.0
	kutaTotalMax   = 36.0
)

var varnaRank = map[string]int{"Brahmin": 4, "Kshatriya": 3, "Vaishya": 2, "Shudra": 1}

// Condensed classical vashya affinities for unequal classes.
var vashyaAffinity = map[[2]string]float64{
	{"Chatushpada", "Jalachara"}: 1,
	{"Chatushpada", "Keeta"}:     0.5,
	{"Chatushpada", "Manava"}:    1,
	{"Chatushpada", "Vanachara"}: 0,
	{"Jalachara", "Keeta"}:       1,
	{"Jalachara", "Manava"}:      0.5,
	{"Jalachara", "Vanachara"}:   0,
	{"Keeta", "Manava"}:          0.5,
	{"Keeta", "Vanachara"}:       0,
	{"Manava", "Vanachara"}:      0,
}

// Mutually hostile yoni animals.
var yoniEnemies = map[[2]string]bool{
	{"Cow", "Tiger"}:        true,
	{"Elephant", "Lion"}:    true,
	{"Buffalo", "Horse"}:    true,
	{"Deer", "Dog"}:         true,
	{"Mongoose", "Serpent"}: true,
	{"Monkey", "Sheep"}:     true,
	{"Cat", "Rat"}:          true,
}

var planetFriends = map[model.Planet][]model.Planet{
	model.Sun:     {model.Moon, model.Mars, model.Jupiter},
	model.Moon:    {model.Sun, model.Mercury},
	model.Mars:    {model.Sun, model.Moon, model.Jupiter},
	model.Mercury: {model.Sun, model.Venus},
	model.Jupiter: {model.Sun, model.Moon, model.Mars},
	model.Venus:   {model.Mercury, model.Saturn},
	model.Saturn:  {model.Mercury, model.Venus},
}

var planetEnemies = map[model.Planet][]model.Planet{
	model.Sun:     {model.Venus, model.Saturn},
	model.Moon:    {},
	model.Mars:    {model.Mercury},
	model.Mercury: {model.Moon},
	model.Jupiter: {model.Mercury, model.Venus},
	model.Venus:   {model.Sun, model.Moon},
	model.Saturn:  {model.Sun, model.Moon, model.Mars},
}

// Compatibility evaluates the eight kutas between two charts. The first
// chart takes the proposer's role where a koota is asymmetric.
func Compatibility(first, second *model.Chart) (model.CompatibilityResult, error) {
	a, err := AvakahadaFor(first)
	if err != nil {
		return model.CompatibilityResult{}, err
	}
	b, err := AvakahadaFor(second)
	if err != nil {
		return model.CompatibilityResult{}, err
	}

	nadi := nadiMax
	nadiDosha := a.Nadi == b.Nadi
	if nadiDosha {
		nadi = 0
	}

	bhakoot := bhakootMax
	bhakootDosha := badBhakoot(a.Rashi, b.Rashi)
	if bhakootDosha {
		bhakoot = 0
	}

	result := model.CompatibilityResult{
		Kutas: []model.KutaScore{
			{Name: "varna", Points: varnaKuta(a, b), Max: varnaMax},
			{Name: "vashya", Points: vashyaKuta(a, b), Max: vashyaMax},
			{Name: "tara", Points: taraKuta(a, b), Max: taraMax},
			{Name: "yoni", Points: yoniKuta(a, b), Max: yoniMax},
			{Name: "graha_maitri", Points: grahaMaitriKuta(a, b), Max: grahaMaitriMax},
			{Name: "gana", Points: ganaKuta(a, b), Max: ganaMax},
			{Name: "bhakoot", Points: bhakoot, Max: bhakootMax},
			{Name: "nadi", Points: nadi, Max: nadiMax},
		},
		Max:          kutaTotalMax,
		NadiDosha:    nadiDosha,
		BhakootDosha: bhakootDosha,
	}
	for _, k := range result.Kutas {
		result.Total += k.Points
	}
	result.Verdict = kutaVerdict(result.Total)
	return result, nil
}

func varnaKuta(a, b model.Avakahada) float64 {
	if varnaRank[a.Varna] >= varnaRank[b.Varna] {
		return varnaMax
	}
	return 0
}

func vashyaKuta(a, b model.Avakahada) float64 {
	if a.Vashya == b.Vashya {
		return vashyaMax
	}
	return vashyaAffinity[orderedPair(a.Vashya, b.Vashya)]
}

// taraKuta counts mansions from the second chart's star to the first's
// and folds the count into the nine taras.
func taraKuta(a, b model.Avakahada) float64 {
	count := ((a.Nakshatra.Index-b.Nakshatra.Index)%27+27)%27 + 1
	tara := (count-1)%9 + 1
	switch tara {
	case 3, 5, 7:
		return taraMax
	case 9:
		return 0
	default:
		return 1.5
	}
}

func yoniKuta(a, b model.Avakahada) float64 {
	switch {
	case a.Yoni == b.Yoni:
		return yoniMax
	case yoniEnemies[orderedPair(a.Yoni, b.Yoni)]:
		return 0
	default:
		return 2
	}
}

func grahaMaitriKuta(a, b model.Avakahada) float64 {
	if a.RashiLord == b.RashiLord {
		return grahaMaitriMax
	}
	r1 := lordRelation(a.RashiLord, b.RashiLord)
	r2 := lordRelation(b.RashiLord, a.RashiLord)
	switch {
	case r1 == relationFriend && r2 == relationFriend:
		return 5
	case (r1 == relationFriend && r2 == relationNeutral) || (r1 == relationNeutral && r2 == relationFriend):
		return 4
	case r1 == relationNeutral && r2 == relationNeutral:
		return 3
	case (r1 == relationFriend && r2 == relationEnemy) || (r1 == relationEnemy && r2 == relationFriend):
		return 1
	case (r1 == relationNeutral && r2 == relationEnemy) || (r1 == relationEnemy && r2 == relationNeutral):
		return 0.5
	default:
		return 0
	}
}

func ganaKuta(a, b model.Avakahada) float64 {
	if a.Gana == b.Gana {
		return ganaMax
	}
	pair := orderedPair(a.Gana, b.Gana)
	switch pair {
	case [2]string{"Deva", "Manushya"}:
		return 5
	case [2]string{"Deva", "Rakshasa"}:
		return 1
	default:
		return 0
	}
}

func badBhakoot(a, b model.Sign) bool {
	d1 := a.DistanceTo(b)
	d2 := b.DistanceTo(a)
	lo, hi := d1, d2
	if lo > hi {
		lo, hi = hi, lo
	}
	return (lo == 2 && hi == 12) || (lo == 5 && hi == 9) || (lo == 6 && hi == 8)
}

func kutaVerdict(total float64) string {
	switch {
	case total >= 30:
		return "excellent"
	case total >= 24:
		return "very good"
	case total >= 18:
		return "good"
	default:
		return "challenging"
	}
}

type relation int

const (
	relationNeutral relation = iota
	relationFriend
	relationEnemy
)

func lordRelation(from, to model.Planet) relation {
	for _, p := range planetFriends[from] {
		if p == to {
			return relationFriend
		}
	}
	for _, p := range planetEnemies[from] {
		if p == to {
			return relationEnemy
		}
	}
	return relationNeutral
}

func orderedPair(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}
