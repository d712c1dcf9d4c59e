package astro

import (
	"fmt"
	"math"
	"sort"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
)

// varga maps a rashi placement (sign plus degree within it) to a
// divisional sign.
type varga struct {
	transform func(sign model.Sign, degree float64) model.Sign
	name      string
	divisor   int
}

// The supported vargas. Each divides a sign into divisor equal parts
// and reassigns the part to a sign by its own counting scheme.
var vargas = map[int]varga{
	3: {
		name:    "D3",
		divisor: 3,
		// Drekkana: parts fall on the sign itself and the two
		// subsequent trines.
		transform: func(sign model.Sign, degree float64) model.Sign {
			part := int(math.Floor(degree / 10))
			return sign.Add(4 * part)
		},
	},
	9: {
		name:    "D9",
		divisor: 9,
		// Navamsa: a continuous ninth-harmonic count from Aries.
		transform: func(sign model.Sign, degree float64) model.Sign {
			part := int(math.Floor(degree / (30.0 / 9)))
			return model.Sign((int(sign)*9 + part) % 12)
		},
	},
	10: {
		name:    "D10",
		divisor: 10,
		// Dasamsa: odd signs count forward from themselves, even
		// signs count backward.
		transform: func(sign model.Sign, degree float64) model.Sign {
			part := int(math.Floor(degree / 3))
			if sign.IsOdd() {
				return sign.Add(part)
			}
			return sign.Add(-part)
		},
	},
	12: {
		name:    "D12",
		divisor: 12,
		// Dwadasamsa: twelve parts counted forward from the sign.
		transform: func(sign model.Sign, degree float64) model.Sign {
			part := int(math.Floor(degree / 2.5))
			return sign.Add(part)
		},
	},
}

// ParseChartName resolves a divisional chart name like "D9" to its
// divisor.
func ParseChartName(name string) (int, error) {
	for d, v := range vargas {
		if v.name == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown divisional chart %q", name)
}

// SupportedDivisors lists the varga divisors the engine can derive,
// ascending.
func SupportedDivisors() []int {
	out := make([]int, 0, len(vargas))
	for d := range vargas {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// CanonicalDivisors sorts and deduplicates a requested divisional set.
// An unknown divisor is a configuration error; an empty request is
// valid and yields no vargas.
func CanonicalDivisors(requested []int) ([]int, error) {
	seen := make(map[int]bool, len(requested))
	out := make([]int, 0, len(requested))
	for _, d := range requested {
		if _, ok := vargas[d]; !ok {
			return nil, common.NewConfiguration("divisional_charts",
				fmt.Errorf("unsupported divisional chart D%d", d))
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}

// DeriveDivisional computes one varga from a derived chart.
func DeriveDivisional(chart *model.Chart, divisor int) (model.DivisionalChart, error) {
	v, ok := vargas[divisor]
	if !ok {
		return model.DivisionalChart{}, common.NewConfiguration("divisional_charts",
			fmt.Errorf("unsupported divisional chart D%d", divisor))
	}

	out := model.DivisionalChart{
		Name:          v.name,
		Divisor:       v.divisor,
		AscendantSign: v.transform(chart.Ascendant.Sign, chart.Ascendant.DegreeInSign),
		Positions:     make([]model.DivisionalPosition, len(chart.Positions)),
	}
	for i, pos := range chart.Positions {
		out.Positions[i] = model.DivisionalPosition{
			Planet:     pos.Planet,
			Sign:       v.transform(pos.Sign, pos.DegreeInSign),
			Retrograde: pos.Retrograde,
		}
	}
	return out, nil
}
