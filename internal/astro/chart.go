package astro

import (
	"fmt"
	"math"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
)

// DeriveChart places validated positions into houses anchored at the
// ascendant. The house reference is the ascendant's sign start under
// whole_sign and the ascendant degree itself under equal. A planet
// exactly on a cusp belongs to the later house.
func DeriveChart(ascendant float64, positions []model.PlanetPosition, system model.HouseSystem) (model.Chart, error) {
	if !system.Valid() {
		return model.Chart{}, common.NewConfiguration("house_system",
			fmt.Errorf("unknown house system %q", system))
	}
	if !validLongitude(ascendant) {
		return model.Chart{}, common.NewInvalidInput("ascendant",
			fmt.Errorf("ascendant longitude is not a finite number"))
	}

	ascendant = NormalizeLongitude(ascendant)
	ascSign := model.SignFromLongitude(ascendant)

	var reference float64
	switch system {
	case model.WholeSign:
		reference = float64(ascSign) * 30
	case model.Equal:
		reference = ascendant
	}

	chart := model.Chart{
		HouseSystem: system,
		Ascendant: model.Ascendant{
			Longitude:    ascendant,
			Sign:         ascSign,
			DegreeInSign: ascendant - float64(ascSign)*30,
			Nakshatra:    NakshatraAt(ascendant),
		},
	}
	for i := range chart.Houses {
		chart.Houses[i] = ascSign.Add(i)
	}

	chart.Positions = make([]model.PlanetPosition, len(positions))
	for i, pos := range positions {
		house := houseFor(pos.Longitude, reference)
		if house < 1 || house > 12 {
			return model.Chart{}, common.NewComputationInvariant("house_index",
				fmt.Errorf("%s placed in house %d", pos.Planet, house))
		}
		pos.House = house
		chart.Positions[i] = pos
	}

	return chart, nil
}

// houseFor counts whole 30° arcs from the reference point. Floor
// division makes a cusp longitude open the next house.
func houseFor(longitude, reference float64) int {
	arc := NormalizeLongitude(longitude - reference)
	return int(math.Floor(arc/30)) + 1
}
