// Package astro derives Vedic charts from pre-computed sidereal
// positions: houses, nakshatras, divisional charts, doshas, dashas and
// transits. Everything here is a pure function of its inputs.
package astro

import (
	"fmt"
	"math"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
)

// EngineVersion identifies the derivation semantics. Bump it when a
// formula or convention changes so downstream consumers can tell
// recomputed readings from stale ones.
const EngineVersion = "1.2.0"

// RawPlanet is one supplied sidereal position with its daily motion.
type RawPlanet struct {
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
}

// RawPositions is the pre-computed sidereal input the engine derives
// from. Positions arrive from an external ephemeris; the engine never
// computes astronomy itself.
type RawPositions struct {
	Planets   map[string]RawPlanet `json:"planets"`
	Ascendant float64              `json:"ascendant"`
}

// NormalizeLongitude wraps a longitude into [0, 360).
func NormalizeLongitude(longitude float64) float64 {
	normalized := math.Mod(longitude, 360)
	if normalized < 0 {
		normalized += 360
	}
	return normalized
}

func validLongitude(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PositionsFromRaw validates and adapts supplied positions into
// canonically ordered placements. Houses are not assigned here; that
// requires an ascendant and a house system.
//
// Ketu is synthesized opposite Rahu when absent. Both nodes are always
// retrograde regardless of the supplied speed.
func PositionsFromRaw(raw RawPositions) ([]model.PlanetPosition, error) {
	for name := range raw.Planets {
		if _, err := model.ParsePlanet(name); err != nil {
			return nil, common.NewInvalidInput("planets", err)
		}
	}

	supplied := make(map[model.Planet]RawPlanet, len(raw.Planets))
	for name, rp := range raw.Planets {
		if !validLongitude(rp.Longitude) {
			return nil, common.NewInvalidInput("planets",
				fmt.Errorf("%s longitude is not a finite number", name))
		}
		if !validLongitude(rp.Speed) {
			return nil, common.NewInvalidInput("planets",
				fmt.Errorf("%s speed is not a finite number", name))
		}
		supplied[model.Planet(name)] = rp
	}

	if _, ok := supplied[model.Ketu]; !ok {
		rahu, ok := supplied[model.Rahu]
		if !ok {
			return nil, common.NewInvalidInput("planets",
				fmt.Errorf("missing position for %s", model.Rahu))
		}
		supplied[model.Ketu] = RawPlanet{
			Longitude: NormalizeLongitude(rahu.Longitude + 180),
			Speed:     rahu.Speed,
		}
	}

	positions := make([]model.PlanetPosition, 0, len(model.Planets))
	for _, planet := range model.Planets {
		rp, ok := supplied[planet]
		if !ok {
			return nil, common.NewInvalidInput("planets",
				fmt.Errorf("missing position for %s", planet))
		}

		longitude := NormalizeLongitude(rp.Longitude)
		sign := model.SignFromLongitude(longitude)
		retrograde := rp.Speed < 0
		if planet.IsNode() {
			retrograde = true
		}

		positions = append(positions, model.PlanetPosition{
			Planet:       planet,
			Longitude:    longitude,
			Sign:         sign,
			DegreeInSign: longitude - float64(sign)*30,
			Speed:        rp.Speed,
			Retrograde:   retrograde,
			Nakshatra:    NakshatraAt(longitude),
		})
	}

	return positions, nil
}

// AscendantFromRaw validates and normalizes the supplied rising point.
func AscendantFromRaw(raw RawPositions) (float64, error) {
	if !validLongitude(raw.Ascendant) {
		return 0, common.NewInvalidInput("ascendant",
			fmt.Errorf("ascendant longitude is not a finite number"))
	}
	return NormalizeLongitude(raw.Ascendant), nil
}
