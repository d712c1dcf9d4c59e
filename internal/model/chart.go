package model

// NakshatraPosition locates a longitude within the 27 lunar mansions.
type NakshatraPosition struct {
	Name  string `json:"name"`
	Lord  Planet `json:"lord"`
	Index int    `json:"index"`
	Pada  int    `json:"pada"`
}

// PlanetPosition is one graha fully placed in a chart.
type PlanetPosition struct {
	Planet       Planet            `json:"planet"`
	Nakshatra    NakshatraPosition `json:"nakshatra"`
	Longitude    float64           `json:"longitude"`
	DegreeInSign float64           `json:"degree_in_sign"`
	Speed        float64           `json:"speed"`
	Sign         Sign              `json:"sign"`
	House        int               `json:"house"`
	Retrograde   bool              `json:"retrograde"`
}

// Ascendant is the rising point of a chart.
type Ascendant struct {
	Nakshatra    NakshatraPosition `json:"nakshatra"`
	Longitude    float64           `json:"longitude"`
	DegreeInSign float64           `json:"degree_in_sign"`
	Sign         Sign              `json:"sign"`
}

// Chart is a fully derived rashi chart: ascendant, the fixed
// house-to-sign assignment, and every graha placed. Positions are kept
// in canonical planet order so iteration and serialization are
// deterministic.
type Chart struct {
	HouseSystem HouseSystem      `json:"house_system"`
	Ascendant   Ascendant        `json:"ascendant"`
	Positions   []PlanetPosition `json:"positions"`
	Houses      [12]Sign         `json:"houses"`
}

// Position returns the placement of the named graha.
func (c *Chart) Position(p Planet) (PlanetPosition, bool) {
	for _, pos := range c.Positions {
		if pos.Planet == p {
			return pos, true
		}
	}
	return PlanetPosition{}, false
}

// OccupantsOf lists the grahas in the given house, in canonical order.
func (c *Chart) OccupantsOf(house int) []Planet {
	var out []Planet
	for _, pos := range c.Positions {
		if pos.House == house {
			out = append(out, pos.Planet)
		}
	}
	return out
}

// HouseOfSign returns the house number a sign occupies in this chart.
func (c *Chart) HouseOfSign(s Sign) int {
	return c.Ascendant.Sign.DistanceTo(s)
}

// DivisionalPosition is a graha's placement in a varga chart. Divisional
// placements carry sign and motion only; houses are defined for the
// rashi chart.
type DivisionalPosition struct {
	Planet     Planet `json:"planet"`
	Sign       Sign   `json:"sign"`
	Retrograde bool   `json:"retrograde"`
}

// DivisionalChart is one varga D-n derived from a rashi chart.
type DivisionalChart struct {
	Name          string               `json:"name"`
	Positions     []DivisionalPosition `json:"positions"`
	Divisor       int                  `json:"divisor"`
	AscendantSign Sign                 `json:"ascendant_sign"`
}

// Position returns the varga placement of the named graha.
func (d *DivisionalChart) Position(p Planet) (DivisionalPosition, bool) {
	for _, pos := range d.Positions {
		if pos.Planet == p {
			return pos, true
		}
	}
	return DivisionalPosition{}, false
}
