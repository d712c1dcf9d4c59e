// Package model defines the core data structures for the jyotish engine.
package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// Planet identifies one of the nine grahas used in Vedic charts.
type Planet string

// The nine grahas in canonical enumeration order.
const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mars    Planet = "Mars"
	Mercury Planet = "Mercury"
	Jupiter Planet = "Jupiter"
	Venus   Planet = "Venus"
	Saturn  Planet = "Saturn"
	Rahu    Planet = "Rahu"
	Ketu    Planet = "Ketu"
)

// Planets lists the grahas in canonical order. Iteration, serialization
// and tie-breaking all follow this order.
var Planets = []Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

var planetIndex = func() map[Planet]int {
	m := make(map[Planet]int, len(Planets))
	for i, p := range Planets {
		m[p] = i
	}
	return m
}()

// ParsePlanet resolves a planet name, case-sensitively.
func ParsePlanet(name string) (Planet, error) {
	p := Planet(name)
	if _, ok := planetIndex[p]; !ok {
		return "", fmt.Errorf("unknown planet %q", name)
	}
	return p, nil
}

// Index returns the planet's position in canonical order, or -1 for an
// unknown planet.
func (p Planet) Index() int {
	i, ok := planetIndex[p]
	if !ok {
		return -1
	}
	return i
}

// Valid reports whether the planet is one of the nine grahas.
func (p Planet) Valid() bool {
	_, ok := planetIndex[p]
	return ok
}

// IsNode reports whether the planet is a lunar node.
func (p Planet) IsNode() bool {
	return p == Rahu || p == Ketu
}

var benefics = map[Planet]bool{Jupiter: true, Venus: true, Mercury: true, Moon: true}

// IsBenefic reports whether the planet counts as a natural benefic.
func (p Planet) IsBenefic() bool {
	return benefics[p]
}

// IsMalefic reports whether the planet counts as a natural malefic.
func (p Planet) IsMalefic() bool {
	return p.Valid() && !benefics[p]
}

// Sign identifies a sidereal zodiac sign, zero-indexed from Aries.
type Sign int

// The twelve rashis in zodiacal order.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// ParseSign resolves a sign name, case-sensitively.
func ParseSign(name string) (Sign, error) {
	for i, n := range signNames {
		if n == name {
			return Sign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sign %q", name)
}

// SignFromLongitude returns the sign containing the given ecliptic
// longitude. The longitude must already be normalized to [0, 360).
func SignFromLongitude(longitude float64) Sign {
	return Sign(int(math.Floor(longitude/30)) % 12)
}

// Valid reports whether the sign index is within the zodiac.
func (s Sign) Valid() bool {
	return s >= 0 && s <= 11
}

func (s Sign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Add advances the sign by n places, wrapping around the zodiac.
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)+n)%12 + 12) % 12)
}

// DistanceTo counts the inclusive zodiacal distance from s to other,
// in the range 1..12. A sign's distance to itself is 1.
func (s Sign) DistanceTo(other Sign) int {
	return ((int(other)-int(s))%12+12)%12 + 1
}

// IsOdd reports whether the sign is odd-numbered in the traditional
// 1-based count (Aries, Gemini, ...).
func (s Sign) IsOdd() bool {
	return int(s)%2 == 0
}

// MarshalJSON encodes the sign as its name.
func (s Sign) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid sign %d", int(s))
	}
	return json.Marshal(signNames[s])
}

// UnmarshalJSON decodes a sign from its name.
func (s *Sign) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSign(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SignLord returns the traditional ruler of the sign.
func SignLord(s Sign) Planet {
	switch s {
	case Aries, Scorpio:
		return Mars
	case Taurus, Libra:
		return Venus
	case Gemini, Virgo:
		return Mercury
	case Cancer:
		return Moon
	case Leo:
		return Sun
	case Sagittarius, Pisces:
		return Jupiter
	case Capricorn, Aquarius:
		return Saturn
	default:
		return ""
	}
}

// HouseSystem selects how house cusps are anchored to the ascendant.
type HouseSystem string

// Supported house systems.
const (
	WholeSign HouseSystem = "whole_sign"
	Equal     HouseSystem = "equal"
)

// Valid reports whether the house system is supported.
func (h HouseSystem) Valid() bool {
	return h == WholeSign || h == Equal
}
