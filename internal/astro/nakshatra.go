package astro

import (
	"fmt"
	"math"

	"github.com/grahalabs/jyotish/internal/model"
)

// Each of the 27 nakshatras spans 13°20'.
const nakshatraSpan = 360.0 / 27

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha",
	"Anuradha", "Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha",
	"Shravana", "Dhanishta", "Shatabhisha", "Purva Bhadrapada",
	"Uttara Bhadrapada", "Revati",
}

// Lords repeat in the Vimshottari sequence three times across the 27
// mansions.
var nakshatraLords = [27]model.Planet{
	model.Ketu, model.Venus, model.Sun, model.Moon, model.Mars,
	model.Rahu, model.Jupiter, model.Saturn, model.Mercury,
	model.Ketu, model.Venus, model.Sun, model.Moon, model.Mars,
	model.Rahu, model.Jupiter, model.Saturn, model.Mercury,
	model.Ketu, model.Venus, model.Sun, model.Moon, model.Mars,
	model.Rahu, model.Jupiter, model.Saturn, model.Mercury,
}

// NakshatraAt locates a normalized longitude within the 27 mansions.
// The index is 1-based; the pada divides each mansion into quarters.
func NakshatraAt(longitude float64) model.NakshatraPosition {
	idx := int(math.Floor(longitude/nakshatraSpan)) % 27
	within := longitude - float64(idx)*nakshatraSpan
	pada := int(math.Floor(within/(nakshatraSpan/4))) + 1
	if pada > 4 {
		pada = 4
	}
	return model.NakshatraPosition{
		Index: idx + 1,
		Name:  nakshatraNames[idx],
		Pada:  pada,
		Lord:  nakshatraLords[idx],
	}
}

// NakshatraIndex resolves a mansion name to its 1-based index.
func NakshatraIndex(name string) (int, error) {
	for i, n := range nakshatraNames {
		if n == name {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unknown nakshatra %q", name)
}
