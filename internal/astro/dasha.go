package astro

import (
	"time"

	"github.com/grahalabs/jyotish/internal/model"
)

// Vimshottari constants. The full cycle distributes 120 years across
// the nine lords; period arithmetic uses the Julian year.
const (
	fullCycleYears   = 120.0
	dashaDaysPerYear = 365.25
)

var dashaSequence = []model.Planet{
	model.Ketu, model.Venus, model.Sun, model.Moon, model.Mars,
	model.Rahu, model.Jupiter, model.Saturn, model.Mercury,
}

var dashaYears = map[model.Planet]float64{
	model.Ketu:    7,
	model.Venus:   20,
	model.Sun:     6,
	model.Moon:    10,
	model.Mars:    7,
	model.Rahu:    18,
	model.Jupiter: 16,
	model.Saturn:  19,
	model.Mercury: 17,
}

// VimshottariTimeline builds the full nine-period dasha sequence from
// birth. The opening period belongs to the moon nakshatra's lord with
// only its unelapsed balance remaining; antardashas that ended before
// birth are dropped and the running one is clipped to start at birth.
func VimshottariTimeline(birth time.Time, moonLongitude float64) model.DashaTimeline {
	moonLongitude = NormalizeLongitude(moonLongitude)
	nak := NakshatraAt(moonLongitude)
	seqIdx := (nak.Index - 1) % 9
	within := moonLongitude - float64(nak.Index-1)*nakshatraSpan
	fraction := within / nakshatraSpan

	lord := dashaSequence[seqIdx]
	balance := (1 - fraction) * dashaYears[lord]
	notionalStart := addYears(birth, -(fraction * dashaYears[lord]))

	periods := make([]model.DashaPeriod, 0, len(dashaSequence))
	start := notionalStart
	for i := range dashaSequence {
		l := dashaSequence[(seqIdx+i)%len(dashaSequence)]
		years := dashaYears[l]
		end := addYears(start, years)

		p := model.DashaPeriod{
			Lord:        l,
			Start:       start,
			End:         end,
			Years:       years,
			Antardashas: antardashas(l, start, years, birth),
		}
		if p.Start.Before(birth) {
			p.Start = birth
			p.Years = balance
		}
		periods = append(periods, p)
		start = end
	}

	return model.DashaTimeline{BalanceYears: balance, Periods: periods}
}

func antardashas(maha model.Planet, start time.Time, mahaYears float64, birth time.Time) []model.AntardashaPeriod {
	seqIdx := 0
	for i, p := range dashaSequence {
		if p == maha {
			seqIdx = i
			break
		}
	}

	out := make([]model.AntardashaPeriod, 0, len(dashaSequence))
	s := start
	for i := range dashaSequence {
		l := dashaSequence[(seqIdx+i)%len(dashaSequence)]
		years := mahaYears * dashaYears[l] / fullCycleYears
		e := addYears(s, years)
		if e.After(birth) {
			a := model.AntardashaPeriod{Lord: l, Start: s, End: e, Years: years}
			if a.Start.Before(birth) {
				a.Start = birth
				a.Years = yearsBetween(birth, e)
			}
			out = append(out, a)
		}
		s = e
	}
	return out
}

func addYears(t time.Time, years float64) time.Time {
	return t.Add(time.Duration(years * dashaDaysPerYear * 24 * float64(time.Hour)))
}

func yearsBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / (24 * dashaDaysPerYear)
}
