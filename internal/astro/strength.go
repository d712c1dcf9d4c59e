package astro

import "github.com/grahalabs/jyotish/internal/model"

// Grade boundaries for the net benefic score of a house.
const (
	strongScore = 2
	weakScore   = -1
)

// HouseStrengths scores all twelve houses by occupancy: each natural
// benefic adds one, each natural malefic subtracts one. Empty houses
// score zero and grade average.
func HouseStrengths(chart *model.Chart) []model.HouseStrength {
	out := make([]model.HouseStrength, 12)
	for i := range out {
		out[i] = model.HouseStrength{House: i + 1, Grade: model.StrengthAverage}
	}

	for _, pos := range chart.Positions {
		h := &out[pos.House-1]
		benefic := pos.Planet.IsBenefic()
		if benefic {
			h.Score++
		} else {
			h.Score--
		}
		h.Occupants = append(h.Occupants, model.HouseOccupant{
			Planet:  pos.Planet,
			Benefic: benefic,
		})
	}

	for i := range out {
		switch {
		case out[i].Score >= strongScore:
			out[i].Grade = model.StrengthStrong
		case out[i].Score <= weakScore:
			out[i].Grade = model.StrengthWeak
		default:
			out[i].Grade = model.StrengthAverage
		}
	}
	return out
}
