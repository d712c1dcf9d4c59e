package astro

import "github.com/grahalabs/jyotish/internal/model"

// SnapshotTransits relates current positions to a natal chart: each
// transiting graha's house counted from the lagna and from the natal
// moon, plus Saturn's sade sati status.
func SnapshotTransits(natal *model.Chart, current []model.PlanetPosition) model.TransitSnapshot {
	lagna := natal.Ascendant.Sign
	moonSign := lagna
	if moon, ok := natal.Position(model.Moon); ok {
		moonSign = moon.Sign
	}

	snapshot := model.TransitSnapshot{
		LagnaSign: lagna,
		MoonSign:  moonSign,
		Positions: make([]model.TransitPosition, len(current)),
	}
	for i, pos := range current {
		snapshot.Positions[i] = model.TransitPosition{
			Planet:         pos.Planet,
			Sign:           pos.Sign,
			HouseFromLagna: lagna.DistanceTo(pos.Sign),
			HouseFromMoon:  moonSign.DistanceTo(pos.Sign),
			Retrograde:     pos.Retrograde,
		}
	}

	for _, pos := range current {
		if pos.Planet == model.Saturn {
			snapshot.SadeSati = sadeSatiStatus(moonSign, pos.Sign)
			break
		}
	}
	return snapshot
}

// sadeSatiStatus reads Saturn's offset from the natal moon sign. The
// 12th, 1st and 2nd houses from the moon form the three sade sati
// phases; the 4th and 8th are the shorter dhaiya.
func sadeSatiStatus(moonSign, saturnSign model.Sign) model.SadeSatiStatus {
	diff := ((int(saturnSign) - int(moonSign)) % 12 + 12) % 12
	switch diff {
	case 11:
		return model.SadeSatiStatus{Active: true, Phase: model.SadeSatiRising}
	case 0:
		return model.SadeSatiStatus{Active: true, Phase: model.SadeSatiPeak}
	case 1:
		return model.SadeSatiStatus{Active: true, Phase: model.SadeSatiSetting}
	case 3, 7:
		return model.SadeSatiStatus{Active: true, Phase: model.SadeSatiDhaiya}
	default:
		return model.SadeSatiStatus{}
	}
}
