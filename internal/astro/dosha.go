package astro

import "github.com/grahalabs/jyotish/internal/model"

// Houses from which Mars afflicts the lagna.
var mangalHouses = map[int]bool{1: true, 4: true, 7: true, 8: true, 12: true}

// DetectDoshas runs every detector over the chart and reports findings
// in canonical dosha order.
func DetectDoshas(chart *model.Chart) []model.DoshaFinding {
	var findings []model.DoshaFinding
	for _, kind := range model.DoshaKinds {
		var f *model.DoshaFinding
		switch kind {
		case model.MangalDosha:
			f = detectMangal(chart)
		case model.KaalSarpDosha:
			f = detectKaalSarp(chart)
		}
		if f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

func detectMangal(chart *model.Chart) *model.DoshaFinding {
	mars, ok := chart.Position(model.Mars)
	if !ok || !mangalHouses[mars.House] {
		return nil
	}
	return &model.DoshaFinding{
		Kind:     model.MangalDosha,
		Severity: model.SeverityMedium,
		Evidence: []model.Evidence{planetEvidence(mars)},
	}
}

// detectKaalSarp checks whether the seven classical grahas all sit on
// one side of the nodal axis. The Rahu-side variant is anant, the
// Ketu-side variant kulat.
func detectKaalSarp(chart *model.Chart) *model.DoshaFinding {
	rahu, ok := chart.Position(model.Rahu)
	if !ok {
		return nil
	}

	rahuSide := true
	ketuSide := true
	hemmed := make([]model.PlanetPosition, 0, 7)
	for _, pos := range chart.Positions {
		if pos.Planet.IsNode() {
			continue
		}
		arc := NormalizeLongitude(pos.Longitude - rahu.Longitude)
		if arc < 180 {
			ketuSide = false
		} else {
			rahuSide = false
		}
		hemmed = append(hemmed, pos)
	}
	if !rahuSide && !ketuSide {
		return nil
	}

	variant := "anant"
	if ketuSide {
		variant = "kulat"
	}

	evidence := make([]model.Evidence, 0, len(hemmed)+2)
	for _, node := range []model.Planet{model.Rahu, model.Ketu} {
		if pos, ok := chart.Position(node); ok {
			evidence = append(evidence, planetEvidence(pos))
		}
	}
	for _, pos := range hemmed {
		evidence = append(evidence, planetEvidence(pos))
	}

	return &model.DoshaFinding{
		Kind:     model.KaalSarpDosha,
		Variant:  variant,
		Severity: model.SeverityHigh,
		Evidence: evidence,
	}
}

func planetEvidence(pos model.PlanetPosition) model.Evidence {
	return model.Evidence{
		Entity:     model.EvidencePlanet,
		Key:        string(pos.Planet),
		Sign:       pos.Sign.String(),
		House:      pos.House,
		Degree:     pos.DegreeInSign,
		Retrograde: pos.Retrograde,
		Nakshatra:  pos.Nakshatra.Name,
	}
}
