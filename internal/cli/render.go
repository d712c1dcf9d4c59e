package cli

import (
	"fmt"
	"strings"

	"github.com/grahalabs/jyotish/internal/model"
)

func motion(retrograde bool) string {
	if retrograde {
		return "R"
	}
	return ""
}

// RenderReading formats a derived reading for the terminal: the rashi
// chart, requested vargas, strengths, doshas and matches.
func RenderReading(reading *model.Reading) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Reading %s", reading.ID)))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf(
		"%s %s UTC%+03d:%02d · %s · rules v%d",
		reading.Birth.Date, reading.Birth.Time,
		reading.Birth.UTCOffsetMinutes/60, abs(reading.Birth.UTCOffsetMinutes%60),
		reading.Chart.HouseSystem, reading.RuleSetVersion)))
	b.WriteString("\n\n")

	b.WriteString(BoldStyle.Render(fmt.Sprintf("Ascendant: %s %.2f°",
		reading.Chart.Ascendant.Sign, reading.Chart.Ascendant.DegreeInSign)))
	b.WriteString("\n\n")

	b.WriteString(renderPositions(&reading.Chart))
	for i := range reading.Divisionals {
		b.WriteString("\n")
		b.WriteString(renderDivisional(&reading.Divisionals[i]))
	}

	if reading.Avakahada != nil {
		b.WriteString("\n")
		b.WriteString(renderAvakahada(reading.Avakahada))
	}
	if reading.Dasha != nil {
		b.WriteString("\n")
		b.WriteString(renderDasha(reading.Dasha))
	}

	if len(reading.Doshas) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderDoshas(reading.Doshas))
	}

	b.WriteString("\n")
	b.WriteString(RenderMatches(reading.Matches))
	return b.String()
}

func renderPositions(chart *model.Chart) string {
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-8s %-12s %6s  %-5s %-18s %s",
		"Planet", "Sign", "Deg", "House", "Nakshatra", "Motion")))
	b.WriteString("\n")
	for _, pos := range chart.Positions {
		b.WriteString(fmt.Sprintf("%-8s %-12s %6.2f  %-5d %-18s %s\n",
			pos.Planet, pos.Sign, pos.DegreeInSign, pos.House,
			fmt.Sprintf("%s %d", pos.Nakshatra.Name, pos.Nakshatra.Pada),
			motion(pos.Retrograde)))
	}
	return b.String()
}

func renderDivisional(div *model.DivisionalChart) string {
	var b strings.Builder
	b.WriteString(BoldStyle.Render(fmt.Sprintf("%s (ascendant %s)", div.Name, div.AscendantSign)))
	b.WriteString("\n")
	for _, pos := range div.Positions {
		b.WriteString(fmt.Sprintf("  %-8s %-12s %s\n", pos.Planet, pos.Sign, motion(pos.Retrograde)))
	}
	return b.String()
}

func renderAvakahada(a *model.Avakahada) string {
	var b strings.Builder
	b.WriteString(BoldStyle.Render("Avakahada"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  rashi %s (lord %s) · %s %d\n",
		a.Rashi, a.RashiLord, a.Nakshatra.Name, a.Nakshatra.Pada))
	b.WriteString(fmt.Sprintf("  varna %s · vashya %s · yoni %s · gana %s · nadi %s\n",
		a.Varna, a.Vashya, a.Yoni, a.Gana, a.Nadi))
	return b.String()
}

func renderDasha(d *model.DashaTimeline) string {
	var b strings.Builder
	b.WriteString(BoldStyle.Render(fmt.Sprintf(
		"Vimshottari dasha (balance %.2f years)", d.BalanceYears)))
	b.WriteString("\n")
	for _, p := range d.Periods {
		b.WriteString(fmt.Sprintf("  %-8s %s — %s (%.2f years)\n",
			p.Lord, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"), p.Years))
	}
	return b.String()
}

// RenderDoshas formats detected afflictions.
func RenderDoshas(doshas []model.DoshaFinding) string {
	var b strings.Builder
	b.WriteString(BoldStyle.Render("Doshas"))
	b.WriteString("\n")
	for _, d := range doshas {
		line := fmt.Sprintf("  %s", d.Kind)
		if d.Variant != "" {
			line += fmt.Sprintf(" (%s)", d.Variant)
		}
		line += fmt.Sprintf(" — severity %s", d.Severity)
		b.WriteString(ErrorStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderMatches formats rule matches with their evidence, in the order
// the rule engine produced them.
func RenderMatches(matches []model.RuleMatch) string {
	if len(matches) == 0 {
		return SubtleStyle.Render("No rules matched.") + "\n"
	}

	var b strings.Builder
	b.WriteString(BoldStyle.Render(fmt.Sprintf("Matched rules (%d)", len(matches))))
	b.WriteString("\n")
	for _, m := range matches {
		style := InfoStyle
		switch m.Impact {
		case model.ImpactPositive:
			style = SuccessStyle
		case model.ImpactNegative:
			style = WarningStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("  [%3d] %-24s %-14s %.2f",
			m.Priority, m.RuleKey, m.Category, m.Confidence)))
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("        " + m.RenderedTemplate()))
		b.WriteString("\n")
		for _, ev := range m.Evidence {
			b.WriteString(SubtleStyle.Render("        · " + FormatEvidence(ev)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatEvidence renders one evidence entry as a single line.
func FormatEvidence(ev model.Evidence) string {
	parts := []string{fmt.Sprintf("%s %s", ev.Entity, ev.Key)}
	if ev.Chart != "" {
		parts = append(parts, "in "+ev.Chart)
	}
	if ev.Sign != "" {
		parts = append(parts, ev.Sign)
	}
	if ev.House != 0 {
		parts = append(parts, fmt.Sprintf("house %d", ev.House))
	}
	if ev.Nakshatra != "" {
		parts = append(parts, ev.Nakshatra)
	}
	if ev.Strength != "" {
		parts = append(parts, ev.Strength)
	}
	if ev.Severity != "" {
		parts = append(parts, "severity "+ev.Severity)
	}
	if ev.Variant != "" {
		parts = append(parts, ev.Variant)
	}
	if ev.Retrograde {
		parts = append(parts, "retrograde")
	}
	return strings.Join(parts, ", ")
}

// RenderCompatibility formats an ashta koota evaluation.
func RenderCompatibility(result *model.CompatibilityResult) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Ashta Koota"))
	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-14s %6s %6s", "Koota", "Points", "Max")))
	b.WriteString("\n")
	for _, k := range result.Kutas {
		b.WriteString(fmt.Sprintf("%-14s %6.1f %6.1f\n", k.Name, k.Points, k.Max))
	}
	b.WriteString(BoldStyle.Render(fmt.Sprintf("%-14s %6.1f %6.1f", "Total", result.Total, result.Max)))
	b.WriteString("\n")
	if result.NadiDosha {
		b.WriteString(ErrorStyle.Render("Nadi dosha present"))
		b.WriteString("\n")
	}
	if result.BhakootDosha {
		b.WriteString(ErrorStyle.Render("Bhakoot dosha present"))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render("Verdict: " + result.Verdict))
	b.WriteString("\n")
	return b.String()
}

// RenderTransits formats a gochar snapshot against a natal chart.
func RenderTransits(snapshot *model.TransitSnapshot) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Transits"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("lagna %s · natal moon %s",
		snapshot.LagnaSign, snapshot.MoonSign)))
	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-8s %-12s %-11s %-10s %s",
		"Planet", "Sign", "From lagna", "From moon", "Motion")))
	b.WriteString("\n")
	for _, pos := range snapshot.Positions {
		b.WriteString(fmt.Sprintf("%-8s %-12s %-11d %-10d %s\n",
			pos.Planet, pos.Sign, pos.HouseFromLagna, pos.HouseFromMoon, motion(pos.Retrograde)))
	}
	if snapshot.SadeSati.Active {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Sade sati: %s", snapshot.SadeSati.Phase)))
		b.WriteString("\n")
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
